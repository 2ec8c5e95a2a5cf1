// Package tokens provides rough token-count estimation for budget decisions.
// The estimates use a fixed characters-per-token ratio — good enough for
// deciding whether a document needs truncation, not for billing.
package tokens

// DefaultCharsPerToken is the ratio used when none is configured.
// Roughly accurate for English prose and source code alike.
const DefaultCharsPerToken = 4

// Estimator estimates the language-model token count of a text.
type Estimator interface {
	Estimate(text string) int
}

// CharRatio estimates tokens using a characters-per-token ratio.
type CharRatio struct {
	CharsPerToken int // defaults to DefaultCharsPerToken if zero or negative
}

func (e CharRatio) ratio() int {
	if e.CharsPerToken <= 0 {
		return DefaultCharsPerToken
	}
	return e.CharsPerToken
}

// Estimate returns the estimated token count for text.
func (e CharRatio) Estimate(text string) int {
	return len(text) / e.ratio()
}

// Estimate is a convenience using the default ratio.
func Estimate(text string) int {
	return CharRatio{}.Estimate(text)
}
