package document

import "strings"

// serializeOverhead is the fixed per-file cost beyond header and body:
// the newline after the header is counted separately in FileRecord.Chars,
// so this covers the blank line, separator line, and inter-file blank line.
const serializeOverhead = len("\n\n" + Separator + "\n\n")

// Serialize renders file records back into the delimited document format:
// header, newline, trailing-whitespace-trimmed body, a blank line, then a
// separator line, with files joined by a blank line. It is the inverse of
// Parse up to trailing-whitespace normalization.
func Serialize(files []FileRecord) string {
	blocks := make([]string, 0, len(files))
	for _, f := range files {
		body := strings.TrimRight(f.Body, " \t\r\n")
		blocks = append(blocks, f.Header+"\n"+body+"\n\n"+Separator)
	}
	return strings.Join(blocks, "\n\n")
}
