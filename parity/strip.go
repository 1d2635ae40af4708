package parity

import "strings"

// StripComments removes every /* ... */ span from src. Spans do not nest and
// close at the first */ encountered. An opener with no closer is left in
// place.
//
// Comment stripping runs before any structural scan so that braces or quotes
// inside comments cannot corrupt table recovery.
func StripComments(src string) string {
	var sb strings.Builder

	for {
		open := strings.Index(src, "/*")
		if open < 0 {
			break
		}

		end := strings.Index(src[open+2:], "*/")
		if end < 0 {
			break
		}

		sb.WriteString(src[:open])

		src = src[open+2+end+2:]
	}

	sb.WriteString(src)

	return sb.String()
}
