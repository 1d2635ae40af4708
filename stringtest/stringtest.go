// Package stringtest provides helpers for constructing multi-line fixture
// text in tests with explicit line endings.
package stringtest

import "strings"

// JoinLF joins multiple strings with LF line endings.
// Use this to construct source and transcript fixtures with explicit line
// endings.
//
// Example:
//
//	src := stringtest.JoinLF(
//		"int verbose = 0;",
//		"int quiet = 0;",
//	) // -> "int verbose = 0;\nint quiet = 0;"
func JoinLF(ss ...string) string {
	var sb strings.Builder
	for i, s := range ss {
		if i > 0 {
			sb.WriteByte('\n')
		}

		sb.WriteString(s)
	}

	return sb.String()
}
