package parity

import (
	"regexp"
	"strings"
)

// DefaultsMap maps a module-scalar variable name from options.c to its raw
// initializer expression, verbatim up to the statement terminator.
//
// Absence from the map is a legitimate state: declarations without an
// initializer, or inside a block, are simply not captured, and the classifier
// renders the default as "n/a".
type DefaultsMap map[string]string

// defaultDeclPattern matches integer module-scalar declarations with an
// initializer at the start of a line, e.g. "int preserve_times = 0;".
var defaultDeclPattern = regexp.MustCompile(`(?m)^int\s+(\w+)\s*=\s*([^;\n]+);`)

// ScanDefaults scans comment-stripped source text for module-scalar integer
// declarations and returns their raw initializer expressions. When a name is
// declared more than once the last declaration wins.
func ScanDefaults(src string) DefaultsMap {
	defaults := make(DefaultsMap)

	for _, m := range defaultDeclPattern.FindAllStringSubmatch(src, -1) {
		defaults[m[1]] = strings.TrimSpace(m[2])
	}

	return defaults
}
