package parity

import "regexp"

// HelpTokens holds the option tokens advertised by a captured --help
// transcript: long option names without leading dashes, and short flag
// characters. Membership is the only query surface.
type HelpTokens struct {
	Long  map[string]bool
	Short map[string]bool
}

// HasLong reports whether the transcript mentions --name.
func (h HelpTokens) HasLong(name string) bool {
	return h.Long[name]
}

// HasShort reports whether the transcript mentions the short flag c.
func (h HelpTokens) HasShort(c string) bool {
	return h.Short[c]
}

// longTokenPattern matches a -- prefix followed by one or more
// alphanumeric/dash characters.
var longTokenPattern = regexp.MustCompile(`--([A-Za-z0-9][A-Za-z0-9-]*)`)

// ScanHelp scans arbitrary help text and returns the sets of long and short
// option tokens it mentions. Duplicates collapse; there is no ordering.
//
// The short-token scan only inspects the character immediately preceding a
// dash, so dashed words inside long options contribute spurious shorts
// (--no-whole-file yields 'w' and 'f'). Upstream's tooling shares this
// behavior and status decisions depend on matching it exactly.
func ScanHelp(text string) HelpTokens {
	tokens := HelpTokens{
		Long:  make(map[string]bool),
		Short: make(map[string]bool),
	}

	for _, m := range longTokenPattern.FindAllStringSubmatch(text, -1) {
		tokens.Long[m[1]] = true
	}

	for i := 0; i+1 < len(text); i++ {
		if text[i] != '-' || !isAlnum(text[i+1]) {
			continue
		}

		if i > 0 && text[i-1] == '-' {
			continue
		}

		tokens.Short[text[i+1:i+2]] = true
	}

	return tokens
}

func isAlnum(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z':
		return true
	case b >= 'A' && b <= 'Z':
		return true
	case b >= '0' && b <= '9':
		return true
	}

	return false
}
