// Package parity computes an option parity matrix between upstream rsync and
// a reimplementation.
//
// The upstream side is recovered from rsync's options.c: the popt
// long_options initializer table yields one [Entry] per declared option, and
// module-level integer declarations yield a [DefaultsMap] describing
// compile-time defaults. The reimplementation side is recovered from a
// captured --help transcript, which yields the [HelpTokens] sets of
// advertised long and short options.
//
// [Classify] correlates the two sides into one [OptionRecord] per declared
// option: a stable identifier, a category assigned by priority-ordered
// keyword matching, a human-readable upstream default, and an
// implemented/missing status. Source order is preserved end to end, and the
// whole pipeline is a pure function of its inputs: identical inputs produce
// byte-identical output.
//
// This is deliberately not a C parser. The scanners pattern-match exactly one
// known table shape and one known declaration shape, and fail fatally
// ([ErrStructureNotFound], [ErrEntryParse]) as soon as the source stops
// looking like rsync's options.c, because a partial matrix would be
// misleading rather than merely incomplete.
//
// # Pipeline
//
//	src := parity.StripComments(optionsC)
//	entries, err := parity.ScanTable(src)
//	defaults := parity.ScanDefaults(src)
//	help := parity.ScanHelp(helpText)
//	records := parity.Classify(entries, defaults, help)
//	err = parity.RenderYAML(os.Stdout, records)
//
// # Known Ambiguity
//
// The short-option scan over help text only inspects the single character
// preceding a dash. Dashed words embedded in long options therefore
// contribute spurious short tokens: --no-whole-file advertises 'w' and 'f'
// as far as this scanner is concerned. Upstream's parity tooling behaves the
// same way, and status decisions for short-only options depend on matching
// it, so the behavior is preserved and pinned by tests rather than fixed.
package parity
