package parity

import (
	"fmt"
	"strings"
)

// Category is one fixed classification bucket for an option.
type Category string

// Classification buckets, in priority order.
const (
	CategoryDeletion   Category = "deletion"
	CategoryTraversal  Category = "traversal"
	CategoryMetadata   Category = "metadata"
	CategoryTransfer   Category = "transfer"
	CategoryFilters    Category = "filters"
	CategoryDaemon     Category = "daemon"
	CategoryConnection Category = "connection"
	CategoryLogging    Category = "logging"
	CategoryGeneral    Category = "general"
)

// Status is the binary implemented/missing judgment for an option, based
// purely on token presence in captured help text.
type Status string

const (
	// StatusImplemented means the help transcript advertises the option.
	StatusImplemented Status = "implemented"
	// StatusMissing means the help transcript does not mention the option.
	StatusMissing Status = "missing"
)

// OptionRecord is one row of the parity matrix.
type OptionRecord struct {
	// Option is the stable identifier: --long, or "-x (short-only)" for
	// options with no long name.
	Option string `json:"option" yaml:"option"`
	// Short is the short flag character, or empty.
	Short string `json:"short" yaml:"short"`
	// Category is the classification bucket.
	Category Category `json:"category" yaml:"category"`
	// UpstreamDefault describes the option's compile-time default upstream.
	UpstreamDefault string `json:"upstream_default" yaml:"upstream_default"`
	// Status records whether the reimplementation advertises the option.
	Status Status `json:"status" yaml:"status"`
	// Notes carries free-text annotations, possibly empty.
	Notes string `json:"notes" yaml:"notes"`
}

// categoryRule pairs a category with the keywords that select it. Rules are
// evaluated in slice order and the first keyword hit wins, so the slice
// itself expresses the tie-break priority.
type categoryRule struct {
	category Category
	keywords []string
}

// categoryRules holds the canonical keyword sets for rsync's option
// vocabulary. Keywords are matched by substring against the long name with
// any leading "no-" stripped.
var categoryRules = []categoryRule{
	{CategoryDeletion, []string{"delete", "remove"}},
	{CategoryTraversal, []string{"recurs", "dirs", "links", "one-file-system", "existing", "relative"}},
	{CategoryMetadata, []string{
		"perms", "times", "owner", "group", "acls", "xattrs", "chmod",
		"chown", "executability", "numeric-ids", "super", "devices", "specials",
	}},
	{CategoryTransfer, []string{
		"compress", "checksum", "whole-file", "partial", "inplace", "append",
		"sparse", "block-size", "bwlimit", "preallocate", "fuzzy", "temp-dir", "backup",
	}},
	{CategoryFilters, []string{"exclude", "include", "filter", "files-from", "from0"}},
	{CategoryDaemon, []string{"daemon", "config", "password-file", "motd", "dparam"}},
	{CategoryConnection, []string{
		"rsh", "rsync-path", "port", "address", "timeout", "ipv4", "ipv6",
		"sockopts", "blocking-io", "protocol",
	}},
	{CategoryLogging, []string{
		"verbose", "quiet", "stats", "progress", "itemize", "log-file",
		"log-format", "out-format", "info", "debug", "human-readable", "8-bit-output",
	}},
}

// aliasIdentifiers is the closed set of identifiers kept as aliases of other
// options for compatibility with upstream invocations.
var aliasIdentifiers = map[string]bool{
	"--del":          true,
	"--old-d":        true,
	"--old-dirs":     true,
	"--old-args":     true,
	"--old-compress": true,
}

const (
	noteNegation = "Negates the corresponding positive option."
	noteAlias    = "Alias maintained for compatibility."
)

// Classify correlates declared entries with upstream defaults and the help
// transcript's token sets, producing one matrix row per entry in source
// order. It is a pure function of its three inputs.
func Classify(entries []Entry, defaults DefaultsMap, help HelpTokens) []OptionRecord {
	records := make([]OptionRecord, 0, len(entries))

	for _, e := range entries {
		records = append(records, classifyEntry(e, defaults, help))
	}

	return records
}

func classifyEntry(e Entry, defaults DefaultsMap, help HelpTokens) OptionRecord {
	return OptionRecord{
		Option:          identifier(e),
		Short:           e.Short,
		Category:        categorize(e.Long),
		UpstreamDefault: upstreamDefault(e, defaults),
		Status:          status(e, help),
		Notes:           notes(e),
	}
}

// identifier derives the stable row identifier. Entries with neither name
// never reach this point; the table scanner discards them.
func identifier(e Entry) string {
	if e.Long != "" {
		return "--" + e.Long
	}

	return fmt.Sprintf("-%s (short-only)", e.Short)
}

// categorize assigns the first matching category rule, or general when no
// keyword matches or the entry has no long name.
func categorize(long string) Category {
	if long == "" {
		return CategoryGeneral
	}

	name := strings.TrimPrefix(long, "no-")

	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(name, kw) {
				return rule.category
			}
		}
	}

	return CategoryGeneral
}

// upstreamDefault renders the compile-time default description by comparing
// the entry's val literal against the referenced variable's initializer.
func upstreamDefault(e Entry, defaults DefaultsMap) string {
	varName, ok := strings.CutPrefix(e.ArgPtr, "&")
	if !ok {
		return "n/a"
	}

	def, ok := defaults[varName]
	if !ok {
		return "n/a"
	}

	switch {
	case e.Value == "0" && def != "0":
		return fmt.Sprintf("enabled by default (%s)", def)
	case def == "0":
		return "disabled by default"
	default:
		return "default " + def
	}
}

// status reports implemented when the help transcript advertises either the
// long name or the short flag.
func status(e Entry, help HelpTokens) Status {
	if e.Long != "" && help.HasLong(e.Long) {
		return StatusImplemented
	}

	if e.Short != "" && help.HasShort(e.Short) {
		return StatusImplemented
	}

	return StatusMissing
}

// notes annotates negation options and known compatibility aliases.
func notes(e Entry) string {
	var parts []string

	if strings.HasPrefix(e.Long, "no-") {
		parts = append(parts, noteNegation)
	}

	if aliasIdentifiers[identifier(e)] {
		parts = append(parts, noteAlias)
	}

	return strings.Join(parts, "; ")
}
