package parity

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Sentinel errors returned by the table scanner.
var (
	// ErrStructureNotFound indicates the long_options table marker or its
	// terminator is absent from the source text.
	ErrStructureNotFound = errors.New("option table structure not found")
	// ErrEntryParse indicates a brace-delimited record inside the table
	// matches neither the sentinel shape nor the five-field grammar.
	ErrEntryParse = errors.New("option table entry parse")
	// ErrReadInput indicates an input file could not be read.
	ErrReadInput = errors.New("read input")
)

const (
	// tableMarker opens rsync's popt declaration table in options.c.
	tableMarker = "poptOption long_options[] = {"
	// tableTerminator is the all-zero record closing the table.
	tableTerminator = "{0,0,0,0"
)

// Entry is one raw option declaration recovered from the long_options table,
// prior to classification. Empty Long and Short mean the corresponding slot
// held the zero sentinel.
type Entry struct {
	// Long is the long-form option name without leading dashes.
	Long string
	// Short is the short-form flag character.
	Short string
	// ArgInfo names the popt argument-cardinality constant, treated as an
	// opaque label.
	ArgInfo string
	// ArgPtr is the raw storage-target expression. A leading & names a
	// module scalar inspectable via [DefaultsMap]; anything else denotes a
	// callback or untracked target.
	ArgPtr string
	// Value is the raw literal assigned to the val slot.
	Value string
}

// tableRecord is the tagged parse result for one brace-delimited record:
// either the all-zero sentinel or a declared entry.
type tableRecord struct {
	entry    Entry
	sentinel bool
}

// recordPattern matches one flat brace-delimited record. The table format
// guarantees records never contain nested braces.
var recordPattern = regexp.MustCompile(`\{[^{}]*\}`)

// argInfoPattern matches the ALLCAPS popt argument-cardinality token.
var argInfoPattern = regexp.MustCompile(`^[A-Z][A-Z0-9_|]*$`)

// ScanTable locates the long_options initializer table in comment-stripped
// source text and parses it into declared entries, in source order.
//
// Sentinel records and degenerate records with neither a long nor a short
// name are discarded. Any record that matches neither the sentinel shape nor
// the five-field grammar aborts the scan with [ErrEntryParse]: a single
// malformed record invalidates confidence in the rest of the table.
func ScanTable(src string) ([]Entry, error) {
	start := strings.Index(src, tableMarker)
	if start < 0 {
		return nil, fmt.Errorf("%w: opening marker %q", ErrStructureNotFound, tableMarker)
	}

	body := src[start+len(tableMarker):]

	end := strings.Index(body, tableTerminator)
	if end < 0 {
		return nil, fmt.Errorf("%w: terminator %q", ErrStructureNotFound, tableTerminator)
	}

	region := body[:end]

	var entries []Entry

	for _, raw := range recordPattern.FindAllString(region, -1) {
		rec, err := parseRecord(raw)
		if err != nil {
			return nil, err
		}

		if rec.sentinel {
			continue
		}

		// A record with neither name is a degenerate placeholder, not an
		// option.
		if rec.entry.Long == "" && rec.entry.Short == "" {
			continue
		}

		entries = append(entries, rec.entry)
	}

	return entries, nil
}

// parseRecord parses one flat {...} record against the fixed positional
// grammar: quoted-long|0, quoted-short|0, ALLCAPS token, storage expression,
// value literal. Trailing fields are ignored.
func parseRecord(raw string) (tableRecord, error) {
	body := strings.TrimSuffix(strings.TrimPrefix(raw, "{"), "}")

	fields := strings.Split(body, ",")
	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
	}

	if isSentinel(fields) {
		return tableRecord{sentinel: true}, nil
	}

	if len(fields) < 5 {
		return tableRecord{}, fmt.Errorf("%w: %d field(s) in %q", ErrEntryParse, len(fields), raw)
	}

	long, ok := parseLongField(fields[0])
	if !ok {
		return tableRecord{}, fmt.Errorf("%w: bad long-name slot %q in %q", ErrEntryParse, fields[0], raw)
	}

	short, ok := parseShortField(fields[1])
	if !ok {
		return tableRecord{}, fmt.Errorf("%w: bad short-flag slot %q in %q", ErrEntryParse, fields[1], raw)
	}

	if !argInfoPattern.MatchString(fields[2]) {
		return tableRecord{}, fmt.Errorf("%w: bad arg-info slot %q in %q", ErrEntryParse, fields[2], raw)
	}

	return tableRecord{entry: Entry{
		Long:    long,
		Short:   short,
		ArgInfo: fields[2],
		ArgPtr:  fields[3],
		Value:   fields[4],
	}}, nil
}

// isSentinel reports whether every field of the record is the zero literal.
func isSentinel(fields []string) bool {
	if len(fields) == 0 {
		return false
	}

	for _, f := range fields {
		if f != "0" {
			return false
		}
	}

	return true
}

// parseLongField decodes the first record slot: a double-quoted name or the
// zero sentinel.
func parseLongField(f string) (string, bool) {
	if f == "0" {
		return "", true
	}

	if len(f) >= 2 && f[0] == '"' && f[len(f)-1] == '"' {
		return f[1 : len(f)-1], true
	}

	return "", false
}

// parseShortField decodes the second record slot: a single-quoted character
// or the zero sentinel.
func parseShortField(f string) (string, bool) {
	if f == "0" {
		return "", true
	}

	if len(f) == 3 && f[0] == '\'' && f[2] == '\'' {
		return f[1:2], true
	}

	return "", false
}
