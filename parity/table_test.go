package parity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oferchen/rsync-parity/parity"
	"github.com/oferchen/rsync-parity/stringtest"
)

// tableSource wraps records in the fixed table shape recovered by ScanTable.
func tableSource(records ...string) string {
	lines := []string{"static struct poptOption long_options[] = {"}
	lines = append(lines, records...)
	lines = append(lines, "  {0,0,0,0, 0, 0, 0}", "};")

	return stringtest.JoinLF(lines...)
}

func TestScanTable(t *testing.T) {
	t.Parallel()

	src := tableSource(
		`  {"checksum", 'c', POPT_ARG_NONE, &always_checksum, 0, 0, 0},`,
		`  {"no-whole-file", 0, POPT_ARG_VAL, &whole_file, 0, 0, 0},`,
		`  {0, 'F', POPT_ARG_NONE, 0, 'F', 0, 0},`,
	)

	entries, err := parity.ScanTable(src)
	require.NoError(t, err)

	assert.Equal(t, []parity.Entry{
		{Long: "checksum", Short: "c", ArgInfo: "POPT_ARG_NONE", ArgPtr: "&always_checksum", Value: "0"},
		{Long: "no-whole-file", Short: "", ArgInfo: "POPT_ARG_VAL", ArgPtr: "&whole_file", Value: "0"},
		{Long: "", Short: "F", ArgInfo: "POPT_ARG_NONE", ArgPtr: "0", Value: "'F'"},
	}, entries)
}

func TestScanTableRecordCountMatchesNonSentinelRecords(t *testing.T) {
	t.Parallel()

	src := tableSource(
		`  {"one", 0, POPT_ARG_NONE, &one, 0, 0, 0},`,
		`  {"two", 0, POPT_ARG_NONE, &two, 0, 0, 0},`,
		`  {"three", 0, POPT_ARG_NONE, &three, 0, 0, 0},`,
	)

	entries, err := parity.ScanTable(src)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestScanTableOrderPreserved(t *testing.T) {
	t.Parallel()

	src := tableSource(
		`  {"zulu", 0, POPT_ARG_NONE, &z, 0, 0, 0},`,
		`  {"alpha", 0, POPT_ARG_NONE, &a, 0, 0, 0},`,
		`  {"mike", 0, POPT_ARG_NONE, &m, 0, 0, 0},`,
	)

	entries, err := parity.ScanTable(src)
	require.NoError(t, err)

	var longs []string
	for _, e := range entries {
		longs = append(longs, e.Long)
	}

	assert.Equal(t, []string{"zulu", "alpha", "mike"}, longs)
}

func TestScanTableTrailingFieldsIgnored(t *testing.T) {
	t.Parallel()

	src := tableSource(
		`  {"verbose", 'v', POPT_ARG_NONE, 0, 'v', "increase verbosity", 0},`,
	)

	entries, err := parity.ScanTable(src)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "verbose", entries[0].Long)
	assert.Equal(t, "'v'", entries[0].Value)
}

func TestScanTableInteriorSentinelDiscarded(t *testing.T) {
	t.Parallel()

	// The closing sentinel lives outside the scanned region, so feed one in
	// the middle of the table instead.
	src := tableSource(
		`  {"before", 0, POPT_ARG_NONE, &b, 0, 0, 0},`,
		`  {0, 0, 0, 0, 0},`,
		`  {"after", 0, POPT_ARG_NONE, &a, 0, 0, 0},`,
	)

	entries, err := parity.ScanTable(src)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "before", entries[0].Long)
	assert.Equal(t, "after", entries[1].Long)
}

func TestScanTableDegenerateEntryDropped(t *testing.T) {
	t.Parallel()

	src := tableSource(
		`  {0, 0, POPT_ARG_NONE, &placeholder, 1, 0, 0},`,
		`  {"kept", 0, POPT_ARG_NONE, &kept, 0, 0, 0},`,
	)

	entries, err := parity.ScanTable(src)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "kept", entries[0].Long)
}

func TestScanTableErrors(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		src     string
		wantErr error
	}{
		"missing opening marker": {
			src:     "int verbose = 0;",
			wantErr: parity.ErrStructureNotFound,
		},
		"missing terminator": {
			src: stringtest.JoinLF(
				"static struct poptOption long_options[] = {",
				`  {"verbose", 'v', POPT_ARG_NONE, 0, 'v', 0, 0},`,
				"};",
			),
			wantErr: parity.ErrStructureNotFound,
		},
		"four-field record": {
			src:     tableSource(`  {"verbose", 'v', POPT_ARG_NONE, 0},`),
			wantErr: parity.ErrEntryParse,
		},
		"unquoted long name": {
			src:     tableSource(`  {verbose, 'v', POPT_ARG_NONE, 0, 'v', 0, 0},`),
			wantErr: parity.ErrEntryParse,
		},
		"bad short slot": {
			src:     tableSource(`  {"verbose", vv, POPT_ARG_NONE, 0, 'v', 0, 0},`),
			wantErr: parity.ErrEntryParse,
		},
		"lowercase arg info": {
			src:     tableSource(`  {"verbose", 'v', popt_arg_none, 0, 'v', 0, 0},`),
			wantErr: parity.ErrEntryParse,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			entries, err := parity.ScanTable(tc.src)
			require.ErrorIs(t, err, tc.wantErr)
			assert.Nil(t, entries)
		})
	}
}

func TestScanTableAfterCommentStrip(t *testing.T) {
	t.Parallel()

	src := stringtest.JoinLF(
		"/* table of {fake} records in a comment */",
		"static struct poptOption long_options[] = {",
		`  {"delete", 0, POPT_ARG_NONE, &delete_mode, 0, 0, 0}, /* {not a record} */`,
		"  {0,0,0,0, 0, 0, 0}",
		"};",
	)

	entries, err := parity.ScanTable(parity.StripComments(src))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "delete", entries[0].Long)
}
