package parity_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oferchen/rsync-parity/parity"
)

func helpWith(longs []string, shorts []string) parity.HelpTokens {
	tokens := parity.HelpTokens{
		Long:  make(map[string]bool),
		Short: make(map[string]bool),
	}

	for _, l := range longs {
		tokens.Long[l] = true
	}

	for _, s := range shorts {
		tokens.Short[s] = true
	}

	return tokens
}

func TestClassifyCategories(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		long string
		want parity.Category
	}{
		"delete":           {long: "delete", want: parity.CategoryDeletion},
		"max-delete":       {long: "max-delete", want: parity.CategoryDeletion},
		"recursive":        {long: "recursive", want: parity.CategoryTraversal},
		"copy-links":       {long: "copy-links", want: parity.CategoryTraversal},
		"perms":            {long: "perms", want: parity.CategoryMetadata},
		"times":            {long: "times", want: parity.CategoryMetadata},
		"compress":         {long: "compress", want: parity.CategoryTransfer},
		"checksum":         {long: "checksum", want: parity.CategoryTransfer},
		"exclude-from":     {long: "exclude-from", want: parity.CategoryFilters},
		"daemon":           {long: "daemon", want: parity.CategoryDaemon},
		"timeout":          {long: "timeout", want: parity.CategoryConnection},
		"verbose":          {long: "verbose", want: parity.CategoryLogging},
		"foo-unrelated":    {long: "foo-unrelated", want: parity.CategoryGeneral},
		"no prefix strips": {long: "no-whole-file", want: parity.CategoryTransfer},
		"short only":       {long: "", want: parity.CategoryGeneral},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			entry := parity.Entry{Long: tc.long, Short: "x", ArgInfo: "POPT_ARG_NONE", ArgPtr: "0", Value: "0"}
			records := parity.Classify([]parity.Entry{entry}, nil, helpWith(nil, nil))

			require.Len(t, records, 1)
			assert.Equal(t, tc.want, records[0].Category)
		})
	}
}

func TestClassifyCategoryPriorityFirstMatchWins(t *testing.T) {
	t.Parallel()

	// "delete-excluded" contains both a deletion and a filters keyword;
	// deletion is tested first.
	entry := parity.Entry{Long: "delete-excluded", ArgInfo: "POPT_ARG_NONE", ArgPtr: "0", Value: "0"}
	records := parity.Classify([]parity.Entry{entry}, nil, helpWith(nil, nil))

	require.Len(t, records, 1)
	assert.Equal(t, parity.CategoryDeletion, records[0].Category)
}

func TestClassifyIdentifier(t *testing.T) {
	t.Parallel()

	entries := []parity.Entry{
		{Long: "checksum", Short: "c", ArgInfo: "POPT_ARG_NONE", ArgPtr: "0", Value: "0"},
		{Short: "F", ArgInfo: "POPT_ARG_NONE", ArgPtr: "0", Value: "'F'"},
	}

	records := parity.Classify(entries, nil, helpWith(nil, nil))

	require.Len(t, records, 2)
	assert.Equal(t, "--checksum", records[0].Option)
	assert.Equal(t, "c", records[0].Short)
	assert.Equal(t, "-F (short-only)", records[1].Option)
	assert.Equal(t, "F", records[1].Short)
}

func TestClassifyStatus(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		entry  parity.Entry
		longs  []string
		shorts []string
		want   parity.Status
	}{
		"long present": {
			entry: parity.Entry{Long: "checksum", Short: "c", ArgInfo: "POPT_ARG_NONE", ArgPtr: "0", Value: "0"},
			longs: []string{"checksum"},
			want:  parity.StatusImplemented,
		},
		"short present only": {
			entry:  parity.Entry{Long: "checksum", Short: "c", ArgInfo: "POPT_ARG_NONE", ArgPtr: "0", Value: "0"},
			shorts: []string{"c"},
			want:   parity.StatusImplemented,
		},
		"both absent": {
			entry: parity.Entry{Long: "checksum", Short: "c", ArgInfo: "POPT_ARG_NONE", ArgPtr: "0", Value: "0"},
			want:  parity.StatusMissing,
		},
		"short-only entry present": {
			entry:  parity.Entry{Short: "P", ArgInfo: "POPT_ARG_NONE", ArgPtr: "0", Value: "0"},
			shorts: []string{"P"},
			want:   parity.StatusImplemented,
		},
		"short-only entry absent": {
			entry: parity.Entry{Short: "P", ArgInfo: "POPT_ARG_NONE", ArgPtr: "0", Value: "0"},
			want:  parity.StatusMissing,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			records := parity.Classify([]parity.Entry{tc.entry}, nil, helpWith(tc.longs, tc.shorts))

			require.Len(t, records, 1)
			assert.Equal(t, tc.want, records[0].Status)
		})
	}
}

func TestClassifyUpstreamDefault(t *testing.T) {
	t.Parallel()

	defaults := parity.DefaultsMap{
		"preserve_times": "0",
		"human_readable": "1",
		"whole_file":     "-1",
		"verbose_level":  "2",
	}

	tcs := map[string]struct {
		argPtr string
		value  string
		want   string
	}{
		"callback target": {
			argPtr: "0",
			value:  "'v'",
			want:   "n/a",
		},
		"variable absent from defaults": {
			argPtr: "&unknown_var",
			value:  "0",
			want:   "n/a",
		},
		"zero value zero default": {
			argPtr: "&preserve_times",
			value:  "0",
			want:   "disabled by default",
		},
		"zero value nonzero default": {
			argPtr: "&human_readable",
			value:  "0",
			want:   "enabled by default (1)",
		},
		"zero value negative default": {
			argPtr: "&whole_file",
			value:  "0",
			want:   "enabled by default (-1)",
		},
		"nonzero value zero default": {
			argPtr: "&preserve_times",
			value:  "1",
			want:   "disabled by default",
		},
		"nonzero value nonzero default": {
			argPtr: "&verbose_level",
			value:  "1",
			want:   "default 2",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			entry := parity.Entry{Long: "x", ArgInfo: "POPT_ARG_VAL", ArgPtr: tc.argPtr, Value: tc.value}
			records := parity.Classify([]parity.Entry{entry}, defaults, helpWith(nil, nil))

			require.Len(t, records, 1)
			assert.Equal(t, tc.want, records[0].UpstreamDefault)
		})
	}
}

func TestClassifyNotes(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		long string
		want string
	}{
		"negation": {
			long: "no-whole-file",
			want: "Negates the corresponding positive option.",
		},
		"alias": {
			long: "del",
			want: "Alias maintained for compatibility.",
		},
		"negation and alias": {
			long: "no-old-dirs",
			want: "Negates the corresponding positive option.",
		},
		"plain option": {
			long: "checksum",
			want: "",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			entry := parity.Entry{Long: tc.long, ArgInfo: "POPT_ARG_NONE", ArgPtr: "0", Value: "0"}
			records := parity.Classify([]parity.Entry{entry}, nil, helpWith(nil, nil))

			require.Len(t, records, 1)
			assert.Equal(t, tc.want, records[0].Notes)
		})
	}
}

func TestClassifyAliasSetIsClosed(t *testing.T) {
	t.Parallel()

	entries := []parity.Entry{
		{Long: "old-compress", ArgInfo: "POPT_ARG_NONE", ArgPtr: "0", Value: "0"},
		{Long: "old-compressor", ArgInfo: "POPT_ARG_NONE", ArgPtr: "0", Value: "0"},
	}
	records := parity.Classify(entries, nil, helpWith(nil, nil))

	require.Len(t, records, 2)
	assert.Equal(t, "Alias maintained for compatibility.", records[0].Notes)
	// Membership is exact, not prefix-based.
	assert.Empty(t, records[1].Notes)
}

func TestClassifyDeterministic(t *testing.T) {
	t.Parallel()

	entries := []parity.Entry{
		{Long: "checksum", Short: "c", ArgInfo: "POPT_ARG_NONE", ArgPtr: "&always_checksum", Value: "0"},
		{Long: "no-whole-file", ArgInfo: "POPT_ARG_VAL", ArgPtr: "&whole_file", Value: "0"},
		{Short: "P", ArgInfo: "POPT_ARG_NONE", ArgPtr: "0", Value: "0"},
	}
	defaults := parity.DefaultsMap{"always_checksum": "0", "whole_file": "-1"}
	help := helpWith([]string{"checksum"}, []string{"P"})

	first := parity.Classify(entries, defaults, help)
	second := parity.Classify(entries, defaults, help)

	assert.Equal(t, first, second)

	// Byte-identical renderings, not just structural equality.
	var bufA, bufB bytes.Buffer
	require.NoError(t, parity.RenderYAML(&bufA, first))
	require.NoError(t, parity.RenderYAML(&bufB, second))
	assert.Equal(t, bufA.String(), bufB.String())
}
