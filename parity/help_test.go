package parity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oferchen/rsync-parity/parity"
	"github.com/oferchen/rsync-parity/stringtest"
)

func TestScanHelpLongTokens(t *testing.T) {
	t.Parallel()

	text := stringtest.JoinLF(
		" -v, --verbose               increase verbosity",
		"     --info=FLAGS            fine-grained informational verbosity",
		" -c, --checksum              skip based on checksum, not mod-time & size",
		"     --no-whole-file         always use delta-transfer algorithm",
	)

	tokens := parity.ScanHelp(text)

	assert.True(t, tokens.HasLong("verbose"))
	assert.True(t, tokens.HasLong("info"))
	assert.True(t, tokens.HasLong("checksum"))
	assert.True(t, tokens.HasLong("no-whole-file"))
	assert.False(t, tokens.HasLong("compress"))
}

func TestScanHelpShortTokens(t *testing.T) {
	t.Parallel()

	tokens := parity.ScanHelp(" -v, --verbose\n -z, --compress\n")

	assert.True(t, tokens.HasShort("v"))
	assert.True(t, tokens.HasShort("z"))
	assert.False(t, tokens.HasShort("c"))
}

func TestScanHelpDuplicatesCollapse(t *testing.T) {
	t.Parallel()

	tokens := parity.ScanHelp("--delete --delete -v -v")

	assert.Len(t, tokens.Long, 1)
	// 'v' twice plus no others.
	assert.Equal(t, map[string]bool{"v": true}, tokens.Short)
}

// The short-token scan inspects only the character immediately preceding a
// dash. Dashed words inside a long option therefore register as shorts: this
// pins the exact (surprising) membership outcome rather than an idealized
// one, because status decisions for short-only options depend on it.
func TestScanHelpShortTokenAmbiguity(t *testing.T) {
	t.Parallel()

	tokens := parity.ScanHelp("     --no-whole-file         always use delta-transfer algorithm\n")

	// Spurious shorts contributed by the embedded dashes.
	assert.True(t, tokens.HasShort("w"))
	assert.True(t, tokens.HasShort("f"))
	// From "delta-transfer".
	assert.True(t, tokens.HasShort("t"))
	// No literal -W occurs anywhere in the text.
	assert.False(t, tokens.HasShort("W"))

	// The long token itself is still recovered whole.
	assert.True(t, tokens.HasLong("no-whole-file"))
}

func TestScanHelpEmptyText(t *testing.T) {
	t.Parallel()

	tokens := parity.ScanHelp("")

	assert.Empty(t, tokens.Long)
	assert.Empty(t, tokens.Short)
}
