package tailer

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLastLines(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the last N lines", func(t *testing.T) {
		f := newFakeSource("f", "a\nb\nc\nd\n")
		lines, err := LastLines(ctx, f, 2)
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "d"}, lines)
	})

	t.Run("returns every line when N exceeds the file", func(t *testing.T) {
		f := newFakeSource("f", "a\nb\nc\nd\n")
		lines, err := LastLines(ctx, f, 10)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c", "d"}, lines)
	})

	t.Run("handles a file without trailing newline", func(t *testing.T) {
		f := newFakeSource("f", "a\nb\nc")
		lines, err := LastLines(ctx, f, 2)
		require.NoError(t, err)
		assert.Equal(t, []string{"b", "c"}, lines)
	})

	t.Run("leaves the cursor at the observed size", func(t *testing.T) {
		f := newFakeSource("f", "a\nb\nc\nd\n")
		_, err := LastLines(ctx, f, 2)
		require.NoError(t, err)
		assert.EqualValues(t, 8, f.cursor)
	})

	t.Run("widens the window for lines longer than the estimate", func(t *testing.T) {
		// Two lines of 300 bytes each: the initial 200-byte window for N=1
		// holds no newline, so the window must grow until one appears.
		first := strings.Repeat("A", 300)
		second := strings.Repeat("B", 300)
		f := newFakeSource("f", first+"\n"+second+"\n")

		lines, err := LastLines(ctx, f, 1)
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, second, lines[0])
	})

	t.Run("terminates when N is far larger than the file", func(t *testing.T) {
		f := newFakeSource("f", "only\n")
		lines, err := LastLines(ctx, f, 1000000)
		require.NoError(t, err)
		assert.Equal(t, []string{"only"}, lines)
	})

	t.Run("single long line larger than any window", func(t *testing.T) {
		line := strings.Repeat("x", 5000)
		f := newFakeSource("f", line+"\n")
		lines, err := LastLines(ctx, f, 1)
		require.NoError(t, err)
		assert.Equal(t, []string{line}, lines)
	})
}

func TestReadRest(t *testing.T) {
	ctx := context.Background()

	t.Run("returns lines appended since the cursor", func(t *testing.T) {
		f := newFakeSource("f", "old\n")
		_, err := LastLines(ctx, f, 10)
		require.NoError(t, err)

		f.grow("new-1\nnew-2\n")
		lines, err := ReadRest(ctx, f)
		require.NoError(t, err)
		assert.Equal(t, []string{"new-1", "new-2"}, lines)
	})

	t.Run("no growth yields no lines", func(t *testing.T) {
		f := newFakeSource("f", "old\n")
		_, err := LastLines(ctx, f, 10)
		require.NoError(t, err)

		lines, err := ReadRest(ctx, f)
		require.NoError(t, err)
		assert.Empty(t, lines)
	})

	t.Run("consecutive calls only see data once", func(t *testing.T) {
		f := newFakeSource("f", "")
		f.grow("a\n")
		lines, err := ReadRest(ctx, f)
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, lines)

		lines, err = ReadRest(ctx, f)
		require.NoError(t, err)
		assert.Empty(t, lines)
	})
}

func TestStripTrailingNewline(t *testing.T) {
	assert.Equal(t, "a\nb", stripTrailingNewline("a\nb\n"))
	assert.Equal(t, "a\nb", stripTrailingNewline("a\nb"))
	assert.Equal(t, "", stripTrailingNewline(""))
	// Only a single trailing newline is removed.
	assert.Equal(t, "a\n", stripTrailingNewline("a\n\n"))
}
