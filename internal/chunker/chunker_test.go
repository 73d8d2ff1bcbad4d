package chunker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docuchat-labs/docuchat/internal/core/domain"
)

func TestSplit_BlankLineBoundaries(t *testing.T) {
	c := New()

	chunks, err := c.Split("First paragraph.\n\nSecond paragraph.\n\nThird.")
	require.NoError(t, err)

	require.Len(t, chunks, 3)
	assert.Equal(t, "First paragraph.", chunks[0])
	assert.Equal(t, "Second paragraph.", chunks[1])
	assert.Equal(t, "Third.", chunks[2])
}

func TestSplit_PreservesOrderAndDropsWhitespaceOnly(t *testing.T) {
	c := New()

	chunks, err := c.Split("alpha\n\n   \n\n\t\n\nbeta\n\n\n\ngamma")
	require.NoError(t, err)

	// Whitespace-only segments are dropped, relative order is preserved.
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, chunks)
}

func TestSplit_TrimsSurroundingWhitespace(t *testing.T) {
	c := New()

	chunks, err := c.Split("  padded text \n\n\tindented\n")
	require.NoError(t, err)

	assert.Equal(t, []string{"padded text", "indented"}, chunks)
}

func TestSplit_SingleParagraph(t *testing.T) {
	c := New()

	chunks, err := c.Split("just one block of text\nwith an inner newline")
	require.NoError(t, err)

	require.Len(t, chunks, 1)
	assert.Equal(t, "just one block of text\nwith an inner newline", chunks[0])
}

func TestSplit_EmptyInput(t *testing.T) {
	c := New()

	for _, input := range []string{"", "   ", "\n\n", " \n\n \t \n\n "} {
		_, err := c.Split(input)
		assert.ErrorIs(t, err, domain.ErrEmptyDocument, "input %q", input)
	}
}

func TestSplit_Deterministic(t *testing.T) {
	c := New()
	input := "one\n\ntwo\n\nthree"

	first, err := c.Split(input)
	require.NoError(t, err)
	second, err := c.Split(input)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
