package chunker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanNormalizesWhitespace(t *testing.T) {
	in := "a  \t b\r\nc\n\n\n \td"
	out := Clean(in)
	assert.Equal(t, "a b\nc\n\nd", out)
}

func TestCleanTrims(t *testing.T) {
	assert.Equal(t, "", Clean("  \n \t "))
	assert.Equal(t, "x", Clean("\n x \n"))
}

func TestSplitEmptyInput(t *testing.T) {
	c := NewTokenChunker(150, 10, "cl100k_base")
	chunks, err := c.Split("   \n  ")
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestNewTokenChunkerSanitizesArguments(t *testing.T) {
	// Invalid sizes fall back to defaults rather than panicking later.
	c := NewTokenChunker(0, -5, "")
	require.NotNil(t, c)
	chunks, err := c.Split("")
	require.NoError(t, err)
	assert.Empty(t, chunks)
}
