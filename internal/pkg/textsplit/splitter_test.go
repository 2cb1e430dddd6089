package textsplit

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitShortTextIsIdentity(t *testing.T) {
	s := Default()

	text := "Fix the login form validation.\n\nIt currently accepts empty passwords."
	chunks := s.Split(text)

	require.Len(t, chunks, 1)
	assert.Equal(t, text, chunks[0])
}

func TestSplitIsIdempotentOnOwnOutput(t *testing.T) {
	s := New(50, 10)

	text := strings.Repeat("Each sentence talks about a different feature. ", 20)
	chunks := s.Split(text)
	require.NotEmpty(t, chunks)

	for _, c := range chunks {
		again := s.Split(c)
		require.Len(t, again, 1, "re-chunking an in-limit chunk must be stable")
		assert.Equal(t, c, again[0])
	}
}

func TestSplitRespectsSizeLimit(t *testing.T) {
	s := New(100, 20)

	text := strings.Repeat("word ", 500)
	for _, c := range s.Split(text) {
		assert.LessOrEqual(t, utf8.RuneCountInString(c), 100)
		assert.NotEmpty(t, strings.TrimSpace(c))
	}
}

func TestSplitPrefersParagraphBoundaries(t *testing.T) {
	s := New(60, 0)

	text := "First paragraph stays whole.\n\nSecond paragraph stays whole too."
	chunks := s.Split(text)

	require.Len(t, chunks, 2)
	assert.Equal(t, "First paragraph stays whole.", chunks[0])
	assert.Equal(t, "Second paragraph stays whole too.", chunks[1])
}

func TestSplitOverlapsConsecutiveWindows(t *testing.T) {
	s := New(40, 15)

	var b strings.Builder
	for i := 0; i < 60; i++ {
		fmt.Fprintf(&b, "t%02d ", i)
	}
	chunks := s.Split(b.String())
	require.Greater(t, len(chunks), 1)

	for i := 1; i < len(chunks); i++ {
		firstWord := strings.Fields(chunks[i])[0]
		assert.Contains(t, chunks[i-1], firstWord,
			"chunk %d should reuse the tail of chunk %d", i, i-1)
	}
}

func TestSplitHardCutsUnbrokenText(t *testing.T) {
	s := New(30, 5)

	text := strings.Repeat("x", 100)
	chunks := s.Split(text)

	require.NotEmpty(t, chunks)
	for _, c := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(c), 30)
	}
	// The cut windows must still cover the input end to end.
	assert.True(t, strings.HasSuffix(text, chunks[len(chunks)-1]))
}

func TestSplitIsDeterministic(t *testing.T) {
	s := Default()

	text := strings.Repeat("Some issue description with details.\n", 100)
	first := s.Split(text)
	second := s.Split(text)

	assert.Equal(t, first, second)
}

func TestSplitEmptyInput(t *testing.T) {
	assert.Nil(t, Default().Split(""))
	assert.Nil(t, Default().Split("   \n\n  "))
}
