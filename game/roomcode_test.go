package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate_LengthAndAlphabet(t *testing.T) {
	t.Parallel()
	g := NewCodeGenerator()

	for i := 0; i < 100; i++ {
		code := g.Generate()
		assert.Len(t, code, roomCodeLength)
		for _, c := range code {
			assert.Contains(t, roomCodeAlphabet, string(c))
		}
	}
}

func TestGenerate_AlphabetExcludesAmbiguousCharacters(t *testing.T) {
	t.Parallel()
	for _, forbidden := range []string{"0", "O", "1", "I"} {
		assert.NotContains(t, roomCodeAlphabet, forbidden)
	}
}

func TestGenerate_CodesAreUniqueUntilDisposed(t *testing.T) {
	t.Parallel()
	g := NewCodeGenerator()

	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		code := g.Generate()
		assert.False(t, seen[code], "generator handed out %q twice", code)
		seen[code] = true
	}

	for code := range seen {
		g.Dispose(code)
	}
	assert.Empty(t, g.used)
}

func TestRandomCode_NeverEmpty(t *testing.T) {
	t.Parallel()
	code := randomCode()
	assert.Len(t, code, roomCodeLength)
	assert.Equal(t, strings.ToUpper(code), code)
}
