package tracking

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate_LengthAndAlphabet(t *testing.T) {
	g := NewGeneratorWithSeed(1)

	for i := 0; i < 200; i++ {
		code := g.Generate()

		assert.Len(t, code, 8)
		for _, ch := range code {
			assert.True(t, strings.ContainsRune(alphabet, ch), "unexpected char %q in %q", ch, code)
		}
		assert.Equal(t, strings.ToUpper(code), code)
	}
}

func TestGenerate_MostlyDistinct(t *testing.T) {
	g := NewGenerator()

	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		seen[g.Generate()] = struct{}{}
	}

	// 36^8通りあるので1000回で衝突はまず起きない
	assert.Equal(t, 1000, len(seen))
}

func TestGenerate_SeedIsReproducible(t *testing.T) {
	a := NewGeneratorWithSeed(42)
	b := NewGeneratorWithSeed(42)

	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Generate(), b.Generate())
	}
}
