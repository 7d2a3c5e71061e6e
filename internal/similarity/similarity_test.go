package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	kw := Tokenize("Senior Go Developer, with C++ and node.js experience")

	assert.True(t, kw["senior"])
	assert.True(t, kw["go"])
	assert.True(t, kw["c++"])
	assert.True(t, kw["node.js"])
	assert.False(t, kw["with"], "stop word kept")
	assert.False(t, kw["and"], "stop word kept")
}

func TestTokenizeTrailingDot(t *testing.T) {
	kw := Tokenize("Experience with Go.")
	assert.True(t, kw["go"])
	assert.False(t, kw["go."])
}

func TestJaccard(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "backend engineer", "backend engineer", 1.0},
		{"reordered", "engineer backend", "backend engineer", 1.0},
		{"disjoint", "backend engineer", "delivery driver", 0.0},
		{"both empty", "", "", 1.0},
		{"half overlap", "go backend", "go frontend", 1.0 / 3.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Jaccard(tt.a, tt.b), 1e-9)
		})
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"engineer", "enginer", 1},
		{"flaw", "lawn", 2},
		{"héllo", "hello", 1}, // rune-level, not byte-level
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Levenshtein(tt.a, tt.b), "%q vs %q", tt.a, tt.b)
	}
}

func TestLevenshteinRatio(t *testing.T) {
	assert.Equal(t, 1.0, LevenshteinRatio("", ""))
	assert.Equal(t, 1.0, LevenshteinRatio("same", "same"))
	assert.Equal(t, 0.0, LevenshteinRatio("abcd", "wxyz"))
	assert.InDelta(t, 0.875, LevenshteinRatio("engineer", "enginer"), 1e-9)
}

func TestFieldSimilarity(t *testing.T) {
	// Reordering: Jaccard wins where Levenshtein is poor.
	reordered := FieldSimilarity("backend engineer go", "go backend engineer")
	assert.Equal(t, 1.0, reordered)

	// Typos: Levenshtein wins where token sets diverge.
	typo := FieldSimilarity("acme corp", "acme crop")
	assert.Greater(t, typo, 0.7)

	// Unrelated strings stay low.
	assert.Less(t, FieldSimilarity("google", "bakery on main street"), 0.3)
}
