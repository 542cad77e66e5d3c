package foodparse

import (
	"math"
	"testing"
)

func TestSimilarity(t *testing.T) {
	t.Run("ExactMatchCaseInsensitive", func(t *testing.T) {
		if got := Similarity("chicken breast", "Chicken Breast"); got != 1.0 {
			t.Errorf("Expected 1.0, got %g", got)
		}
	})

	t.Run("QueryContainedInName", func(t *testing.T) {
		if got := Similarity("chicken", "grilled chicken breast"); got != 0.9 {
			t.Errorf("Expected 0.9, got %g", got)
		}
	})

	t.Run("NameContainedInQuery", func(t *testing.T) {
		if got := Similarity("grilled chicken breast", "chicken"); got != 0.8 {
			t.Errorf("Expected 0.8, got %g", got)
		}
	})

	t.Run("WordOverlap", func(t *testing.T) {
		// "rice" overlaps, "chicken" does not: 1 of max(2,2) words.
		if got := Similarity("chicken rice", "rice bowl"); got != 0.5 {
			t.Errorf("Expected 0.5, got %g", got)
		}
	})

	t.Run("WordOverlapSubstringWords", func(t *testing.T) {
		// "egg" is a substring of "eggs", so the words overlap even though
		// neither full string contains the other.
		got := Similarity("eggs", "egg whites")
		if got != 0.5 {
			t.Errorf("Expected 0.5, got %g", got)
		}
	})

	t.Run("UnrelatedBelowThreshold", func(t *testing.T) {
		if got := Similarity("xyz123", "chicken"); got >= 0.3 {
			t.Errorf("Expected score below 0.3, got %g", got)
		}
	})

	t.Run("DiceFallback", func(t *testing.T) {
		// Neither word contains the other, so only the shared "ab" bigram
		// contributes.
		got := Similarity("abxy", "abzq")
		// bigrams: {ab,bx,xy} vs {ab,bz,zq}, intersection 1 → 2/6.
		want := 2.0 / 6.0
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("Expected %g, got %g", want, got)
		}
	})

	t.Run("ScoreRange", func(t *testing.T) {
		pairs := [][2]string{
			{"a", "b"}, {"chicken", "chickpea"}, {"oat", "oatmeal"},
			{"", "x"}, {"", ""},
		}
		for _, p := range pairs {
			got := Similarity(p[0], p[1])
			if got < 0 || got > 1 {
				t.Errorf("Similarity(%q, %q) = %g, out of [0,1]", p[0], p[1], got)
			}
		}
	})
}
