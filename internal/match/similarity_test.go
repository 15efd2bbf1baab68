package match

import (
	"math"
	"testing"
)

func TestSimilarity(t *testing.T) {
	t.Run("Identical Strings", func(t *testing.T) {
		for _, s := range []string{"a", "night", "Rick Astley - Never Gonna Give You Up"} {
			if got := Similarity(s, s); got != 1 {
				t.Errorf("Similarity(%q, %q) = %v, want 1", s, s, got)
			}
		}
	})

	t.Run("Empty Input", func(t *testing.T) {
		if got := Similarity("", "anything"); got != 0 {
			t.Errorf("expected 0 for empty input, got %v", got)
		}
		if got := Similarity("anything", "   "); got != 0 {
			t.Errorf("expected 0 for blank input, got %v", got)
		}
	})

	t.Run("Symmetry", func(t *testing.T) {
		pairs := [][2]string{
			{"night", "nacht"},
			{"Never Gonna Give You Up", "Never Gonna Give You Up (Official Video)"},
			{"abc", "xyz"},
		}
		for _, p := range pairs {
			ab := Similarity(p[0], p[1])
			ba := Similarity(p[1], p[0])
			if math.Abs(ab-ba) > 1e-12 {
				t.Errorf("Similarity(%q, %q) = %v but reversed = %v", p[0], p[1], ab, ba)
			}
		}
	})

	t.Run("Case And Whitespace Insensitive", func(t *testing.T) {
		if got := Similarity("Never Gonna", "  never gonna "); got != 1 {
			t.Errorf("expected 1 for case/whitespace variants, got %v", got)
		}
	})

	t.Run("Known Value", func(t *testing.T) {
		// night/nacht share only the bigram "ht": 2*1/(4+4) = 0.25
		if got := Similarity("night", "nacht"); math.Abs(got-0.25) > 1e-12 {
			t.Errorf("Similarity(night, nacht) = %v, want 0.25", got)
		}
	})

	t.Run("Repeated Bigrams Counted", func(t *testing.T) {
		// "aaa" has bigrams {aa, aa}; "aa" has {aa}. Overlap is min(2,1)=1.
		got := Similarity("aaa", "aa")
		want := 2.0 * 1 / (2 + 1)
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("Similarity(aaa, aa) = %v, want %v", got, want)
		}
	})

	t.Run("Official Video Suffix Scores High", func(t *testing.T) {
		a := "Rick Astley - Never Gonna Give You Up"
		b := a + " (Official Video)"
		if got := Similarity(a, b); got <= 0.5 {
			t.Errorf("near-duplicate with suffix scored %v, want > 0.5", got)
		}
	})

	t.Run("Unrelated Strings Score Low", func(t *testing.T) {
		if got := Similarity("Bohemian Rhapsody", "xqzw vlkj"); got >= FallbackThreshold {
			t.Errorf("unrelated strings scored %v, want < %v", got, FallbackThreshold)
		}
	})
}

func TestJaccard(t *testing.T) {
	t.Run("Identical", func(t *testing.T) {
		if got := Jaccard("never gonna give", "never gonna give"); got != 1 {
			t.Errorf("expected 1, got %v", got)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		if got := Jaccard("", "words here"); got != 0 {
			t.Errorf("expected 0, got %v", got)
		}
	})

	t.Run("Partial Overlap", func(t *testing.T) {
		// {never, gonna} vs {never, ever}: intersection 1, union 3
		got := Jaccard("never gonna", "never ever")
		if math.Abs(got-1.0/3.0) > 1e-12 {
			t.Errorf("expected 1/3, got %v", got)
		}
	})

	t.Run("Frequency Ignored", func(t *testing.T) {
		if got := Jaccard("la la la", "la"); got != 1 {
			t.Errorf("expected 1 ignoring frequency, got %v", got)
		}
	})
}
