package match

import "strings"

// FallbackThreshold is the score below which a lookup is considered low
// confidence and a description-based fallback search is offered.
const FallbackThreshold = 0.35

// Similarity scores how alike two strings are, in [0, 1].
//
// The measure is the Dice coefficient over character bigram multisets:
// 2·|intersection| / (|bigrams(a)| + |bigrams(b)|), where the intersection
// counts each shared bigram up to its minimum multiplicity in both strings.
// This is the canonical scorer for the whole ranking pipeline; see [Jaccard]
// for the coarser word-level alternative.
//
// Both inputs are lowercased and trimmed first, so case and surrounding
// whitespace never affect the score. Either input being empty scores 0.
func Similarity(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))

	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}

	ba := bigrams(a)
	bb := bigrams(b)

	na, nb := 0, 0
	for _, n := range ba {
		na += n
	}
	for _, n := range bb {
		nb += n
	}
	if na+nb == 0 {
		return 0
	}

	overlap := 0
	for gram, n := range ba {
		if m, ok := bb[gram]; ok {
			if m < n {
				overlap += m
			} else {
				overlap += n
			}
		}
	}

	return 2 * float64(overlap) / float64(na+nb)
}

// bigrams returns the multiset of overlapping 2-character substrings of s.
// Repeated bigrams matter, so counts are kept rather than a set.
func bigrams(s string) map[string]int {
	grams := make(map[string]int)
	runes := []rune(s)
	for i := 0; i+1 < len(runes); i++ {
		grams[string(runes[i:i+2])]++
	}
	return grams
}

// Jaccard scores word-set overlap between two strings, in [0, 1]:
// |intersection| / |union| over whitespace-separated lowercased tokens,
// ignoring frequency.
//
// This is the earlier, coarser measure kept for callers that want word-level
// comparison; the lookup pipeline ranks exclusively with [Similarity].
func Jaccard(a, b string) float64 {
	wa := tokenSet(a)
	wb := tokenSet(b)

	if len(wa) == 0 || len(wb) == 0 {
		return 0
	}

	inter := 0
	for w := range wa {
		if _, ok := wb[w]; ok {
			inter++
		}
	}

	union := len(wa) + len(wb) - inter
	return float64(inter) / float64(union)
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(s)) {
		set[w] = struct{}{}
	}
	return set
}
