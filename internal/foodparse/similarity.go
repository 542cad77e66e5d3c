package foodparse

import "strings"

// Similarity scores how alike two food names are, in [0,1], case-insensitive.
//
// Tiers, first hit wins:
//  1. exact match → 1.0
//  2. containment → 0.9 when b contains a, 0.8 when a contains b. The
//     asymmetry is deliberate: a query inside a longer catalog name is a
//     stronger signal than the reverse.
//  3. word overlap → matched words / max word count, whenever at least one
//     word of a overlaps (substring either direction) a word of b.
//  4. character-bigram Dice coefficient as the fallback.
func Similarity(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)

	if a == b {
		return 1
	}

	if strings.Contains(b, a) {
		return 0.9
	}
	if strings.Contains(a, b) {
		return 0.8
	}

	wordsA := strings.Fields(a)
	wordsB := strings.Fields(b)

	matched := 0
	for _, wa := range wordsA {
		for _, wb := range wordsB {
			if strings.Contains(wb, wa) || strings.Contains(wa, wb) {
				matched++
				break
			}
		}
	}
	if matched > 0 {
		denom := len(wordsA)
		if len(wordsB) > denom {
			denom = len(wordsB)
		}
		return float64(matched) / float64(denom)
	}

	return diceCoefficient(a, b)
}

// diceCoefficient computes 2·|A∩B| / (|A|+|B|) over overlapping 2-character
// windows. The intersection keeps multiplicity from a's bigram list against
// membership in b's.
func diceCoefficient(a, b string) float64 {
	bigramsA := bigrams(a)
	bigramsB := bigrams(b)

	if len(bigramsA)+len(bigramsB) == 0 {
		return 0
	}

	inB := make(map[string]bool, len(bigramsB))
	for _, g := range bigramsB {
		inB[g] = true
	}

	intersection := 0
	for _, g := range bigramsA {
		if inB[g] {
			intersection++
		}
	}

	return 2 * float64(intersection) / float64(len(bigramsA)+len(bigramsB))
}

func bigrams(s string) []string {
	var grams []string
	for i := 0; i+1 < len(s); i++ {
		grams = append(grams, s[i:i+2])
	}
	return grams
}
