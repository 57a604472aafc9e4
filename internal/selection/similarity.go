package selection

import (
	"math"
	"strings"
	"unicode"
)

// textSimilarity computes cosine similarity between TF-IDF vectors of
// the two texts (unigrams + bigrams, smoothed IDF over the two-document
// corpus). Degenerate input where no terms survive tokenization falls
// back to word-overlap Jaccard, which itself yields 0 on empty sets.
func textSimilarity(a, b string) float64 {
	ta := ngrams(a)
	tb := ngrams(b)
	if len(ta) == 0 || len(tb) == 0 {
		return jaccard(a, b)
	}

	ca := termCounts(ta)
	cb := termCounts(tb)

	var dot, na, nb float64
	for term, fa := range ca {
		wa := fa * idf(term, ca, cb)
		na += wa * wa
		if fb, ok := cb[term]; ok {
			dot += wa * fb * idf(term, ca, cb)
		}
	}
	for term, fb := range cb {
		wb := fb * idf(term, ca, cb)
		nb += wb * wb
	}
	if na == 0 || nb == 0 {
		return jaccard(a, b)
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// idf is the smoothed inverse document frequency over the 2-doc corpus.
func idf(term string, ca, cb map[string]float64) float64 {
	df := 0
	if _, ok := ca[term]; ok {
		df++
	}
	if _, ok := cb[term]; ok {
		df++
	}
	return math.Log(3.0/float64(df+1)) + 1
}

func termCounts(terms []string) map[string]float64 {
	counts := make(map[string]float64, len(terms))
	for _, t := range terms {
		counts[t]++
	}
	return counts
}

// ngrams returns lower-cased unigrams plus adjacent bigrams.
func ngrams(text string) []string {
	words := tokenize(text)
	terms := make([]string, 0, len(words)*2)
	terms = append(terms, words...)
	for i := 0; i+1 < len(words); i++ {
		terms = append(terms, words[i]+" "+words[i+1])
	}
	return terms
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// jaccard computes word-set overlap: |A∩B| / |A∪B|.
func jaccard(a, b string) float64 {
	wa := tokenize(a)
	wb := tokenize(b)
	if len(wa) == 0 || len(wb) == 0 {
		return 0
	}
	setA := map[string]bool{}
	for _, w := range wa {
		setA[w] = true
	}
	setB := map[string]bool{}
	for _, w := range wb {
		setB[w] = true
	}
	inter := 0
	for w := range setA {
		if setB[w] {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	return float64(inter) / float64(union)
}
