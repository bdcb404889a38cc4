package matching

// Jaccard computes the Jaccard index between two token sets.
// The metric is symmetric, bounded in [0,1], and monotonic: adding
// unrelated tokens to either side only grows the union, so the score
// never increases.
func Jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	intersection := 0
	for token := range a {
		if b[token] {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0.0
	}

	return float64(intersection) / float64(union)
}

// Similarity scores two question strings by the Jaccard index of their
// normalized token sets.
func Similarity(a, b string) float64 {
	return Jaccard(Tokens(a), Tokens(b))
}
