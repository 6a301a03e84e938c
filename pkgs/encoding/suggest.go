package encoding

import (
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// maxSuggestDistance is the largest edit distance still offered as a
// suggestion when no candidate contains the input as a subsequence.
const maxSuggestDistance = 2

// SuggestFormat finds the closest candidate to a mistyped format name.
// It returns "" when nothing is close.
func SuggestFormat(target string, candidates []string) string {
	if len(candidates) == 0 || target == "" {
		return ""
	}

	// Abbreviations ("ym" -> "yaml") rank by fuzzy subsequence match
	if ranks := fuzzy.RankFindFold(target, candidates); len(ranks) > 0 {
		best := ranks[0]
		for _, r := range ranks[1:] {
			if r.Distance < best.Distance {
				best = r
			}
		}
		return best.Target
	}

	// Transpositions and typos ("jsno" -> "json") fall back to edit distance
	best, bestDist := "", maxSuggestDistance+1
	for _, c := range candidates {
		if d := fuzzy.LevenshteinDistance(target, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
