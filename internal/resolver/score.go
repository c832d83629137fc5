package resolver

import (
	"reelmatch/internal/services/tmdb"
	"reelmatch/internal/textutil"
	"reelmatch/internal/titles"
)

// yearMatchBonus is added to the similarity score when the candidate's
// release year equals the caller's year hint exactly.
const yearMatchBonus = 5

type scoredResult struct {
	result     tmdb.Result
	boosted    int
	similarity int
	popularity float64
}

func (s scoredResult) beats(other scoredResult) bool {
	if s.boosted != other.boosted {
		return s.boosted > other.boosted
	}
	if s.similarity != other.similarity {
		return s.similarity > other.similarity
	}
	return s.popularity > other.popularity
}

// pickBest ranks a search-result page against the query title and year hint
// and returns the top candidate. Ordering is by similarity plus year bonus,
// then raw similarity, then popularity. Returns false when the page is empty.
func pickBest(results []tmdb.Result, queryTitle string, yearHint int) (tmdb.Result, bool) {
	if len(results) == 0 {
		return tmdb.Result{}, false
	}
	queryNorm := titles.Normalize(queryTitle)
	best := scoreResult(results[0], queryNorm, yearHint)
	for _, candidate := range results[1:] {
		scored := scoreResult(candidate, queryNorm, yearHint)
		if scored.beats(best) {
			best = scored
		}
	}
	return best.result, true
}

func scoreResult(result tmdb.Result, queryNorm string, yearHint int) scoredResult {
	similarity := textutil.TokenSortRatio(queryNorm, titles.Normalize(result.DisplayTitle()))
	boosted := similarity
	if yearHint > 0 && result.Year() == yearHint {
		boosted += yearMatchBonus
	}
	return scoredResult{
		result:     result,
		boosted:    boosted,
		similarity: similarity,
		popularity: result.Popularity,
	}
}
