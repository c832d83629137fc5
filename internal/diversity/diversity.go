// Package diversity selects a bounded subset of a ranked list while capping
// how many entries may share one director or genre tag. The caps keep
// recommendation lists from collapsing onto a single filmmaker or genre.
package diversity

import "strings"

// Entry carries the metadata the filter inspects for one candidate.
type Entry struct {
	Director string
	Genres   []string
}

// HasMetadata reports whether the entry carries anything the caps apply to.
func (e Entry) HasMetadata() bool {
	return strings.TrimSpace(e.Director) != "" || len(e.Genres) > 0
}

// Options controls a selection run.
type Options struct {
	TargetCount int
	DirectorCap int
	GenreCap    int
}

// Default caps tuned for a twenty-item recommendation list.
const (
	DefaultDirectorCap = 2
	DefaultGenreCap    = 3
)

func (o Options) normalized() Options {
	if o.DirectorCap <= 0 {
		o.DirectorCap = DefaultDirectorCap
	}
	if o.GenreCap <= 0 {
		o.GenreCap = DefaultGenreCap
	}
	return o
}

// SelectIndices runs a single left-to-right pass over the entries and
// returns the indices of the admitted ones, in input order. An entry is
// admitted while the selection is below TargetCount, its director is below
// the director cap, and every one of its genres is below the genre cap.
// Entries rejected by a cap queue up in input order and fill remaining
// slots, caps ignored, only when the primary pass cannot reach the target.
//
// When no entry carries director or genre metadata the caps do not apply
// and the first TargetCount indices are returned unchanged.
func SelectIndices(entries []Entry, opts Options) []int {
	opts = opts.normalized()
	if opts.TargetCount <= 0 || len(entries) == 0 {
		return nil
	}

	structured := false
	for _, entry := range entries {
		if entry.HasMetadata() {
			structured = true
			break
		}
	}
	if !structured {
		count := min(opts.TargetCount, len(entries))
		selected := make([]int, count)
		for i := range selected {
			selected[i] = i
		}
		return selected
	}

	directorCounts := make(map[string]int)
	genreCounts := make(map[string]int)
	selected := make([]int, 0, opts.TargetCount)
	var overflow []int

	for i, entry := range entries {
		if len(selected) >= opts.TargetCount {
			break
		}
		if !admissible(entry, directorCounts, genreCounts, opts) {
			overflow = append(overflow, i)
			continue
		}
		selected = append(selected, i)
		admit(entry, directorCounts, genreCounts)
	}

	for _, i := range overflow {
		if len(selected) >= opts.TargetCount {
			break
		}
		selected = append(selected, i)
	}
	return selected
}

func admissible(entry Entry, directors, genres map[string]int, opts Options) bool {
	if key := directorKey(entry.Director); key != "" && directors[key] >= opts.DirectorCap {
		return false
	}
	for _, genre := range entry.Genres {
		if key := genreKey(genre); key != "" && genres[key] >= opts.GenreCap {
			return false
		}
	}
	return true
}

func admit(entry Entry, directors, genres map[string]int) {
	if key := directorKey(entry.Director); key != "" {
		directors[key]++
	}
	for _, genre := range entry.Genres {
		if key := genreKey(genre); key != "" {
			genres[key]++
		}
	}
}

func directorKey(director string) string {
	return strings.ToLower(strings.TrimSpace(director))
}

func genreKey(genre string) string {
	return strings.ToLower(strings.TrimSpace(genre))
}
