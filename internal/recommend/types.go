package recommend

import (
	"reelmatch/internal/media"
	"reelmatch/internal/resolver"
)

// MediaItem is one candidate recommendation moving through the pipeline.
// CanonicalID is only ever populated by resolution in the current run;
// IDs arriving with upstream input are discarded before processing.
type MediaItem struct {
	Title       string     `json:"title"`
	Year        int        `json:"year,omitempty"`
	Director    string     `json:"director,omitempty"`
	Genres      []string   `json:"genres,omitempty"`
	Kind        media.Kind `json:"kind"`
	CanonicalID int64      `json:"canonical_id,omitempty"`
	PosterURL   string     `json:"poster_url,omitempty"`
	Available   bool       `json:"available"`
}

// Request is one reconciliation run over two ranked item classes.
type Request struct {
	Movies []MediaItem
	Shows  []MediaItem

	// WatchedMovies and WatchedShows are titles the user has already seen;
	// they are dropped from the available lists.
	WatchedMovies []string
	WatchedShows  []string

	TargetCount int
	DirectorCap int
	GenreCap    int
}

// ClassReport is the reconciliation outcome for one item class.
type ClassReport struct {
	// Ranked is the diversity-capped selection from the original ranked
	// input, in rank order, with IDs and availability filled in.
	Ranked []MediaItem `json:"ranked"`
	// Available and Unavailable partition Ranked; Available excludes
	// already-watched titles.
	Available   []MediaItem `json:"available"`
	Unavailable []MediaItem `json:"unavailable"`
	// Availability keys on the original input titles, every input item
	// present with a strict boolean.
	Availability map[string]bool `json:"availability"`
}

// Report is the full outcome of one Reconcile call.
type Report struct {
	RequestID string           `json:"request_id"`
	Movies    ClassReport      `json:"movies"`
	Shows     ClassReport      `json:"shows"`
	Events    []resolver.Event `json:"events,omitempty"`
}
