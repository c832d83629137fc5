package recommend

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"reelmatch/internal/availability"
	"reelmatch/internal/media"
	"reelmatch/internal/services/tmdb"
)

type fakeResolver struct {
	mu  sync.Mutex
	ids map[string]int64
}

func (f *fakeResolver) Resolve(ctx context.Context, title string, yearHint int, kind media.Kind) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ids[title]
}

type fakeChecker struct {
	available map[string]bool
}

func (f *fakeChecker) Check(ctx context.Context, candidates []availability.Candidate, kind media.Kind) map[string]bool {
	result := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		result[c.Title] = f.available[c.Title]
	}
	return result
}

// idChecker marks a candidate available iff its resolved canonical ID is in
// the library set, mirroring the real ID-precedence matcher.
type idChecker struct {
	libraryIDs map[int64]struct{}
}

func (f *idChecker) Check(ctx context.Context, candidates []availability.Candidate, kind media.Kind) map[string]bool {
	result := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		_, ok := f.libraryIDs[c.CanonicalID]
		result[c.Title] = ok && c.CanonicalID > 0
	}
	return result
}

type fakeDetails struct {
	posters map[int64]string
}

func (f *fakeDetails) GetMovieDetails(ctx context.Context, id int64) (*tmdb.Result, error) {
	return &tmdb.Result{ID: id, PosterPath: f.posters[id]}, nil
}

func (f *fakeDetails) GetTVDetails(ctx context.Context, id int64) (*tmdb.Result, error) {
	return &tmdb.Result{ID: id, PosterPath: f.posters[id]}, nil
}

func TestReconcileSharedIDAcrossEditions(t *testing.T) {
	// The library holds the extended edition tagged with the same canonical
	// ID the catalog returns for the base title.
	o := New(
		&fakeResolver{ids: map[string]int64{"Lord of the Rings": 120}},
		&idChecker{libraryIDs: map[int64]struct{}{120: {}}},
		nil,
	)
	report, err := o.Reconcile(context.Background(), Request{
		Movies: []MediaItem{{Title: "Lord of the Rings", Year: 2001}},
	})
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if !report.Movies.Availability["Lord of the Rings"] {
		t.Error("expected availability true via shared canonical id")
	}
	if len(report.Movies.Available) != 1 {
		t.Errorf("available = %d, want 1", len(report.Movies.Available))
	}
	if report.RequestID == "" {
		t.Error("expected a request id")
	}
}

func TestReconcileDifferentIDsUnavailable(t *testing.T) {
	// Library holds only the sequel under a different canonical ID.
	o := New(
		&fakeResolver{ids: map[string]int64{"The Matrix": 603}},
		&idChecker{libraryIDs: map[int64]struct{}{604: {}}},
		nil,
	)
	report, err := o.Reconcile(context.Background(), Request{
		Movies: []MediaItem{{Title: "The Matrix", Year: 1999}},
	})
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if report.Movies.Availability["The Matrix"] {
		t.Error("expected availability false for different canonical ids")
	}
	if len(report.Movies.Unavailable) != 1 {
		t.Errorf("unavailable = %d, want 1", len(report.Movies.Unavailable))
	}
}

func TestReconcileDiversityCapOnRankedList(t *testing.T) {
	var movies []MediaItem
	for i := 0; i < 20; i++ {
		director := fmt.Sprintf("Director %d", i)
		if i < 5 {
			director = "X"
		}
		movies = append(movies, MediaItem{Title: fmt.Sprintf("Film %d", i), Director: director})
	}
	o := New(&fakeResolver{}, &fakeChecker{}, nil)
	report, err := o.Reconcile(context.Background(), Request{
		Movies:      movies,
		TargetCount: 20,
		DirectorCap: 2,
		GenreCap:    3,
	})
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	countX := 0
	primaryX := 0
	for i, item := range report.Movies.Ranked {
		if item.Director == "X" {
			countX++
			if i < 17 {
				primaryX++
			}
		}
	}
	// Twenty items, target twenty: primary pass admits two X films, the
	// three capped ones re-enter only via overflow fill at the tail.
	if primaryX > 2 {
		t.Errorf("primary selection has %d X films, cap is 2", primaryX)
	}
	if len(report.Movies.Ranked) != 20 {
		t.Errorf("ranked = %d, want 20", len(report.Movies.Ranked))
	}
	if countX != 5 {
		t.Errorf("X films total = %d, want 5 (overflow fill)", countX)
	}
}

func TestReconcileDiscardsUntrustedIDs(t *testing.T) {
	// The input claims an ID the resolver cannot confirm; it must not leak
	// into the availability check.
	o := New(
		&fakeResolver{ids: map[string]int64{}},
		&idChecker{libraryIDs: map[int64]struct{}{999: {}}},
		nil,
	)
	report, err := o.Reconcile(context.Background(), Request{
		Movies: []MediaItem{{Title: "Fabricated Film", CanonicalID: 999}},
	})
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if report.Movies.Availability["Fabricated Film"] {
		t.Error("untrusted upstream id must be discarded, not matched")
	}
	if report.Movies.Ranked[0].CanonicalID != 0 {
		t.Errorf("canonical id = %d, want 0 after discard", report.Movies.Ranked[0].CanonicalID)
	}
}

func TestReconcileWatchedExclusion(t *testing.T) {
	o := New(
		&fakeResolver{ids: map[string]int64{"Heat": 949, "Alien": 348}},
		&fakeChecker{available: map[string]bool{"Heat": true, "Alien": true}},
		nil,
	)
	report, err := o.Reconcile(context.Background(), Request{
		Movies:        []MediaItem{{Title: "Heat"}, {Title: "Alien"}},
		WatchedMovies: []string{"heat"},
	})
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if len(report.Movies.Available) != 1 || report.Movies.Available[0].Title != "Alien" {
		t.Errorf("available = %+v, want only Alien", report.Movies.Available)
	}
	// Watched exclusion trims the available list, not the availability map.
	if !report.Movies.Availability["Heat"] {
		t.Error("availability map must still report Heat as present")
	}
}

func TestReconcilePosterEnrichment(t *testing.T) {
	o := New(
		&fakeResolver{ids: map[string]int64{"The Matrix": 603}},
		&fakeChecker{},
		nil,
		WithDetails(&fakeDetails{posters: map[int64]string{603: "/matrix.jpg"}}),
	)
	report, err := o.Reconcile(context.Background(), Request{
		Movies: []MediaItem{{Title: "The Matrix"}},
	})
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	want := "https://image.tmdb.org/t/p/w342/matrix.jpg"
	if got := report.Movies.Ranked[0].PosterURL; got != want {
		t.Errorf("poster url = %q, want %q", got, want)
	}
}

func TestReconcilePreservesRankOrder(t *testing.T) {
	var movies []MediaItem
	for i := 0; i < 30; i++ {
		movies = append(movies, MediaItem{Title: fmt.Sprintf("Film %02d", i)})
	}
	o := New(&fakeResolver{}, &fakeChecker{}, nil, WithWorkers(4))
	report, err := o.Reconcile(context.Background(), Request{Movies: movies, TargetCount: 30})
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	for i, item := range report.Movies.Ranked {
		if want := fmt.Sprintf("Film %02d", i); item.Title != want {
			t.Fatalf("ranked[%d] = %q, want %q", i, item.Title, want)
		}
	}
}

func TestReconcileSeparatesClasses(t *testing.T) {
	o := New(
		&fakeResolver{ids: map[string]int64{"Severance": 95396}},
		&fakeChecker{available: map[string]bool{"Severance": true}},
		nil,
	)
	report, err := o.Reconcile(context.Background(), Request{
		Shows: []MediaItem{{Title: "Severance"}},
	})
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if len(report.Movies.Ranked) != 0 {
		t.Errorf("movie ranked = %d, want 0", len(report.Movies.Ranked))
	}
	if len(report.Shows.Available) != 1 {
		t.Errorf("show available = %d, want 1", len(report.Shows.Available))
	}
	if report.Shows.Ranked[0].Kind != media.KindShow {
		t.Errorf("kind = %v, want show", report.Shows.Ranked[0].Kind)
	}
}
