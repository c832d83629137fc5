package recommend

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"reelmatch/internal/availability"
	"reelmatch/internal/diversity"
	"reelmatch/internal/logging"
	"reelmatch/internal/media"
	"reelmatch/internal/resolver"
	"reelmatch/internal/services/tmdb"
	"reelmatch/internal/titles"
)

const defaultTargetCount = 20

// IDResolver resolves a title to a canonical TMDB ID, zero on miss.
type IDResolver interface {
	Resolve(ctx context.Context, title string, yearHint int, kind media.Kind) int64
}

// AvailabilityChecker reports library availability per original title.
type AvailabilityChecker interface {
	Check(ctx context.Context, candidates []availability.Candidate, kind media.Kind) map[string]bool
}

// DetailsFetcher fetches catalog details for poster enrichment.
type DetailsFetcher interface {
	GetMovieDetails(ctx context.Context, movieID int64) (*tmdb.Result, error)
	GetTVDetails(ctx context.Context, showID int64) (*tmdb.Result, error)
}

// Orchestrator runs the reconciliation pipeline.
type Orchestrator struct {
	resolver IDResolver
	checker  AvailabilityChecker
	details  DetailsFetcher
	trail    *resolver.Trail
	logger   *slog.Logger
	workers  int
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithDetails enables best-effort poster enrichment.
func WithDetails(details DetailsFetcher) Option {
	return func(o *Orchestrator) {
		o.details = details
	}
}

// WithTrail attaches the resolver's event trail so reports carry it.
func WithTrail(trail *resolver.Trail) Option {
	return func(o *Orchestrator) {
		o.trail = trail
	}
}

// WithWorkers bounds the per-class worker pool.
func WithWorkers(workers int) Option {
	return func(o *Orchestrator) {
		if workers > 0 {
			o.workers = workers
		}
	}
}

// New creates an Orchestrator.
func New(idResolver IDResolver, checker AvailabilityChecker, logger *slog.Logger, opts ...Option) *Orchestrator {
	if logger == nil {
		logger = logging.NewNop()
	}
	o := &Orchestrator{
		resolver: idResolver,
		checker:  checker,
		logger:   logging.NewComponentLogger(logger, "orchestrator"),
		workers:  8,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Reconcile resolves, checks, and diversity-caps both item classes. Upstream
// canonical IDs are discarded before resolution; only IDs verified against
// the catalog in this run survive. The method never fails on external
// service trouble; degraded items simply come back unavailable.
func (o *Orchestrator) Reconcile(ctx context.Context, req Request) (*Report, error) {
	report := &Report{RequestID: uuid.NewString()}
	logger := o.logger.With(logging.String(logging.FieldRequestID, report.RequestID))

	report.Movies = o.reconcileClass(ctx, logger, req.Movies, req.WatchedMovies, media.KindMovie, req)
	report.Shows = o.reconcileClass(ctx, logger, req.Shows, req.WatchedShows, media.KindShow, req)
	report.Events = o.trail.Events()

	logger.Info("reconciliation complete",
		logging.String(logging.FieldEventType, "reconcile_complete"),
		logging.Int("movie_count", len(req.Movies)),
		logging.Int("show_count", len(req.Shows)),
		logging.Int("movies_available", len(report.Movies.Available)),
		logging.Int("shows_available", len(report.Shows.Available)))
	return report, nil
}

func (o *Orchestrator) reconcileClass(ctx context.Context, logger *slog.Logger, input []MediaItem, watched []string, kind media.Kind, req Request) ClassReport {
	class := ClassReport{Availability: make(map[string]bool, len(input))}
	if len(input) == 0 {
		return class
	}

	items := make([]MediaItem, len(input))
	copy(items, input)
	for i := range items {
		items[i].Kind = kind
		items[i].CanonicalID = 0
		items[i].Available = false
		items[i].PosterURL = ""
	}

	// Resolution and poster fetches are independent per item; the pool
	// writes into each item's own slot so rank order is preserved.
	runIndexed(ctx, o.workers, len(items), func(taskCtx context.Context, i int) {
		if o.resolver != nil {
			items[i].CanonicalID = o.resolver.Resolve(taskCtx, items[i].Title, items[i].Year, kind)
		}
		if items[i].CanonicalID > 0 && o.details != nil {
			items[i].PosterURL = o.posterURL(taskCtx, kind, items[i].CanonicalID)
		}
	})

	if o.checker != nil {
		candidates := make([]availability.Candidate, len(items))
		for i, item := range items {
			candidates[i] = availability.Candidate{Title: item.Title, CanonicalID: item.CanonicalID}
		}
		available := o.checker.Check(ctx, candidates, kind)
		for i := range items {
			items[i].Available = available[items[i].Title]
		}
	}
	for _, item := range items {
		class.Availability[item.Title] = item.Available
	}

	// Diversity caps apply to the whole ranked list before partitioning,
	// so the cap shapes the recommendation set, not only its available part.
	entries := make([]diversity.Entry, len(items))
	for i, item := range items {
		entries[i] = diversity.Entry{Director: item.Director, Genres: item.Genres}
	}
	target := req.TargetCount
	if target <= 0 {
		target = defaultTargetCount
	}
	selected := diversity.SelectIndices(entries, diversity.Options{
		TargetCount: target,
		DirectorCap: req.DirectorCap,
		GenreCap:    req.GenreCap,
	})

	watchedSet := normalizedSet(watched)
	for _, idx := range selected {
		item := items[idx]
		class.Ranked = append(class.Ranked, item)
		if !item.Available {
			class.Unavailable = append(class.Unavailable, item)
			continue
		}
		if _, seen := watchedSet[titles.Normalize(item.Title)]; seen {
			continue
		}
		class.Available = append(class.Available, item)
	}

	logger.Debug("class reconciled",
		logging.String(logging.FieldMediaKind, kind.String()),
		logging.Int("input_count", len(input)),
		logging.Int("selected_count", len(class.Ranked)),
		logging.Int("available_count", len(class.Available)))
	return class
}

func (o *Orchestrator) posterURL(ctx context.Context, kind media.Kind, id int64) string {
	var (
		result *tmdb.Result
		err    error
	)
	switch kind {
	case media.KindShow:
		result, err = o.details.GetTVDetails(ctx, id)
	default:
		result, err = o.details.GetMovieDetails(ctx, id)
	}
	if err != nil || result == nil {
		return ""
	}
	return result.PosterURL()
}

func normalizedSet(titlesIn []string) map[string]struct{} {
	set := make(map[string]struct{}, len(titlesIn))
	for _, title := range titlesIn {
		if norm := titles.Normalize(title); strings.TrimSpace(norm) != "" {
			set[norm] = struct{}{}
		}
	}
	return set
}
