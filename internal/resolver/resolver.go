package resolver

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"reelmatch/internal/logging"
	"reelmatch/internal/media"
	"reelmatch/internal/services"
	"reelmatch/internal/services/overseerr"
	"reelmatch/internal/services/tmdb"
)

const defaultTimeout = 8 * time.Second

// Resolution pass names recorded on the event trail.
const (
	passTitleYear  = "title_year"
	passTitleOnly  = "title_only"
	passSimplified = "simplified"
	passFallback   = "fallback_catalog"
)

// Resolver resolves titles to canonical TMDB IDs with multi-pass fallback.
type Resolver struct {
	catalog  tmdb.Searcher
	fallback overseerr.Service
	cache    *Cache
	trail    *Trail
	logger   *slog.Logger
	timeout  time.Duration
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithFallback attaches an Overseerr service used as the last resolution pass.
func WithFallback(service overseerr.Service) Option {
	return func(r *Resolver) {
		r.fallback = service
	}
}

// WithTrail attaches a diagnostic event trail.
func WithTrail(trail *Trail) Option {
	return func(r *Resolver) {
		r.trail = trail
	}
}

// WithTimeout overrides the per-call network timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(r *Resolver) {
		if timeout > 0 {
			r.timeout = timeout
		}
	}
}

// New creates a Resolver. The cache is required; pass a memory-only cache
// when persistence is not wanted.
func New(catalog tmdb.Searcher, cache *Cache, logger *slog.Logger, opts ...Option) *Resolver {
	if logger == nil {
		logger = logging.NewNop()
	}
	r := &Resolver{
		catalog: catalog,
		cache:   cache,
		logger:  logging.NewComponentLogger(logger, "resolver"),
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Trail returns the attached event trail, which may be nil.
func (r *Resolver) Trail() *Trail {
	return r.trail
}

// Resolve determines the canonical TMDB ID for a title. It returns zero when
// every pass misses; misses are cached so repeat lookups stay local. Network
// failures degrade to the next pass rather than aborting.
func (r *Resolver) Resolve(ctx context.Context, title string, yearHint int, kind media.Kind) int64 {
	title = strings.TrimSpace(title)
	if title == "" || r.catalog == nil {
		return 0
	}

	key := CacheKey(kind, title, yearHint)
	if id, found := r.cache.Lookup(key); found {
		return id
	}

	if yearHint > 0 {
		if id, ok := r.searchPass(ctx, passTitleYear, title, yearHint, kind); ok {
			r.cache.Store(key, id)
			return id
		}
	}

	if id, ok := r.searchPass(ctx, passTitleOnly, title, 0, kind); ok {
		r.cache.Store(key, id)
		return id
	}

	simplified := SimplifyTitle(title)
	if simplified != "" && !strings.EqualFold(simplified, title) {
		if id, ok := r.searchPass(ctx, passSimplified, simplified, 0, kind); ok {
			r.cache.Store(key, id)
			return id
		}
	}

	if id, ok := r.fallbackPass(ctx, title, simplified, kind); ok {
		r.cache.Store(key, id)
		return id
	}

	r.trail.Append(Event{Title: title, Kind: kind, Pass: "exhausted", Outcome: "miss"})
	r.logger.Debug("resolution miss",
		logging.String("title", title),
		logging.String(logging.FieldMediaKind, kind.String()),
		logging.Int("year_hint", yearHint))
	r.cache.Store(key, 0)
	return 0
}

func (r *Resolver) searchPass(ctx context.Context, pass, query string, year int, kind media.Kind) (int64, bool) {
	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	opts := tmdb.SearchOptions{Year: year}
	var (
		resp *tmdb.Response
		err  error
	)
	switch kind {
	case media.KindShow:
		resp, err = r.catalog.SearchTVWithOptions(callCtx, query, opts)
	default:
		resp, err = r.catalog.SearchMovieWithOptions(callCtx, query, opts)
	}
	if err != nil {
		r.trail.Append(Event{Title: query, Kind: kind, Pass: pass, Outcome: services.Classify(err), Detail: err.Error()})
		r.logger.Debug("catalog search failed",
			logging.String("pass", pass),
			logging.String("title", query),
			logging.Error(err))
		return 0, false
	}
	best, ok := pickBest(resp.Results, query, year)
	if !ok {
		r.trail.Append(Event{Title: query, Kind: kind, Pass: pass, Outcome: "no_results"})
		return 0, false
	}
	r.trail.Append(Event{Title: query, Kind: kind, Pass: pass, Outcome: "resolved", Detail: best.DisplayTitle()})
	return best.ID, true
}

func (r *Resolver) fallbackPass(ctx context.Context, title, simplified string, kind media.Kind) (int64, bool) {
	if r.fallback == nil {
		return 0, false
	}
	query := simplified
	if query == "" {
		query = title
	}

	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	results, err := r.fallback.Search(callCtx, query)
	if err != nil {
		r.trail.Append(Event{Title: query, Kind: kind, Pass: passFallback, Outcome: services.Classify(err), Detail: err.Error()})
		r.logger.Debug("fallback search failed",
			logging.String("title", query),
			logging.Error(err))
		return 0, false
	}
	wantType := kind.OverseerrMediaType()
	for _, result := range results {
		if result.MediaType != wantType {
			continue
		}
		if result.TmdbID() <= 0 {
			continue
		}
		r.trail.Append(Event{Title: query, Kind: kind, Pass: passFallback, Outcome: "resolved"})
		return result.TmdbID(), true
	}
	r.trail.Append(Event{Title: query, Kind: kind, Pass: passFallback, Outcome: "no_results"})
	return 0, false
}

// simplifySeparators mark where subtitle text begins. The hyphen form
// requires a leading space so hyphenated titles ("Spider-Man", "WALL-E")
// survive intact.
var simplifySeparators = []string{":", " -", "("}

// SimplifyTitle truncates a title at the first subtitle separator, dropping
// text that often defeats exact search.
func SimplifyTitle(title string) string {
	cut := len(title)
	for _, sep := range simplifySeparators {
		if idx := strings.Index(title, sep); idx >= 0 && idx < cut {
			cut = idx
		}
	}
	return strings.TrimSpace(title[:cut])
}
