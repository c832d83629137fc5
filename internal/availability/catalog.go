package availability

import (
	"context"
	"log/slog"

	"reelmatch/internal/logging"
	"reelmatch/internal/media"
)

// Checker reports library availability per original candidate title.
type Checker interface {
	Check(ctx context.Context, candidates []Candidate, kind media.Kind) map[string]bool
}

// CatalogService answers whether a canonical ID is available through an
// external request-fulfillment catalog.
type CatalogService interface {
	MediaAvailable(ctx context.Context, kind media.Kind, tmdbID int64) (bool, error)
}

// CatalogChecker layers a catalog availability signal over a primary
// checker. Candidates the primary reports unavailable are retried against
// the catalog by canonical ID, so items fulfilled outside the library still
// count as available.
type CatalogChecker struct {
	primary Checker
	catalog CatalogService
	logger  *slog.Logger
}

// NewCatalogChecker wraps primary with the catalog signal.
func NewCatalogChecker(primary Checker, catalog CatalogService, logger *slog.Logger) *CatalogChecker {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &CatalogChecker{
		primary: primary,
		catalog: catalog,
		logger:  logging.NewComponentLogger(logger, "availability"),
	}
}

// Check runs the primary checker, then consults the catalog for every
// candidate that is still unavailable and carries a canonical ID. Catalog
// errors leave the primary verdict in place.
func (c *CatalogChecker) Check(ctx context.Context, candidates []Candidate, kind media.Kind) map[string]bool {
	result := c.primary.Check(ctx, candidates, kind)
	if c.catalog == nil {
		return result
	}
	for _, candidate := range candidates {
		if result[candidate.Title] || candidate.CanonicalID <= 0 {
			continue
		}
		available, err := c.catalog.MediaAvailable(ctx, kind, candidate.CanonicalID)
		if err != nil {
			c.logger.Debug("catalog availability lookup failed",
				logging.String("title", candidate.Title),
				logging.Int64("canonical_id", candidate.CanonicalID),
				logging.Error(err))
			continue
		}
		if available {
			result[candidate.Title] = true
			c.logger.Debug("catalog reports available",
				logging.String("title", candidate.Title),
				logging.Int64("canonical_id", candidate.CanonicalID))
		}
	}
	return result
}
