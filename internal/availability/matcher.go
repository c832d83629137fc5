package availability

import (
	"context"
	"log/slog"

	"reelmatch/internal/logging"
	"reelmatch/internal/media"
	"reelmatch/internal/services/plex"
	"reelmatch/internal/titles"
)

// Strategy names for library matching.
const (
	StrategyBulk     = "bulk"
	StrategyTargeted = "targeted"
)

// Matcher checks candidate availability against a Plex library.
type Matcher struct {
	lib      Library
	logger   *slog.Logger
	strategy string
}

// NewMatcher creates a Matcher. Unknown strategies fall back to bulk.
func NewMatcher(lib Library, strategy string, logger *slog.Logger) *Matcher {
	if logger == nil {
		logger = logging.NewNop()
	}
	if strategy != StrategyTargeted {
		strategy = StrategyBulk
	}
	return &Matcher{
		lib:      lib,
		logger:   logging.NewComponentLogger(logger, "availability"),
		strategy: strategy,
	}
}

// Check determines availability for every candidate. Keys are the original
// candidate titles; values are strict booleans. Library errors degrade to
// all-false rather than aborting, so a flaky media server never fails the
// whole request.
func (m *Matcher) Check(ctx context.Context, candidates []Candidate, kind media.Kind) map[string]bool {
	if m.strategy == StrategyTargeted {
		return m.checkTargeted(ctx, candidates, kind)
	}
	return m.checkBulk(ctx, candidates, kind)
}

func (m *Matcher) checkBulk(ctx context.Context, candidates []Candidate, kind media.Kind) map[string]bool {
	result := allUnavailable(candidates)
	if m.lib == nil || len(candidates) == 0 {
		return result
	}
	index, err := BuildIndex(ctx, m.lib, kind)
	if err != nil {
		m.logger.Warn("library scan failed",
			logging.String(logging.FieldEventType, "library_scan_failed"),
			logging.String(logging.FieldMediaKind, kind.String()),
			logging.Error(err),
			logging.String(logging.FieldImpact, "all items treated as unavailable"))
		return result
	}
	for _, candidate := range candidates {
		result[candidate.Title] = index.Contains(candidate)
	}
	m.logger.Debug("bulk availability check complete",
		logging.String(logging.FieldMediaKind, kind.String()),
		logging.Int("candidate_count", len(candidates)),
		logging.Int("library_items", index.Size()))
	return result
}

func (m *Matcher) checkTargeted(ctx context.Context, candidates []Candidate, kind media.Kind) map[string]bool {
	result := allUnavailable(candidates)
	if m.lib == nil || len(candidates) == 0 {
		return result
	}
	sections, err := m.lib.Sections(ctx)
	if err != nil {
		m.logger.Warn("library section listing failed",
			logging.String(logging.FieldEventType, "library_sections_failed"),
			logging.Error(err),
			logging.String(logging.FieldImpact, "all items treated as unavailable"))
		return result
	}
	var keys []string
	for _, section := range sections {
		if section.Kind() == kind {
			keys = append(keys, section.Key)
		}
	}
	for _, candidate := range candidates {
		result[candidate.Title] = m.lookupCandidate(ctx, keys, candidate)
	}
	return result
}

func (m *Matcher) lookupCandidate(ctx context.Context, sectionKeys []string, candidate Candidate) bool {
	if candidate.CanonicalID > 0 {
		for _, key := range sectionKeys {
			found, err := m.lib.FindByCanonicalID(ctx, key, candidate.CanonicalID)
			if err != nil {
				m.logger.Debug("canonical id lookup failed",
					logging.String("title", candidate.Title),
					logging.Error(err))
				continue
			}
			if found {
				return true
			}
		}
	}
	variants := titles.Variants(candidate.Title)
	for _, variant := range variants.Values() {
		for _, key := range sectionKeys {
			items, err := m.lib.FindByTitle(ctx, key, variant)
			if err != nil {
				m.logger.Debug("title lookup failed",
					logging.String("title", candidate.Title),
					logging.Error(err))
				continue
			}
			if matchesAny(candidate, variants, items) {
				return true
			}
		}
	}
	return false
}

// matchesAny verifies server-side title hits. Plex title filtering is
// approximate, so each returned item is checked by exact variant
// intersection, and an item tagged with a different canonical ID than the
// candidate's is rejected outright.
func matchesAny(candidate Candidate, variants titles.VariantSet, items []plex.Item) bool {
	for _, item := range items {
		itemID := item.CanonicalID()
		if candidate.CanonicalID > 0 && itemID > 0 && itemID != candidate.CanonicalID {
			continue
		}
		if variants.Intersects(titles.Variants(item.Title)) {
			return true
		}
	}
	return false
}

func allUnavailable(candidates []Candidate) map[string]bool {
	result := make(map[string]bool, len(candidates))
	for _, candidate := range candidates {
		result[candidate.Title] = false
	}
	return result
}
