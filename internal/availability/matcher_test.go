package availability

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	"reelmatch/internal/media"
	"reelmatch/internal/services/plex"
	"reelmatch/internal/titles"
)

type fakeLibrary struct {
	sections     []plex.Section
	itemsByKey   map[string][]plex.Item
	sectionsErr  error
	itemsErr     error
	itemRequests int
}

func (f *fakeLibrary) Sections(ctx context.Context) ([]plex.Section, error) {
	return f.sections, f.sectionsErr
}

func (f *fakeLibrary) SectionItems(ctx context.Context, key string) ([]plex.Item, error) {
	f.itemRequests++
	if f.itemsErr != nil {
		return nil, f.itemsErr
	}
	return f.itemsByKey[key], nil
}

func (f *fakeLibrary) FindByCanonicalID(ctx context.Context, key string, tmdbID int64) (bool, error) {
	if f.itemsErr != nil {
		return false, f.itemsErr
	}
	for _, item := range f.itemsByKey[key] {
		if item.CanonicalID() == tmdbID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLibrary) FindByTitle(ctx context.Context, key, title string) ([]plex.Item, error) {
	if f.itemsErr != nil {
		return nil, f.itemsErr
	}
	var hits []plex.Item
	for _, item := range f.itemsByKey[key] {
		if strings.Contains(strings.ToLower(item.Title), strings.ToLower(title)) {
			hits = append(hits, item)
		}
	}
	return hits, nil
}

func movieLibrary(items ...plex.Item) *fakeLibrary {
	return &fakeLibrary{
		sections:   []plex.Section{{Key: "1", Type: "movie", Title: "Movies"}},
		itemsByKey: map[string][]plex.Item{"1": items},
	}
}

func taggedItem(title string, tmdbID int64) plex.Item {
	return plex.Item{Title: title, GUIDs: []plex.GUIDRef{{ID: "tmdb://" + strconv.FormatInt(tmdbID, 10)}}}
}

func TestBulkCanonicalIDMatchesAcrossEditions(t *testing.T) {
	lib := movieLibrary(taggedItem("Lord of the Rings - Extended Edition", 120))
	matcher := NewMatcher(lib, StrategyBulk, nil)

	result := matcher.Check(context.Background(), []Candidate{
		{Title: "Lord of the Rings", CanonicalID: 120},
	}, media.KindMovie)
	if !result["Lord of the Rings"] {
		t.Error("expected extended edition to satisfy base title via shared canonical id")
	}
}

func TestBulkDifferentIDsNeverMerge(t *testing.T) {
	lib := movieLibrary(taggedItem("The Matrix Reloaded", 604))
	matcher := NewMatcher(lib, StrategyBulk, nil)

	result := matcher.Check(context.Background(), []Candidate{
		{Title: "The Matrix", CanonicalID: 603},
	}, media.KindMovie)
	if result["The Matrix"] {
		t.Error("sequel with a different canonical id must not match")
	}
}

func TestBulkMiscodedIDRejectedDespiteIdenticalTitle(t *testing.T) {
	lib := movieLibrary(taggedItem("The Matrix", 999))
	matcher := NewMatcher(lib, StrategyBulk, nil)

	result := matcher.Check(context.Background(), []Candidate{
		{Title: "The Matrix", CanonicalID: 603},
	}, media.KindMovie)
	if result["The Matrix"] {
		t.Error("identical title with a different canonical id must not match")
	}
}

func TestBulkTextFallbackForUntaggedItems(t *testing.T) {
	lib := movieLibrary(plex.Item{Title: "Lord of the Rings - Extended Edition"})
	matcher := NewMatcher(lib, StrategyBulk, nil)

	result := matcher.Check(context.Background(), []Candidate{
		{Title: "Lord of the Rings"},
	}, media.KindMovie)
	if !result["Lord of the Rings"] {
		t.Error("expected edition-suffix variant intersection to match")
	}
}

func TestBulkNoSubstringFalsePositive(t *testing.T) {
	lib := movieLibrary(plex.Item{Title: "The Matrix Reloaded"})
	matcher := NewMatcher(lib, StrategyBulk, nil)

	result := matcher.Check(context.Background(), []Candidate{
		{Title: "The Matrix"},
	}, media.KindMovie)
	if result["The Matrix"] {
		t.Error("base title must not match a different film by substring")
	}
}

func TestBulkScanErrorDegradesToFalse(t *testing.T) {
	lib := movieLibrary()
	lib.sectionsErr = errors.New("server unreachable")
	matcher := NewMatcher(lib, StrategyBulk, nil)

	result := matcher.Check(context.Background(), []Candidate{
		{Title: "Heat", CanonicalID: 949},
	}, media.KindMovie)
	if result["Heat"] {
		t.Error("library error should degrade to unavailable")
	}
	if len(result) != 1 {
		t.Errorf("result size = %d, want 1", len(result))
	}
}

func TestBulkIgnoresOtherKindSections(t *testing.T) {
	lib := &fakeLibrary{
		sections: []plex.Section{
			{Key: "1", Type: "movie", Title: "Movies"},
			{Key: "2", Type: "show", Title: "TV Shows"},
		},
		itemsByKey: map[string][]plex.Item{
			"2": {taggedItem("Severance", 95396)},
		},
	}
	matcher := NewMatcher(lib, StrategyBulk, nil)

	result := matcher.Check(context.Background(), []Candidate{
		{Title: "Severance", CanonicalID: 95396},
	}, media.KindMovie)
	if result["Severance"] {
		t.Error("show section must not satisfy a movie check")
	}
}

func TestTargetedCanonicalIDPrecedence(t *testing.T) {
	lib := movieLibrary(taggedItem("Lord of the Rings - Extended Edition", 120))
	matcher := NewMatcher(lib, StrategyTargeted, nil)

	result := matcher.Check(context.Background(), []Candidate{
		{Title: "Lord of the Rings", CanonicalID: 120},
	}, media.KindMovie)
	if !result["Lord of the Rings"] {
		t.Error("expected canonical id query to hit")
	}
}

func TestTargetedTitleFallbackVerifiesVariants(t *testing.T) {
	lib := movieLibrary(plex.Item{Title: "The Matrix Reloaded"})
	matcher := NewMatcher(lib, StrategyTargeted, nil)

	result := matcher.Check(context.Background(), []Candidate{
		{Title: "The Matrix"},
	}, media.KindMovie)
	if result["The Matrix"] {
		t.Error("loose server title match must be rejected by variant verification")
	}
}

func TestTargetedMiscodedIDRejected(t *testing.T) {
	lib := movieLibrary(taggedItem("The Matrix", 999))
	matcher := NewMatcher(lib, StrategyTargeted, nil)

	result := matcher.Check(context.Background(), []Candidate{
		{Title: "The Matrix", CanonicalID: 603},
	}, media.KindMovie)
	if result["The Matrix"] {
		t.Error("item tagged with a different id must not match the candidate")
	}
}

func TestIndexVariantSeparation(t *testing.T) {
	index := &Index{
		ids:              make(map[int64]struct{}),
		variantsAll:      titles.NewVariantSet(),
		variantsUntagged: titles.NewVariantSet(),
	}
	index.add(taggedItem("The Matrix", 999))
	index.add(plex.Item{Title: "Heat"})

	if index.Size() != 2 {
		t.Errorf("size = %d, want 2", index.Size())
	}
	// Candidate without an id may text-match anything.
	if !index.Contains(Candidate{Title: "The Matrix"}) {
		t.Error("untagged candidate should match tagged item by text")
	}
	// Candidate with an id only text-matches untagged items.
	if index.Contains(Candidate{Title: "The Matrix", CanonicalID: 603}) {
		t.Error("tagged candidate must not text-match a tagged item")
	}
	if !index.Contains(Candidate{Title: "Heat", CanonicalID: 949}) {
		t.Error("tagged candidate should text-match an untagged item")
	}
}
