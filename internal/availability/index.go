package availability

import (
	"context"
	"fmt"

	"reelmatch/internal/media"
	"reelmatch/internal/services/plex"
	"reelmatch/internal/titles"
)

// Candidate is one recommended title to check against the library.
type Candidate struct {
	Title       string
	CanonicalID int64
}

// Library is the subset of the Plex client the matcher consumes.
type Library interface {
	Sections(ctx context.Context) ([]plex.Section, error)
	SectionItems(ctx context.Context, sectionKey string) ([]plex.Item, error)
	FindByCanonicalID(ctx context.Context, sectionKey string, tmdbID int64) (bool, error)
	FindByTitle(ctx context.Context, sectionKey, title string) ([]plex.Item, error)
}

// Index holds one library scan for a single media kind. Items tagged with a
// canonical ID live in the ID set; only untagged items contribute to the
// variant union consulted when a candidate carries an ID, so a tagged entry
// with a different ID can never produce a text-match false positive.
type Index struct {
	ids              map[int64]struct{}
	variantsAll      titles.VariantSet
	variantsUntagged titles.VariantSet
	itemCount        int
}

// BuildIndex enumerates every section of the given kind once and indexes
// item IDs and title variants.
func BuildIndex(ctx context.Context, lib Library, kind media.Kind) (*Index, error) {
	sections, err := lib.Sections(ctx)
	if err != nil {
		return nil, fmt.Errorf("list library sections: %w", err)
	}
	index := &Index{
		ids:              make(map[int64]struct{}),
		variantsAll:      titles.NewVariantSet(),
		variantsUntagged: titles.NewVariantSet(),
	}
	for _, section := range sections {
		if section.Kind() != kind {
			continue
		}
		items, err := lib.SectionItems(ctx, section.Key)
		if err != nil {
			return nil, fmt.Errorf("list section %s items: %w", section.Key, err)
		}
		for _, item := range items {
			index.add(item)
		}
	}
	return index, nil
}

func (x *Index) add(item plex.Item) {
	x.itemCount++
	variants := titles.Variants(item.Title)
	x.variantsAll.Union(variants)
	if id := item.CanonicalID(); id > 0 {
		x.ids[id] = struct{}{}
		return
	}
	x.variantsUntagged.Union(variants)
}

// Contains reports whether the candidate matches an indexed library item.
func (x *Index) Contains(candidate Candidate) bool {
	if candidate.CanonicalID > 0 {
		if _, ok := x.ids[candidate.CanonicalID]; ok {
			return true
		}
		return titles.Variants(candidate.Title).Intersects(x.variantsUntagged)
	}
	return titles.Variants(candidate.Title).Intersects(x.variantsAll)
}

// Size returns the number of indexed items.
func (x *Index) Size() int {
	return x.itemCount
}
