package application

import (
	"context"
	"sort"
	"strings"

	"github.com/sngm3741/storefinder/api/internal/public/domain"
)

// ListTags returns every tag in use with its store count, most used first.
func (s *storeQueryService) ListTags(ctx context.Context) ([]domain.TagCount, error) {
	tags, err := s.stores.TagCounts(ctx)
	if err != nil {
		return nil, err
	}
	sortTagCounts(tags)
	return tags, nil
}

// StoresByTag returns the stores carrying tag; an empty tag selects every tagged store.
func (s *storeQueryService) StoresByTag(ctx context.Context, tag string) ([]domain.Store, error) {
	return s.stores.FindByTag(ctx, strings.TrimSpace(tag))
}

func sortTagCounts(tags []domain.TagCount) {
	sort.SliceStable(tags, func(i, j int) bool {
		if tags[i].Count == tags[j].Count {
			return tags[i].Tag < tags[j].Tag
		}
		return tags[i].Count > tags[j].Count
	})
}
