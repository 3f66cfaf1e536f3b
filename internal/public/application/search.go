package application

import (
	"context"
	"sort"
	"strings"

	"github.com/sngm3741/storefinder/api/internal/public/domain"
)

// Search runs a relevance-ranked text query over store names and descriptions.
// A blank query yields no results.
func (s *storeQueryService) Search(ctx context.Context, query string) ([]domain.Store, error) {
	query = strings.Join(strings.Fields(query), " ")
	if query == "" {
		return []domain.Store{}, nil
	}

	hits, err := s.stores.TextSearch(ctx, query)
	if err != nil {
		return nil, err
	}
	rankHits(hits)

	stores := make([]domain.Store, 0, len(hits))
	for _, hit := range hits {
		stores = append(stores, hit.Store)
	}
	return stores, nil
}

// rankHits orders by score, then newest first, then ID so equal scores are deterministic.
func rankHits(hits []domain.SearchHit) {
	sort.SliceStable(hits, func(i, j int) bool {
		a, b := hits[i], hits[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if !a.Store.CreatedAt.Equal(b.Store.CreatedAt) {
			return a.Store.CreatedAt.After(b.Store.CreatedAt)
		}
		return a.Store.ID < b.Store.ID
	})
}
