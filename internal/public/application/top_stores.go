package application

import (
	"context"
	"sort"

	"github.com/sngm3741/storefinder/api/internal/public/domain"
)

// TopStores ranks reviewed stores by average rating, dropping those below
// domain.TopStoresMinAverage.
func (s *storeQueryService) TopStores(ctx context.Context) ([]domain.RankedStore, error) {
	grouped, err := s.reviews.RatingsByStore(ctx)
	if err != nil {
		return nil, err
	}

	ranked := aggregateRatings(grouped)
	if len(ranked) == 0 {
		return []domain.RankedStore{}, nil
	}

	ids := make([]string, 0, len(ranked))
	for _, r := range ranked {
		ids = append(ids, r.Store.ID)
	}
	stores, err := s.stores.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Store, len(stores))
	for _, store := range stores {
		byID[store.ID] = store
	}

	result := make([]domain.RankedStore, 0, len(ranked))
	for _, r := range ranked {
		store, ok := byID[r.Store.ID]
		if !ok {
			// reviews pointing at a store that is gone
			continue
		}
		r.Store = store
		result = append(result, r)
	}
	return result, nil
}

// aggregateRatings computes mean and count per store, applies the cutoff and
// sorts. Only Store.ID is populated on the returned entries.
func aggregateRatings(grouped map[string][]int) []domain.RankedStore {
	ranked := make([]domain.RankedStore, 0, len(grouped))
	for storeID, ratings := range grouped {
		if len(ratings) == 0 {
			continue
		}
		sum := 0
		for _, rating := range ratings {
			sum += rating
		}
		avg := float64(sum) / float64(len(ratings))
		if avg < domain.TopStoresMinAverage {
			continue
		}
		ranked = append(ranked, domain.RankedStore{
			Store:         domain.Store{ID: storeID},
			AverageRating: avg,
			ReviewCount:   len(ratings),
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.AverageRating != b.AverageRating {
			return a.AverageRating > b.AverageRating
		}
		if a.ReviewCount != b.ReviewCount {
			return a.ReviewCount > b.ReviewCount
		}
		return a.Store.ID < b.Store.ID
	})
	return ranked
}
