package application

import (
	"context"
	"sort"

	"github.com/sngm3741/storefinder/api/internal/public/domain"
)

// Near returns up to domain.NearLimit stores within domain.NearMaxDistanceMeters
// of the given point, closest first.
func (s *storeQueryService) Near(ctx context.Context, rawLng, rawLat string) ([]domain.NearbyStore, error) {
	point, err := domain.ParseGeoPoint(rawLng, rawLat)
	if err != nil {
		return nil, err
	}

	found, err := s.stores.Near(ctx, point, domain.NearMaxDistanceMeters, domain.NearLimit)
	if err != nil {
		return nil, err
	}

	result := make([]domain.NearbyStore, 0, len(found))
	for _, store := range found {
		if store.DistanceMeters > domain.NearMaxDistanceMeters {
			continue
		}
		result = append(result, store)
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].DistanceMeters != result[j].DistanceMeters {
			return result[i].DistanceMeters < result[j].DistanceMeters
		}
		return result[i].ID < result[j].ID
	})
	if len(result) > domain.NearLimit {
		result = result[:domain.NearLimit]
	}
	return result, nil
}
