package application

import (
	"context"

	"github.com/sngm3741/storefinder/api/internal/public/domain"
)

// storeQueryService is the concrete implementation of StoreQueryService.
type storeQueryService struct {
	stores  StoreRepository
	reviews ReviewRepository
}

// NewStoreQueryService creates a new store query service.
func NewStoreQueryService(stores StoreRepository, reviews ReviewRepository) StoreQueryService {
	return &storeQueryService{stores: stores, reviews: reviews}
}

func (s *storeQueryService) Detail(ctx context.Context, slug string) (*domain.StoreDetail, error) {
	store, err := s.stores.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviews.ForStore(ctx, store.ID)
	if err != nil {
		return nil, err
	}
	return &domain.StoreDetail{Store: *store, Reviews: reviews}, nil
}
