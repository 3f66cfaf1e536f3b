package memory

import (
	"context"
	"sort"

	"github.com/sngm3741/storefinder/api/internal/public/domain"
)

// ReviewRepository implements application.ReviewRepository over a DB.
type ReviewRepository struct {
	db *DB
}

func (r *ReviewRepository) RatingsByStore(ctx context.Context) (map[string][]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	grouped := make(map[string][]int)
	for _, review := range r.db.reviews {
		grouped[review.StoreID] = append(grouped[review.StoreID], review.Rating)
	}
	return grouped, nil
}

// ForStore returns the store's reviews, newest first.
func (r *ReviewRepository) ForStore(ctx context.Context, storeID string) ([]domain.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	result := make([]domain.Review, 0)
	for _, review := range r.db.reviews {
		if review.StoreID == storeID {
			result = append(result, review)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.stores[review.StoreID]; !ok {
		return domain.ErrNotFound
	}
	review.ID = newID()
	r.db.reviews = append(r.db.reviews, *review)
	return nil
}
