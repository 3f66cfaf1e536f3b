package breaker

import (
	"context"

	adminapp "github.com/sngm3741/storefinder/api/internal/admin/application"
	admindomain "github.com/sngm3741/storefinder/api/internal/admin/domain"
	publicapp "github.com/sngm3741/storefinder/api/internal/public/application"
	"github.com/sngm3741/storefinder/api/internal/public/domain"
)

// Stores wraps a public store repository.
func (g *Guard) Stores(next publicapp.StoreRepository) publicapp.StoreRepository {
	return &storeRepository{g: g, next: next}
}

// Reviews wraps a review repository.
func (g *Guard) Reviews(next publicapp.ReviewRepository) publicapp.ReviewRepository {
	return &reviewRepository{g: g, next: next}
}

// Users wraps a user repository.
func (g *Guard) Users(next publicapp.UserRepository) publicapp.UserRepository {
	return &userRepository{g: g, next: next}
}

// AdminStores wraps an admin store repository.
func (g *Guard) AdminStores(next adminapp.StoreRepository) adminapp.StoreRepository {
	return &adminStoreRepository{g: g, next: next}
}

type storeRepository struct {
	g    *Guard
	next publicapp.StoreRepository
}

func (r *storeRepository) CountStores(ctx context.Context) (int, error) {
	return call(ctx, r.g, "count_stores", func() (int, error) {
		return r.next.CountStores(ctx)
	})
}

func (r *storeRepository) ListStoresPage(ctx context.Context, skip, limit int) ([]domain.Store, error) {
	return call(ctx, r.g, "list_stores_page", func() ([]domain.Store, error) {
		return r.next.ListStoresPage(ctx, skip, limit)
	})
}

func (r *storeRepository) TagCounts(ctx context.Context) ([]domain.TagCount, error) {
	return call(ctx, r.g, "tag_counts", func() ([]domain.TagCount, error) {
		return r.next.TagCounts(ctx)
	})
}

func (r *storeRepository) FindByTag(ctx context.Context, tag string) ([]domain.Store, error) {
	return call(ctx, r.g, "find_by_tag", func() ([]domain.Store, error) {
		return r.next.FindByTag(ctx, tag)
	})
}

func (r *storeRepository) TextSearch(ctx context.Context, query string) ([]domain.SearchHit, error) {
	return call(ctx, r.g, "text_search", func() ([]domain.SearchHit, error) {
		return r.next.TextSearch(ctx, query)
	})
}

func (r *storeRepository) Near(ctx context.Context, point domain.GeoPoint, maxDistanceMeters float64, limit int) ([]domain.NearbyStore, error) {
	return call(ctx, r.g, "near", func() ([]domain.NearbyStore, error) {
		return r.next.Near(ctx, point, maxDistanceMeters, limit)
	})
}

func (r *storeRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Store, error) {
	return call(ctx, r.g, "find_by_ids", func() ([]domain.Store, error) {
		return r.next.FindByIDs(ctx, ids)
	})
}

func (r *storeRepository) FindByID(ctx context.Context, id string) (*domain.Store, error) {
	return call(ctx, r.g, "find_by_id", func() (*domain.Store, error) {
		return r.next.FindByID(ctx, id)
	})
}

func (r *storeRepository) FindBySlug(ctx context.Context, slug string) (*domain.Store, error) {
	return call(ctx, r.g, "find_by_slug", func() (*domain.Store, error) {
		return r.next.FindBySlug(ctx, slug)
	})
}

type reviewRepository struct {
	g    *Guard
	next publicapp.ReviewRepository
}

func (r *reviewRepository) RatingsByStore(ctx context.Context) (map[string][]int, error) {
	return call(ctx, r.g, "ratings_by_store", func() (map[string][]int, error) {
		return r.next.RatingsByStore(ctx)
	})
}

func (r *reviewRepository) ForStore(ctx context.Context, storeID string) ([]domain.Review, error) {
	return call(ctx, r.g, "reviews_for_store", func() ([]domain.Review, error) {
		return r.next.ForStore(ctx, storeID)
	})
}

func (r *reviewRepository) Create(ctx context.Context, review *domain.Review) error {
	return exec(ctx, r.g, "create_review", func() error {
		return r.next.Create(ctx, review)
	})
}

type userRepository struct {
	g    *Guard
	next publicapp.UserRepository
}

func (r *userRepository) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return call(ctx, r.g, "get_user", func() (*domain.User, error) {
		return r.next.GetUser(ctx, id)
	})
}

func (r *userRepository) ReplaceFavorites(ctx context.Context, userID string, revision int64, favorites domain.FavoriteSet) (*domain.User, error) {
	return call(ctx, r.g, "replace_favorites", func() (*domain.User, error) {
		return r.next.ReplaceFavorites(ctx, userID, revision, favorites)
	})
}

type adminStoreRepository struct {
	g    *Guard
	next adminapp.StoreRepository
}

func (r *adminStoreRepository) FindByID(ctx context.Context, id string) (*admindomain.Store, error) {
	return call(ctx, r.g, "admin_find_by_id", func() (*admindomain.Store, error) {
		return r.next.FindByID(ctx, id)
	})
}

func (r *adminStoreRepository) SlugsWithBase(ctx context.Context, base admindomain.Slug, excludeID string) ([]string, error) {
	return call(ctx, r.g, "slugs_with_base", func() ([]string, error) {
		return r.next.SlugsWithBase(ctx, base, excludeID)
	})
}

func (r *adminStoreRepository) Create(ctx context.Context, store *admindomain.Store) error {
	return exec(ctx, r.g, "create_store", func() error {
		return r.next.Create(ctx, store)
	})
}

func (r *adminStoreRepository) Update(ctx context.Context, store *admindomain.Store) error {
	return exec(ctx, r.g, "update_store", func() error {
		return r.next.Update(ctx, store)
	})
}
