package memory

import (
	"context"
	"sort"

	"github.com/sngm3741/storefinder/api/internal/public/domain"
)

// StoreRepository implements application.StoreRepository over a DB.
type StoreRepository struct {
	db *DB
}

func (r *StoreRepository) CountStores(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return len(r.db.stores), nil
}

func (r *StoreRepository) ListStoresPage(ctx context.Context, skip, limit int) ([]domain.Store, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	all := r.snapshot()
	sort.SliceStable(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID < all[j].ID
	})
	if skip < 0 {
		skip = 0
	}
	if skip >= len(all) {
		return []domain.Store{}, nil
	}
	end := len(all)
	if limit > 0 && skip+limit < end {
		end = skip + limit
	}
	return all[skip:end], nil
}

func (r *StoreRepository) TagCounts(ctx context.Context) ([]domain.TagCount, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, store := range r.snapshot() {
		for _, tag := range domain.NormalizeTags(store.Tags) {
			counts[tag]++
		}
	}
	result := make([]domain.TagCount, 0, len(counts))
	for tag, count := range counts {
		result = append(result, domain.TagCount{Tag: tag, Count: count})
	}
	return result, nil
}

func (r *StoreRepository) FindByTag(ctx context.Context, tag string) ([]domain.Store, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result := make([]domain.Store, 0)
	for _, store := range r.snapshot() {
		if (tag == "" && len(store.Tags) > 0) || (tag != "" && store.HasTag(tag)) {
			result = append(result, store)
		}
	}
	sortByID(result)
	return result, nil
}

func (r *StoreRepository) TextSearch(ctx context.Context, query string) ([]domain.SearchHit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	q := newTextQuery(query)
	hits := make([]domain.SearchHit, 0)
	for _, store := range r.snapshot() {
		if score := q.score(store); score > 0 {
			hits = append(hits, domain.SearchHit{Store: store, Score: score})
		}
	}
	return hits, nil
}

func (r *StoreRepository) Near(ctx context.Context, point domain.GeoPoint, maxDistanceMeters float64, limit int) ([]domain.NearbyStore, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result := make([]domain.NearbyStore, 0)
	for _, store := range r.snapshot() {
		distance := point.DistanceMeters(store.Location)
		if distance > maxDistanceMeters {
			continue
		}
		result = append(result, domain.ProjectNearby(store, distance))
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].DistanceMeters != result[j].DistanceMeters {
			return result[i].DistanceMeters < result[j].DistanceMeters
		}
		return result[i].ID < result[j].ID
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *StoreRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Store, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	result := make([]domain.Store, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if store, ok := r.db.stores[id]; ok {
			result = append(result, copyStore(store))
		}
	}
	return result, nil
}

func (r *StoreRepository) FindByID(ctx context.Context, id string) (*domain.Store, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	store, ok := r.db.stores[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	store = copyStore(store)
	return &store, nil
}

func (r *StoreRepository) FindBySlug(ctx context.Context, slug string) (*domain.Store, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for _, store := range r.db.stores {
		if store.Slug == slug {
			store = copyStore(store)
			return &store, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *StoreRepository) snapshot() []domain.Store {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	all := make([]domain.Store, 0, len(r.db.stores))
	for _, store := range r.db.stores {
		all = append(all, copyStore(store))
	}
	return all
}

func sortByID(stores []domain.Store) {
	sort.Slice(stores, func(i, j int) bool { return stores[i].ID < stores[j].ID })
}
