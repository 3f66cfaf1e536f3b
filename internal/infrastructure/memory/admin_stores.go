package memory

import (
	"context"
	"strings"

	admindomain "github.com/sngm3741/storefinder/api/internal/admin/domain"
	"github.com/sngm3741/storefinder/api/internal/public/domain"
)

// AdminStoreRepository implements the admin application.StoreRepository over a DB.
type AdminStoreRepository struct {
	db *DB
}

func (r *AdminStoreRepository) FindByID(ctx context.Context, id string) (*admindomain.Store, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	store, ok := r.db.stores[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	admin := toAdminStore(store)
	return &admin, nil
}

func (r *AdminStoreRepository) SlugsWithBase(ctx context.Context, base admindomain.Slug, excludeID string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	prefix := base.String()
	slugs := make([]string, 0)
	for id, store := range r.db.stores {
		if id == excludeID {
			continue
		}
		if store.Slug == prefix || strings.HasPrefix(store.Slug, prefix+"-") {
			slugs = append(slugs, store.Slug)
		}
	}
	return slugs, nil
}

func (r *AdminStoreRepository) Create(ctx context.Context, store *admindomain.Store) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.slugInUseLocked(store.Slug.String(), "") {
		return admindomain.ErrSlugTaken
	}
	store.ID = newID()
	r.db.stores[store.ID] = fromAdminStore(*store)
	return nil
}

func (r *AdminStoreRepository) Update(ctx context.Context, store *admindomain.Store) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	current, ok := r.db.stores[store.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if r.slugInUseLocked(store.Slug.String(), store.ID) {
		return admindomain.ErrSlugTaken
	}
	next := fromAdminStore(*store)
	next.OwnerID = current.OwnerID
	next.CreatedAt = current.CreatedAt
	r.db.stores[store.ID] = next
	return nil
}

func (r *AdminStoreRepository) slugInUseLocked(slug, excludeID string) bool {
	for id, existing := range r.db.stores {
		if id != excludeID && existing.Slug == slug {
			return true
		}
	}
	return false
}

func toAdminStore(s domain.Store) admindomain.Store {
	tags := make(admindomain.TagList, 0, len(s.Tags))
	for _, tag := range s.Tags {
		tags = append(tags, admindomain.Tag(tag))
	}
	return admindomain.Store{
		ID:          s.ID,
		Name:        admindomain.StoreName(s.Name),
		Slug:        admindomain.Slug(s.Slug),
		Description: admindomain.Description(s.Description),
		Tags:        tags,
		Location:    admindomain.Location{Lng: s.Location.Lng, Lat: s.Location.Lat},
		OwnerID:     s.OwnerID,
		Photo:       admindomain.PhotoRef(s.Photo),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.CreatedAt,
	}
}

func fromAdminStore(s admindomain.Store) domain.Store {
	return domain.Store{
		ID:          s.ID,
		Name:        s.Name.String(),
		Slug:        s.Slug.String(),
		Description: s.Description.String(),
		Tags:        s.Tags.Strings(),
		Location:    domain.GeoPoint{Lng: s.Location.Lng, Lat: s.Location.Lat},
		OwnerID:     s.OwnerID,
		Photo:       s.Photo.String(),
		CreatedAt:   s.CreatedAt,
	}
}
