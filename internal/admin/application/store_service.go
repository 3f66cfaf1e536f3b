package application

import (
	"context"
	"errors"
	"strings"
	"time"

	admindomain "github.com/sngm3741/storefinder/api/internal/admin/domain"
)

// maxSlugAttempts bounds retries when another writer claims the same slug first.
const maxSlugAttempts = 3

// storeService implements StoreService.
type storeService struct {
	repo StoreRepository
	now  func() time.Time
}

func NewStoreService(repo StoreRepository) StoreService {
	return &storeService{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

func (s *storeService) Detail(ctx context.Context, id string) (*admindomain.Store, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *storeService) Create(ctx context.Context, ownerID string, cmd UpsertStoreCommand) (*admindomain.Store, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, admindomain.ErrNotOwner
	}
	store, err := admindomain.NewStore(cmd.Name, cmd.Description, cmd.Tags, cmd.Lng, cmd.Lat, cmd.Photo)
	if err != nil {
		return nil, err
	}
	store.OwnerID = ownerID
	now := s.now()
	store.CreatedAt = now
	store.UpdatedAt = now

	err = s.withUniqueSlug(ctx, &store, func() error {
		return s.repo.Create(ctx, &store)
	})
	if err != nil {
		return nil, err
	}
	return &store, nil
}

func (s *storeService) Update(ctx context.Context, actorID, id string, cmd UpsertStoreCommand) (*admindomain.Store, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.OwnerID != strings.TrimSpace(actorID) {
		return nil, admindomain.ErrNotOwner
	}

	next, err := admindomain.NewStore(cmd.Name, cmd.Description, cmd.Tags, cmd.Lng, cmd.Lat, cmd.Photo)
	if err != nil {
		return nil, err
	}
	next.ID = current.ID
	next.OwnerID = current.OwnerID
	next.CreatedAt = current.CreatedAt
	next.Slug = current.Slug
	next.UpdatedAt = s.now()

	if next.Name == current.Name {
		if err := s.repo.Update(ctx, &next); err != nil {
			return nil, err
		}
		return &next, nil
	}

	err = s.withUniqueSlug(ctx, &next, func() error {
		return s.repo.Update(ctx, &next)
	})
	if err != nil {
		return nil, err
	}
	return &next, nil
}

// withUniqueSlug derives store.Slug from its name, disambiguated against the
// slugs already stored, and runs write. A lost race on the unique slug index
// recomputes the slug and tries again.
func (s *storeService) withUniqueSlug(ctx context.Context, store *admindomain.Store, write func() error) error {
	base := admindomain.Slugify(store.Name.String())
	var err error
	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		var taken []string
		taken, err = s.repo.SlugsWithBase(ctx, base, store.ID)
		if err != nil {
			return err
		}
		store.Slug = base.Disambiguate(taken)

		err = write()
		if !errors.Is(err, admindomain.ErrSlugTaken) {
			return err
		}
	}
	return err
}
