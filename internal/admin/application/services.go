package application

import (
	"context"

	admindomain "github.com/sngm3741/storefinder/api/internal/admin/domain"
)

// StoreRepository exposes admin operations on stores.
type StoreRepository interface {
	FindByID(ctx context.Context, id string) (*admindomain.Store, error)
	// SlugsWithBase lists slugs equal to base or base-N, skipping the store excludeID.
	SlugsWithBase(ctx context.Context, base admindomain.Slug, excludeID string) ([]string, error)
	// Create assigns ID and CreatedAt. It returns admindomain.ErrSlugTaken on a slug collision.
	Create(ctx context.Context, store *admindomain.Store) error
	// Update never rewrites OwnerID or CreatedAt.
	Update(ctx context.Context, store *admindomain.Store) error
}

// StoreService describes admin store use-cases.
type StoreService interface {
	Detail(ctx context.Context, id string) (*admindomain.Store, error)
	Create(ctx context.Context, ownerID string, cmd UpsertStoreCommand) (*admindomain.Store, error)
	Update(ctx context.Context, actorID, id string, cmd UpsertStoreCommand) (*admindomain.Store, error)
}

// UpsertStoreCommand contains inputs for creating/updating stores.
type UpsertStoreCommand struct {
	Name        string
	Description string
	Tags        []string
	Lng         float64
	Lat         float64
	Photo       string
}
