package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sngm3741/storefinder/api/internal/public/domain"
)

// maxToggleAttempts bounds re-reads when a concurrent write bumps the revision.
const maxToggleAttempts = 3

// favoriteService implements FavoriteService.
type favoriteService struct {
	users  UserRepository
	stores StoreRepository
}

// NewFavoriteService creates a new FavoriteService.
func NewFavoriteService(users UserRepository, stores StoreRepository) FavoriteService {
	return &favoriteService{users: users, stores: stores}
}

// Toggle removes storeID from the user's favorites when present and adds it
// otherwise. Adding an ID with no matching store fails with ErrNotFound. Each attempt reads the user and writes conditionally on the revision
// it read, so the decision always reflects the latest committed set.
func (s *favoriteService) Toggle(ctx context.Context, userID, storeID string) (domain.FavoriteToggle, error) {
	storeID = strings.TrimSpace(storeID)
	if storeID == "" {
		return domain.FavoriteToggle{}, domain.ErrNotFound
	}

	var (
		lastErr  error
		verified bool
	)
	for attempt := 0; attempt < maxToggleAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return domain.FavoriteToggle{}, err
		}
		user, err := s.users.GetUser(ctx, userID)
		if err != nil {
			return domain.FavoriteToggle{}, err
		}

		next, favorited := user.Favorites.Toggle(storeID)
		// Removal stays possible after the store itself is gone.
		if favorited && !verified {
			if _, err := s.stores.FindByID(ctx, storeID); err != nil {
				return domain.FavoriteToggle{}, err
			}
			verified = true
		}
		updated, err := s.users.ReplaceFavorites(ctx, userID, user.FavoritesRevision, next)
		if errors.Is(err, domain.ErrFavoritesConflict) {
			lastErr = err
			continue
		}
		if err != nil {
			return domain.FavoriteToggle{}, err
		}
		return domain.FavoriteToggle{
			UserID:    userID,
			StoreID:   storeID,
			Favorited: favorited,
			Favorites: updated.Favorites,
		}, nil
	}
	return domain.FavoriteToggle{}, lastErr
}

// Stores returns the full store records in the user's favorites.
func (s *favoriteService) Stores(ctx context.Context, userID string) ([]domain.Store, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Favorites.Len() == 0 {
		return []domain.Store{}, nil
	}
	return s.stores.FindByIDs(ctx, user.Favorites.IDs())
}
