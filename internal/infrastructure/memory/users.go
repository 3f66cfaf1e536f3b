package memory

import (
	"context"

	"github.com/sngm3741/storefinder/api/internal/public/domain"
)

// UserRepository implements application.UserRepository over a DB.
type UserRepository struct {
	db *DB
	// beforeWrite, when set, runs inside ReplaceFavorites before the revision
	// check. Tests use it to interleave a competing write.
	beforeWrite func()
}

func (r *UserRepository) GetUser(ctx context.Context, id string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	user, ok := r.db.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneUser(user), nil
}

func (r *UserRepository) ReplaceFavorites(ctx context.Context, userID string, revision int64, favorites domain.FavoriteSet) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.beforeWrite != nil {
		r.beforeWrite()
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	user, ok := r.db.users[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if user.FavoritesRevision != revision {
		return nil, domain.ErrFavoritesConflict
	}
	user.Favorites = domain.NewFavoriteSet(favorites.IDs()...)
	user.FavoritesRevision++
	r.db.users[userID] = user
	return cloneUser(user), nil
}

// OnBeforeWrite installs a hook run at the start of every ReplaceFavorites call.
func (r *UserRepository) OnBeforeWrite(fn func()) {
	r.beforeWrite = fn
}

func cloneUser(u domain.User) *domain.User {
	u.Favorites = domain.NewFavoriteSet(u.Favorites.IDs()...)
	return &u
}
