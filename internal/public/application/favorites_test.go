package application_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sngm3741/storefinder/api/internal/infrastructure/memory"
	"github.com/sngm3741/storefinder/api/internal/public/application"
	"github.com/sngm3741/storefinder/api/internal/public/domain"
)

func TestToggle_TwiceRestoresMembership(t *testing.T) {
	db := memory.New()
	putWithIDs(db, "s1")
	db.PutUser(domain.User{ID: "u"})
	svc := application.NewFavoriteService(db.Users(), db.Stores())

	first, err := svc.Toggle(context.Background(), "u", "s1")
	require.NoError(t, err)
	assert.True(t, first.Favorited)
	assert.Equal(t, []string{"s1"}, first.Favorites.IDs())

	second, err := svc.Toggle(context.Background(), "u", "s1")
	require.NoError(t, err)
	assert.False(t, second.Favorited)
	assert.Empty(t, second.Favorites.IDs())

	user, err := db.Users().GetUser(context.Background(), "u")
	require.NoError(t, err)
	assert.Equal(t, 0, user.Favorites.Len())
	assert.Equal(t, int64(2), user.FavoritesRevision)
}

func TestToggle_LeavesOtherMembers(t *testing.T) {
	db := memory.New()
	db.PutUser(domain.User{ID: "u", Favorites: domain.NewFavoriteSet("s1", "s2")})
	svc := application.NewFavoriteService(db.Users(), db.Stores())

	result, err := svc.Toggle(context.Background(), "u", "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"s2"}, result.Favorites.IDs())
}

func TestToggle_Errors(t *testing.T) {
	db := memory.New()
	putWithIDs(db, "s1")
	db.PutUser(domain.User{ID: "u"})
	svc := application.NewFavoriteService(db.Users(), db.Stores())

	_, err := svc.Toggle(context.Background(), "ghost", "s1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Toggle(context.Background(), "u", " ")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = svc.Toggle(ctx, "u", "s1")
	assert.ErrorIs(t, err, context.Canceled)
	user, err := db.Users().GetUser(context.Background(), "u")
	require.NoError(t, err)
	assert.Equal(t, 0, user.Favorites.Len(), "cancelled toggle leaves no partial write")
}

func TestToggle_UnknownStore(t *testing.T) {
	db := memory.New()
	db.PutUser(domain.User{ID: "u", Favorites: domain.NewFavoriteSet("closed")})
	svc := application.NewFavoriteService(db.Users(), db.Stores())

	_, err := svc.Toggle(context.Background(), "u", "does-not-exist")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	user, err := db.Users().GetUser(context.Background(), "u")
	require.NoError(t, err)
	assert.Equal(t, []string{"closed"}, user.Favorites.IDs())
	assert.Equal(t, int64(0), user.FavoritesRevision)

	// a member whose store was deleted can still be removed
	result, err := svc.Toggle(context.Background(), "u", "closed")
	require.NoError(t, err)
	assert.False(t, result.Favorited)
	assert.Empty(t, result.Favorites.IDs())
}

func TestToggle_RetriesOnConcurrentWrite(t *testing.T) {
	db := memory.New()
	putWithIDs(db, "s1", "s2")
	db.PutUser(domain.User{ID: "u"})
	users := db.Users()
	raced := false
	users.OnBeforeWrite(func() {
		if raced {
			return
		}
		raced = true
		// another request commits s2 between our read and our write
		db.PutUser(domain.User{ID: "u", Favorites: domain.NewFavoriteSet("s2"), FavoritesRevision: 1})
	})
	svc := application.NewFavoriteService(users, db.Stores())

	result, err := svc.Toggle(context.Background(), "u", "s1")
	require.NoError(t, err)
	assert.True(t, result.Favorited)
	assert.Equal(t, []string{"s1", "s2"}, result.Favorites.IDs())
}

func TestToggle_GivesUpAfterRepeatedConflicts(t *testing.T) {
	db := memory.New()
	putWithIDs(db, "s1")
	db.PutUser(domain.User{ID: "u"})
	users := db.Users()
	var revision int64
	users.OnBeforeWrite(func() {
		revision += 10
		db.PutUser(domain.User{ID: "u", FavoritesRevision: revision})
	})
	svc := application.NewFavoriteService(users, db.Stores())

	_, err := svc.Toggle(context.Background(), "u", "s1")
	assert.ErrorIs(t, err, domain.ErrFavoritesConflict)
}

func TestToggle_ConcurrentUsersDoNotContend(t *testing.T) {
	db := memory.New()
	putWithIDs(db, "s1")
	ids := []string{"u1", "u2", "u3", "u4", "u5", "u6", "u7", "u8"}
	for _, id := range ids {
		db.PutUser(domain.User{ID: id})
	}
	svc := application.NewFavoriteService(db.Users(), db.Stores())

	var wg sync.WaitGroup
	errs := make([]error, len(ids))
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			_, errs[i] = svc.Toggle(context.Background(), id, "s1")
		}(i, id)
	}
	wg.Wait()

	for i, id := range ids {
		require.NoError(t, errs[i])
		user, err := db.Users().GetUser(context.Background(), id)
		require.NoError(t, err)
		assert.True(t, user.Favorites.Contains("s1"))
	}
}

func TestFavoriteStores(t *testing.T) {
	db := memory.New()
	stores := putNumbered(db, 3)
	db.PutUser(domain.User{ID: "u", Favorites: domain.NewFavoriteSet(stores[0].ID, stores[2].ID, "gone")})
	db.PutUser(domain.User{ID: "empty"})
	svc := application.NewFavoriteService(db.Users(), db.Stores())

	favs, err := svc.Stores(context.Background(), "u")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"S1", "S3"}, names(favs))

	favs, err = svc.Stores(context.Background(), "empty")
	require.NoError(t, err)
	assert.NotNil(t, favs)
	assert.Empty(t, favs)

	_, err = svc.Stores(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func putWithIDs(db *memory.DB, ids ...string) {
	for _, id := range ids {
		db.PutStore(domain.Store{ID: id, Name: id, Slug: id, CreatedAt: baseTime})
	}
}
