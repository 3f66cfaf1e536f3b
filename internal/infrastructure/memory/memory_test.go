package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sngm3741/storefinder/api/internal/public/domain"
)

func TestTextQueryScore(t *testing.T) {
	q := newTextQuery("Blue  bottle")
	assert.Equal(t, []string{"blue", "bottle"}, q.tokens)

	exact := q.score(domain.Store{Name: "Blue Bottle Coffee"})
	scattered := q.score(domain.Store{Name: "Bottle of Blue"})
	partial := q.score(domain.Store{Name: "Blue Door"})
	none := q.score(domain.Store{Name: "Red Door", Description: "Bluebottle"})

	assert.Greater(t, exact, scattered)
	assert.Greater(t, scattered, partial)
	assert.Greater(t, partial, 0.0)
	assert.Zero(t, none, "tokens match whole words only")
	assert.Zero(t, newTextQuery(" ").score(domain.Store{Name: "anything"}))
}

func TestStoreRepository_ListStoresPageBounds(t *testing.T) {
	db := New()
	db.PutStore(domain.Store{ID: "a"})
	db.PutStore(domain.Store{ID: "b"})
	repo := db.Stores()

	page, err := repo.ListStoresPage(context.Background(), 0, 6)
	require.NoError(t, err)
	assert.Len(t, page, 2)
	assert.Equal(t, "a", page[0].ID, "equal timestamps order by id")

	page, err = repo.ListStoresPage(context.Background(), 6, 6)
	require.NoError(t, err)
	assert.NotNil(t, page)
	assert.Empty(t, page)
}

func TestStoreRepository_FindByIDsSkipsMissing(t *testing.T) {
	db := New()
	s := db.PutStore(domain.Store{Name: "A"})

	found, err := db.Stores().FindByIDs(context.Background(), []string{s.ID, "missing", s.ID})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "A", found[0].Name)
}

func TestStoreRepository_TagCountsOncePerStore(t *testing.T) {
	db := New()
	db.PutStore(domain.Store{Name: "A", Tags: []string{"wifi", " wifi", "vegan", ""}})
	db.PutStore(domain.Store{Name: "B", Tags: []string{"wifi"}})

	counts, err := db.Stores().TagCounts(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []domain.TagCount{{Tag: "wifi", Count: 2}, {Tag: "vegan", Count: 1}}, counts)
}

func TestStoreRepository_ReturnsCopies(t *testing.T) {
	db := New()
	s := db.PutStore(domain.Store{Name: "A", Tags: []string{"Wifi"}})

	got, err := db.Stores().FindByID(context.Background(), s.ID)
	require.NoError(t, err)
	got.Tags[0] = "mutated"

	again, err := db.Stores().FindByID(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Wifi"}, again.Tags)
}

func TestUserRepository_ReplaceFavorites(t *testing.T) {
	db := New()
	db.PutUser(domain.User{ID: "u"})
	repo := db.Users()

	updated, err := repo.ReplaceFavorites(context.Background(), "u", 0, domain.NewFavoriteSet("s1"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.FavoritesRevision)

	_, err = repo.ReplaceFavorites(context.Background(), "u", 0, domain.NewFavoriteSet())
	assert.ErrorIs(t, err, domain.ErrFavoritesConflict)

	_, err = repo.ReplaceFavorites(context.Background(), "ghost", 0, domain.NewFavoriteSet())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	user, err := repo.GetUser(context.Background(), "u")
	require.NoError(t, err)
	assert.Equal(t, []string{"s1"}, user.Favorites.IDs())
}

func TestReviewRepository_CreateNeedsStore(t *testing.T) {
	db := New()
	review := &domain.Review{StoreID: "missing", Rating: 3}
	assert.ErrorIs(t, db.Reviews().Create(context.Background(), review), domain.ErrNotFound)

	store := db.PutStore(domain.Store{Name: "A"})
	review.StoreID = store.ID
	require.NoError(t, db.Reviews().Create(context.Background(), review))
	assert.NotEmpty(t, review.ID)

	grouped, err := db.Reviews().RatingsByStore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string][]int{store.ID: {3}}, grouped)
}

func TestRepositoriesHonourCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	db := New()

	_, err := db.Stores().CountStores(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = db.Users().GetUser(ctx, "u")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, db.Ping(ctx), context.Canceled)
}
