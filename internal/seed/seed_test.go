package seed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sngm3741/storefinder/api/internal/infrastructure/memory"
	"github.com/sngm3741/storefinder/api/internal/public/domain"
)

func TestGenerate(t *testing.T) {
	opts := DefaultOptions()
	opts.Now = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	data := Generate(opts)

	require.Len(t, data.Stores, opts.Stores)
	require.Len(t, data.Users, opts.Users)
	require.Len(t, data.Reviews, opts.Reviews)

	storeIDs := map[string]struct{}{}
	slugs := map[string]struct{}{}
	for _, s := range data.Stores {
		storeIDs[s.ID] = struct{}{}
		_, dup := slugs[s.Slug]
		assert.False(t, dup, "slug %s repeated", s.Slug)
		slugs[s.Slug] = struct{}{}
		assert.True(t, s.Location.Valid())
		assert.LessOrEqual(t, len(s.Tags), 3)
	}
	for _, r := range data.Reviews {
		assert.Contains(t, storeIDs, r.StoreID)
		assert.True(t, domain.ValidRating(r.Rating))
	}
	for _, u := range data.Users {
		for _, id := range u.Favorites.IDs() {
			assert.Contains(t, storeIDs, id)
		}
	}
}

func TestGenerate_Reproducible(t *testing.T) {
	opts := DefaultOptions()
	a, b := Generate(opts), Generate(opts)
	for i := range a.Stores {
		assert.Equal(t, a.Stores[i].Name, b.Stores[i].Name)
		assert.Equal(t, a.Stores[i].Slug, b.Stores[i].Slug)
		assert.Equal(t, a.Stores[i].Location, b.Stores[i].Location)
	}
}

func TestLoadMemory(t *testing.T) {
	db := memory.New()
	data := Generate(DefaultOptions())
	data.LoadMemory(db)

	count, err := db.Stores().CountStores(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(data.Stores), count)

	user, err := db.Users().GetUser(context.Background(), data.Users[0].ID)
	require.NoError(t, err)
	assert.Equal(t, data.Users[0].Favorites.IDs(), user.Favorites.IDs())
}
