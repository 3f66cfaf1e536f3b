package breaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sngm3741/storefinder/api/internal/infrastructure/memory"
	"github.com/sngm3741/storefinder/api/internal/public/domain"
)

var errDown = errors.New("connection refused")

type failingStores struct {
	*memory.StoreRepository
	err   error
	calls int
}

func (f *failingStores) CountStores(ctx context.Context) (int, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	return f.StoreRepository.CountStores(ctx)
}

func TestGuard_WrapsStorageFailures(t *testing.T) {
	g := New(Config{Name: "wrap", FailureThreshold: 10, OpenTimeout: time.Minute}, nil)
	stores := g.Stores(&failingStores{StoreRepository: memory.New().Stores(), err: errDown})

	_, err := stores.CountStores(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRepositoryUnavailable)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestGuard_OpensAfterConsecutiveFailures(t *testing.T) {
	g := New(Config{Name: "open", FailureThreshold: 2, OpenTimeout: time.Minute}, nil)
	inner := &failingStores{StoreRepository: memory.New().Stores(), err: errDown}
	stores := g.Stores(inner)

	for i := 0; i < 2; i++ {
		_, err := stores.CountStores(context.Background())
		require.ErrorIs(t, err, domain.ErrRepositoryUnavailable)
	}
	assert.Equal(t, "open", g.State())

	_, err := stores.CountStores(context.Background())
	assert.ErrorIs(t, err, domain.ErrRepositoryUnavailable)
	assert.Equal(t, 2, inner.calls, "open breaker must not reach the repository")
}

func TestGuard_NotFoundPassesThrough(t *testing.T) {
	g := New(Config{Name: "miss", FailureThreshold: 1, OpenTimeout: time.Minute}, nil)
	stores := g.Stores(memory.New().Stores())

	for i := 0; i < 3; i++ {
		_, err := stores.FindBySlug(context.Background(), "nowhere")
		require.ErrorIs(t, err, domain.ErrNotFound)
		assert.NotErrorIs(t, err, domain.ErrRepositoryUnavailable)
	}
	assert.Equal(t, "closed", g.State())
}

func TestGuard_CancelledContext(t *testing.T) {
	g := New(Config{Name: "cancel"}, nil)
	stores := g.Stores(memory.New().Stores())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := stores.CountStores(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGuard_PassesValues(t *testing.T) {
	db := memory.New()
	db.PutStore(domain.Store{Name: "A", Slug: "a"})
	g := New(Config{Name: "values"}, nil)

	count, err := g.Stores(db.Stores()).CountStores(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
