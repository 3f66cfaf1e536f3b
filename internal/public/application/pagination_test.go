package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sngm3741/storefinder/api/internal/infrastructure/memory"
	"github.com/sngm3741/storefinder/api/internal/public/application"
	"github.com/sngm3741/storefinder/api/internal/public/domain"
)

func TestPlanPage_FiveStores(t *testing.T) {
	db := memory.New()
	putNumbered(db, 5)
	svc := newQueries(db)

	plan, err := svc.PlanPage(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, domain.PageListing, plan.Outcome)
	assert.Equal(t, []string{"S5", "S4", "S3", "S2", "S1"}, names(plan.Stores))
	assert.Equal(t, 1, plan.Page)
	assert.Equal(t, 1, plan.TotalPages)
	assert.Equal(t, 5, plan.Count)

	plan, err = svc.PlanPage(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, domain.PageRedirect, plan.Outcome)
	assert.Equal(t, domain.RedirectBeyondLast, plan.Reason)
	assert.Equal(t, 1, plan.RedirectTo)
}

func TestPlanPage_AbsentMeansFirst(t *testing.T) {
	db := memory.New()
	putNumbered(db, 3)

	plan, err := newQueries(db).PlanPage(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, domain.PageListing, plan.Outcome)
	assert.Equal(t, 1, plan.Page)
}

func TestPlanPage_BelowFirstRedirects(t *testing.T) {
	db := memory.New()
	putNumbered(db, 8)
	svc := newQueries(db)

	for _, raw := range []string{"0", "-3", "abc", "1.5"} {
		t.Run(raw, func(t *testing.T) {
			plan, err := svc.PlanPage(context.Background(), raw)
			require.NoError(t, err)
			assert.Equal(t, domain.PageRedirect, plan.Outcome)
			assert.Equal(t, domain.RedirectBelowFirst, plan.Reason)
			assert.Equal(t, 1, plan.RedirectTo)
			assert.Equal(t, raw, plan.Requested)
			assert.Empty(t, plan.Stores)
		})
	}
}

func TestPlanPage_BeyondLastRedirectsToLast(t *testing.T) {
	db := memory.New()
	putNumbered(db, 13)
	svc := newQueries(db)

	plan, err := svc.PlanPage(context.Background(), "3")
	require.NoError(t, err)
	require.Equal(t, domain.PageListing, plan.Outcome)
	assert.Equal(t, []string{"S1"}, names(plan.Stores))

	for _, raw := range []string{"4", "99", "3074457345618258603", "9223372036854775807"} {
		plan, err = svc.PlanPage(context.Background(), raw)
		require.NoError(t, err, raw)
		assert.Equal(t, domain.PageRedirect, plan.Outcome, raw)
		assert.Equal(t, domain.RedirectBeyondLast, plan.Reason, raw)
		assert.Equal(t, 3, plan.RedirectTo, raw)
		assert.Equal(t, 3, plan.TotalPages, raw)
		assert.Empty(t, plan.Stores, raw)
	}
}

func TestPlanPage_HugePageNeverReachesRepository(t *testing.T) {
	db := memory.New()
	putNumbered(db, 5)
	stores := &recordingStores{StoreRepository: db.Stores()}
	svc := application.NewStoreQueryService(stores, db.Reviews())

	plan, err := svc.PlanPage(context.Background(), "3074457345618258603")
	require.NoError(t, err)
	assert.Equal(t, domain.PageRedirect, plan.Outcome)
	assert.Equal(t, 1, plan.RedirectTo)
	assert.Empty(t, stores.skips, "no window fetch for an offset that overflows")
}

type recordingStores struct {
	*memory.StoreRepository
	skips []int
}

func (r *recordingStores) ListStoresPage(ctx context.Context, skip, limit int) ([]domain.Store, error) {
	r.skips = append(r.skips, skip)
	return r.StoreRepository.ListStoresPage(ctx, skip, limit)
}

func TestPlanPage_EmptyRepository(t *testing.T) {
	svc := newQueries(memory.New())

	plan, err := svc.PlanPage(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, domain.PageListing, plan.Outcome)
	assert.Empty(t, plan.Stores)
	assert.Equal(t, 0, plan.TotalPages)

	plan, err = svc.PlanPage(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, domain.PageRedirect, plan.Outcome)
	assert.Equal(t, 1, plan.RedirectTo)
}

type unavailableStores struct {
	*memory.StoreRepository
}

func (unavailableStores) CountStores(context.Context) (int, error) {
	return 0, domain.ErrRepositoryUnavailable
}

func TestPlanPage_PropagatesRepositoryFailure(t *testing.T) {
	db := memory.New()
	putNumbered(db, 2)
	svc := application.NewStoreQueryService(unavailableStores{db.Stores()}, db.Reviews())

	plan, err := svc.PlanPage(context.Background(), "1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrRepositoryUnavailable))
	assert.Empty(t, plan.Stores)
}
