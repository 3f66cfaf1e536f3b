package application

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/sngm3741/storefinder/api/internal/public/domain"
)

// PlanPage turns a raw page parameter into either a listing window or a redirect.
func (s *storeQueryService) PlanPage(ctx context.Context, requested string) (domain.PagePlan, error) {
	page, ok := domain.ParsePageRequest(requested)
	if !ok || page < 1 {
		return domain.PagePlan{
			Outcome:    domain.PageRedirect,
			Reason:     domain.RedirectBelowFirst,
			Requested:  requested,
			RedirectTo: 1,
		}, nil
	}

	var (
		count  int
		stores []domain.Store
	)
	// A page whose offset does not fit in an int is past any real collection.
	addressable := page <= math.MaxInt/domain.PageSize
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		count, err = s.stores.CountStores(gctx)
		return err
	})
	if addressable {
		g.Go(func() error {
			var err error
			stores, err = s.stores.ListStoresPage(gctx, (page-1)*domain.PageSize, domain.PageSize)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return domain.PagePlan{}, err
	}

	totalPages := domain.TotalPages(count)
	// An empty collection renders page 1 empty instead of redirecting to itself.
	if len(stores) == 0 && !(page == 1 && count == 0) {
		target := totalPages
		if target < 1 {
			target = 1
		}
		return domain.PagePlan{
			Outcome:    domain.PageRedirect,
			Reason:     domain.RedirectBeyondLast,
			Requested:  requested,
			RedirectTo: target,
			TotalPages: totalPages,
			Count:      count,
		}, nil
	}

	return domain.PagePlan{
		Outcome:    domain.PageListing,
		Requested:  requested,
		Stores:     stores,
		Page:       page,
		TotalPages: totalPages,
		Count:      count,
	}, nil
}
