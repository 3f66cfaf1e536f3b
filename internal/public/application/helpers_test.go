package application_test

import (
	"fmt"
	"time"

	"github.com/sngm3741/storefinder/api/internal/infrastructure/memory"
	"github.com/sngm3741/storefinder/api/internal/public/application"
	"github.com/sngm3741/storefinder/api/internal/public/domain"
)

var baseTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newQueries(db *memory.DB) application.StoreQueryService {
	return application.NewStoreQueryService(db.Stores(), db.Reviews())
}

// putNumbered adds n stores created one hour apart, named "S1".."Sn".
func putNumbered(db *memory.DB, n int) []domain.Store {
	stores := make([]domain.Store, 0, n)
	for i := 1; i <= n; i++ {
		stores = append(stores, db.PutStore(domain.Store{
			Name:      fmt.Sprintf("S%d", i),
			Slug:      fmt.Sprintf("s%d", i),
			CreatedAt: baseTime.Add(time.Duration(i) * time.Hour),
		}))
	}
	return stores
}

func names(stores []domain.Store) []string {
	out := make([]string, 0, len(stores))
	for _, s := range stores {
		out = append(out, s.Name)
	}
	return out
}
