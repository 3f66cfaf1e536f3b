package domain

import "time"

const (
	// MinRating is the lowest accepted review rating.
	MinRating = 1
	// MaxRating is the highest accepted review rating.
	MaxRating = 5
	// TopStoresMinAverage is the cutoff below which stores are left out of the top list.
	TopStoresMinAverage = 3.0
)

// Review is a rating+text record authored by a user about a store.
type Review struct {
	ID        string
	StoreID   string
	AuthorID  string
	Rating    int
	Text      string
	CreatedAt time.Time
}

// ValidRating reports whether rating is inside [MinRating, MaxRating].
func ValidRating(rating int) bool {
	return rating >= MinRating && rating <= MaxRating
}

// RankedStore is a store with its aggregated review metrics.
type RankedStore struct {
	Store         Store
	AverageRating float64
	ReviewCount   int
}
