// Package seed generates a reproducible sample dataset of stores, reviews and users.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	admindomain "github.com/sngm3741/storefinder/api/internal/admin/domain"
	"github.com/sngm3741/storefinder/api/internal/infrastructure/memory"
	"github.com/sngm3741/storefinder/api/internal/public/domain"
)

// Options controls dataset size and randomness.
type Options struct {
	Stores     int
	Users      int
	Reviews    int
	RandomSeed int64
	// Center is the point the stores are scattered around.
	Center domain.GeoPoint
	// SpreadDegrees bounds each coordinate's offset from Center.
	SpreadDegrees float64
	Now           time.Time
}

// DefaultOptions は downtown Toronto を中心に 16 店舗を生成する設定。
func DefaultOptions() Options {
	return Options{
		Stores:        16,
		Users:         4,
		Reviews:       48,
		RandomSeed:    20240301,
		Center:        domain.GeoPoint{Lng: -79.3832, Lat: 43.6532},
		SpreadDegrees: 0.3,
		Now:           time.Now().UTC(),
	}
}

// Dataset is the generated data. IDs are ObjectID hex strings.
type Dataset struct {
	Stores  []domain.Store
	Reviews []domain.Review
	Users   []domain.User
}

var (
	nameAdjectives = []string{"Golden", "Little", "Corner", "Harbour", "Maple", "Copper", "Midnight", "Union"}
	nameNouns      = []string{"Bakery", "Coffee", "Kitchen", "Books", "Noodle Bar", "Grocer", "Taproom", "Diner"}
	tagPool        = []string{"Wifi", "Open Late", "Family Friendly", "Licensed", "Vegetarian", "Vegan"}
	reviewTexts    = []string{
		"Friendly staff and quick service.",
		"Would come back again.",
		"Decent, but the wait was long.",
		"Best in the neighbourhood.",
		"Not bad for the price.",
	}
)

// Generate builds a dataset. Equal Options produce equal content apart from IDs.
func Generate(opts Options) Dataset {
	rng := rand.New(rand.NewSource(opts.RandomSeed))
	now := opts.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	users := make([]domain.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		users = append(users, domain.User{ID: newID(), Favorites: domain.NewFavoriteSet()})
	}

	stores := make([]domain.Store, 0, opts.Stores)
	slugs := make([]string, 0, opts.Stores)
	for i := 0; i < opts.Stores; i++ {
		name := fmt.Sprintf("%s %s", nameAdjectives[rng.Intn(len(nameAdjectives))], nameNouns[rng.Intn(len(nameNouns))])
		base := admindomain.Slugify(name)
		slug := base.Disambiguate(slugs).String()
		slugs = append(slugs, slug)

		owner := ""
		if len(users) > 0 {
			owner = users[rng.Intn(len(users))].ID
		}
		stores = append(stores, domain.Store{
			ID:          newID(),
			Name:        name,
			Slug:        slug,
			Description: fmt.Sprintf("%s serving the neighbourhood since %d.", name, 1990+rng.Intn(30)),
			Tags:        pickTags(rng),
			Location: domain.GeoPoint{
				Lng: opts.Center.Lng + (rng.Float64()*2-1)*opts.SpreadDegrees,
				Lat: opts.Center.Lat + (rng.Float64()*2-1)*opts.SpreadDegrees,
			},
			OwnerID:   owner,
			CreatedAt: now.Add(-time.Duration(opts.Stores-i) * time.Hour),
		})
	}

	reviews := make([]domain.Review, 0, opts.Reviews)
	if len(stores) > 0 && len(users) > 0 {
		for i := 0; i < opts.Reviews; i++ {
			store := stores[rng.Intn(len(stores))]
			reviews = append(reviews, domain.Review{
				ID:        newID(),
				StoreID:   store.ID,
				AuthorID:  users[rng.Intn(len(users))].ID,
				Rating:    domain.MinRating + rng.Intn(domain.MaxRating-domain.MinRating+1),
				Text:      reviewTexts[rng.Intn(len(reviewTexts))],
				CreatedAt: store.CreatedAt.Add(time.Duration(1+rng.Intn(60)) * time.Minute),
			})
		}
	}

	for i := range users {
		if len(stores) == 0 {
			break
		}
		users[i].Favorites = domain.NewFavoriteSet(stores[rng.Intn(len(stores))].ID)
	}

	return Dataset{Stores: stores, Reviews: reviews, Users: users}
}

func pickTags(rng *rand.Rand) []string {
	tags := make([]string, 0, 3)
	for _, i := range rng.Perm(len(tagPool))[:rng.Intn(4)] {
		tags = append(tags, tagPool[i])
	}
	return tags
}

func newID() string {
	return primitive.NewObjectID().Hex()
}

// LoadMemory writes the dataset into db.
func (d Dataset) LoadMemory(db *memory.DB) {
	for _, s := range d.Stores {
		db.PutStore(s)
	}
	for _, r := range d.Reviews {
		db.PutReview(r)
	}
	for _, u := range d.Users {
		db.PutUser(u)
	}
}
