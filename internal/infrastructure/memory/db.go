// Package memory keeps stores, reviews and users in process memory. It backs
// the engine tests and the memory storage driver used for local runs.
package memory

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sngm3741/storefinder/api/internal/public/domain"
)

// DB is the shared state behind every memory repository.
type DB struct {
	mu      sync.RWMutex
	stores  map[string]domain.Store
	reviews []domain.Review
	users   map[string]domain.User
}

// New returns an empty DB.
func New() *DB {
	return &DB{
		stores: make(map[string]domain.Store),
		users:  make(map[string]domain.User),
	}
}

// Stores returns the public store repository.
func (db *DB) Stores() *StoreRepository {
	return &StoreRepository{db: db}
}

// Reviews returns the review repository.
func (db *DB) Reviews() *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Users returns the user repository.
func (db *DB) Users() *UserRepository {
	return &UserRepository{db: db}
}

// AdminStores returns the admin store repository.
func (db *DB) AdminStores() *AdminStoreRepository {
	return &AdminStoreRepository{db: db}
}

// PutStore inserts or replaces a store. An empty ID gets a fresh ObjectID hex.
func (db *DB) PutStore(store domain.Store) domain.Store {
	db.mu.Lock()
	defer db.mu.Unlock()
	if store.ID == "" {
		store.ID = newID()
	}
	store.Tags = append([]string{}, store.Tags...)
	db.stores[store.ID] = store
	return store
}

// PutUser inserts or replaces a user.
func (db *DB) PutUser(user domain.User) domain.User {
	db.mu.Lock()
	defer db.mu.Unlock()
	if user.ID == "" {
		user.ID = newID()
	}
	user.Favorites = domain.NewFavoriteSet(user.Favorites.IDs()...)
	db.users[user.ID] = user
	return user
}

// PutReview appends a review without checking that its store exists.
func (db *DB) PutReview(review domain.Review) domain.Review {
	db.mu.Lock()
	defer db.mu.Unlock()
	if review.ID == "" {
		review.ID = newID()
	}
	db.reviews = append(db.reviews, review)
	return review
}

// Ping reports only context cancellation.
func (db *DB) Ping(ctx context.Context) error {
	return ctx.Err()
}

func newID() string {
	return primitive.NewObjectID().Hex()
}

func copyStore(s domain.Store) domain.Store {
	s.Tags = append([]string{}, s.Tags...)
	return s
}
