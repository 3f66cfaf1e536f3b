package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotOwner is returned when someone other than the owner edits a store.
	ErrNotOwner = errors.New("store is owned by another user")
	// ErrSlugTaken is returned by repositories when a slug is already in use.
	ErrSlugTaken = errors.New("slug already in use")
	// ErrInvalidStore wraps every validation failure from NewStore.
	ErrInvalidStore = errors.New("invalid store")
)

// Store aggregates data required for admin operations.
type Store struct {
	ID          string
	Name        StoreName
	Slug        Slug
	Description Description
	Tags        TagList
	Location    Location
	OwnerID     string
	Photo       PhotoRef
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewStore validates raw input into a Store without an ID or slug.
func NewStore(name, description string, tags []string, lng, lat float64, photo string) (Store, error) {
	store, err := newStore(name, description, tags, lng, lat, photo)
	if err != nil {
		return Store{}, fmt.Errorf("%w: %v", ErrInvalidStore, err)
	}
	return store, nil
}

func newStore(name, description string, tags []string, lng, lat float64, photo string) (Store, error) {
	storeName, err := NewStoreName(name)
	if err != nil {
		return Store{}, err
	}
	desc, err := NewDescription(description)
	if err != nil {
		return Store{}, err
	}
	tagList, err := NewTagList(tags)
	if err != nil {
		return Store{}, err
	}
	location, err := NewLocation(lng, lat)
	if err != nil {
		return Store{}, err
	}
	photoRef, err := NewPhotoRef(photo)
	if err != nil {
		return Store{}, err
	}
	return Store{
		Name:        storeName,
		Description: desc,
		Tags:        tagList,
		Location:    location,
		Photo:       photoRef,
	}, nil
}
