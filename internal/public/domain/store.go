package domain

import (
	"strings"
	"time"
)

// Store represents a publicly visible store entity.
type Store struct {
	ID          string
	Name        string
	Slug        string
	Description string
	Tags        []string
	Location    GeoPoint
	OwnerID     string
	Photo       string
	CreatedAt   time.Time
}

// GeoPoint is a longitude/latitude pair in degrees, longitude first as in GeoJSON.
type GeoPoint struct {
	Lng float64
	Lat float64
}

// HasTag reports whether the store carries tag (exact match).
func (s Store) HasTag(tag string) bool {
	for _, t := range s.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// NearbyStore is the public projection returned by proximity search.
// It intentionally carries no owner or timestamp fields.
type NearbyStore struct {
	ID             string
	Slug           string
	Name           string
	Description    string
	Location       GeoPoint
	Photo          string
	DistanceMeters float64
}

// ProjectNearby strips a Store down to its public map fields.
func ProjectNearby(s Store, distanceMeters float64) NearbyStore {
	return NearbyStore{
		ID:             s.ID,
		Slug:           s.Slug,
		Name:           s.Name,
		Description:    s.Description,
		Location:       s.Location,
		Photo:          s.Photo,
		DistanceMeters: distanceMeters,
	}
}

// SearchHit pairs a store with the relevance score assigned by the repository.
type SearchHit struct {
	Store Store
	Score float64
}

// TagCount is a facet entry.
type TagCount struct {
	Tag   string
	Count int
}

// StoreDetail is a store joined with its reviews.
type StoreDetail struct {
	Store   Store
	Reviews []Review
}

// NormalizeTags trims, drops empties and de-duplicates while keeping order.
func NormalizeTags(tags []string) []string {
	result := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		result = append(result, tag)
	}
	return result
}
