package domain

import "sort"

// User carries the parts of a user record the discovery engine reads and writes.
type User struct {
	ID        string
	Favorites FavoriteSet
	// FavoritesRevision increases by one on every committed favorites write.
	FavoritesRevision int64
}

// FavoriteSet is a set of favorited store IDs.
type FavoriteSet map[string]struct{}

// NewFavoriteSet builds a set from ids, ignoring empties and duplicates.
func NewFavoriteSet(ids ...string) FavoriteSet {
	set := make(FavoriteSet, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		set[id] = struct{}{}
	}
	return set
}

// Contains reports membership of id.
func (s FavoriteSet) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of members.
func (s FavoriteSet) Len() int {
	return len(s)
}

// Toggle returns a copy of the set with id removed if present or added if absent,
// and whether id is a member of the returned set. The receiver is not modified.
func (s FavoriteSet) Toggle(id string) (FavoriteSet, bool) {
	next := make(FavoriteSet, len(s)+1)
	for member := range s {
		next[member] = struct{}{}
	}
	if _, ok := next[id]; ok {
		delete(next, id)
		return next, false
	}
	next[id] = struct{}{}
	return next, true
}

// IDs returns the members in ascending order.
func (s FavoriteSet) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// FavoriteToggle is the result of a committed toggle.
type FavoriteToggle struct {
	UserID    string
	StoreID   string
	Favorited bool
	Favorites FavoriteSet
}
