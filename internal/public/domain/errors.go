package domain

import "errors"

var (
	// ErrNotFound is returned when a requested store or user does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCoordinates is returned when proximity input is not a finite, in-range coordinate.
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	// ErrRepositoryUnavailable wraps any storage failure.
	ErrRepositoryUnavailable = errors.New("repository unavailable")
	// ErrFavoritesConflict is returned by a favorites write whose revision is stale.
	ErrFavoritesConflict = errors.New("favorites revision conflict")
	// ErrInvalidRating is returned for ratings outside [MinRating, MaxRating].
	ErrInvalidRating = errors.New("rating out of range")
	// ErrInvalidReview is returned for reviews missing required fields.
	ErrInvalidReview = errors.New("invalid review")
)
