package public

import (
	"time"

	publicdomain "github.com/sngm3741/storefinder/api/internal/public/domain"
)

type locationResponse struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

type storeResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Slug        string           `json:"slug"`
	Description string           `json:"description,omitempty"`
	Tags        []string         `json:"tags"`
	Location    locationResponse `json:"location"`
	Author      string           `json:"author,omitempty"`
	Photo       string           `json:"photo,omitempty"`
	CreatedAt   *time.Time       `json:"created,omitempty"`
}

type storeListResponse struct {
	Items      []storeResponse `json:"items"`
	Page       int             `json:"page"`
	TotalPages int             `json:"pages"`
	Count      int             `json:"count"`
}

type redirectResponse struct {
	RedirectPage int    `json:"redirectPage"`
	Message      string `json:"message"`
}

type reviewResponse struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Rating    int       `json:"rating"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created"`
}

type storeDetailResponse struct {
	storeResponse
	Reviews []reviewResponse `json:"reviews"`
}

type tagCountResponse struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

type tagListResponse struct {
	Tags   []tagCountResponse `json:"tags"`
	Tag    string             `json:"tag,omitempty"`
	Stores []storeResponse    `json:"stores"`
}

type nearbyStoreResponse struct {
	ID          string           `json:"id"`
	Slug        string           `json:"slug"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Location    locationResponse `json:"location"`
	Photo       string           `json:"photo,omitempty"`
	Distance    float64          `json:"distance"`
}

type heartToggleResponse struct {
	StoreID   string   `json:"storeId"`
	Hearted   bool     `json:"hearted"`
	Hearts    []string `json:"hearts"`
	HeartSize int      `json:"heartCount"`
}

type rankedStoreResponse struct {
	storeResponse
	AverageRating float64 `json:"averageRating"`
	ReviewCount   int     `json:"reviewCount"`
}

type reviewCreateRequest struct {
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Text   string `json:"text" validate:"required,max=5000"`
}

func newLocationResponse(p publicdomain.GeoPoint) locationResponse {
	return locationResponse{Type: "Point", Coordinates: [2]float64{p.Lng, p.Lat}}
}

func buildStoreResponse(s publicdomain.Store) storeResponse {
	tags := s.Tags
	if tags == nil {
		tags = []string{}
	}
	resp := storeResponse{
		ID:          s.ID,
		Name:        s.Name,
		Slug:        s.Slug,
		Description: s.Description,
		Tags:        tags,
		Location:    newLocationResponse(s.Location),
		Author:      s.OwnerID,
		Photo:       s.Photo,
	}
	if !s.CreatedAt.IsZero() {
		created := s.CreatedAt
		resp.CreatedAt = &created
	}
	return resp
}

func buildStoreResponses(stores []publicdomain.Store) []storeResponse {
	items := make([]storeResponse, 0, len(stores))
	for _, s := range stores {
		items = append(items, buildStoreResponse(s))
	}
	return items
}

func buildReviewResponse(r publicdomain.Review) reviewResponse {
	return reviewResponse{
		ID:        r.ID,
		Author:    r.AuthorID,
		Rating:    r.Rating,
		Text:      r.Text,
		CreatedAt: r.CreatedAt,
	}
}
