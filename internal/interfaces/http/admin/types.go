package admin

import (
	"time"

	admindomain "github.com/sngm3741/storefinder/api/internal/admin/domain"
	adminapp "github.com/sngm3741/storefinder/api/internal/admin/application"
)

// storeUpsertRequest は作成・更新共通の入力。
type storeUpsertRequest struct {
	Name        string          `json:"name" validate:"required,max=120"`
	Description string          `json:"description" validate:"max=2000"`
	Tags        []string        `json:"tags" validate:"max=20,dive,max=40"`
	Location    locationRequest `json:"location"`
	Photo       string          `json:"photo" validate:"omitempty,max=512"`
}

type locationRequest struct {
	Lng *float64 `json:"lng" validate:"required,longitude"`
	Lat *float64 `json:"lat" validate:"required,latitude"`
}

func (req storeUpsertRequest) command() adminapp.UpsertStoreCommand {
	return adminapp.UpsertStoreCommand{
		Name:        req.Name,
		Description: req.Description,
		Tags:        req.Tags,
		Lng:         *req.Location.Lng,
		Lat:         *req.Location.Lat,
		Photo:       req.Photo,
	}
}

type adminStoreResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	Tags        []string  `json:"tags"`
	Location    location  `json:"location"`
	Author      string    `json:"author"`
	Photo       string    `json:"photo,omitempty"`
	CreatedAt   time.Time `json:"created"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type location struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

func adminStoreDomainToResponse(store admindomain.Store) adminStoreResponse {
	tags := store.Tags.Strings()
	if tags == nil {
		tags = []string{}
	}
	return adminStoreResponse{
		ID:          store.ID,
		Name:        store.Name.String(),
		Slug:        store.Slug.String(),
		Description: store.Description.String(),
		Tags:        tags,
		Location:    location{Type: "Point", Coordinates: [2]float64{store.Location.Lng, store.Location.Lat}},
		Author:      store.OwnerID,
		Photo:       store.Photo.String(),
		CreatedAt:   store.CreatedAt,
		UpdatedAt:   store.UpdatedAt,
	}
}
