package mongo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	admindomain "github.com/sngm3741/storefinder/api/internal/admin/domain"
	"github.com/sngm3741/storefinder/api/internal/public/domain"
)

func TestStoreDocument_RoundTripsThroughBSON(t *testing.T) {
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	doc := StoreDocument{
		ID:          primitive.NewObjectID(),
		Name:        "Kiln Coffee",
		Slug:        "kiln-coffee",
		Description: "Roastery",
		Tags:        []string{"Wifi"},
		Location:    newGeoJSONPoint(domain.GeoPoint{Lng: -79.38, Lat: 43.65}),
		Author:      "user-1",
		CreatedAt:   &created,
	}
	raw, err := bson.Marshal(doc)
	require.NoError(t, err)

	var decoded struct {
		Location struct {
			Type        string    `bson:"type"`
			Coordinates []float64 `bson:"coordinates"`
		} `bson:"location"`
		Author string `bson:"author"`
	}
	require.NoError(t, bson.Unmarshal(raw, &decoded))
	assert.Equal(t, "Point", decoded.Location.Type)
	assert.Equal(t, []float64{-79.38, 43.65}, decoded.Location.Coordinates)
	assert.Equal(t, "user-1", decoded.Author)

	store := mapStoreDocument(doc)
	assert.Equal(t, doc.ID.Hex(), store.ID)
	assert.Equal(t, domain.GeoPoint{Lng: -79.38, Lat: 43.65}, store.Location)
	assert.Equal(t, "user-1", store.OwnerID)
	assert.Equal(t, created, store.CreatedAt)
}

func TestGeoJSONPoint_MissingCoordinates(t *testing.T) {
	assert.Equal(t, domain.GeoPoint{}, GeoJSONPoint{Type: "Point"}.toDomain())
}

func TestBuildStoreDocument_OwnerOnlyOnCreate(t *testing.T) {
	store := &admindomain.Store{
		Name:    "Kiln",
		Slug:    "kiln",
		OwnerID: "owner",
	}
	created := buildStoreDocument(store, true)
	assert.Equal(t, "owner", created["author"])
	assert.Contains(t, created, "created")
	assert.Equal(t, []string{}, created["tags"])

	updated := buildStoreDocument(store, false)
	assert.NotContains(t, updated, "author")
	assert.NotContains(t, updated, "created")
}

func TestUserKey(t *testing.T) {
	id := primitive.NewObjectID()
	assert.Equal(t, id, userKey(id.Hex()))
	assert.Equal(t, "auth0|abc", userKey(" auth0|abc "))
}

func TestToObjectIDs_SkipsInvalid(t *testing.T) {
	id := primitive.NewObjectID()
	assert.Equal(t, []primitive.ObjectID{id}, toObjectIDs([]string{"nope", id.Hex(), ""}))
}

func TestTagCountPipeline_CountsEachStoreOnce(t *testing.T) {
	stages := tagCountPipeline()
	require.Len(t, stages, 5)

	keys := make([]string, 0, len(stages))
	for _, stage := range stages {
		require.Len(t, stage, 1)
		keys = append(keys, stage[0].Key)
	}
	assert.Equal(t, []string{"$unwind", "$project", "$match", "$group", "$group"}, keys)

	perStore := stages[3][0].Value.(bson.M)
	assert.Equal(t, bson.M{"store": "$_id", "tag": "$tag"}, perStore["_id"])
	_, counted := perStore["count"]
	assert.False(t, counted, "first group only de-duplicates")

	total := stages[4][0].Value.(bson.M)
	assert.Equal(t, "$_id.tag", total["_id"])
	assert.Equal(t, bson.M{"$sum": 1}, total["count"])
}
