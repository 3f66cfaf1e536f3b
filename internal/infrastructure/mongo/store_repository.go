package mongo

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sngm3741/storefinder/api/internal/public/domain"
)

// StoreRepository implements application.StoreRepository using MongoDB.
type StoreRepository struct {
	collection *mongo.Collection
}

// NewStoreRepository creates a new Mongo-backed store repository.
func NewStoreRepository(db *mongo.Database, collectionName string) *StoreRepository {
	return &StoreRepository{collection: db.Collection(collectionName)}
}

func (r *StoreRepository) CountStores(ctx context.Context) (int, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// ListStoresPage returns one window of stores, newest first.
func (r *StoreRepository) ListStoresPage(ctx context.Context, skip, limit int) ([]domain.Store, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created", Value: -1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))
	return r.findStores(ctx, bson.M{}, opts)
}

// TagCounts は tags を展開して件数を数える。並び順はアプリケーション層が決める。
func (r *StoreRepository) TagCounts(ctx context.Context) ([]domain.TagCount, error) {
	cursor, err := r.collection.Aggregate(ctx, tagCountPipeline())
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []TagCountDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	counts := make([]domain.TagCount, 0, len(docs))
	for _, doc := range docs {
		counts = append(counts, domain.TagCount{Tag: doc.Tag, Count: doc.Count})
	}
	return counts, nil
}

// tagCountPipeline は前後の空白を除いたタグを店舗ごとに 1 回だけ数える。
// 同じタグを重複して持つ店舗でも件数は 1 になる。
func tagCountPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$unwind", Value: "$tags"}},
		{{Key: "$project", Value: bson.M{"tag": bson.M{"$trim": bson.M{"input": "$tags"}}}}},
		{{Key: "$match", Value: bson.M{"tag": bson.M{"$ne": ""}}}},
		{{Key: "$group", Value: bson.M{"_id": bson.M{"store": "$_id", "tag": "$tag"}}}},
		{{Key: "$group", Value: bson.M{"_id": "$_id.tag", "count": bson.M{"$sum": 1}}}},
	}
}

// FindByTag は tag が空の場合、タグを 1 つ以上持つ店舗をすべて返す。
func (r *StoreRepository) FindByTag(ctx context.Context, tag string) ([]domain.Store, error) {
	filter := bson.M{"tags": tag}
	if tag == "" {
		filter = bson.M{"tags.0": bson.M{"$exists": true}}
	}
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	return r.findStores(ctx, filter, opts)
}

// TextSearch は name/description のテキストインデックスで検索し、textScore を付与して返す。
func (r *StoreRepository) TextSearch(ctx context.Context, query string) ([]domain.SearchHit, error) {
	score := bson.M{"$meta": "textScore"}
	opts := options.Find().
		SetProjection(bson.M{"score": score}).
		SetSort(bson.D{{Key: "score", Value: score}})

	cursor, err := r.collection.Find(ctx, bson.M{"$text": bson.M{"$search": query}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	hits := make([]domain.SearchHit, 0)
	for cursor.Next(ctx) {
		var doc SearchStoreDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		hits = append(hits, domain.SearchHit{Store: mapStoreDocument(doc.StoreDocument), Score: doc.Score})
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return hits, nil
}

// Near は $geoNear で球面距離順に近隣店舗を返す。公開フィールドのみ射影する。
func (r *StoreRepository) Near(ctx context.Context, point domain.GeoPoint, maxDistanceMeters float64, limit int) ([]domain.NearbyStore, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$geoNear", Value: bson.M{
			"near":          newGeoJSONPoint(point),
			"distanceField": "distance",
			"maxDistance":   maxDistanceMeters,
			"spherical":     true,
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "distance", Value: 1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$project", Value: bson.M{
			"slug":        1,
			"name":        1,
			"description": 1,
			"location":    1,
			"photo":       1,
			"distance":    1,
		}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []NearStoreDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	result := make([]domain.NearbyStore, 0, len(docs))
	for _, doc := range docs {
		result = append(result, domain.NearbyStore{
			ID:             doc.ID.Hex(),
			Slug:           doc.Slug,
			Name:           doc.Name,
			Description:    doc.Description,
			Location:       doc.Location.toDomain(),
			Photo:          doc.Photo,
			DistanceMeters: doc.Distance,
		})
	}
	return result, nil
}

// FindByIDs は不正な ID を無視し、存在する店舗のみ返す。
func (r *StoreRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Store, error) {
	objectIDs := toObjectIDs(ids)
	if len(objectIDs) == 0 {
		return []domain.Store{}, nil
	}
	return r.findStores(ctx, bson.M{"_id": bson.M{"$in": objectIDs}}, options.Find())
}

// FindByID returns a single store by its identifier.
func (r *StoreRepository) FindByID(ctx context.Context, id string) (*domain.Store, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": objectID})
}

func (r *StoreRepository) FindBySlug(ctx context.Context, slug string) (*domain.Store, error) {
	return r.findOne(ctx, bson.M{"slug": strings.TrimSpace(slug)})
}

func (r *StoreRepository) findOne(ctx context.Context, filter bson.M) (*domain.Store, error) {
	var doc StoreDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	store := mapStoreDocument(doc)
	return &store, nil
}

func (r *StoreRepository) findStores(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.Store, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	stores := make([]domain.Store, 0)
	for cursor.Next(ctx) {
		var doc StoreDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		stores = append(stores, mapStoreDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return stores, nil
}

func mapStoreDocument(doc StoreDocument) domain.Store {
	createdAt := time.Time{}
	if doc.CreatedAt != nil {
		createdAt = *doc.CreatedAt
	}
	return domain.Store{
		ID:          doc.ID.Hex(),
		Name:        doc.Name,
		Slug:        doc.Slug,
		Description: doc.Description,
		Tags:        append([]string{}, doc.Tags...),
		Location:    doc.Location.toDomain(),
		OwnerID:     doc.Author,
		Photo:       doc.Photo,
		CreatedAt:   createdAt,
	}
}

func toObjectIDs(ids []string) []primitive.ObjectID {
	objectIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
		if err != nil {
			continue
		}
		objectIDs = append(objectIDs, objectID)
	}
	return objectIDs
}
