package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	admindomain "github.com/sngm3741/storefinder/api/internal/admin/domain"
	"github.com/sngm3741/storefinder/api/internal/public/domain"
)

// AdminStoreRepository は管理者向け Store 集約の Mongo 実装。
type AdminStoreRepository struct {
	collection *mongo.Collection
}

// NewAdminStoreRepository は MongoDB コレクションを束縛した AdminStoreRepository を生成する。
func NewAdminStoreRepository(db *mongo.Database, collection string) *AdminStoreRepository {
	return &AdminStoreRepository{collection: db.Collection(collection)}
}

// FindByID は 16 進 ObjectID を受け取り単一店舗を VO 化して返す。
func (r *AdminStoreRepository) FindByID(ctx context.Context, id string) (*admindomain.Store, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrNotFound
	}
	var doc StoreDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	store := mapAdminStore(doc)
	return &store, nil
}

// SlugsWithBase は base または base-N に一致する slug を列挙する。excludeID の店舗は除外する。
func (r *AdminStoreRepository) SlugsWithBase(ctx context.Context, base admindomain.Slug, excludeID string) ([]string, error) {
	pattern := fmt.Sprintf(`^%s(-\d+)?$`, regexp.QuoteMeta(base.String()))
	filter := bson.M{"slug": primitive.Regex{Pattern: pattern}}
	if objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(excludeID)); err == nil {
		filter["_id"] = bson.M{"$ne": objectID}
	}

	opts := options.Find().SetProjection(bson.M{"slug": 1})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	slugs := make([]string, 0)
	for cursor.Next(ctx) {
		var doc struct {
			Slug string `bson:"slug"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		slugs = append(slugs, doc.Slug)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return slugs, nil
}

// Create は新しい ObjectID を払い出して Store を挿入する。slug の一意制約違反は ErrSlugTaken になる。
func (r *AdminStoreRepository) Create(ctx context.Context, store *admindomain.Store) error {
	objectID := primitive.NewObjectID()
	payload := buildStoreDocument(store, true)
	payload["_id"] = objectID
	if _, err := r.collection.InsertOne(ctx, payload); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return admindomain.ErrSlugTaken
		}
		return err
	}
	store.ID = objectID.Hex()
	return nil
}

// Update は値オブジェクト経由で整形したデータのみを $set する。author と created は書き換えない。
func (r *AdminStoreRepository) Update(ctx context.Context, store *admindomain.Store) error {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(store.ID))
	if err != nil {
		return domain.ErrNotFound
	}
	update := buildStoreDocument(store, false)
	result, err := r.collection.UpdateByID(ctx, objectID, bson.M{"$set": update})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return admindomain.ErrSlugTaken
		}
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// buildStoreDocument は保存用の bson.M を組み立てる。includeCreated が true の場合のみ所有者と作成日時を含める。
func buildStoreDocument(store *admindomain.Store, includeCreated bool) bson.M {
	tags := store.Tags.Strings()
	if tags == nil {
		tags = []string{}
	}
	doc := bson.M{
		"name":        store.Name.String(),
		"slug":        store.Slug.String(),
		"description": store.Description.String(),
		"tags":        tags,
		"location":    newGeoJSONPoint(domain.GeoPoint{Lng: store.Location.Lng, Lat: store.Location.Lat}),
		"photo":       store.Photo.String(),
		"updatedAt":   store.UpdatedAt,
	}
	if includeCreated {
		doc["author"] = store.OwnerID
		doc["created"] = store.CreatedAt
	}
	return doc
}

// mapAdminStore は Mongo ドキュメントを Admin ドメインの Store に変換する。
// 保存済みデータは書き込み時に検証済みのため、ここでは再検証しない。
func mapAdminStore(doc StoreDocument) admindomain.Store {
	tags := make(admindomain.TagList, 0, len(doc.Tags))
	for _, tag := range doc.Tags {
		tags = append(tags, admindomain.Tag(tag))
	}
	location := doc.Location.toDomain()
	store := admindomain.Store{
		ID:          doc.ID.Hex(),
		Name:        admindomain.StoreName(doc.Name),
		Slug:        admindomain.Slug(doc.Slug),
		Description: admindomain.Description(doc.Description),
		Tags:        tags,
		Location:    admindomain.Location{Lng: location.Lng, Lat: location.Lat},
		OwnerID:     doc.Author,
		Photo:       admindomain.PhotoRef(doc.Photo),
	}
	if doc.CreatedAt != nil {
		store.CreatedAt = *doc.CreatedAt
	}
	if doc.UpdatedAt != nil {
		store.UpdatedAt = *doc.UpdatedAt
	}
	return store
}
