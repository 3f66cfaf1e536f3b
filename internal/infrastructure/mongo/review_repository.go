package mongo

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sngm3741/storefinder/api/internal/public/domain"
)

// ReviewRepository はレビューコレクションの Mongo 実装。
type ReviewRepository struct {
	collection *mongo.Collection
}

// NewReviewRepository はレビューコレクションを束縛した ReviewRepository を生成する。
func NewReviewRepository(db *mongo.Database, collection string) *ReviewRepository {
	return &ReviewRepository{collection: db.Collection(collection)}
}

// RatingsByStore は店舗ごとに評価値を $push で集める。平均値の計算と足切りはアプリケーション層で行う。
func (r *ReviewRepository) RatingsByStore(ctx context.Context) (map[string][]int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$store", "ratings": bson.M{"$push": "$rating"}}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []RatingGroupDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	grouped := make(map[string][]int, len(docs))
	for _, doc := range docs {
		grouped[doc.Store.Hex()] = doc.Ratings
	}
	return grouped, nil
}

// ForStore は店舗のレビューを新しい順に返す。
func (r *ReviewRepository) ForStore(ctx context.Context, storeID string) ([]domain.Review, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(storeID))
	if err != nil {
		return []domain.Review{}, nil
	}
	opts := options.Find().SetSort(bson.D{{Key: "created", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"store": objectID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reviews := make([]domain.Review, 0)
	for cursor.Next(ctx) {
		var doc ReviewDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		reviews = append(reviews, mapReviewDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return reviews, nil
}

// Create はレビューを挿入し、払い出した ID を review に設定する。
func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	storeID, err := primitive.ObjectIDFromHex(strings.TrimSpace(review.StoreID))
	if err != nil {
		return domain.ErrNotFound
	}
	doc := ReviewDocument{
		ID:        primitive.NewObjectID(),
		Store:     storeID,
		Author:    review.AuthorID,
		Rating:    review.Rating,
		Text:      review.Text,
		CreatedAt: review.CreatedAt,
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return err
	}
	review.ID = doc.ID.Hex()
	return nil
}

func mapReviewDocument(doc ReviewDocument) domain.Review {
	return domain.Review{
		ID:        doc.ID.Hex(),
		StoreID:   doc.Store.Hex(),
		AuthorID:  doc.Author,
		Rating:    doc.Rating,
		Text:      doc.Text,
		CreatedAt: doc.CreatedAt,
	}
}
