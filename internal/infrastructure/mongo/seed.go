package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sngm3741/storefinder/api/internal/public/domain"
)

// WriteDataset はサンプルデータを各コレクションへ一括投入する。drop が true なら既存コレクションを削除してから投入する。
func WriteDataset(ctx context.Context, db *mongo.Database, names Collections, stores []domain.Store, reviews []domain.Review, users []domain.User, drop bool) error {
	if drop {
		for _, name := range []string{names.Stores, names.Reviews, names.Users} {
			if err := db.Collection(name).Drop(ctx); err != nil {
				return fmt.Errorf("コレクション %s の削除に失敗しました: %w", name, err)
			}
		}
	}
	if err := EnsureIndexes(ctx, db, names); err != nil {
		return err
	}

	storeDocs := make([]interface{}, 0, len(stores))
	for _, s := range stores {
		doc, err := newStoreDocument(s)
		if err != nil {
			return err
		}
		storeDocs = append(storeDocs, doc)
	}
	if err := insertMany(ctx, db.Collection(names.Stores), storeDocs); err != nil {
		return fmt.Errorf("店舗の投入に失敗しました: %w", err)
	}

	reviewDocs := make([]interface{}, 0, len(reviews))
	for _, r := range reviews {
		id, err := primitive.ObjectIDFromHex(r.ID)
		if err != nil {
			return fmt.Errorf("review id %q: %w", r.ID, err)
		}
		storeID, err := primitive.ObjectIDFromHex(r.StoreID)
		if err != nil {
			return fmt.Errorf("review store id %q: %w", r.StoreID, err)
		}
		reviewDocs = append(reviewDocs, ReviewDocument{
			ID:        id,
			Store:     storeID,
			Author:    r.AuthorID,
			Rating:    r.Rating,
			Text:      r.Text,
			CreatedAt: r.CreatedAt,
		})
	}
	if err := insertMany(ctx, db.Collection(names.Reviews), reviewDocs); err != nil {
		return fmt.Errorf("レビューの投入に失敗しました: %w", err)
	}

	userDocs := make([]interface{}, 0, len(users))
	for _, u := range users {
		userDocs = append(userDocs, bson.M{
			"_id":            userKey(u.ID),
			"hearts":         toObjectIDs(u.Favorites.IDs()),
			"heartsRevision": u.FavoritesRevision,
		})
	}
	if err := insertMany(ctx, db.Collection(names.Users), userDocs); err != nil {
		return fmt.Errorf("ユーザーの投入に失敗しました: %w", err)
	}
	return nil
}

func newStoreDocument(s domain.Store) (StoreDocument, error) {
	id, err := primitive.ObjectIDFromHex(s.ID)
	if err != nil {
		return StoreDocument{}, fmt.Errorf("store id %q: %w", s.ID, err)
	}
	created := s.CreatedAt
	tags := s.Tags
	if tags == nil {
		tags = []string{}
	}
	return StoreDocument{
		ID:          id,
		Name:        s.Name,
		Slug:        s.Slug,
		Description: s.Description,
		Tags:        tags,
		Location:    newGeoJSONPoint(s.Location),
		Author:      s.OwnerID,
		Photo:       s.Photo,
		CreatedAt:   &created,
		UpdatedAt:   &created,
	}, nil
}

func insertMany(ctx context.Context, collection *mongo.Collection, docs []interface{}) error {
	if len(docs) == 0 {
		return nil
	}
	_, err := collection.InsertMany(ctx, docs)
	return err
}
