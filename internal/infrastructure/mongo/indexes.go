package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collections は各コレクション名をまとめたもの。
type Collections struct {
	Stores  string
	Reviews string
	Users   string
}

// EnsureIndexes は検索・近傍探索・slug 一意制約に必要なインデックスを作成する。
// 既存インデックスと同一定義であれば何もしない。
func EnsureIndexes(ctx context.Context, db *mongo.Database, names Collections) error {
	storeIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: "text"}, {Key: "description", Value: "text"}},
			Options: options.Index().SetName("store_text").SetWeights(bson.M{"name": 2, "description": 1}),
		},
		{
			Keys:    bson.D{{Key: "location", Value: "2dsphere"}},
			Options: options.Index().SetName("store_location"),
		},
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetName("store_slug").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "tags", Value: 1}},
			Options: options.Index().SetName("store_tags"),
		},
		{
			Keys:    bson.D{{Key: "created", Value: -1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("store_created"),
		},
	}
	if _, err := db.Collection(names.Stores).Indexes().CreateMany(ctx, storeIndexes); err != nil {
		return fmt.Errorf("店舗インデックスの作成に失敗しました: %w", err)
	}

	reviewIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "store", Value: 1}, {Key: "created", Value: -1}},
			Options: options.Index().SetName("review_store"),
		},
	}
	if _, err := db.Collection(names.Reviews).Indexes().CreateMany(ctx, reviewIndexes); err != nil {
		return fmt.Errorf("レビューインデックスの作成に失敗しました: %w", err)
	}
	return nil
}
