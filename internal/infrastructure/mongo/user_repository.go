package mongo

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sngm3741/storefinder/api/internal/public/domain"
)

// UserRepository はユーザーのお気に入り集合を扱う Mongo 実装。
type UserRepository struct {
	collection *mongo.Collection
}

// NewUserRepository はユーザーコレクションを束縛した UserRepository を生成する。
func NewUserRepository(db *mongo.Database, collection string) *UserRepository {
	return &UserRepository{collection: db.Collection(collection)}
}

func (r *UserRepository) GetUser(ctx context.Context, id string) (*domain.User, error) {
	var doc UserDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": userKey(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mapUserDocument(id, doc), nil
}

// ReplaceFavorites は heartsRevision が revision と一致する場合に限り hearts を置き換える。
// 条件付き FindOneAndUpdate 1 回で完結するため、途中で失敗しても部分的な更新は残らない。
func (r *UserRepository) ReplaceFavorites(ctx context.Context, userID string, revision int64, favorites domain.FavoriteSet) (*domain.User, error) {
	key := userKey(userID)
	filter := bson.M{"_id": key, "heartsRevision": revision}
	if revision == 0 {
		// 一度も更新されていないユーザーは heartsRevision を持たない。
		filter = bson.M{"_id": key, "$or": bson.A{
			bson.M{"heartsRevision": 0},
			bson.M{"heartsRevision": bson.M{"$exists": false}},
		}}
	}
	update := bson.M{
		"$set": bson.M{"hearts": toObjectIDs(favorites.IDs())},
		"$inc": bson.M{"heartsRevision": 1},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc UserDocument
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if err == nil {
		return mapUserDocument(userID, doc), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	// 条件に一致しなかった理由がユーザー不在か revision 不一致かを判別する。
	exists, countErr := r.collection.CountDocuments(ctx, bson.M{"_id": key}, options.Count().SetLimit(1))
	if countErr != nil {
		return nil, countErr
	}
	if exists == 0 {
		return nil, domain.ErrNotFound
	}
	return nil, domain.ErrFavoritesConflict
}

// userKey は 16 進 ObjectID として解釈できる ID を ObjectID に、それ以外を文字列のまま返す。
func userKey(id string) interface{} {
	id = strings.TrimSpace(id)
	if objectID, err := primitive.ObjectIDFromHex(id); err == nil {
		return objectID
	}
	return id
}

func mapUserDocument(id string, doc UserDocument) *domain.User {
	ids := make([]string, 0, len(doc.Hearts))
	for _, heart := range doc.Hearts {
		ids = append(ids, heart.Hex())
	}
	return &domain.User{
		ID:                strings.TrimSpace(id),
		Favorites:         domain.NewFavoriteSet(ids...),
		FavoritesRevision: doc.FavoritesRevision,
	}
}
