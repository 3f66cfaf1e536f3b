package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sngm3741/storefinder/api/internal/public/domain"
)

// GeoJSONPoint は 2dsphere インデックス対象の GeoJSON Point。座標は [経度, 緯度]。
type GeoJSONPoint struct {
	Type        string    `bson:"type"`
	Coordinates []float64 `bson:"coordinates"`
}

func newGeoJSONPoint(p domain.GeoPoint) GeoJSONPoint {
	return GeoJSONPoint{Type: "Point", Coordinates: []float64{p.Lng, p.Lat}}
}

func (p GeoJSONPoint) toDomain() domain.GeoPoint {
	if len(p.Coordinates) < 2 {
		return domain.GeoPoint{}
	}
	return domain.GeoPoint{Lng: p.Coordinates[0], Lat: p.Coordinates[1]}
}

// StoreDocument は MongoDB 上での店舗スキーマを Go 構造体として表現したもの。
type StoreDocument struct {
	ID          primitive.ObjectID `bson:"_id"`
	Name        string             `bson:"name"`
	Slug        string             `bson:"slug"`
	Description string             `bson:"description,omitempty"`
	Tags        []string           `bson:"tags"`
	Location    GeoJSONPoint       `bson:"location"`
	Author      string             `bson:"author"`
	Photo       string             `bson:"photo,omitempty"`
	CreatedAt   *time.Time         `bson:"created,omitempty"`
	UpdatedAt   *time.Time         `bson:"updatedAt,omitempty"`
}

// NearStoreDocument は $geoNear の公開射影。author など非公開フィールドは含めない。
type NearStoreDocument struct {
	ID          primitive.ObjectID `bson:"_id"`
	Slug        string             `bson:"slug"`
	Name        string             `bson:"name"`
	Description string             `bson:"description,omitempty"`
	Location    GeoJSONPoint       `bson:"location"`
	Photo       string             `bson:"photo,omitempty"`
	Distance    float64            `bson:"distance"`
}

// SearchStoreDocument は $text 検索結果。textScore を score として受け取る。
type SearchStoreDocument struct {
	StoreDocument `bson:",inline"`
	Score         float64 `bson:"score"`
}

// ReviewDocument はレビューのスキーマを表現する。
type ReviewDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	Store     primitive.ObjectID `bson:"store"`
	Author    string             `bson:"author"`
	Rating    int                `bson:"rating"`
	Text      string             `bson:"text"`
	CreatedAt time.Time          `bson:"created"`
}

// UserDocument はユーザーのうちお気に入り集合に関わるフィールドのみを扱う。
// _id は ObjectID または認証基盤の subject 文字列のどちらもあり得るため保持しない。
type UserDocument struct {
	Hearts            []primitive.ObjectID `bson:"hearts,omitempty"`
	FavoritesRevision int64                `bson:"heartsRevision"`
}

// TagCountDocument は tags の $unwind/$group 集計結果。
type TagCountDocument struct {
	Tag   string `bson:"_id"`
	Count int    `bson:"count"`
}

// RatingGroupDocument は店舗ごとの評価配列。
type RatingGroupDocument struct {
	Store   primitive.ObjectID `bson:"_id"`
	Ratings []int              `bson:"ratings"`
}
