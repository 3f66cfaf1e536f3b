package application

import (
	context "context"
	"fmt"
	"strings"
	"time"

	"github.com/sngm3741/storefinder/api/internal/public/domain"
)

// StoreRepository abstracts read access to stores.
// StoreRepository は Public コンテキストで店舗を読み取るためのポート。
type StoreRepository interface {
	CountStores(ctx context.Context) (int, error)
	// ListStoresPage returns stores ordered by creation time, newest first.
	ListStoresPage(ctx context.Context, skip, limit int) ([]domain.Store, error)
	TagCounts(ctx context.Context) ([]domain.TagCount, error)
	// FindByTag returns stores carrying tag, or every store with at least one tag when tag is empty.
	FindByTag(ctx context.Context, tag string) ([]domain.Store, error)
	TextSearch(ctx context.Context, query string) ([]domain.SearchHit, error)
	Near(ctx context.Context, point domain.GeoPoint, maxDistanceMeters float64, limit int) ([]domain.NearbyStore, error)
	FindByIDs(ctx context.Context, ids []string) ([]domain.Store, error)
	FindByID(ctx context.Context, id string) (*domain.Store, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Store, error)
}

// ReviewRepository handles review reads/writes.
type ReviewRepository interface {
	// RatingsByStore groups every review rating by store ID.
	RatingsByStore(ctx context.Context) (map[string][]int, error)
	ForStore(ctx context.Context, storeID string) ([]domain.Review, error)
	Create(ctx context.Context, review *domain.Review) error
}

// UserRepository reads users and writes their favorites.
type UserRepository interface {
	GetUser(ctx context.Context, id string) (*domain.User, error)
	// ReplaceFavorites stores favorites only if the user's revision still equals revision,
	// returning domain.ErrFavoritesConflict otherwise. The write is a single atomic update.
	ReplaceFavorites(ctx context.Context, userID string, revision int64, favorites domain.FavoriteSet) (*domain.User, error)
}

// StoreQueryService describes read use-cases.
// StoreQueryService は店舗の一覧・検索・ランキングを提供するリーダーモデル。
type StoreQueryService interface {
	PlanPage(ctx context.Context, requested string) (domain.PagePlan, error)
	Detail(ctx context.Context, slug string) (*domain.StoreDetail, error)
	ListTags(ctx context.Context) ([]domain.TagCount, error)
	StoresByTag(ctx context.Context, tag string) ([]domain.Store, error)
	Search(ctx context.Context, query string) ([]domain.Store, error)
	Near(ctx context.Context, rawLng, rawLat string) ([]domain.NearbyStore, error)
	TopStores(ctx context.Context) ([]domain.RankedStore, error)
}

// FavoriteService manages per-user favorite sets.
type FavoriteService interface {
	Toggle(ctx context.Context, userID, storeID string) (domain.FavoriteToggle, error)
	Stores(ctx context.Context, userID string) ([]domain.Store, error)
}

// ReviewCommandService handles writing use-cases.
type ReviewCommandService interface {
	Submit(ctx context.Context, cmd SubmitReviewCommand) (*domain.Review, error)
}

// SubmitReviewCommand captures review input.
type SubmitReviewCommand struct {
	StoreID  string
	AuthorID string
	Rating   int
	Text     string
}

func NewReviewCommandService(stores StoreRepository, reviews ReviewRepository) ReviewCommandService {
	return &reviewCommandService{stores: stores, reviews: reviews}
}

type reviewCommandService struct {
	stores  StoreRepository
	reviews ReviewRepository
}

func (s *reviewCommandService) Submit(ctx context.Context, cmd SubmitReviewCommand) (*domain.Review, error) {
	if !domain.ValidRating(cmd.Rating) {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidRating, cmd.Rating)
	}
	text := strings.TrimSpace(cmd.Text)
	if text == "" || strings.TrimSpace(cmd.AuthorID) == "" {
		return nil, domain.ErrInvalidReview
	}
	if _, err := s.stores.FindByID(ctx, cmd.StoreID); err != nil {
		return nil, err
	}

	review := &domain.Review{
		StoreID:   cmd.StoreID,
		AuthorID:  cmd.AuthorID,
		Rating:    cmd.Rating,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	return review, s.reviews.Create(ctx, review)
}
