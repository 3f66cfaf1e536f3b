package common

import (
	"context"
	"errors"
	"net/http"

	admindomain "github.com/sngm3741/storefinder/api/internal/admin/domain"
	"github.com/sngm3741/storefinder/api/internal/public/domain"
)

// ErrBadRequest marks malformed request bodies and query strings.
var ErrBadRequest = errors.New("bad request")

// StatusFor maps domain errors onto HTTP status codes.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidCoordinates),
		errors.Is(err, domain.ErrInvalidRating),
		errors.Is(err, domain.ErrInvalidReview),
		errors.Is(err, admindomain.ErrInvalidStore),
		errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, admindomain.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrFavoritesConflict),
		errors.Is(err, admindomain.ErrSlugTaken):
		return http.StatusConflict
	case errors.Is(err, domain.ErrRepositoryUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// MessageFor returns the message shown to clients for err.
func MessageFor(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "指定されたリソースが見つかりません"
	case errors.Is(err, domain.ErrInvalidCoordinates):
		return "経度・緯度が不正です"
	case errors.Is(err, domain.ErrInvalidRating):
		return "評価は1〜5の整数で指定してください"
	case errors.Is(err, domain.ErrInvalidReview):
		return "レビュー本文を入力してください"
	case errors.Is(err, admindomain.ErrInvalidStore), errors.Is(err, ErrBadRequest):
		return err.Error()
	case errors.Is(err, admindomain.ErrNotOwner):
		return "この店舗を編集する権限がありません"
	case errors.Is(err, domain.ErrFavoritesConflict):
		return "お気に入りの更新が競合しました。再度お試しください"
	case errors.Is(err, admindomain.ErrSlugTaken):
		return "店舗の URL が重複しました。再度お試しください"
	case errors.Is(err, domain.ErrRepositoryUnavailable):
		return "ただいまデータベースに接続できません"
	case errors.Is(err, context.DeadlineExceeded):
		return "処理がタイムアウトしました"
	default:
		return "サーバー内部でエラーが発生しました"
	}
}
