package public

import (
	"errors"
	"net/http"

	"github.com/sngm3741/storefinder/api/internal/interfaces/http/common"
	publicdomain "github.com/sngm3741/storefinder/api/internal/public/domain"
)

type authVerifyResponse struct {
	Status     string                   `json:"status"`
	User       common.AuthenticatedUser `json:"user"`
	HeartCount *int                     `json:"heartCount,omitempty"`
}

// authVerifyHandler はトークンの利用者を返す。ユーザーレコードがあればお気に入り件数も添える。
func (h *Handler) authVerifyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel, log := h.withTimeout(r)
		defer cancel()

		user, ok := common.RequireUser(log, w, r)
		if !ok {
			return
		}

		resp := authVerifyResponse{Status: "ok", User: user}
		stores, err := h.favorites.Stores(ctx, user.ID)
		switch {
		case err == nil:
			count := len(stores)
			resp.HeartCount = &count
		case errors.Is(err, publicdomain.ErrNotFound):
		default:
			common.WriteError(log, w, "auth verify", err)
			return
		}
		common.WriteJSON(log, w, http.StatusOK, resp)
	}
}
