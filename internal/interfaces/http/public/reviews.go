package public

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sngm3741/storefinder/api/internal/interfaces/http/common"
	publicapp "github.com/sngm3741/storefinder/api/internal/public/application"
)

// reviewCreateHandler は認証済みユーザーのレビューを投稿する。投稿者はトークンの subject。
func (h *Handler) reviewCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel, log := h.withTimeout(r)
		defer cancel()

		user, ok := common.RequireUser(log, w, r)
		if !ok {
			return
		}

		var req reviewCreateRequest
		if err := common.DecodeJSON(w, r, &req); err != nil {
			common.WriteError(log, w, "review create", err)
			return
		}

		review, err := h.reviewCommands.Submit(ctx, publicapp.SubmitReviewCommand{
			StoreID:  chi.URLParam(r, "id"),
			AuthorID: user.ID,
			Rating:   req.Rating,
			Text:     req.Text,
		})
		if err != nil {
			common.WriteError(log, w, "review create", err)
			return
		}
		common.WriteJSON(log, w, http.StatusCreated, buildReviewResponse(*review))
	}
}
