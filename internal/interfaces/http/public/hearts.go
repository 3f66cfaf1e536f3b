package public

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sngm3741/storefinder/api/internal/interfaces/http/common"
)

func (h *Handler) heartToggleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel, log := h.withTimeout(r)
		defer cancel()

		user, ok := common.RequireUser(log, w, r)
		if !ok {
			return
		}

		result, err := h.favorites.Toggle(ctx, user.ID, chi.URLParam(r, "id"))
		if err != nil {
			common.WriteError(log, w, "heart toggle", err)
			return
		}
		hearts := result.Favorites.IDs()
		common.WriteJSON(log, w, http.StatusOK, heartToggleResponse{
			StoreID:   result.StoreID,
			Hearted:   result.Favorited,
			Hearts:    hearts,
			HeartSize: len(hearts),
		})
	}
}

func (h *Handler) heartListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel, log := h.withTimeout(r)
		defer cancel()

		user, ok := common.RequireUser(log, w, r)
		if !ok {
			return
		}

		stores, err := h.favorites.Stores(ctx, user.ID)
		if err != nil {
			common.WriteError(log, w, "heart list", err)
			return
		}
		common.WriteJSON(log, w, http.StatusOK, buildStoreResponses(stores))
	}
}
