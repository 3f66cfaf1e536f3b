package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sngm3741/storefinder/api/internal/interfaces/http/common"
)

func (h *Handler) storeDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel, log := h.withTimeout(r)
		defer cancel()

		store, err := h.storeService.Detail(ctx, chi.URLParam(r, "id"))
		if err != nil {
			common.WriteError(log, w, "admin store detail", err)
			return
		}
		common.WriteJSON(log, w, http.StatusOK, adminStoreDomainToResponse(*store))
	}
}

// storeCreateHandler は店舗を作成する。所有者は認証ユーザーで固定される。
func (h *Handler) storeCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel, log := h.withTimeout(r)
		defer cancel()

		user, ok := common.RequireUser(log, w, r)
		if !ok {
			return
		}
		var req storeUpsertRequest
		if err := common.DecodeJSON(w, r, &req); err != nil {
			common.WriteError(log, w, "admin store create", err)
			return
		}

		store, err := h.storeService.Create(ctx, user.ID, req.command())
		if err != nil {
			common.WriteError(log, w, "admin store create", err)
			return
		}
		w.Header().Set("Location", "/stores/"+store.Slug.String())
		common.WriteJSON(log, w, http.StatusCreated, adminStoreDomainToResponse(*store))
	}
}

// storeUpdateHandler は所有者のみ店舗を更新できる。
func (h *Handler) storeUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel, log := h.withTimeout(r)
		defer cancel()

		user, ok := common.RequireUser(log, w, r)
		if !ok {
			return
		}
		var req storeUpsertRequest
		if err := common.DecodeJSON(w, r, &req); err != nil {
			common.WriteError(log, w, "admin store update", err)
			return
		}

		store, err := h.storeService.Update(ctx, user.ID, chi.URLParam(r, "id"), req.command())
		if err != nil {
			common.WriteError(log, w, "admin store update", err)
			return
		}
		common.WriteJSON(log, w, http.StatusOK, adminStoreDomainToResponse(*store))
	}
}
