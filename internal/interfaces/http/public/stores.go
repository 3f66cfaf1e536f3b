package public

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sngm3741/storefinder/api/internal/interfaces/http/common"
	"github.com/sngm3741/storefinder/api/internal/metrics"
	publicdomain "github.com/sngm3741/storefinder/api/internal/public/domain"
)

// storeListHandler は /stores と /stores/page/{page} を扱う。範囲外のページは 303 で正しいページへ誘導する。
func (h *Handler) storeListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel, log := h.withTimeout(r)
		defer cancel()

		requested := chi.URLParam(r, "page")
		plan, err := h.storeQueries.PlanPage(ctx, requested)
		if err != nil {
			common.WriteError(log, w, "store list", err)
			return
		}

		if plan.Outcome == publicdomain.PageRedirect {
			w.Header().Set("Location", fmt.Sprintf("/stores/page/%d", plan.RedirectTo))
			common.WriteJSON(log, w, http.StatusSeeOther, redirectResponse{
				RedirectPage: plan.RedirectTo,
				Message:      redirectMessage(plan),
			})
			return
		}

		common.WriteJSON(log, w, http.StatusOK, storeListResponse{
			Items:      buildStoreResponses(plan.Stores),
			Page:       plan.Page,
			TotalPages: plan.TotalPages,
			Count:      plan.Count,
		})
	}
}

func redirectMessage(plan publicdomain.PagePlan) string {
	switch plan.Reason {
	case publicdomain.RedirectBeyondLast:
		return fmt.Sprintf("ページ %s は存在しません。ページ %d を表示します", plan.Requested, plan.RedirectTo)
	default:
		return fmt.Sprintf("ページ %q は不正な指定です。ページ %d を表示します", plan.Requested, plan.RedirectTo)
	}
}

func (h *Handler) storeDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel, log := h.withTimeout(r)
		defer cancel()

		detail, err := h.storeQueries.Detail(ctx, chi.URLParam(r, "slug"))
		if err != nil {
			common.WriteError(log, w, "store detail", err)
			return
		}

		reviews := make([]reviewResponse, 0, len(detail.Reviews))
		for _, review := range detail.Reviews {
			reviews = append(reviews, buildReviewResponse(review))
		}
		common.WriteJSON(log, w, http.StatusOK, storeDetailResponse{
			storeResponse: buildStoreResponse(detail.Store),
			Reviews:       reviews,
		})
	}
}

// tagListHandler は全タグの件数と、指定タグ（未指定なら何らかのタグを持つ店舗）の店舗一覧を返す。
func (h *Handler) tagListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel, log := h.withTimeout(r)
		defer cancel()

		tag := chi.URLParam(r, "tag")
		tags, err := h.storeQueries.ListTags(ctx)
		if err != nil {
			common.WriteError(log, w, "tag list", err)
			return
		}
		stores, err := h.storeQueries.StoresByTag(ctx, tag)
		if err != nil {
			common.WriteError(log, w, "stores by tag", err)
			return
		}

		metrics.ObserveResultSize("tag", len(stores))
		items := make([]tagCountResponse, 0, len(tags))
		for _, t := range tags {
			items = append(items, tagCountResponse{Tag: t.Tag, Count: t.Count})
		}
		common.WriteJSON(log, w, http.StatusOK, tagListResponse{
			Tags:   items,
			Tag:    tag,
			Stores: buildStoreResponses(stores),
		})
	}
}

func (h *Handler) topStoresHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel, log := h.withTimeout(r)
		defer cancel()

		ranked, err := h.storeQueries.TopStores(ctx)
		if err != nil {
			common.WriteError(log, w, "top stores", err)
			return
		}
		metrics.ObserveResultSize("top", len(ranked))
		items := make([]rankedStoreResponse, 0, len(ranked))
		for _, rs := range ranked {
			items = append(items, rankedStoreResponse{
				storeResponse: buildStoreResponse(rs.Store),
				AverageRating: rs.AverageRating,
				ReviewCount:   rs.ReviewCount,
			})
		}
		common.WriteJSON(log, w, http.StatusOK, items)
	}
}
