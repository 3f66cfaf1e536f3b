package public

import (
	"net/http"

	"github.com/sngm3741/storefinder/api/internal/interfaces/http/common"
	"github.com/sngm3741/storefinder/api/internal/metrics"
)

func (h *Handler) searchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel, log := h.withTimeout(r)
		defer cancel()

		stores, err := h.storeQueries.Search(ctx, r.URL.Query().Get("q"))
		if err != nil {
			common.WriteError(log, w, "search", err)
			return
		}
		metrics.ObserveResultSize("search", len(stores))
		common.WriteJSON(log, w, http.StatusOK, buildStoreResponses(stores))
	}
}

// nearHandler は lng/lat から半径 100km 以内の店舗を近い順に最大 10 件返す。
func (h *Handler) nearHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel, log := h.withTimeout(r)
		defer cancel()

		query := r.URL.Query()
		nearby, err := h.storeQueries.Near(ctx, query.Get("lng"), query.Get("lat"))
		if err != nil {
			common.WriteError(log, w, "near", err)
			return
		}

		items := make([]nearbyStoreResponse, 0, len(nearby))
		for _, s := range nearby {
			items = append(items, nearbyStoreResponse{
				ID:          s.ID,
				Slug:        s.Slug,
				Name:        s.Name,
				Description: s.Description,
				Location:    newLocationResponse(s.Location),
				Photo:       s.Photo,
				Distance:    s.DistanceMeters,
			})
		}
		metrics.ObserveResultSize("near", len(items))
		common.WriteJSON(log, w, http.StatusOK, items)
	}
}
