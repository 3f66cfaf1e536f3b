package public

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sngm3741/storefinder/api/internal/logger"
	publicapp "github.com/sngm3741/storefinder/api/internal/public/application"
)

const defaultQueryTimeout = 5 * time.Second

// Handler wires public HTTP endpoints to application services.
type Handler struct {
	logger         *zap.Logger
	storeQueries   publicapp.StoreQueryService
	favorites      publicapp.FavoriteService
	reviewCommands publicapp.ReviewCommandService
	queryTimeout   time.Duration
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger         *zap.Logger
	StoreQueries   publicapp.StoreQueryService
	Favorites      publicapp.FavoriteService
	ReviewCommands publicapp.ReviewCommandService
	QueryTimeout   time.Duration
}

// NewHandler constructs a public HTTP handler set.
func NewHandler(cfg Config) *Handler {
	timeout := cfg.QueryTimeout
	if timeout <= 0 {
		timeout = defaultQueryTimeout
	}
	l := cfg.Logger
	if l == nil {
		l = zap.NewNop()
	}
	return &Handler{
		logger:         l,
		storeQueries:   cfg.StoreQueries,
		favorites:      cfg.Favorites,
		reviewCommands: cfg.ReviewCommands,
		queryTimeout:   timeout,
	}
}

// Register mounts all public routes onto the router.
func (h *Handler) Register(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Get("/stores", h.storeListHandler())
	r.Get("/stores/page/{page}", h.storeListHandler())
	r.Get("/stores/{slug}", h.storeDetailHandler())
	r.Get("/tags", h.tagListHandler())
	r.Get("/tags/{tag}", h.tagListHandler())
	r.Get("/top", h.topStoresHandler())
	r.Get("/api/search", h.searchHandler())
	r.Get("/api/stores/near", h.nearHandler())

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/api/stores/{id}/heart", h.heartToggleHandler())
		r.Get("/hearts", h.heartListHandler())
		r.Post("/stores/{id}/reviews", h.reviewCreateHandler())
		r.Get("/auth/verify", h.authVerifyHandler())
	})
}

// withTimeout bounds a request's repository work and returns a request-scoped logger.
func (h *Handler) withTimeout(r *http.Request) (context.Context, context.CancelFunc, *zap.Logger) {
	ctx, cancel := context.WithTimeout(r.Context(), h.queryTimeout)
	return ctx, cancel, logger.FromContextOr(r.Context(), h.logger)
}
