package admin

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	adminapp "github.com/sngm3741/storefinder/api/internal/admin/application"
	"github.com/sngm3741/storefinder/api/internal/logger"
)

// Handler wires admin HTTP endpoints to application services.
type Handler struct {
	logger       *zap.Logger
	storeService adminapp.StoreService
	timeout      time.Duration
}

// Config provides dependencies for Handler.
type Config struct {
	Logger       *zap.Logger
	StoreService adminapp.StoreService
	Timeout      time.Duration
}

// NewHandler constructs an admin HTTP handler set.
func NewHandler(cfg Config) *Handler {
	l := cfg.Logger
	if l == nil {
		l = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Handler{logger: l, storeService: cfg.StoreService, timeout: timeout}
}

// Register mounts admin routes onto router. Every route expects an authenticated user.
func (h *Handler) Register(r chi.Router) {
	r.Get("/stores/{id}", h.storeDetailHandler())
	r.Post("/stores", h.storeCreateHandler())
	r.Patch("/stores/{id}", h.storeUpdateHandler())
}

func (h *Handler) withTimeout(r *http.Request) (context.Context, context.CancelFunc, *zap.Logger) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	return ctx, cancel, logger.FromContextOr(r.Context(), h.logger)
}
