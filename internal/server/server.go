package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	adminapp "github.com/sngm3741/storefinder/api/internal/admin/application"
	"github.com/sngm3741/storefinder/api/internal/config"
	"github.com/sngm3741/storefinder/api/internal/infrastructure/breaker"
	adminhttp "github.com/sngm3741/storefinder/api/internal/interfaces/http/admin"
	commonhttp "github.com/sngm3741/storefinder/api/internal/interfaces/http/common"
	publichttp "github.com/sngm3741/storefinder/api/internal/interfaces/http/public"
	"github.com/sngm3741/storefinder/api/internal/logger"
	"github.com/sngm3741/storefinder/api/internal/metrics"
	publicapp "github.com/sngm3741/storefinder/api/internal/public/application"
)

// Server は HTTP サーバーのライフサイクルを管理し、Public/Admin の各ハンドラへ依存注入するコンポジションルート。
type Server struct {
	logger  *zap.Logger
	cfg     *config.Config
	backend *Backend
	guard   *breaker.Guard
	router  http.Handler
}

// New は Backend のリポジトリをサーキットブレーカーで包み、アプリケーションサービスとルーターを組み立てる。
func New(cfg *config.Config, log *zap.Logger, backend *Backend) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	guard := breaker.New(breaker.Config{
		Name:             "repository",
		FailureThreshold: cfg.Breaker.FailureThreshold,
		OpenTimeout:      cfg.Breaker.OpenTimeout,
	}, log)

	stores := guard.Stores(backend.Stores)
	reviews := guard.Reviews(backend.Reviews)
	users := guard.Users(backend.Users)
	adminStores := guard.AdminStores(backend.AdminStores)

	srv := &Server{logger: log, cfg: cfg, backend: backend, guard: guard}

	publicHandler := publichttp.NewHandler(publichttp.Config{
		Logger:         log,
		StoreQueries:   publicapp.NewStoreQueryService(stores, reviews),
		Favorites:      publicapp.NewFavoriteService(users, stores),
		ReviewCommands: publicapp.NewReviewCommandService(stores, reviews),
		QueryTimeout:   cfg.HTTP.QueryTimeout,
	})
	adminHandler := adminhttp.NewHandler(adminhttp.Config{
		Logger:       log,
		StoreService: adminapp.NewStoreService(adminStores),
		Timeout:      cfg.HTTP.QueryTimeout,
	})
	auth := newAuthVerifier(cfg.Auth)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(logger.Middleware(log))
	router.Use(requestLogger(log))
	router.Use(middleware.Recoverer)
	router.Use(metrics.Middleware())
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	router.Get("/healthz", srv.healthHandler())
	router.Handle("/metrics", promhttp.Handler())

	router.Group(func(r chi.Router) {
		r.Use(httprate.Limit(cfg.Limit.Requests, cfg.Limit.Window, httprate.WithKeyFuncs(httprate.KeyByIP)))
		publicHandler.Register(r, auth.middleware)
		r.Route("/admin", func(r chi.Router) {
			r.Use(auth.middleware)
			adminHandler.Register(r)
		})
	})

	srv.router = router
	return srv
}

// Handler は組み立て済みのルーターを返す。
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run は HTTP サーバーを起動し、OS シグナルを受けるまでブロックする。
func (s *Server) Run() error {
	httpServer := &http.Server{
		Addr:              s.cfg.HTTP.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP サーバー起動", zap.String("addr", s.cfg.HTTP.Addr), zap.String("storage", s.cfg.Storage.Driver))
		errChan <- httpServer.ListenAndServe()
	}()

	return s.waitForShutdown(httpServer, errChan)
}

// healthHandler はストレージへの疎通確認を行う。ドメインの状態ではなくインフラ状態のみを返す。
func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := s.backend.Ping(ctx); err != nil {
			commonhttp.WriteJSON(s.logger, w, http.StatusServiceUnavailable, map[string]string{
				"status":  "degraded",
				"error":   err.Error(),
				"breaker": s.guard.State(),
			})
			return
		}
		commonhttp.WriteJSON(s.logger, w, http.StatusOK, map[string]string{
			"status":  "ok",
			"breaker": s.guard.State(),
			"time":    time.Now().Format(time.RFC3339),
		})
	}
}

// requestLogger は 1 リクエストごとにアクセスログを出力する。
func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.FromContextOr(r.Context(), log).Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("elapsed", time.Since(start)),
			)
		})
	}
}

// waitForShutdown は ListenAndServe の終了と OS シグナルを監視し、graceful shutdown を実現する。
func (s *Server) waitForShutdown(httpServer *http.Server, errChan <-chan error) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	var runErr error
	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			runErr = err
		}
	case sig := <-sigChan:
		s.logger.Info("シグナルを受信。サーバー停止処理を開始します", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("サーバー停止時にエラー", zap.Error(err))
		}
	}
	s.shutdown()
	return runErr
}

// shutdown はストレージをタイムアウト付きで切断する。
func (s *Server) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.backend.Close(ctx); err != nil {
		s.logger.Error("ストレージ切断時にエラー", zap.Error(err))
	}
}
