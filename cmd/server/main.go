package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Goodidea-backend-camp/medium-blog-backend/internal/api"
	"github.com/Goodidea-backend-camp/medium-blog-backend/internal/auth"
	"github.com/Goodidea-backend-camp/medium-blog-backend/internal/config"
	"github.com/Goodidea-backend-camp/medium-blog-backend/internal/db"
	"github.com/Goodidea-backend-camp/medium-blog-backend/internal/logger"
	"github.com/Goodidea-backend-camp/medium-blog-backend/internal/middleware"
	"github.com/Goodidea-backend-camp/medium-blog-backend/internal/store"
	"github.com/Goodidea-backend-camp/medium-blog-backend/pkg/database"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	v := config.New()

	cmd := &cobra.Command{
		Use:          "server",
		Short:        "Serve the blog API",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}
	if err := config.BindFlags(cmd.Flags(), v); err != nil {
		panic(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	log := logger.New(os.Stderr, cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	if cfg.WeakSecret() {
		log.Warn("JWT secret is shorter than recommended", zap.Int("min_length", auth.MinSecretLength))
	}

	dbpool, err := database.NewPool(ctx, cfg.DatabaseURL, database.Options{MaxConns: cfg.DBMaxConns})
	if err != nil {
		log.Error("Unable to connect to the database", zap.Error(err))
		return err
	}
	defer dbpool.Close()

	log.Info("Successfully connected to the database!")

	postStore := store.NewPostStore(db.New(dbpool))

	handler, err := api.NewHandler(postStore, cfg.JWTSecret, api.WithLogger(log))
	if err != nil {
		return err
	}

	router := newRouter(cfg, log, dbpool, handler)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting server", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		log.Error("Server stopped", zap.Error(err))
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newRouter(cfg config.Config, log *zap.Logger, dbpool *pgxpool.Pool, handler *api.Handler) *gin.Engine {
	if cfg.LogLevel > zap.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(reg)

	var securityOpts []middleware.SecurityOption
	if !cfg.HSTS {
		securityOpts = append(securityOpts, middleware.WithoutHSTS())
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(log),
		metrics.Handler(),
		middleware.SecurityHeaders(securityOpts...),
		middleware.HostHeaderValidation(cfg.ExpectedHost...),
	)

	handler.RegisterRoutes(router)

	router.GET("/healthz", func(c *gin.Context) {
		if err := dbpool.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "Database connection is down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "Database connection is healthy"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	return router
}
