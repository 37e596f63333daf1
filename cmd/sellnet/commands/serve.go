package commands

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/heronet/sellnet/internal/api"
	"github.com/heronet/sellnet/internal/api/metrics"
	"github.com/heronet/sellnet/internal/core/service"
	"github.com/heronet/sellnet/internal/infrastructure/db/redis"
	"github.com/heronet/sellnet/internal/infrastructure/photo"
	"github.com/heronet/sellnet/internal/infrastructure/queue"
	"github.com/heronet/sellnet/pkg/logger"
)

const (
	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 10 * time.Second
)

// NewServeCommand starts the HTTP API.
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx)
		},
	}
}

func serve(ctx context.Context) error {
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()
	log := a.log

	// Redis only backs idempotency keys; run without it rather than refuse to
	// start.
	redisCfg := redis.Config{Addr: a.cfg.Redis.Addr, DB: a.cfg.Redis.DB}
	rdb, err := redis.Connect(ctx, redisCfg)
	if err != nil {
		log.Warn().Err(err).Str("addr", redisCfg.Addr).Msg("redis unavailable, idempotency keys disabled until it recovers")
		rdb = redis.NewClient(redisCfg)
	}
	defer rdb.Close()

	host, err := photo.NewMinioHost(photo.Config{
		Endpoint:  a.cfg.Storage.Endpoint,
		AccessKey: a.cfg.Storage.AccessKey,
		SecretKey: a.cfg.Storage.SecretKey,
		Bucket:    a.cfg.Storage.Bucket,
		Region:    a.cfg.Storage.Region,
		UseSSL:    a.cfg.Storage.UseSSL,
		PublicURL: a.cfg.Storage.PublicURL,
	})
	if err != nil {
		return err
	}
	if err := host.EnsureBucket(ctx); err != nil {
		log.Warn().Err(err).Str("bucket", a.cfg.Storage.Bucket).Msg("photo bucket unavailable")
	}

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	dispatcher := queue.NewDispatcher(a.cfg.CleanupWorkers, host, queue.Metrics{
		Results:  metrics.PhotoCleanupTotal,
		Depth:    metrics.CleanupQueueDepth,
		Duration: metrics.CleanupDuration,
	}, logger.Component("cleanup"))
	dispatcher.Start(workerCtx)

	products := service.NewProductService(
		a.products, a.categories, a.store, host, dispatcher,
		redis.NewIdempotencyStore(rdb), logger.Component("products"),
	)
	suppliers := service.NewSupplierService(a.store, a.products, dispatcher, logger.Component("suppliers"))

	e := api.NewRouter(api.Deps{
		Accounts:  a.accountService(),
		Products:  products,
		Suppliers: suppliers,
		Locations: a.locations,
		Tokens:    a.tokens,
		Mongo:     a.db,
		Redis:     rdb,
		Storage:   host,
		Logger:    logger.Component("http"),
	})

	srv := &http.Server{
		Addr:              ":" + a.cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", a.cfg.Port).Str("env", a.cfg.Env).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server")
	case err := <-errCh:
		if err != nil {
			stopWorkers()
			dispatcher.Wait()
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}

	stopWorkers()
	dispatcher.Wait()

	log.Info().Msg("server exited")
	return nil
}
