package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/walletwise/finance/pkg/backend/sqlstore"
	"github.com/walletwise/finance/pkg/cache"
	"github.com/walletwise/finance/pkg/config"
	v1 "github.com/walletwise/finance/pkg/controllers/v1"
	"github.com/walletwise/finance/pkg/finance"
	"github.com/walletwise/finance/pkg/router"
	"golang.org/x/sync/errgroup"
)

// shutdownTimeout bounds the time open requests get to finish on shutdown.
const shutdownTimeout = 30 * time.Second

func main() {
	os.Exit(run())
}

// run starts the server and blocks until it stops. It returns the exit
// code so that deferred cleanups run before the process exits.
func run() int {
	cfg, err := config.Load()
	if err != nil {
		log.Error().Err(err).Msg("Configuration")
		return 1
	}

	gin.SetMode(cfg.GinMode)

	output := io.Writer(os.Stdout)
	if cfg.LogFormat == "human" {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), os.ModePerm); err != nil {
		log.Error().Err(err).Msg("Data directory")
		return 1
	}

	store, err := sqlstore.Open(ctx, cfg.DatabasePath)
	if err != nil {
		log.Error().Err(err).Msg("Database")
		return 1
	}
	defer store.Close()

	c := cache.New(cfg.CacheSize, cfg.CacheTTL)
	client := finance.New(store,
		finance.WithCache(c),
		finance.WithRequestTimeout(cfg.RequestTimeout),
		finance.WithLocale(cfg.Locale),
	)

	r, teardown, err := router.Config(cfg)
	if err != nil {
		log.Error().Err(err).Msg("Router")
		return 1
	}
	defer teardown()

	router.AttachRoutes(r.Group(cfg.APIURL.Path), cfg, v1.New(client), store)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if cfg.CacheTTL > 0 {
		g.Go(func() error {
			c.RunCleanup(ctx, cfg.CacheTTL)
			return nil
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server")
		return 1
	}

	log.Info().Msg("Server stopped")
	return 0
}
