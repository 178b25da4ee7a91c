package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/viditpawar/portfolio/internal/config"
	"github.com/viditpawar/portfolio/internal/content"
	"github.com/viditpawar/portfolio/internal/visits"
)

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		boot := zerolog.New(os.Stderr)
		boot.Fatal().Err(err).Msg("load config")
	}
	log := newLogger(cfg.LogLevel, cfg.Mode)
	gin.SetMode(cfg.Mode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	page, err := content.Load(time.Now().Year())
	if err != nil {
		log.Fatal().Err(err).Msg("load page content")
	}

	var store *visits.Store
	if cfg.Tracking.Enabled {
		store, err = visits.Open(ctx, cfg.DB.Path, log.With().Str("component", "visits").Logger())
		if err != nil {
			log.Fatal().Err(err).Msg("open visit store")
		}
		defer store.Close()
		go runCleanup(ctx, store, cfg.Tracking.RetentionMonths, log)
	}

	s := newServer(cfg, page, store, log)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown")
		}
	}()

	log.Info().Str("addr", srv.Addr).Msg("portfolio listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("serve")
	}
}

func newLogger(level, mode string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	if mode == gin.DebugMode {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}

// runCleanup prunes old visit records at startup and once a day after.
func runCleanup(ctx context.Context, store *visits.Store, months int, log zerolog.Logger) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	for {
		if _, err := store.Cleanup(ctx, months); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Msg("visit cleanup")
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
