package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/emotibot/moodrelay/internal/api"
	"github.com/emotibot/moodrelay/internal/config"
	"github.com/emotibot/moodrelay/internal/store"
	"github.com/emotibot/moodrelay/internal/telemetry"
	"github.com/emotibot/moodrelay/internal/webhook"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("config load failed")
	}

	log := newLogger(cfg.AppEnv)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	telemetry.Init()

	st := store.New(cfg.DefaultMood, clockwork.NewRealClock())
	log.Info().Str("mood", cfg.DefaultMood).Msg("store initialized")

	var dispatcher *webhook.Dispatcher
	if len(cfg.WebhookURLs) > 0 {
		dispatcher = webhook.NewDispatcher(cfg.WebhookURLs, cfg.WebhookSecret, log)
		dispatcher.Start()
		defer dispatcher.Close()
		log.Info().Int("targets", len(cfg.WebhookURLs)).Msg("webhook dispatcher started")
	}

	srvAPI := api.NewServer(st, dispatcher, cfg.SSEHeartbeat, cfg.RateLimitPerIP, log)

	srv := &http.Server{
		Addr:        cfg.HTTPAddr,
		Handler:     srvAPI.Router(),
		ReadTimeout: 3 * time.Second,
		// WriteTimeout stays 0: SSE responses are open-ended.
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("http server listening")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	metricsSrv := &http.Server{
		Addr:    cfg.MetricsAddr,
		Handler: promhttp.Handler(),
	}
	go func() {
		log.Info().Str("addr", cfg.MetricsAddr).Msg("metrics server listening")
		if err := metricsSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	ctxShut, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	_ = srv.Shutdown(ctxShut)
	_ = metricsSrv.Shutdown(ctxShut)
	log.Info().Msg("stopped")
}

func newLogger(appEnv string) zerolog.Logger {
	if appEnv == "dev" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
