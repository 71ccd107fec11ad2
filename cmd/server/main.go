package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	router "github.com/signcall/signcall/internal/adapters/http"
	wssignal "github.com/signcall/signcall/internal/adapters/signal"
	"github.com/signcall/signcall/internal/app"
	"github.com/signcall/signcall/internal/app/orch"
	"github.com/signcall/signcall/internal/config"
	"github.com/signcall/signcall/internal/detect"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	// Human-friendly output for terminal; in production you may want JSON only.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	labels, err := detect.LoadLabels(cfg.LabelsPath)
	if err != nil {
		log.Error().Err(err).Str("path", cfg.LabelsPath).Msg("failed to load labels, detection will reject requests")
	}

	var classifier detect.Classifier
	if cfg.ClassifierURL != "" {
		classifier = detect.NewHTTPClassifier(cfg.ClassifierURL, cfg.ClassifierTimeout)
		log.Info().Str("url", cfg.ClassifierURL).Msg("classifier endpoint configured")
	} else {
		log.Warn().Msg("no classifier endpoint configured, detect requests will fail")
	}
	detector := detect.NewDetector(classifier, labels, cfg.InputSize)

	orchestrator := &orch.Orchestrator{
		Registry: app.NewRegistry(),
		Rooms:    app.NewRoomStore(),
	}

	limiter := wssignal.NewDetectLimiter(cfg.DetectRateLimit, cfg.DetectRateInterval)
	ctl := wssignal.NewSignalWSController(orchestrator, detector, limiter, cfg.ReadLimit, cfg.PingPeriod)

	r := router.SetupRouter(ctx, cfg, ctl, labels)
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("SignCall server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited gracefully")
}
