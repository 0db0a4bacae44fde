// Command portal runs the food rescue portal HTTP server. It fronts the
// rescue backend with a cached offer snapshot, lifecycle actions, location
// acquisition, and the notification feed.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodrescue_portal/internal/config"
	"foodrescue_portal/internal/events"
	"foodrescue_portal/internal/geo"
	apphttp "foodrescue_portal/internal/http"
	"foodrescue_portal/internal/http/router"
	"foodrescue_portal/internal/notify"
	"foodrescue_portal/internal/offers"
	"foodrescue_portal/platform/logger"
	"foodrescue_portal/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("development").Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Env)
	log.Info("starting portal", "env", cfg.Env, "addr", cfg.HTTPAddr, "backend", cfg.BackendBaseURL)

	bus := events.NewInMemoryBus(log)
	val := validator.New()

	var cache geo.Cache
	if cfg.RedisAddr != "" {
		redisCache := geo.NewRedisCache(cfg.RedisAddr)
		defer func() {
			_ = redisCache.Close()
		}()
		cache = redisCache
		log.Info("geocode cache enabled", "addr", cfg.RedisAddr)
	}
	geocoder := geo.NewGeocoder(cfg.GeocodeBaseURL, cfg.GeocodeContact, cache, log)
	if !geocoder.Enabled() {
		log.Info("geocoding capability disabled, coordinate fallback in effect")
	}

	offersModule := offers.NewModule(cfg, val, bus, log)
	notifyModule := notify.NewModule(bus, log)
	geoModule := geo.NewModule(geocoder)

	engine := router.New(cfg, log, []apphttp.Module{offersModule, notifyModule, geoModule}...)

	// Warm the snapshot so the first page load does not pay the fetch. The
	// backend being down at boot is not fatal; the cache fills on demand.
	warmCtx, warmCancel := context.WithTimeout(context.Background(), cfg.BackendTimeout)
	if err := offersModule.Service().EnsureLoaded(warmCtx); err != nil {
		log.Warn("initial offer snapshot unavailable", "error", err)
	}
	warmCancel()

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "error", err)
			stop()
		}
	}()
	log.Info("portal listening", "addr", cfg.HTTPAddr)

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
	log.Info("portal stopped")
}
