package main

import (
	"net/http"
	"os"
	"time"

	"livestock-registry/internal/platform/config"
	"livestock-registry/internal/platform/logger"
	"livestock-registry/internal/router"
)

// @title Livestock Registry API
// @version 1.0
// @description Registro de ganado: catálogos, animales, historial y producción.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config error: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	r, err := router.NewRouter(router.Options{
		Config:       cfg,
		AuthVerifier: nil, // sin verifier para modo dev (X-Debug-User-ID)
		Log:          log,
	})
	if err != nil {
		log.Error("router init failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	addr := ":" + cfg.Port

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": addr, "storage": cfg.Storage})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
