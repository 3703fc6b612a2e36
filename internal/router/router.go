package router

import (
	"context"
	"database/sql"
	"net/http"

	"livestock-registry/internal/adapters/eligibility/catalogattr"
	photoslocal "livestock-registry/internal/adapters/photos/local"
	photoss3 "livestock-registry/internal/adapters/photos/s3"
	mem "livestock-registry/internal/adapters/storage/memory"
	pg "livestock-registry/internal/adapters/storage/postgres"
	"livestock-registry/internal/adapters/storage/remote"
	"livestock-registry/internal/domain/animals"
	"livestock-registry/internal/domain/catalog"
	"livestock-registry/internal/domain/history"
	"livestock-registry/internal/middleware"
	"livestock-registry/internal/platform/config"
	"livestock-registry/internal/platform/logger"
	"livestock-registry/internal/platform/metrics"
	"livestock-registry/internal/ports/auth"
	"livestock-registry/internal/ports/photos"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "livestock-registry/docs"
)

type Options struct {
	Config       config.Config
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)
	Log          logger.Logger

	// Opcional: pool ya abierto para storage postgres (tests). Si es nil y
	// el storage es postgres, se abre desde Config.DBDSN.
	DB *sql.DB
}

func NewRouter(opts Options) (http.Handler, error) {
	log := opts.Log
	if log == nil {
		log = logger.New(logger.Options{})
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	catalogRepo, animalsRepo, historyRepo, err := buildRepos(opts, log)
	if err != nil {
		return nil, err
	}

	photoStore, err := buildPhotoStore(opts.Config)
	if err != nil {
		return nil, err
	}

	// Services por módulo
	catalogSvc := catalog.NewService(catalogRepo)
	animalsSvc := animals.NewService(animalsRepo, catalogSvc, photoStore)
	milkResolver := catalogattr.NewResolver(catalogSvc)
	historySvc := history.NewService(historyRepo, animalsSvc, catalogSvc, milkResolver)

	// Rutas por módulo
	catalog.RegisterRoutes(r, catalogSvc)
	animals.RegisterRoutes(r, animalsSvc)
	history.RegisterRoutes(r, historySvc, animalsSvc)

	return r, nil
}

func buildRepos(opts Options, log logger.Logger) (catalog.Repository, animals.Repository, history.Repository, error) {
	cfg := opts.Config

	switch cfg.Storage {
	case config.StoragePostgres:
		db := opts.DB
		if db == nil {
			opened, err := pg.Open(cfg.DBDSN)
			if err != nil {
				return nil, nil, nil, err
			}
			db = opened
		}
		log.Info("storage ready", map[string]any{"driver": "postgres"})
		return pg.NewCatalogRepo(db), pg.NewAnimalsRepo(db), pg.NewHistoryRepo(db), nil

	case config.StorageRemote:
		client, err := remote.NewClient(cfg.RemoteBaseURL, cfg.RemoteTimeout, log)
		if err != nil {
			return nil, nil, nil, err
		}
		log.Info("storage ready", map[string]any{"driver": "remote", "base_url": cfg.RemoteBaseURL})
		return remote.NewCatalogRepo(client), remote.NewAnimalsRepo(client), remote.NewHistoryRepo(client), nil

	default:
		log.Info("storage ready", map[string]any{"driver": "memory"})
		return mem.NewCatalogRepo(), mem.NewAnimalsRepo(), mem.NewHistoryRepo(), nil
	}
}

func buildPhotoStore(cfg config.Config) (photos.Store, error) {
	switch cfg.PhotoDriver {
	case config.PhotosLocal:
		return photoslocal.New(cfg.PhotoDir)
	case config.PhotosS3:
		return photoss3.New(context.Background(), photoss3.Options{
			Bucket:   cfg.S3Bucket,
			Prefix:   cfg.S3Prefix,
			Region:   cfg.S3Region,
			Endpoint: cfg.S3Endpoint,
		})
	default:
		return nil, nil // sin storage de fotos
	}
}
