package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"skyguide/internal/apod"
	"skyguide/internal/config"
	apphttp "skyguide/internal/http"
	"skyguide/internal/imagesearch"
	"skyguide/internal/repository"
	"skyguide/internal/repository/memory"
	"skyguide/internal/repository/sqlite"
	"skyguide/internal/service"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		logger.SetLevel(level)
	} else {
		logger.Warnf("unknown log level %q, keeping %s", cfg.Log.Level, logger.GetLevel())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := buildStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("setup store: %v", err)
	}
	defer closeStore()

	if err := service.Seed(ctx, store); err != nil {
		logger.Fatalf("seed catalog: %v", err)
	}

	userService := service.NewUserService(store.Users)
	demo, err := userService.EnsureDemoUser(ctx, service.DemoUser{
		Username: "demo",
		Email:    "demo@example.com",
		Password: cfg.Demo.Password,
	})
	if err != nil {
		logger.Fatalf("ensure demo user: %v", err)
	}
	if demo.ID != cfg.Demo.UserID {
		logger.Warnf("demo user has id %d but demo.userid is %d", demo.ID, cfg.Demo.UserID)
	}

	apodClient := apod.NewClient(apod.Config{
		BaseURL: cfg.NASA.APODBaseURL,
		APIKey:  cfg.NASA.APIKey,
		Timeout: cfg.NASA.Timeout,
		Logger:  logger,
	})
	if apodClient.UsingDemoKey() {
		logger.Warn("NASA_API_KEY not set, using DEMO_KEY (30 requests/hour, 50/day)")
	}

	var fetcher apod.Fetcher = apodClient
	if cfg.APOD.Strategy == config.APODStrategyScrape {
		fetcher = apod.NewScraper(apod.ScraperConfig{
			BaseURL: cfg.APOD.PageBaseURL,
			Timeout: cfg.NASA.Timeout,
			Logger:  logger,
		})
	}
	logger.Infof("apod strategy: %s", cfg.APOD.Strategy)

	resolver := imagesearch.New(imagesearch.Config{
		NASABaseURL:      cfg.NASA.ImagesBaseURL,
		WikipediaBaseURL: cfg.Wikipedia.BaseURL,
		Timeout:          cfg.NASA.Timeout,
		RetryBase:        cfg.Images.RetryBase,
		MaxAttempts:      cfg.Images.MaxAttempts,
		Logger:           logger,
	})

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	handler := apphttp.NewHandler(
		service.NewCatalogService(store),
		service.NewObservationService(store),
		userService,
		fetcher,
		resolver,
		apodClient.UsingDemoKey(),
		cfg.Demo.UserID,
		logger,
	)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}

func buildStore(ctx context.Context, cfg config.Config, logger *logrus.Logger) (*repository.Store, func(), error) {
	if cfg.Store.Driver != config.StoreSQLite {
		logger.Info("using in-memory store")
		return memory.NewStore(), func() {}, nil
	}

	db, err := sqlite.Open(cfg.Store.Path)
	if err != nil {
		return nil, nil, err
	}
	store, err := sqlite.NewStore(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	logger.Infof("using sqlite store at %s", cfg.Store.Path)
	return store, closer(db, logger), nil
}

func closer(db *sql.DB, logger *logrus.Logger) func() {
	return func() {
		if err := db.Close(); err != nil {
			logger.Warnf("close database: %v", err)
		}
	}
}
