package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/jewellerymart/catalog/internal/cache"
	"github.com/jewellerymart/catalog/internal/config"
	"github.com/jewellerymart/catalog/internal/events"
	"github.com/jewellerymart/catalog/internal/httpserver"
	"github.com/jewellerymart/catalog/internal/logging"
	"github.com/jewellerymart/catalog/internal/models"
	"github.com/jewellerymart/catalog/internal/repo"
	"github.com/jewellerymart/catalog/internal/search"
	"github.com/jewellerymart/catalog/internal/service"
	pkgdb "github.com/jewellerymart/catalog/pkg/db"
	loggingmw "github.com/jewellerymart/catalog/pkg/middleware/logging"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}

	if err := db.AutoMigrate(&models.Product{}, &models.Order{}); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	catalogRepo := &repo.GormRepo{DB: db}

	var producer *events.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = events.NewProducer(cfg.KafkaBrokers)
		defer producer.Close()
	}

	var productCache *cache.ProductCache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		productCache = cache.New(rdb)
	}

	catalogSvc := &service.CatalogService{
		Repo:   catalogRepo,
		Events: producer,
		Cache:  productCache,
	}
	if cfg.ESURL != "" {
		searcher, err := search.NewNameSearcher(cfg.ESURL, cfg.ESUser, cfg.ESPassword, cfg.ESIndex)
		if err != nil {
			log.Fatalf("elasticsearch: %v", err)
		}
		catalogSvc.Search = searcher
	}

	orderSvc := &service.OrderService{Repo: catalogRepo, Events: producer}

	e := echo.New()
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())

	httpserver.Register(e, &httpserver.Deps{
		CatalogHandler: &httpserver.CatalogHTTP{Svc: catalogSvc},
		OrderHandler:   &httpserver.OrderHTTP{Svc: orderSvc},
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		log.Printf("catalog listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Println("catalog stopped")
}
