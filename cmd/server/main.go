package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/iliyamo/campus-housing/internal/config"
	"github.com/iliyamo/campus-housing/internal/database"
	"github.com/iliyamo/campus-housing/internal/fallback"
	"github.com/iliyamo/campus-housing/internal/handler"
	"github.com/iliyamo/campus-housing/internal/middleware"
	"github.com/iliyamo/campus-housing/internal/queue"
	"github.com/iliyamo/campus-housing/internal/repository"
	"github.com/iliyamo/campus-housing/internal/router"
	"github.com/iliyamo/campus-housing/internal/service"
	"github.com/iliyamo/campus-housing/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info(".env not found, using process environment")
	}
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	mongoClient, err := storage.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatalf("photo store: %v", err)
	}
	defer mongoClient.Disconnect(context.Background())

	rdb := config.NewRedisClient()
	if rdb != nil {
		defer rdb.Close()
	}

	listingRepo := repository.NewListingRepo(db)
	profileRepo := repository.NewProfileRepo(db)
	favoriteRepo := repository.NewFavoriteRepo(db)
	reviewRepo := repository.NewReviewRepo(db)
	inquiryRepo := repository.NewInquiryRepo(db)

	photos := service.NewPhotoService(storage.NewPhotoStore(mongoClient, cfg.MongoDB), cfg.PhotoMaxBytes, cfg.PublicBaseURL)
	query := service.NewQueryService(listingRepo).WithSnapshot(fallback.Snapshot)

	h := router.Handlers{
		Listings:  handler.NewListingHandler(query, service.NewSubletService(listingRepo)),
		Favorites: handler.NewFavoriteHandler(service.NewFavoriteService(favoriteRepo)),
		Reviews:   handler.NewReviewHandler(service.NewReviewService(reviewRepo)),
		Inquiries: handler.NewInquiryHandler(service.NewInquiryService(inquiryRepo, listingRepo, queue.NewPublisher(cfg.RabbitMQURL))),
		Profiles:  handler.NewProfileHandler(service.NewProfileService(profileRepo, listingRepo, photos)),
		Photos:    handler.NewPhotoHandler(photos),
	}

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(log.INFO)
	if cfg.Env == "development" {
		e.Logger.SetLevel(log.DEBUG)
	}
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(echomw.BodyLimit("12M"))

	router.Register(e, h, router.Options{
		JWTSecret: cfg.JWTSecret,
		Cache:     middleware.NewRedisCache(config.LoadCacheConfig(), rdb),
		RateLimit: middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
	})

	done := make(chan struct{})
	if cfg.InquiryConsumerEnabled {
		consumer := &queue.Consumer{URL: cfg.RabbitMQURL, LogDir: cfg.InquiryLogDir}
		go func() {
			defer close(done)
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Errorf("inquiry consumer stopped: %v", err)
			}
		}()
	} else {
		close(done)
	}

	go func() {
		addr := ":" + cfg.Port
		log.Infof("listening on %s (env=%s)", addr, cfg.Env)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Errorf("shutdown: %v", err)
	}
	<-done
}
