package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.uber.org/zap"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/d60-Lab/schoolbooks/internal/api"
	"github.com/d60-Lab/schoolbooks/internal/api/handler"
	"github.com/d60-Lab/schoolbooks/internal/auth"
	"github.com/d60-Lab/schoolbooks/internal/broadcast"
	"github.com/d60-Lab/schoolbooks/internal/cache"
	"github.com/d60-Lab/schoolbooks/internal/config"
	"github.com/d60-Lab/schoolbooks/internal/hibp"
	"github.com/d60-Lab/schoolbooks/internal/httpx"
	"github.com/d60-Lab/schoolbooks/internal/mailer"
	"github.com/d60-Lab/schoolbooks/internal/model"
	"github.com/d60-Lab/schoolbooks/internal/repository"
	"github.com/d60-Lab/schoolbooks/internal/service"
	"github.com/d60-Lab/schoolbooks/internal/sms"
	"github.com/d60-Lab/schoolbooks/internal/tld"
	"github.com/d60-Lab/schoolbooks/internal/validate"
	"github.com/d60-Lab/schoolbooks/pkg/logger"
)

// @title SchoolBooks API
// @version 1.0
// @description 二手教材交易平台
// @BasePath /api/v1
func main() {
	configPath := flag.String("config", "config.yaml", "配置文件路径")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}
	if err := logger.Init(cfg.Server.Mode); err != nil {
		panic(err)
	}
	defer logger.Sync()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}); err != nil {
			logger.L().Warn("sentry init failed", zap.Error(err))
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.Tracing.Enabled {
		shutdown, err := initTracer(ctx, cfg.Tracing.Endpoint)
		if err != nil {
			logger.L().Warn("tracing init failed", zap.Error(err))
		} else {
			defer shutdown(context.Background())
		}
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.L().Fatal("database connect failed", zap.Error(err))
	}
	if err := db.AutoMigrate(
		&model.Tier{}, &model.City{}, &model.State{}, &model.Category{},
		&model.User{}, &model.Product{}, &model.Order{}, &model.Payment{},
		&model.CartItem{}, &model.WishlistItem{}, &model.Notification{},
		&model.Card{}, &model.Review{}, &model.SavedSearch{},
	); err != nil {
		logger.L().Fatal("auto migrate failed", zap.Error(err))
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.L().Fatal("redis connect failed", zap.Error(err))
	}

	validate.Register()

	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL, cfg.JWT.Issuer)
	breach := hibp.NewService(httpx.NewClient(cfg.HIBP.BaseURL, nil))

	var smsClient *sms.Client
	if cfg.SMS.BaseURL != "" {
		smsClient = sms.NewClient(cfg.SMS.BaseURL, cfg.SMS.Token, cfg.SMS.Sender)
	}

	var mail *mailer.Mailer
	if cfg.SMTP.Host != "" {
		mail, err = mailer.New(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)
		if err != nil {
			logger.L().Warn("mailer init failed, emails disabled", zap.Error(err))
		}
	}

	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	cartRepo := repository.NewCartRepository(db)
	wishlistRepo := repository.NewWishlistRepository(db)
	notifRepo := repository.NewNotificationRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	cardRepo := repository.NewCardRepository(db)
	searchRepo := repository.NewSavedSearchRepository(db)
	taxonomyRepo := repository.NewTaxonomyRepository(db)

	listings := cache.NewListingCache(productRepo, rdb, 5*time.Minute)

	notifService := service.NewNotificationService(notifRepo, userRepo, rdb, smsClient, mail)
	authService := service.NewAuthService(userRepo, taxonomyRepo, tokens, breach, mail, rdb)
	userService := service.NewUserService(userRepo)
	productService := service.NewProductService(productRepo, orderRepo, userRepo, taxonomyRepo, listings)
	orderService := service.NewOrderService(db, orderRepo, productRepo, cartRepo, notifService, listings)
	paymentService := service.NewPaymentService(paymentRepo, orderRepo)
	cartService := service.NewCartService(cartRepo, productRepo)
	wishlistService := service.NewWishlistService(wishlistRepo, productRepo)
	reviewService := service.NewReviewService(reviewRepo, orderRepo)
	cardService := service.NewCardService(cardRepo)
	searchService := service.NewSavedSearchService(searchRepo)

	hub := broadcast.NewHub(rdb)
	stopHub := hub.Start()

	refresher := tld.NewRefresher(httpx.NewClient(cfg.TLD.SourceURL, nil), rdb, cfg.TLD.Interval, cfg.TLD.TTL)
	stopTLD := refresher.Start()

	h := handler.New(authService, userService, productService, orderService,
		paymentService, cartService, wishlistService, notifService,
		reviewService, cardService, searchService, taxonomyRepo, hub)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: api.NewRouter(cfg, h, tokens),
	}

	go func() {
		logger.L().Info("server listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.L().Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.L().Error("server shutdown failed", zap.Error(err))
	}
	if err := stopHub(shutdownCtx); err != nil {
		logger.L().Error("hub shutdown failed", zap.Error(err))
	}
	if err := stopTLD(shutdownCtx); err != nil {
		logger.L().Error("tld refresher shutdown failed", zap.Error(err))
	}
	_ = rdb.Close()
	os.Exit(0)
}

func initTracer(ctx context.Context, endpoint string) (func(context.Context) error, error) {
	exp, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpoint(endpoint), otlptracehttp.WithInsecure())
	if err != nil {
		return nil, err
	}
	res, err := resource.New(ctx, resource.WithAttributes(
		semconv.ServiceName("schoolbooks"),
	))
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}
