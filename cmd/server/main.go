package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/ecomercado/backend/internal/application/catalog"
	donationapp "github.com/ecomercado/backend/internal/application/donation"
	identityapp "github.com/ecomercado/backend/internal/application/identity"
	mediaapp "github.com/ecomercado/backend/internal/application/media"
	messagingapp "github.com/ecomercado/backend/internal/application/messaging"
	notificationapp "github.com/ecomercado/backend/internal/application/notification"
	recommendapp "github.com/ecomercado/backend/internal/application/recommend"
	tradeapp "github.com/ecomercado/backend/internal/application/trade"
	"github.com/ecomercado/backend/internal/infrastructure/auth"
	"github.com/ecomercado/backend/internal/infrastructure/cache"
	"github.com/ecomercado/backend/internal/infrastructure/config"
	"github.com/ecomercado/backend/internal/infrastructure/event"
	"github.com/ecomercado/backend/internal/infrastructure/logger"
	"github.com/ecomercado/backend/internal/infrastructure/persistence"
	"github.com/ecomercado/backend/internal/infrastructure/push"
	"github.com/ecomercado/backend/internal/infrastructure/storage"
	"github.com/ecomercado/backend/internal/interfaces/http/handler"
	"github.com/ecomercado/backend/internal/interfaces/http/middleware"
	"github.com/ecomercado/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting ECOMercado backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	hitCounter, err := cache.NewRedisHitCounter(cfg.Redis)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := hitCounter.Close(); err != nil {
			log.Error("Error closing Redis connection", zap.Error(err))
		}
	}()
	log.Info("Redis connected")

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	cartRepo := persistence.NewGormCartRepository(db.DB)
	wishlistRepo := persistence.NewGormWishlistRepository(db.DB)
	ratingRepo := persistence.NewGormRatingRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	donationRepo := persistence.NewGormDonationRepository(db.DB)
	requestRepo := persistence.NewGormRequestRepository(db.DB)
	chatRepo := persistence.NewGormChatRepository(db.DB)
	messageRepo := persistence.NewGormMessageRepository(db.DB)
	notificationRepo := persistence.NewGormNotificationRepository(db.DB)
	hitRepo := persistence.NewGormHitRepository(db.DB)

	// Event bus and subscribers
	eventBus := event.NewInMemoryEventBus(log)

	var pushSender notificationapp.PushSender
	if cfg.Push.Enabled {
		pushSender = push.NewRelayClient(cfg.Push, log)
		log.Info("Push relay enabled", zap.String("url", cfg.Push.URL))
	} else {
		pushSender = push.NewNopSender()
	}

	eventBus.Subscribe(tradeapp.NewQuantityReleaseHandler(productRepo, log))
	eventBus.Subscribe(donationapp.NewDonatedMarkHandler(donationRepo, log))
	eventBus.Subscribe(notificationapp.NewDispatcher(notificationRepo, userRepo, pushSender, log))

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, log)
	productService := catalogapp.NewProductService(productRepo, log)
	categoryService := catalogapp.NewCategoryService(categoryRepo)
	cartService := catalogapp.NewCartService(cartRepo, productRepo)
	wishlistService := catalogapp.NewWishlistService(wishlistRepo, productRepo)
	ratingService := catalogapp.NewRatingService(ratingRepo, orderRepo)
	orderService := tradeapp.NewOrderService(orderRepo, productRepo, log)
	orderService.SetEventPublisher(eventBus)
	donationService := donationapp.NewDonationService(donationRepo, log)
	requestService := donationapp.NewRequestService(requestRepo, donationRepo, log)
	requestService.SetEventPublisher(eventBus)
	chatService := messagingapp.NewChatService(chatRepo, messageRepo, log)
	chatService.SetEventPublisher(eventBus)
	notificationService := notificationapp.NewNotificationService(notificationRepo)
	recommendService := recommendapp.NewRecommendationService(productRepo, donationRepo, hitRepo, hitCounter, log)

	imageStorage, err := storage.NewS3ImageStorage(cfg.Storage, log)
	if err != nil {
		log.Fatal("Failed to initialize object storage", zap.Error(err))
	}
	{
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := imageStorage.EnsureBucket(ctx); err != nil {
			log.Fatal("Failed to prepare storage bucket", zap.Error(err))
		}
		cancel()
	}
	uploadService := mediaapp.NewUploadService(imageStorage, log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	router.Setup(engine, jwtService, router.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		Product:      handler.NewProductHandler(productService, ratingService, recommendService),
		Category:     handler.NewCategoryHandler(categoryService),
		Cart:         handler.NewCartHandler(cartService),
		Wishlist:     handler.NewWishlistHandler(wishlistService),
		Order:        handler.NewOrderHandler(orderService),
		Donation:     handler.NewDonationHandler(donationService, recommendService),
		Request:      handler.NewRequestHandler(requestService),
		Chat:         handler.NewChatHandler(chatService),
		Notification: handler.NewNotificationHandler(notificationService),
		Recommend:    handler.NewRecommendHandler(recommendService),
		Upload:       handler.NewUploadHandler(uploadService),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
