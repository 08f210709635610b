package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/styleshelf/storefront/config"
	"github.com/styleshelf/storefront/internal/auth"
	"github.com/styleshelf/storefront/internal/email"
	"github.com/styleshelf/storefront/internal/gateway"
	handler "github.com/styleshelf/storefront/internal/handler/http"
	"github.com/styleshelf/storefront/internal/logger"
	"github.com/styleshelf/storefront/internal/repository"
	"github.com/styleshelf/storefront/internal/repository/postgres"
	"github.com/styleshelf/storefront/internal/repository/redisrepo"
	"github.com/styleshelf/storefront/internal/service"
	"github.com/styleshelf/storefront/internal/worker"
)

func main() {

	// create new config
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// initialize logger
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer logger.Log.Sync()

	// create context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// initialize database
	db, err := postgres.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Log.Fatal("Error initializing database", zap.Error(err))
	}
	defer db.Close()

	// migrate database
	if err := db.Migrate(); err != nil {
		logger.Log.Fatal("Error migrating database", zap.Error(err))
	}

	// session records live in redis
	redisClient := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Log.Fatal("Error connecting to redis", zap.Error(err))
	}
	defer redisClient.Close()

	if cfg.TokenKey == "" {
		logger.Log.Fatal("AUTH_TOKEN_KEY is not set")
	}
	token := auth.NewAuthToken([]byte(cfg.TokenKey), cfg.SessionTTL)

	gatewayClient := gateway.NewClient(cfg.GatewayBaseURL, cfg.GatewayKeyID, cfg.GatewayKeySecret)
	emailClient := email.NewClient(cfg.EmailBaseURL, cfg.EmailAPIKey, cfg.EmailSender)

	// dependency injection
	// accounts
	userRepo := repository.NewUserRepository(db)
	sessionRepo := redisrepo.NewSessionRepo(redisClient)
	authService := service.NewAuthService(userRepo, sessionRepo, token, cfg.SessionTTL)
	userHandler := handler.NewUserHandler(authService, cfg.SessionTTL)

	// pricing catalog
	pricingRepo := repository.NewPricingRepository(db)
	catalogService := service.NewCatalogService(pricingRepo)
	pricingHandler := handler.NewPricingHandler(catalogService)

	// notifications
	notificationService := service.NewNotificationService(emailClient)
	notificationHandler := handler.NewNotificationHandler(notificationService)

	// checkout
	orderRepo := repository.NewOrderRepository(db)
	orderService := service.NewOrderService(orderRepo, pricingRepo, userRepo, gatewayClient, notificationService, cfg.Currency)
	orderHandler := handler.NewOrderHandler(orderService)

	// sweep abandoned checkouts
	reconciler := worker.NewReconciler(orderService, cfg.SweepInterval, cfg.StaleOrderAge)
	go reconciler.Run(ctx)

	router := chi.NewRouter()

	router.Use(handler.Logging(logger.Log))
	router.Use(handler.CORS)

	router.Post("/api/user/register", userHandler.RegisterUser())
	router.Post("/api/user/login", userHandler.LoginUser())
	router.Get("/api/pricing", pricingHandler.ListPricing())

	// routes that require authentication
	router.Group(func(group chi.Router) {
		group.Use(handler.Auth(authService))
		group.Post("/api/user/logout", userHandler.LogoutUser())
		group.Get("/api/user/orders", orderHandler.ListUserOrders())
		group.Post("/api/orders", orderHandler.CreateOrderIntent())
		group.Post("/api/orders/confirm", orderHandler.ConfirmOrder())
		group.Post("/api/notifications/payment", notificationHandler.SendPaymentEmail())

		group.Group(func(admin chi.Router) {
			admin.Use(handler.AdminOnly)
			admin.Post("/api/admin/pricing", pricingHandler.CreatePricing())
			admin.Put("/api/admin/pricing/{id}", pricingHandler.UpdatePricing())
			admin.Delete("/api/admin/pricing/{id}", pricingHandler.DeletePricing())
		})
	})

	logger.Log.Info("Running server", zap.String("addr", cfg.ServerAddr))

	if err := http.ListenAndServe(cfg.ServerAddr, router); err != nil {
		logger.Log.Fatal("Error starting server", zap.Error(err))
	}
}
