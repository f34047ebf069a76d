package main

import (
	"context"
	"log"
	"net/http"

	"github.com/atletia/storefront/config"
	"github.com/atletia/storefront/internal/auth"
	"github.com/atletia/storefront/internal/cart"
	handler "github.com/atletia/storefront/internal/handler/http"
	"github.com/atletia/storefront/internal/invoice"
	"github.com/atletia/storefront/internal/metrics"
	"github.com/atletia/storefront/internal/repository"
	"github.com/atletia/storefront/internal/repository/postgres"
	"github.com/atletia/storefront/internal/service"
	"github.com/atletia/storefront/internal/uploader"
	"github.com/atletia/storefront/internal/webpay"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// fallback signing key for local runs; override with AUTH_TOKEN_KEY
const defaultAuthTokenKey = "f53ac685bbceebd75043e6be2e06ee07"

// newLogger creates logger with log level
func newLogger(level string) (*zap.Logger, error) {

	loggerLvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	loggerCfg := zap.NewProductionConfig()
	loggerCfg.Level = loggerLvl

	return loggerCfg.Build()
}

func main() {

	// load .env if present
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded")
	}

	// create new config
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// initialize logger
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer logger.Sync()

	// create context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// initialize database
	db, err := postgres.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("Error initializing database", zap.Error(err))
	}
	defer db.Close()

	// migrate database
	err = db.Migrate()
	if err != nil {
		logger.Fatal("Error migrating database", zap.Error(err))
	}

	// initialize cart storage
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Fatal("Error connecting to redis", zap.Error(err))
	}
	defer rdb.Close()

	tokenKey := cfg.AuthTokenKey
	if tokenKey == "" {
		tokenKey = defaultAuthTokenKey
	}
	token := auth.NewAuthToken([]byte(tokenKey))

	storeMetrics := metrics.New()

	// dependency injection
	// user
	userRepo := repository.NewUserRepository(db)
	userService := service.NewUserService(userRepo, token)
	userHandler := handler.NewUserHandler(userService)

	// catalog
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	catalogService := service.NewCatalogService(productRepo, categoryRepo)
	catalogHandler := handler.NewCatalogHandler(catalogService)

	// cart
	cartStore := cart.NewStore(rdb)
	cartService := service.NewCartService(cartStore, productRepo)
	cartHandler := handler.NewCartHandler(cartService)

	// payment relay
	gateway := webpay.NewClient(cfg.WebpayCommerceCode, cfg.WebpayAPIKey, cfg.WebpayEnvironment)
	paymentService := service.NewPaymentService(gateway, cfg.ReturnURL)
	paymentHandler := handler.NewPaymentHandler(paymentService)

	// checkout
	orderRepo := repository.NewOrderRepository(db)
	checkoutService := service.NewCheckoutService(orderRepo, cartStore, paymentService, storeMetrics, logger)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService)

	// orders
	orderService := service.NewOrderService(orderRepo, &invoice.TextRenderer{StoreName: "Atletia"})
	orderHandler := handler.NewOrderHandler(orderService)

	// site settings
	settingsRepo := repository.NewSettingsRepository(db)
	settingsService := service.NewSettingsService(settingsRepo)
	settingsHandler := handler.NewSettingsHandler(settingsService)

	// admin
	cdn := uploader.NewCloudinaryClient(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	adminHandler := handler.NewAdminHandler(catalogService, orderService, cdn)

	router := chi.NewRouter()

	router.Use(handler.Logging(logger))

	router.Get("/metrics", promhttp.Handler().ServeHTTP)

	router.Post("/api/user/register", userHandler.RegisterUser())
	router.Post("/api/user/login", userHandler.LoginUser())

	router.Get("/api/products", catalogHandler.ListProducts())
	router.Get("/api/products/{id}", catalogHandler.GetProduct())
	router.Get("/api/categories", catalogHandler.ListCategories())
	router.Get("/api/settings/{key}", settingsHandler.GetSetting())

	// transaction relay endpoints, unauthenticated like the gateway expects
	router.Post("/api/create-transaction", paymentHandler.CreateTransaction())
	router.Post("/api/confirm-transaction", paymentHandler.ConfirmTransaction())

	// routes that require authentication
	router.Group(func(group chi.Router) {
		group.Use(handler.AuthMiddleware(token))
		group.Get("/api/cart", cartHandler.GetCart())
		group.Post("/api/cart/items", cartHandler.AddCartItem())
		group.Put("/api/cart/items/{productID}", cartHandler.UpdateCartItem())
		group.Delete("/api/cart/items/{productID}", cartHandler.RemoveCartItem())
		group.Delete("/api/cart", cartHandler.ClearCart())
		group.Post("/api/checkout", checkoutHandler.Checkout())
		group.Post("/api/checkout/confirm", checkoutHandler.ConfirmCheckout())
		group.Get("/api/user/orders", orderHandler.ListUserOrders())
		group.Get("/api/user/orders/{id}", orderHandler.GetUserOrder())
		group.Get("/api/user/orders/{id}/invoice", orderHandler.GetInvoice())
	})

	// back-office routes
	router.Group(func(group chi.Router) {
		group.Use(handler.AuthMiddleware(token))
		group.Use(handler.AdminMiddleware())
		group.Post("/api/admin/products", adminHandler.CreateProduct())
		group.Put("/api/admin/products/{id}", adminHandler.UpdateProduct())
		group.Delete("/api/admin/products/{id}", adminHandler.DeleteProduct())
		group.Post("/api/admin/categories", adminHandler.CreateCategory())
		group.Put("/api/admin/categories/{id}", adminHandler.UpdateCategory())
		group.Delete("/api/admin/categories/{id}", adminHandler.DeleteCategory())
		group.Get("/api/admin/orders", adminHandler.ListOrders())
		group.Put("/api/admin/orders/{id}/status", adminHandler.UpdateOrderStatus())
		group.Put("/api/admin/settings/{key}", settingsHandler.PutSetting())
		group.Post("/api/admin/uploads", adminHandler.UploadImage())
	})

	logger.Info("Running server", zap.String("addr", cfg.ServerAddr))

	if err := http.ListenAndServe(cfg.ServerAddr, router); err != nil {
		logger.Fatal("Error starting server", zap.Error(err))
	}
}
