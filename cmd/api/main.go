package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/agriconnect/agriconnect-api/internal/application/service"
	"github.com/agriconnect/agriconnect-api/internal/config"
	"github.com/agriconnect/agriconnect-api/internal/infrastructure/database"
	"github.com/agriconnect/agriconnect-api/internal/infrastructure/repository"
	"github.com/agriconnect/agriconnect-api/internal/presentation/http/dto/request"
	"github.com/agriconnect/agriconnect-api/internal/presentation/http/handler"
	"github.com/agriconnect/agriconnect-api/internal/presentation/http/routes"
	"github.com/agriconnect/agriconnect-api/pkg/oauth"
	"github.com/agriconnect/agriconnect-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Connect to Redis (carts and billing sessions)
	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Register request validations
	if err := request.RegisterCustomValidators(); err != nil {
		log.Fatalf("Failed to register validators: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	orderItemRepo := repository.NewOrderItemRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	cartRepo := repository.NewCartRepository(redisClient)
	invoiceRepo := repository.NewInvoiceRepository(redisClient)

	// Initialize Google OAuth service
	googleOAuthService := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:           cfg.OAuth.GoogleClientID,
		ClientSecret:       cfg.OAuth.GoogleClientSecret,
		RedirectURL:        cfg.OAuth.GoogleRedirectURL,
		FrontendSuccessURL: cfg.OAuth.FrontendSuccessURL,
		FrontendErrorURL:   cfg.OAuth.FrontendErrorURL,
	})

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager, googleOAuthService)
	userService := service.NewUserService(userRepo)
	productService := service.NewProductService(productRepo)
	cartService := service.NewCartService(cartRepo, productRepo)
	checkoutService := service.NewCheckoutService(cartService, invoiceRepo, productRepo, userRepo, orderRepo)
	orderService := service.NewOrderService(orderRepo, orderItemRepo, productRepo)

	// Initialize handlers
	h := &routes.Handlers{
		Auth:     handler.NewAuthHandler(authService, userService),
		Product:  handler.NewProductHandler(productService),
		Cart:     handler.NewCartHandler(cartService),
		Checkout: handler.NewCheckoutHandler(checkoutService),
		Order:    handler.NewOrderHandler(orderService),
		User:     handler.NewUserHandler(userService),
	}

	// Setup routes
	router := routes.Setup(h, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Start server
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s on port %s (env: %s)", cfg.App.Name, port, cfg.App.Env)
	if err := router.Run(":" + port); err != nil {
		log.Printf("Server error: %v", err)
		os.Exit(1)
	}
}
