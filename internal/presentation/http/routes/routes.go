package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/agriconnect/agriconnect-api/internal/config"
	"github.com/agriconnect/agriconnect-api/internal/domain/enum"
	domainRepo "github.com/agriconnect/agriconnect-api/internal/domain/repository"
	"github.com/agriconnect/agriconnect-api/internal/presentation/http/handler"
	"github.com/agriconnect/agriconnect-api/internal/presentation/http/middleware"
	"github.com/agriconnect/agriconnect-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth     *handler.AuthHandler
	Product  *handler.ProductHandler
	Cart     *handler.CartHandler
	Checkout *handler.CheckoutHandler
	Order    *handler.OrderHandler
	User     *handler.UserHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	v1 := router.Group("/api/v1")
	{
		registerAuthRoutes(v1, h)

		// Public catalog browsing
		v1.GET("/products", h.Product.List)
		v1.GET("/products/:id", h.Product.Get)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		rlCfg := middleware.DefaultRateLimiterConfig()
		if deps.Cfg.RateLimit.Requests > 0 && deps.Cfg.RateLimit.Duration > 0 {
			rlCfg.RequestsPerSecond = float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration)
			rlCfg.BurstSize = deps.Cfg.RateLimit.Requests
		}
		rateLimiter := middleware.NewUserRateLimiter(rlCfg)
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
		auth.GET("/google", h.Auth.GoogleAuth)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Profile
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile", h.Auth.UpdateProfile)

	// Farmer listings
	farmerProducts := protected.Group("/farmer/products")
	farmerProducts.Use(middleware.RequireRole(enum.RoleFarmer))
	{
		farmerProducts.GET("", h.Product.ListMine)
		farmerProducts.POST("", h.Product.Create)
		farmerProducts.PUT("/:id", h.Product.Update)
		farmerProducts.DELETE("/:id", h.Product.Delete)
	}

	// Cart
	cart := protected.Group("/cart")
	cart.Use(middleware.RequireRole(enum.RoleBuyer))
	{
		cart.GET("", h.Cart.Get)
		cart.POST("/items", h.Cart.Add)
		cart.PUT("/items/:productId", h.Cart.UpdateQuantity)
		cart.DELETE("/items/:productId", h.Cart.Remove)
		cart.DELETE("", h.Cart.Clear)
	}

	// Checkout: payment submission replays through the idempotency cache so
	// a double-submitted invoice never places orders twice
	checkout := protected.Group("/checkout")
	checkout.Use(middleware.RequireRole(enum.RoleBuyer))
	{
		checkout.POST("", h.Checkout.Begin)
		checkout.POST("/buy-now", h.Checkout.BuyNow)
		checkout.GET("/pending", h.Checkout.GetPending)
		checkout.DELETE("/pending", h.Checkout.Abandon)
		checkout.POST("/pay",
			middleware.IdempotencyRequired(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo}),
			h.Checkout.Pay)
		checkout.GET("/receipt", h.Checkout.GetReceipt)
	}

	// Orders
	orders := protected.Group("/orders")
	{
		orders.GET("", middleware.RequireRole(enum.RoleBuyer), h.Order.ListMine)
		orders.GET("/sales", middleware.RequireRole(enum.RoleFarmer), h.Order.ListSales)
		orders.GET("/:id", h.Order.Get)
		orders.PATCH("/:id/status", middleware.RequireRole(enum.RoleFarmer), h.Order.UpdateStatus)
		orders.POST("/:id/cancel", middleware.RequireRole(enum.RoleBuyer), h.Order.Cancel)
	}

	// Admin
	admin := protected.Group("/admin")
	admin.Use(middleware.RequireRole(enum.RoleAdmin))
	{
		admin.GET("/users", h.User.List)
		admin.GET("/users/:id", h.User.Get)
		admin.DELETE("/users/:id", h.User.Delete)
		admin.GET("/orders", h.Order.ListAll)
	}
}
