// Package v1 wires the HTTP API.
package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/nicole276/Api-Stockbar/internal/infrastructure/http/v1/handlers"
	"github.com/nicole276/Api-Stockbar/internal/infrastructure/http/v1/middleware"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Health   *handlers.HealthHandler
	Auth     *handlers.AuthHandler
	Product  *handlers.ProductHandler
	Category *handlers.CategoryHandler
	Client   *handlers.ClientHandler
	Supplier *handlers.SupplierHandler
	Purchase *handlers.PurchaseHandler
	Sale     *handlers.SaleHandler
}

// NewRouter builds the gin engine with all middleware and routes.
func NewRouter(h Handlers, tokens middleware.TokenParser, production bool) *gin.Engine {
	if production {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		middleware.Trace(),
		middleware.Recovery(),
		middleware.RequestLogger(),
		middleware.ErrorHandler(),
	)

	router.GET("/healthz", h.Health.Live)
	router.GET("/readyz", h.Health.Ready)

	api := router.Group("/api/v1")

	// Public endpoints.
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/password-reset", h.Auth.RequestPasswordReset)
	api.POST("/auth/password-reset/confirm", h.Auth.ConfirmPasswordReset)

	// Everything else requires a token.
	protected := api.Group("", middleware.Auth(tokens))

	users := protected.Group("/users")
	users.GET("", h.Auth.ListUsers)
	users.POST("", h.Auth.CreateUser)
	users.GET("/:id", h.Auth.GetUser)

	roles := protected.Group("/roles")
	roles.GET("", h.Auth.ListRoles)
	roles.POST("", h.Auth.CreateRole)

	categories := protected.Group("/categories")
	categories.GET("", h.Category.List)
	categories.POST("", h.Category.Create)
	categories.GET("/:id", h.Category.Get)
	categories.PUT("/:id", h.Category.Update)
	categories.DELETE("/:id", h.Category.Delete)

	clients := protected.Group("/clients")
	clients.GET("", h.Client.List)
	clients.POST("", h.Client.Create)
	clients.GET("/:id", h.Client.Get)
	clients.PUT("/:id", h.Client.Update)
	clients.DELETE("/:id", h.Client.Deactivate)

	suppliers := protected.Group("/suppliers")
	suppliers.GET("", h.Supplier.List)
	suppliers.POST("", h.Supplier.Create)
	suppliers.GET("/:id", h.Supplier.Get)
	suppliers.PUT("/:id", h.Supplier.Update)
	suppliers.DELETE("/:id", h.Supplier.Deactivate)

	products := protected.Group("/products")
	products.GET("", h.Product.List)
	products.POST("", h.Product.Create)
	products.GET("/:id", h.Product.Get)
	products.PUT("/:id", h.Product.Update)
	products.DELETE("/:id", h.Product.Deactivate)
	products.POST("/:id/stock", h.Product.AdjustStock)

	purchases := protected.Group("/purchases")
	purchases.GET("", h.Purchase.List)
	purchases.POST("", h.Purchase.Create)
	purchases.GET("/:id", h.Purchase.Get)

	sales := protected.Group("/sales")
	sales.GET("", h.Sale.List)
	sales.POST("", h.Sale.Create)
	sales.GET("/:id", h.Sale.Get)
	sales.GET("/:id/lines", h.Sale.GetLines)
	sales.PATCH("/:id/state", h.Sale.ChangeState)
	sales.DELETE("/:id", h.Sale.Delete)

	return router
}
