package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	identitydomain "github.com/light-bringer/backoffice-service/internal/app/identity/domain"
)

var (
	customer  = identitydomain.RoleCustomer.String()
	warehouse = identitydomain.RoleWarehouse.String()
	admin     = identitydomain.RoleAdmin.String()
)

// NewRouter registers every route. authLimiter throttles the unauthenticated
// login and register endpoints per client IP.
func NewRouter(h *Handler, verifier TokenVerifier, authLimiter *IPRateLimiter, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(logger))

	r.GET("/healthz", h.healthz)

	api := r.Group("/api/v1")
	authn := Authenticate(verifier)

	auth := api.Group("/auth")
	{
		auth.POST("/login", authLimiter.Middleware(), h.login)
		auth.POST("/register", authLimiter.Middleware(), h.register)
		auth.GET("/me", authn, h.me)
		auth.GET("/dashboard", authn, h.dashboard)
	}

	shop := api.Group("/shop", authn, RequireRole(customer))
	{
		shop.GET("/catalog", h.listCatalog)
		shop.GET("/products/:id", h.getCatalogProduct)
		shop.GET("/categories", h.listCategories)

		shop.GET("/cart", h.getCart)
		shop.POST("/cart/items", h.addCartItem)
		shop.PUT("/cart/items/:id", h.updateCartItem)
		shop.DELETE("/cart/items/:id", h.removeCartItem)
		shop.POST("/checkout", h.checkout)

		shop.GET("/orders", h.listMyOrders)
		shop.GET("/orders/:id", h.getMyOrder)
	}

	// Admins may do everything a warehouse clerk does.
	wh := api.Group("/warehouse", authn, RequireRole(warehouse, admin))
	{
		wh.GET("/products", h.listInventory)
		wh.POST("/products", h.createProduct)
		wh.GET("/products/:id", h.getStockedProduct)
		wh.PATCH("/products/:id", h.updateProduct)
		wh.GET("/categories", h.listCategories)
	}

	adm := api.Group("/admin", authn, RequireRole(admin))
	{
		adm.GET("/summary", h.summary)

		adm.GET("/products/unpriced", h.listUnpriced)
		adm.PUT("/products/:id/price", h.setPrice)
		adm.DELETE("/products/:id/price", h.clearPrice)
		adm.GET("/products/:id/price-history", h.priceHistory)

		adm.GET("/users", h.listUsers)
		adm.POST("/users", h.createUser)
		adm.PUT("/users/:id/role", h.changeRole)
		adm.POST("/users/:id/deactivate", h.deactivateUser)

		adm.GET("/sales/products", h.soldProducts)
		adm.GET("/orders", h.listAllOrders)
		adm.GET("/orders/export", h.exportOrders)
		adm.GET("/orders/:id", h.getAnyOrder)

		adm.GET("/events", h.listEvents)
	}

	return r
}
