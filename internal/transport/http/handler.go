// Package http exposes the back office as a JSON API over gin.
package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/light-bringer/backoffice-service/internal/app/catalog/queries/get_product"
	"github.com/light-bringer/backoffice-service/internal/app/catalog/queries/list_catalog"
	"github.com/light-bringer/backoffice-service/internal/app/catalog/queries/list_categories"
	"github.com/light-bringer/backoffice-service/internal/app/catalog/queries/list_inventory"
	"github.com/light-bringer/backoffice-service/internal/app/catalog/queries/list_unpriced"
	"github.com/light-bringer/backoffice-service/internal/app/catalog/queries/price_history"
	"github.com/light-bringer/backoffice-service/internal/app/catalog/usecases/assign_price"
	"github.com/light-bringer/backoffice-service/internal/app/catalog/usecases/create_product"
	"github.com/light-bringer/backoffice-service/internal/app/catalog/usecases/update_product"
	"github.com/light-bringer/backoffice-service/internal/app/identity/queries/list_users"
	"github.com/light-bringer/backoffice-service/internal/app/identity/usecases/change_role"
	"github.com/light-bringer/backoffice-service/internal/app/identity/usecases/create_user"
	"github.com/light-bringer/backoffice-service/internal/app/identity/usecases/deactivate_user"
	"github.com/light-bringer/backoffice-service/internal/app/identity/usecases/login"
	"github.com/light-bringer/backoffice-service/internal/app/identity/usecases/register_customer"
	"github.com/light-bringer/backoffice-service/internal/app/ledger/queries/get_cart"
	"github.com/light-bringer/backoffice-service/internal/app/ledger/usecases/add_to_cart"
	"github.com/light-bringer/backoffice-service/internal/app/ledger/usecases/checkout"
	"github.com/light-bringer/backoffice-service/internal/app/ledger/usecases/remove_cart_item"
	"github.com/light-bringer/backoffice-service/internal/app/ledger/usecases/update_cart_item"
	"github.com/light-bringer/backoffice-service/internal/app/orders/queries/admin_summary"
	"github.com/light-bringer/backoffice-service/internal/app/orders/queries/export_orders"
	"github.com/light-bringer/backoffice-service/internal/app/orders/queries/get_order"
	"github.com/light-bringer/backoffice-service/internal/app/orders/queries/list_orders"
	"github.com/light-bringer/backoffice-service/internal/app/orders/queries/sold_products"
	"github.com/light-bringer/backoffice-service/internal/models/m_outbox"
	"github.com/light-bringer/backoffice-service/internal/pkg/outbox"
)

// EventLister reads stored outbox events.
type EventLister interface {
	ListEvents(ctx context.Context, filter outbox.Filter) ([]*m_outbox.Data, error)
}

// Deps holds every use case and query served over HTTP.
type Deps struct {
	// identity
	Login            *login.Interactor
	RegisterCustomer *register_customer.Interactor
	CreateUser       *create_user.Interactor
	ChangeRole       *change_role.Interactor
	DeactivateUser   *deactivate_user.Interactor
	ListUsers        *list_users.Query

	// catalog
	CreateProduct  *create_product.Interactor
	UpdateProduct  *update_product.Interactor
	AssignPrice    *assign_price.Interactor
	GetProduct     *get_product.Query
	ListCatalog    *list_catalog.Query
	ListCategories *list_categories.Query
	ListInventory  *list_inventory.Query
	ListUnpriced   *list_unpriced.Query
	PriceHistory   *price_history.Query

	// ledger
	AddToCart      *add_to_cart.Interactor
	UpdateCartItem *update_cart_item.Interactor
	RemoveCartItem *remove_cart_item.Interactor
	Checkout       *checkout.Interactor
	GetCart        *get_cart.Query

	// orders
	ListOrders   *list_orders.Query
	GetOrder     *get_order.Query
	SoldProducts *sold_products.Query
	AdminSummary *admin_summary.Query
	ExportOrders *export_orders.Query

	Events EventLister
}

// Handler serves the JSON API.
type Handler struct {
	Deps
	logger *slog.Logger
}

// NewHandler creates a new Handler.
func NewHandler(deps Deps, logger *slog.Logger) *Handler {
	return &Handler{Deps: deps, logger: logger}
}

type pageQuery struct {
	Limit  int64 `form:"limit" binding:"min=0"`
	Offset int64 `form:"offset" binding:"min=0"`
}

func bindPage(c *gin.Context) (pageQuery, bool) {
	var page pageQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		badRequest(c, "limit and offset must be non-negative integers")
		return page, false
	}
	return page, true
}

func (h *Handler) fail(c *gin.Context, err error) {
	writeError(c, h.logger, err, internalErrorMessage)
}

func (h *Handler) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
