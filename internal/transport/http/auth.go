package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/light-bringer/backoffice-service/internal/app/catalog/queries/list_catalog"
	"github.com/light-bringer/backoffice-service/internal/app/catalog/queries/list_inventory"
	"github.com/light-bringer/backoffice-service/internal/app/catalog/queries/list_unpriced"
	identitydomain "github.com/light-bringer/backoffice-service/internal/app/identity/domain"
	"github.com/light-bringer/backoffice-service/internal/app/identity/usecases/login"
	"github.com/light-bringer/backoffice-service/internal/app/identity/usecases/register_customer"
	"github.com/light-bringer/backoffice-service/internal/app/ledger/queries/get_cart"
)

const dashboardPageSize = 20

type loginBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var body loginBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}

	resp, err := h.Login.Execute(c.Request.Context(), &login.Request{
		Username: body.Username,
		Password: body.Password,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      resp.Token,
		"expires_at": resp.ExpiresAt,
		"user_id":    resp.UserID,
		"username":   resp.Username,
		"role":       resp.Role,
	})
}

type registerBody struct {
	FullName        string `json:"full_name"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

func (h *Handler) register(c *gin.Context) {
	var body registerBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}

	resp, err := h.RegisterCustomer.Execute(c.Request.Context(), &register_customer.Request{
		FullName:        body.FullName,
		Username:        body.Username,
		Email:           body.Email,
		Password:        body.Password,
		PasswordConfirm: body.PasswordConfirm,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user_id": resp.UserID})
}

func (h *Handler) me(c *gin.Context) {
	p := principal(c)
	c.JSON(http.StatusOK, gin.H{
		"user_id":  p.UserID,
		"username": p.Username,
		"role":     p.Role,
	})
}

// dashboard returns the landing data for the caller's role.
func (h *Handler) dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	p := principal(c)

	switch identitydomain.Role(p.Role) {
	case identitydomain.RoleCustomer:
		categories, err := h.ListCategories.Execute(ctx)
		if err != nil {
			h.fail(c, err)
			return
		}
		products, err := h.ListCatalog.Execute(ctx, &list_catalog.Request{Limit: dashboardPageSize})
		if err != nil {
			h.fail(c, err)
			return
		}
		cart, err := h.GetCart.Execute(ctx, &get_cart.Request{UserID: p.UserID})
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"role":            p.Role,
			"categories":      toCategoriesJSON(categories),
			"products":        toProductsJSON(products),
			"cart_item_count": cart.ItemCount,
		})

	case identitydomain.RoleWarehouse:
		products, err := h.ListInventory.Execute(ctx, &list_inventory.Request{Limit: dashboardPageSize})
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"role":     p.Role,
			"products": toProductsJSON(products),
		})

	case identitydomain.RoleAdmin:
		summary, err := h.AdminSummary.Execute(ctx)
		if err != nil {
			h.fail(c, err)
			return
		}
		unpriced, err := h.ListUnpriced.Execute(ctx, &list_unpriced.Request{Limit: dashboardPageSize})
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"role":     p.Role,
			"summary":  toSummaryJSON(summary),
			"unpriced": toProductsJSON(unpriced),
		})

	default:
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "unknown role"})
	}
}
