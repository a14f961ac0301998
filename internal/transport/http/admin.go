package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/light-bringer/backoffice-service/internal/app/catalog/queries/list_unpriced"
	"github.com/light-bringer/backoffice-service/internal/app/catalog/queries/price_history"
	"github.com/light-bringer/backoffice-service/internal/app/catalog/usecases/assign_price"
	"github.com/light-bringer/backoffice-service/internal/app/identity/queries/list_users"
	"github.com/light-bringer/backoffice-service/internal/app/identity/usecases/change_role"
	"github.com/light-bringer/backoffice-service/internal/app/identity/usecases/create_user"
	"github.com/light-bringer/backoffice-service/internal/app/identity/usecases/deactivate_user"
	"github.com/light-bringer/backoffice-service/internal/app/orders/export"
	"github.com/light-bringer/backoffice-service/internal/app/orders/queries/get_order"
	"github.com/light-bringer/backoffice-service/internal/app/orders/queries/list_orders"
	"github.com/light-bringer/backoffice-service/internal/pkg/outbox"
)

func (h *Handler) summary(c *gin.Context) {
	s, err := h.AdminSummary.Execute(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toSummaryJSON(s))
}

func (h *Handler) listUnpriced(c *gin.Context) {
	page, ok := bindPage(c)
	if !ok {
		return
	}

	products, err := h.ListUnpriced.Execute(c.Request.Context(), &list_unpriced.Request{Limit: page.Limit})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": toProductsJSON(products)})
}

type priceBody struct {
	Price string `json:"price" binding:"required"`
}

func (h *Handler) setPrice(c *gin.Context) {
	var body priceBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "price is required")
		return
	}
	h.assignPrice(c, &body.Price)
}

// clearPrice withdraws a product from the catalog until it is priced again.
func (h *Handler) clearPrice(c *gin.Context) {
	h.assignPrice(c, nil)
}

func (h *Handler) assignPrice(c *gin.Context, price *string) {
	resp, err := h.AssignPrice.Execute(c.Request.Context(), &assign_price.Request{
		ProductID: c.Param("id"),
		Price:     price,
		ActorID:   principal(c).UserID,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"price":   resp.Price,
		"visible": resp.Visible,
		"changed": resp.Changed,
	})
}

func (h *Handler) priceHistory(c *gin.Context) {
	page, ok := bindPage(c)
	if !ok {
		return
	}

	rows, err := h.PriceHistory.Execute(c.Request.Context(), &price_history.Request{
		ProductID: c.Param("id"),
		Limit:     page.Limit,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": toPriceHistoryJSON(rows)})
}

func (h *Handler) listUsers(c *gin.Context) {
	page, ok := bindPage(c)
	if !ok {
		return
	}

	users, err := h.ListUsers.Execute(c.Request.Context(), &list_users.Request{
		Role:   c.Query("role"),
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": toUsersJSON(users)})
}

type createUserBody struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *Handler) createUser(c *gin.Context) {
	var body createUserBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}

	resp, err := h.CreateUser.Execute(c.Request.Context(), &create_user.Request{
		Username: body.Username,
		Email:    body.Email,
		FullName: body.FullName,
		Password: body.Password,
		Role:     body.Role,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user_id": resp.UserID})
}

type roleBody struct {
	Role string `json:"role"`
}

func (h *Handler) changeRole(c *gin.Context) {
	var body roleBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}

	err := h.ChangeRole.Execute(c.Request.Context(), &change_role.Request{
		UserID:  c.Param("id"),
		Role:    body.Role,
		ActorID: principal(c).UserID,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) deactivateUser(c *gin.Context) {
	err := h.DeactivateUser.Execute(c.Request.Context(), &deactivate_user.Request{
		UserID:  c.Param("id"),
		ActorID: principal(c).UserID,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) soldProducts(c *gin.Context) {
	sold, err := h.SoldProducts.Execute(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": toSoldJSON(sold)})
}

func (h *Handler) listAllOrders(c *gin.Context) {
	page, ok := bindPage(c)
	if !ok {
		return
	}

	orders, err := h.ListOrders.Execute(c.Request.Context(), &list_orders.Request{
		AllUsers: true,
		Limit:    page.Limit,
		Offset:   page.Offset,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": toOrdersJSON(orders)})
}

func (h *Handler) getAnyOrder(c *gin.Context) {
	order, err := h.GetOrder.Execute(c.Request.Context(), &get_order.Request{
		OrderID: c.Param("id"),
		AnyUser: true,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderJSON(order))
}

// exportOrders streams every order as a CSV or XLSX attachment.
func (h *Handler) exportOrders(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Header("Content-Type", format.ContentType())
	c.Header("Content-Disposition", "attachment; filename="+format.Filename())
	c.Status(http.StatusOK)

	count, err := h.ExportOrders.Write(c.Request.Context(), format, c.Writer)
	if err != nil {
		// Headers are already sent; the client sees a truncated file.
		h.logger.ErrorContext(c.Request.Context(), "order export failed", "format", string(format), "written", count, "error", err)
		return
	}
	h.logger.InfoContext(c.Request.Context(), "orders exported", "format", string(format), "orders", count)
}

type eventsQuery struct {
	EventType   string `form:"event_type"`
	AggregateID string `form:"aggregate_id"`
	Status      string `form:"status"`
	Limit       int64  `form:"limit" binding:"min=0"`
}

func (h *Handler) listEvents(c *gin.Context) {
	var q eventsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "limit must be a non-negative integer")
		return
	}

	events, err := h.Events.ListEvents(c.Request.Context(), outbox.Filter{
		EventType:   q.EventType,
		AggregateID: q.AggregateID,
		Status:      q.Status,
		Limit:       q.Limit,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": toEventsJSON(events), "count": len(events)})
}
