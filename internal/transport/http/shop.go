package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/light-bringer/backoffice-service/internal/app/catalog/queries/get_product"
	"github.com/light-bringer/backoffice-service/internal/app/catalog/queries/list_catalog"
	"github.com/light-bringer/backoffice-service/internal/app/ledger/queries/get_cart"
	"github.com/light-bringer/backoffice-service/internal/app/ledger/usecases/add_to_cart"
	"github.com/light-bringer/backoffice-service/internal/app/ledger/usecases/checkout"
	"github.com/light-bringer/backoffice-service/internal/app/ledger/usecases/remove_cart_item"
	"github.com/light-bringer/backoffice-service/internal/app/ledger/usecases/update_cart_item"
	"github.com/light-bringer/backoffice-service/internal/app/orders/queries/get_order"
	"github.com/light-bringer/backoffice-service/internal/app/orders/queries/list_orders"
)

func (h *Handler) listCatalog(c *gin.Context) {
	page, ok := bindPage(c)
	if !ok {
		return
	}

	products, err := h.ListCatalog.Execute(c.Request.Context(), &list_catalog.Request{
		CategoryID: c.Query("category"),
		Search:     c.Query("q"),
		Limit:      page.Limit,
		Offset:     page.Offset,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": toProductsJSON(products)})
}

func (h *Handler) getCatalogProduct(c *gin.Context) {
	product, err := h.GetProduct.Execute(c.Request.Context(), &get_product.Request{ProductID: c.Param("id")})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductJSON(product))
}

func (h *Handler) listCategories(c *gin.Context) {
	categories, err := h.ListCategories.Execute(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": toCategoriesJSON(categories)})
}

func (h *Handler) getCart(c *gin.Context) {
	cart, err := h.GetCart.Execute(c.Request.Context(), &get_cart.Request{UserID: principal(c).UserID})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartJSON(cart))
}

type addItemBody struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

func (h *Handler) addCartItem(c *gin.Context) {
	body := addItemBody{Quantity: 1}
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}

	resp, err := h.AddToCart.Execute(c.Request.Context(), &add_to_cart.Request{
		UserID:    principal(c).UserID,
		ProductID: body.ProductID,
		Quantity:  body.Quantity,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"cart_id":    resp.CartID,
		"item_id":    resp.ItemID,
		"quantity":   resp.Quantity,
		"stock_left": resp.StockLeft,
	})
}

type quantityBody struct {
	Quantity int64 `json:"quantity"`
}

func (h *Handler) updateCartItem(c *gin.Context) {
	var body quantityBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}

	resp, err := h.UpdateCartItem.Execute(c.Request.Context(), &update_cart_item.Request{
		UserID:   principal(c).UserID,
		ItemID:   c.Param("id"),
		Quantity: body.Quantity,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"item_id":    resp.ItemID,
		"quantity":   resp.Quantity,
		"stock_left": resp.StockLeft,
	})
}

func (h *Handler) removeCartItem(c *gin.Context) {
	err := h.RemoveCartItem.Execute(c.Request.Context(), &remove_cart_item.Request{
		UserID: principal(c).UserID,
		ItemID: c.Param("id"),
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) checkout(c *gin.Context) {
	order, err := h.Checkout.Execute(c.Request.Context(), &checkout.Request{UserID: principal(c).UserID})
	if err != nil {
		writeError(c, h.logger, err, "failed to process order")
		return
	}
	c.JSON(http.StatusCreated, placedOrderJSON(order))
}

func (h *Handler) listMyOrders(c *gin.Context) {
	page, ok := bindPage(c)
	if !ok {
		return
	}

	orders, err := h.ListOrders.Execute(c.Request.Context(), &list_orders.Request{
		UserID: principal(c).UserID,
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": toOrdersJSON(orders)})
}

func (h *Handler) getMyOrder(c *gin.Context) {
	order, err := h.GetOrder.Execute(c.Request.Context(), &get_order.Request{
		OrderID: c.Param("id"),
		UserID:  principal(c).UserID,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderJSON(order))
}
