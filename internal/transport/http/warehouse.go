package http

import (
	"net/http"

	"cloud.google.com/go/civil"
	"github.com/gin-gonic/gin"

	"github.com/light-bringer/backoffice-service/internal/app/catalog/queries/get_product"
	"github.com/light-bringer/backoffice-service/internal/app/catalog/queries/list_inventory"
	"github.com/light-bringer/backoffice-service/internal/app/catalog/usecases/create_product"
	"github.com/light-bringer/backoffice-service/internal/app/catalog/usecases/update_product"
)

func (h *Handler) listInventory(c *gin.Context) {
	page, ok := bindPage(c)
	if !ok {
		return
	}

	products, err := h.ListInventory.Execute(c.Request.Context(), &list_inventory.Request{
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": toProductsJSON(products)})
}

// getStockedProduct returns a product whether or not it is priced.
func (h *Handler) getStockedProduct(c *gin.Context) {
	product, err := h.GetProduct.Execute(c.Request.Context(), &get_product.Request{
		ProductID:     c.Param("id"),
		IncludeHidden: true,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductJSON(product))
}

type createProductBody struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Stock       int64       `json:"stock"`
	CategoryID  string      `json:"category_id"`
	ExpiresOn   *civil.Date `json:"expires_on"`
}

func (h *Handler) createProduct(c *gin.Context) {
	var body createProductBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}

	resp, err := h.CreateProduct.Execute(c.Request.Context(), &create_product.Request{
		Name:        body.Name,
		Description: body.Description,
		Stock:       body.Stock,
		CategoryID:  body.CategoryID,
		ExpiresOn:   body.ExpiresOn,
		ActorID:     principal(c).UserID,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"product_id": resp.ProductID})
}

// updateProductBody carries a partial edit. Absent fields are left alone.
type updateProductBody struct {
	Name        *string     `json:"name"`
	Description *string     `json:"description"`
	Stock       *int64      `json:"stock"`
	CategoryID  *string     `json:"category_id"`
	ExpiresOn   *civil.Date `json:"expires_on"`
	ClearExpiry bool        `json:"clear_expiry"`
	Version     *int64      `json:"version"`
}

func (h *Handler) updateProduct(c *gin.Context) {
	var body updateProductBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}

	resp, err := h.UpdateProduct.Execute(c.Request.Context(), &update_product.Request{
		ProductID:       c.Param("id"),
		Name:            body.Name,
		Description:     body.Description,
		Stock:           body.Stock,
		CategoryID:      body.CategoryID,
		ExpiresOn:       body.ExpiresOn,
		ClearExpiry:     body.ClearExpiry,
		ActorID:         principal(c).UserID,
		ExpectedVersion: body.Version,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"version": resp.Version, "changed": resp.Changed})
}
