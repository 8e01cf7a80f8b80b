package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"nearme/api/models"
	"nearme/api/store"

	"github.com/gin-gonic/gin"
)

type ProductHandlers struct {
	Products *store.ProductStore
}

func NewProductHandlers(products *store.ProductStore) *ProductHandlers {
	return &ProductHandlers{Products: products}
}

func (h *ProductHandlers) ListProducts(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	products, err := h.Products.ListProducts(ctx)
	if err != nil {
		dataError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandlers) GetProduct(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	p, err := h.Products.GetProduct(ctx, c.Param("id"))
	if err == store.ErrNotFound {
		notFound(c, "Product not found")
		return
	}
	if err != nil {
		dataError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductHandlers) CreateProduct(c *gin.Context) {
	var req models.ProductCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, "Invalid request body")
		return
	}

	// Historical falsy-value check: a zero price fails exactly like a missing one.
	if req.ProductName == "" || req.Price == 0 || req.Category == "" || req.IDStore == "" || req.ProductDescription == "" {
		validationError(c, "Missing required fields: product_name, price, category, id_store, product_description")
		return
	}

	req.ProductName = strings.TrimSpace(req.ProductName)
	req.Category = strings.TrimSpace(req.Category)
	req.ProductDescription = strings.TrimSpace(req.ProductDescription)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	id, err := h.Products.CreateProduct(ctx, &req)
	if err != nil {
		dataError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":    "product created",
		"id_product": id,
	})
}

func (h *ProductHandlers) UpdateProduct(c *gin.Context) {
	var req models.ProductUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, "Invalid request body")
		return
	}
	if req.ProductName != nil {
		trimmed := strings.TrimSpace(*req.ProductName)
		req.ProductName = &trimmed
	}
	if req.Category != nil {
		trimmed := strings.TrimSpace(*req.Category)
		req.Category = &trimmed
	}
	if req.ProductDescription != nil {
		trimmed := strings.TrimSpace(*req.ProductDescription)
		req.ProductDescription = &trimmed
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	p, err := h.Products.UpdateProduct(ctx, c.Param("id"), &req)
	if err == store.ErrNotFound {
		notFound(c, "Product not found")
		return
	}
	if err != nil {
		dataError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"mensaje": "product updated",
		"product": p,
	})
}

// UpdateStatus flips only sold_out. The field must be present in the body;
// an explicit false is valid.
func (h *ProductHandlers) UpdateStatus(c *gin.Context) {
	var req models.ProductStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, "Invalid request body")
		return
	}
	if req.SoldOut == nil {
		validationError(c, "sold_out field is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	affected, err := h.Products.UpdateStatus(ctx, c.Param("id"), *req.SoldOut)
	if err != nil {
		dataError(c, err)
		return
	}
	if affected == 0 {
		notFound(c, "Product not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"mensaje":  "product status updated",
		"sold_out": *req.SoldOut,
	})
}

func (h *ProductHandlers) DeleteProduct(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	affected, err := h.Products.DeleteProduct(ctx, c.Param("id"))
	if err != nil {
		dataError(c, err)
		return
	}
	if affected == 0 {
		notFound(c, "Product not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}
