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

type StoreHandlers struct {
	Stores   *store.StoreStore
	Products *store.ProductStore
}

func NewStoreHandlers(stores *store.StoreStore, products *store.ProductStore) *StoreHandlers {
	return &StoreHandlers{Stores: stores, Products: products}
}

func (h *StoreHandlers) ListStores(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	stores, err := h.Stores.ListStores(ctx)
	if err != nil {
		dataError(c, err)
		return
	}
	c.JSON(http.StatusOK, stores)
}

func (h *StoreHandlers) GetStore(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	st, err := h.Stores.GetStore(ctx, c.Param("nit"))
	if err == store.ErrNotFound {
		notFound(c, "Store not found")
		return
	}
	if err != nil {
		dataError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *StoreHandlers) CreateStore(c *gin.Context) {
	var req models.StoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, "Missing required fields: nit_store, store_name, address, phone_number, email, id_store_type, opening_hours, closing_hours, note")
		return
	}
	req.StoreName = strings.TrimSpace(req.StoreName)
	req.Note = strings.TrimSpace(req.Note)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	if err := h.Stores.CreateStore(ctx, &req); err != nil {
		dataError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":   "store created",
		"nit_store": req.NitStore,
	})
}

func (h *StoreHandlers) UpdateStore(c *gin.Context) {
	var req models.StoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, "Missing required fields: nit_store, store_name, address, phone_number, email, id_store_type, opening_hours, closing_hours, note")
		return
	}
	req.StoreName = strings.TrimSpace(req.StoreName)
	req.Note = strings.TrimSpace(req.Note)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	affected, err := h.Stores.UpdateStore(ctx, c.Param("nit"), &req)
	if err != nil {
		dataError(c, err)
		return
	}
	if affected == 0 {
		notFound(c, "Store not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "store updated"})
}

func (h *StoreHandlers) DeleteStore(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	affected, err := h.Stores.DeleteStore(ctx, c.Param("nit"))
	if err != nil {
		dataError(c, err)
		return
	}
	if affected == 0 {
		notFound(c, "Store not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "store deleted"})
}

// RecordView appends a bare view event for the store and echoes the running total.
func (h *StoreHandlers) RecordView(c *gin.Context) {
	nit := c.Param("nit")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	exists, err := h.Stores.Exists(ctx, nit)
	if err != nil {
		dataError(c, err)
		return
	}
	if !exists {
		notFound(c, "Store not found")
		return
	}

	total, err := h.Stores.RecordView(ctx, nit)
	if err != nil {
		dataError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"store_nit":   nit,
		"total_views": total,
		"message":     "View recorded successfully",
	})
}

func (h *StoreHandlers) GetViews(c *gin.Context) {
	nit := c.Param("nit")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	total, err := h.Stores.CountViews(ctx, nit)
	if err != nil {
		dataError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"store_nit":   nit,
		"total_views": total,
	})
}

// GetStoreProducts lists a store's products together with its view total.
func (h *StoreHandlers) GetStoreProducts(c *gin.Context) {
	nit := c.Param("nit")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	products, err := h.Products.ListByStore(ctx, nit)
	if err != nil {
		dataError(c, err)
		return
	}
	total, err := h.Stores.CountViews(ctx, nit)
	if err != nil {
		dataError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"store_nit":   nit,
		"total_views": total,
		"products":    products,
	})
}
