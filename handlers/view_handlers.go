package handlers

import (
	"context"
	"math"
	"net/http"
	"time"

	"nearme/api/models"
	"nearme/api/store"
	"nearme/api/utils"

	"github.com/gin-gonic/gin"
)

type ViewHandlers struct {
	Views  *store.ViewStore
	Stores *store.StoreStore
}

func NewViewHandlers(views *store.ViewStore, stores *store.StoreStore) *ViewHandlers {
	return &ViewHandlers{Views: views, Stores: stores}
}

// Info documents the resource for API consumers.
func (h *ViewHandlers) Info(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Store Views API",
		"version": "1.0.0",
		"endpoints": gin.H{
			"POST /":                        "Register a new contact/interaction with a store",
			"GET /stats/:store_id":          "Get statistics of store contacts by store ID",
			"GET /store/:store_id":          "Get all contacts of a specific store with pagination",
			"GET /global-stats":             "Get global statistics across all stores",
			"GET /unique-visitors/:store_id": "Get unique visitors for a store",
			"GET /session-analytics/:store_id": "Get session analytics for a store",
		},
		"parameters": gin.H{
			"period": "Time period filter (today, week, month, all)",
			"page":   "Page number for pagination (default: 1)",
			"limit":  "Number of records per page (default: 20)",
		},
		"contact_types":   utils.ValidContactTypes,
		"contact_methods": utils.ValidContactMethods,
	})
}

func (h *ViewHandlers) CreateView(c *gin.Context) {
	var req models.StoreViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, "Invalid request body")
		return
	}

	if req.IDStore == "" || req.ContactType == "" || req.ContactMethod == "" {
		validationError(c, "Missing required fields: id_store, contact_type, contact_method")
		return
	}
	if !utils.IsValidContactType(req.ContactType) {
		validationError(c, "Invalid contact_type. Must be one of: visit, phone_call, whatsapp, email, social_media, in_person")
		return
	}
	if !utils.IsValidContactMethod(req.ContactMethod) {
		validationError(c, "Invalid contact_method. Must be one of: web, mobile_app, api, admin_panel")
		return
	}

	if req.UserIP == "" {
		req.UserIP = c.ClientIP()
	}
	if req.UserAgent == "" {
		req.UserAgent = c.Request.UserAgent()
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	exists, err := h.Stores.Exists(ctx, req.IDStore)
	if err != nil {
		dataError(c, err)
		return
	}
	if !exists {
		notFound(c, "Store not found")
		return
	}

	id, err := h.Views.InsertView(ctx, &req)
	if err != nil {
		dataError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":        "Contact registered successfully",
		"id_view":        id,
		"contact_type":   req.ContactType,
		"contact_method": req.ContactMethod,
	})
}

func (h *ViewHandlers) StoreStats(c *gin.Context) {
	storeID := c.Param("store_id")
	period := store.ParseTimestampPeriod(c.Query("period"), store.PeriodAll)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	stats, err := h.Views.StatsByStore(ctx, storeID, period)
	if err != nil {
		dataError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"store_id":         storeID,
		"period":           period,
		"total_contacts":   stats.Total,
		"contacts_by_type": stats.ByType,
		"recent_contacts":  stats.Recent,
	})
}

func (h *ViewHandlers) ListByStore(c *gin.Context) {
	storeID := c.Param("store_id")
	page, limit, offset := parsePagination(c, 20)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	contacts, total, err := h.Views.ListByStore(ctx, storeID, limit, offset)
	if err != nil {
		dataError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"store_id": storeID,
		"contacts": contacts,
		"pagination": models.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages(total, limit),
		},
	})
}

func (h *ViewHandlers) GlobalStats(c *gin.Context) {
	period := store.ParseTimestampPeriod(c.Query("period"), store.PeriodAll)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	stats, err := h.Views.GlobalStats(ctx, period)
	if err != nil {
		dataError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"period":           period,
		"total_contacts":   stats.Total,
		"contacts_by_type": stats.ByType,
		"top_stores":       stats.TopStores,
	})
}

func (h *ViewHandlers) UniqueVisitors(c *gin.Context) {
	storeID := c.Param("store_id")
	period := store.ParseTimestampPeriod(c.Query("period"), store.PeriodAll)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	bySession, byIP, err := h.Views.UniqueVisitors(ctx, storeID, period)
	if err != nil {
		dataError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"store_id":                   storeID,
		"period":                     period,
		"unique_visitors_by_session": bySession,
		"unique_visitors_by_ip":      byIP,
	})
}

// SessionAnalytics reports the ten longest sessions plus an in-process mean
// over the whole session population, the same way the metric has always been
// computed.
func (h *ViewHandlers) SessionAnalytics(c *gin.Context) {
	storeID := c.Param("store_id")
	period := store.ParseTimestampPeriod(c.Query("period"), store.PeriodAll)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	sessions, err := h.Views.SessionAnalytics(ctx, storeID, period)
	if err != nil {
		dataError(c, err)
		return
	}

	var avgDuration float64
	if len(sessions) > 0 {
		var sum int64
		for _, s := range sessions {
			sum += s.DurationSeconds
		}
		avgDuration = float64(sum) / float64(len(sessions))
	}

	top := sessions
	if len(top) > 10 {
		top = top[:10]
	}

	c.JSON(http.StatusOK, gin.H{
		"store_id":                         storeID,
		"period":                           period,
		"total_sessions":                   len(sessions),
		"average_session_duration_seconds": int64(math.Round(avgDuration)),
		"session_details":                  top,
	})
}
