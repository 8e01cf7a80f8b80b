package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"nearme/api/models"
	"nearme/api/store"
	"nearme/api/utils"

	"github.com/gin-gonic/gin"
)

type ActivityHandlers struct {
	Activities *store.ActivityStore
	Stores     *store.StoreStore
}

func NewActivityHandlers(activities *store.ActivityStore, stores *store.StoreStore) *ActivityHandlers {
	return &ActivityHandlers{Activities: activities, Stores: stores}
}

func (h *ActivityHandlers) CreateActivity(c *gin.Context) {
	var req models.ActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, "Invalid request body")
		return
	}

	if req.UserID == "" || req.ActivityType == "" {
		validationError(c, "Missing required fields: user_id, activity_type")
		return
	}
	if !utils.IsValidActivityType(req.ActivityType) {
		validationError(c, "Invalid activity_type. Must be one of: "+strings.Join(utils.ValidActivityTypes, ", "))
		return
	}

	if req.IPAddress == "" {
		req.IPAddress = c.ClientIP()
	}
	if req.UserAgent == "" {
		req.UserAgent = c.Request.UserAgent()
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	exists, err := h.Stores.Exists(ctx, req.UserID)
	if err != nil {
		dataError(c, err)
		return
	}
	if !exists {
		notFound(c, "Store not found")
		return
	}

	id, err := h.Activities.InsertActivity(ctx, &req)
	if err != nil {
		dataError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":       "Activity logged successfully",
		"id":            id,
		"activity_type": req.ActivityType,
		"user_id":       req.UserID,
	})
}

func (h *ActivityHandlers) ListByStore(c *gin.Context) {
	storeID := c.Param("store_id")
	activityType := c.Query("activity_type")
	period := store.ParseTimestampPeriod(c.Query("period"), store.PeriodAll)
	page, limit, offset := parsePagination(c, 20)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	activities, total, err := h.Activities.ListByStore(ctx, storeID, activityType, period, limit, offset)
	if err != nil {
		dataError(c, err)
		return
	}

	typeFilter := activityType
	if typeFilter == "" {
		typeFilter = "all"
	}

	c.JSON(http.StatusOK, gin.H{
		"store_id":   storeID,
		"activities": activities,
		"pagination": models.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages(total, limit),
		},
		"filters": gin.H{
			"activity_type": typeFilter,
			"period":        period,
		},
	})
}

func (h *ActivityHandlers) StoreStats(c *gin.Context) {
	storeID := c.Param("store_id")
	period := store.ParseTimestampPeriod(c.Query("period"), store.PeriodAll)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	stats, err := h.Activities.StatsByStore(ctx, storeID, period)
	if err != nil {
		dataError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"store_id":           storeID,
		"period":             period,
		"total_activities":   stats.Total,
		"activities_by_type": stats.ByType,
		"recent_activities":  stats.Recent,
	})
}

// SessionActivities returns a session's activities in order plus the derived
// session duration (last minus first, in seconds).
func (h *ActivityHandlers) SessionActivities(c *gin.Context) {
	sessionID := c.Param("session_id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	activities, err := h.Activities.BySession(ctx, sessionID)
	if err == store.ErrNotFound {
		notFound(c, "No activities found for this session")
		return
	}
	if err != nil {
		dataError(c, err)
		return
	}

	sessionStart := activities[0].CreatedAt
	sessionEnd := activities[len(activities)-1].CreatedAt
	duration := int64(sessionEnd.Sub(sessionStart).Seconds())

	c.JSON(http.StatusOK, gin.H{
		"session_id":               sessionID,
		"total_activities":         len(activities),
		"session_duration_seconds": duration,
		"session_start":            sessionStart,
		"session_end":              sessionEnd,
		"activities":               activities,
	})
}

func (h *ActivityHandlers) GlobalStats(c *gin.Context) {
	period := store.ParseTimestampPeriod(c.Query("period"), store.PeriodAll)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	stats, err := h.Activities.GlobalStats(ctx, period)
	if err != nil {
		dataError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"period":             period,
		"total_activities":   stats.Total,
		"activities_by_type": stats.ByType,
		"most_active_stores": stats.ActiveStores,
	})
}

// Cleanup purges activities older than ?days (default 90).
func (h *ActivityHandlers) Cleanup(c *gin.Context) {
	days := 90
	if d, err := strconv.Atoi(c.Query("days")); err == nil && d > 0 {
		days = d
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	deleted, err := h.Activities.Cleanup(ctx, days)
	if err != nil {
		dataError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":         "Old activities cleaned up successfully",
		"deleted_records": deleted,
		"days_kept":       days,
	})
}
