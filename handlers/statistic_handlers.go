package handlers

import (
	"context"
	"net/http"
	"time"

	"nearme/api/models"
	"nearme/api/store"

	"github.com/gin-gonic/gin"
)

type StatisticHandlers struct {
	Statistics *store.StatisticStore
	Stores     *store.StoreStore
}

func NewStatisticHandlers(statistics *store.StatisticStore, stores *store.StoreStore) *StatisticHandlers {
	return &StatisticHandlers{Statistics: statistics, Stores: stores}
}

func (h *StatisticHandlers) Info(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Store Statistics API",
		"version": "1.0.0",
		"endpoints": gin.H{
			"POST /":                            "Create or update daily statistics for a store",
			"GET /store/:store_id":              "Get statistics for a specific store (with pagination)",
			"GET /store/:store_id/summary":      "Get aggregated statistics summary for a store",
			"GET /global":                       "Get global statistics across all stores",
			"PUT /store/:store_id/date/:date":   "Update specific statistics for a store and date",
			"DELETE /store/:store_id/date/:date": "Delete statistics for a specific store and date",
		},
		"parameters": gin.H{
			"period":     "Time period filter (today, week, month, year, all)",
			"page":       "Page number for pagination (default: 1)",
			"limit":      "Number of records per page (default: 30)",
			"start_date": "Start date for custom range (YYYY-MM-DD)",
			"end_date":   "End date for custom range (YYYY-MM-DD)",
		},
	})
}

// UpsertStatistics creates or merges the daily row for (store_id, date) in a
// single atomic statement and reports which of the two happened.
func (h *StatisticHandlers) UpsertStatistics(c *gin.Context) {
	var req models.StatisticRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, "Invalid request body")
		return
	}
	if req.StoreID == "" || req.Date == "" {
		validationError(c, "Missing required fields: store_id, date")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	exists, err := h.Stores.Exists(ctx, req.StoreID)
	if err != nil {
		dataError(c, err)
		return
	}
	if !exists {
		notFound(c, "Store not found")
		return
	}

	id, created, err := h.Statistics.Upsert(ctx, &req)
	if err != nil {
		dataError(c, err)
		return
	}

	if created {
		c.JSON(http.StatusCreated, gin.H{
			"message":  "Statistics created successfully",
			"id":       id,
			"store_id": req.StoreID,
			"date":     req.Date,
			"action":   "created",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Statistics updated successfully",
		"store_id": req.StoreID,
		"date":     req.Date,
		"action":   "updated",
	})
}

func (h *StatisticHandlers) ListByStore(c *gin.Context) {
	storeID := c.Param("store_id")
	startDate := c.Query("start_date")
	endDate := c.Query("end_date")
	period := store.ParsePeriod(c.Query("period"), store.PeriodAll)
	page, limit, offset := parsePagination(c, 30)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	statistics, total, err := h.Statistics.ListByStore(ctx, storeID, startDate, endDate, period, limit, offset)
	if err != nil {
		dataError(c, err)
		return
	}

	var startFilter, endFilter any
	if startDate != "" {
		startFilter = startDate
	}
	if endDate != "" {
		endFilter = endDate
	}

	c.JSON(http.StatusOK, gin.H{
		"store_id":   storeID,
		"statistics": statistics,
		"pagination": models.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages(total, limit),
		},
		"filters": gin.H{
			"start_date": startFilter,
			"end_date":   endFilter,
			"period":     period,
		},
	})
}

func (h *StatisticHandlers) StoreSummary(c *gin.Context) {
	storeID := c.Param("store_id")
	period := store.ParsePeriod(c.Query("period"), store.PeriodMonth)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	summary, daily, err := h.Statistics.Summary(ctx, storeID, period)
	if err != nil {
		dataError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"store_id":        storeID,
		"period":          period,
		"summary":         summary,
		"daily_breakdown": daily,
	})
}

func (h *StatisticHandlers) GlobalSummary(c *gin.Context) {
	period := store.ParsePeriod(c.Query("period"), store.PeriodMonth)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	summary, top, err := h.Statistics.GlobalSummary(ctx, period)
	if err != nil {
		dataError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"period":                period,
		"global_statistics":     summary,
		"top_performing_stores": top,
	})
}

func (h *StatisticHandlers) UpdateByDate(c *gin.Context) {
	var counters models.StatisticCounters
	if err := c.ShouldBindJSON(&counters); err != nil {
		validationError(c, "Invalid request body")
		return
	}

	storeID := c.Param("store_id")
	date := c.Param("date")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	affected, err := h.Statistics.UpdateByKey(ctx, storeID, date, &counters)
	if err != nil {
		dataError(c, err)
		return
	}
	if affected == 0 {
		notFound(c, "Statistics not found for this store and date")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Statistics updated successfully",
		"store_id": storeID,
		"date":     date,
	})
}

func (h *StatisticHandlers) DeleteByDate(c *gin.Context) {
	storeID := c.Param("store_id")
	date := c.Param("date")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	affected, err := h.Statistics.DeleteByKey(ctx, storeID, date)
	if err != nil {
		dataError(c, err)
		return
	}
	if affected == 0 {
		notFound(c, "Statistics not found for this store and date")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Statistics deleted successfully",
		"store_id": storeID,
		"date":     date,
	})
}
