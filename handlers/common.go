package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
)

// dataError is the uniform 500 shape for data-access failures. The driver
// message is passed through, and the failing endpoint and method are included
// to aid debugging.
func dataError(c *gin.Context, err error) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		log.Printf("Data access error on %s %s (pq code %s): %v", c.Request.Method, c.Request.URL.Path, pqErr.Code, err)
	} else {
		log.Printf("Data access error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"status":   "error",
		"endpoint": c.Request.RequestURI,
		"method":   c.Request.Method,
		"message":  err.Error(),
	})
}

func validationError(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"status":  "error",
		"message": message,
	})
}

func notFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, gin.H{
		"status":  "error",
		"message": message,
	})
}

// parsePagination reads page/limit query parameters, falling back to page 1
// and the endpoint's default limit on anything unusable.
func parsePagination(c *gin.Context, defaultLimit int) (page, limit, offset int) {
	page = 1
	if p, err := strconv.Atoi(c.Query("page")); err == nil && p > 0 {
		page = p
	}
	limit = defaultLimit
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 {
		limit = l
	}
	return page, limit, (page - 1) * limit
}

// totalPages keeps the pagination invariant total_pages == ceil(total/limit).
func totalPages(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
