package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nearme/api/store"
)

func newViewRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	db, mock := newMockDB(t)
	h := NewViewHandlers(store.NewViewStore(db), store.NewStoreStore(db))

	r := gin.New()
	r.POST("/api/store-views", h.CreateView)
	r.GET("/api/store-views/stats/:store_id", h.StoreStats)
	r.GET("/api/store-views/store/:store_id", h.ListByStore)
	r.GET("/api/store-views/global-stats", h.GlobalStats)
	r.GET("/api/store-views/unique-visitors/:store_id", h.UniqueVisitors)
	r.GET("/api/store-views/session-analytics/:store_id", h.SessionAnalytics)
	return r, mock
}

func TestCreateViewMissingFields(t *testing.T) {
	r, mock := newViewRouter(t)

	w := perform(r, "POST", "/api/store-views", `{"id_store":"900-1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Missing required fields: id_store, contact_type, contact_method")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateViewInvalidContactType(t *testing.T) {
	r, mock := newViewRouter(t)

	w := perform(r, "POST", "/api/store-views",
		`{"id_store":"900-1","contact_type":"telepathy","contact_method":"web"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid contact_type. Must be one of: visit, phone_call, whatsapp, email, social_media, in_person")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateViewInvalidContactMethod(t *testing.T) {
	r, mock := newViewRouter(t)

	w := perform(r, "POST", "/api/store-views",
		`{"id_store":"900-1","contact_type":"visit","contact_method":"fax"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid contact_method. Must be one of: web, mobile_app, api, admin_panel")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateViewUnknownStore(t *testing.T) {
	r, mock := newViewRouter(t)

	// The existence check misses; no insert may follow.
	mock.ExpectQuery("SELECT 1 FROM stores").
		WithArgs("999").
		WillReturnError(sql.ErrNoRows)

	w := perform(r, "POST", "/api/store-views",
		`{"id_store":"999","contact_type":"visit","contact_method":"web"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Store not found")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateViewRegistersContact(t *testing.T) {
	r, mock := newViewRouter(t)

	mock.ExpectQuery("SELECT 1 FROM stores").
		WithArgs("900-1").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
	mock.ExpectQuery("INSERT INTO store_views").
		WillReturnRows(sqlmock.NewRows([]string{"id_view"}).AddRow(42))

	w := perform(r, "POST", "/api/store-views",
		`{"id_store":"900-1","contact_type":"whatsapp","contact_method":"mobile_app","session_id":"abc-123"}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Message       string `json:"message"`
		IDView        int64  `json:"id_view"`
		ContactType   string `json:"contact_type"`
		ContactMethod string `json:"contact_method"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Contact registered successfully", resp.Message)
	assert.Equal(t, int64(42), resp.IDView)
	assert.Equal(t, "whatsapp", resp.ContactType)
	assert.Equal(t, "mobile_app", resp.ContactMethod)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListByStorePagination(t *testing.T) {
	r, mock := newViewRouter(t)

	now := time.Now()
	mock.ExpectQuery("SELECT id_view, contact_type, contact_method, user_ip, view_date, additional_data").
		WithArgs("900-1", 20, 20).
		WillReturnRows(sqlmock.NewRows([]string{
			"id_view", "contact_type", "contact_method", "user_ip", "view_date", "additional_data",
		}).
			AddRow(21, "visit", "web", "10.0.0.1", now, nil).
			AddRow(22, "email", "web", nil, now, []byte(`{"source":"footer"}`)))
	mock.ExpectQuery("SELECT COUNT").
		WithArgs("900-1").
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(45))

	w := perform(r, "GET", "/api/store-views/store/900-1?page=2&limit=20", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		StoreID    string `json:"store_id"`
		Contacts   []struct {
			IDView int64 `json:"id_view"`
		} `json:"contacts"`
		Pagination struct {
			Page       int `json:"page"`
			Limit      int `json:"limit"`
			Total      int `json:"total"`
			TotalPages int `json:"total_pages"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "900-1", resp.StoreID)
	assert.Len(t, resp.Contacts, 2)
	assert.Equal(t, 2, resp.Pagination.Page)
	assert.Equal(t, 45, resp.Pagination.Total)
	assert.Equal(t, 3, resp.Pagination.TotalPages)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreStatsYearPeriodFallsBackToAll(t *testing.T) {
	r, mock := newViewRouter(t)

	// year is not a valid event-log period: the handler must run the
	// unfiltered (all) queries and echo "all" back.
	mock.ExpectQuery("GROUP BY contact_type").
		WithArgs("900-1").
		WillReturnRows(sqlmock.NewRows([]string{"total_contacts", "contact_type", "count_by_type"}).
			AddRow(5, "visit", 5))
	mock.ExpectQuery("SELECT COUNT").
		WithArgs("900-1").
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(5))
	mock.ExpectQuery("ORDER BY view_date DESC").
		WithArgs("900-1").
		WillReturnRows(sqlmock.NewRows([]string{"id_view", "contact_type", "contact_method", "view_date", "user_ip"}))

	w := perform(r, "GET", "/api/store-views/stats/900-1?period=year", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Period        string `json:"period"`
		TotalContacts int    `json:"total_contacts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "all", resp.Period)
	assert.Equal(t, 5, resp.TotalContacts)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGlobalStats(t *testing.T) {
	r, mock := newViewRouter(t)

	mock.ExpectQuery("GROUP BY contact_type").
		WillReturnRows(sqlmock.NewRows([]string{"contact_type", "count"}).
			AddRow("visit", 30).
			AddRow("whatsapp", 12))
	mock.ExpectQuery("JOIN stores").
		WillReturnRows(sqlmock.NewRows([]string{"id_store", "store_name", "contact_count"}).
			AddRow("900-1", "Panadería Central", 25).
			AddRow("900-2", "Ferretería El Tornillo", 17))
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(42))

	w := perform(r, "GET", "/api/store-views/global-stats", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Period        string `json:"period"`
		TotalContacts int    `json:"total_contacts"`
		ByType        []struct {
			ContactType string `json:"contact_type"`
			Count       int    `json:"count"`
		} `json:"contacts_by_type"`
		TopStores []struct {
			IDStore      string `json:"id_store"`
			StoreName    string `json:"store_name"`
			ContactCount int    `json:"contact_count"`
		} `json:"top_stores"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "all", resp.Period)
	assert.Equal(t, 42, resp.TotalContacts)
	require.Len(t, resp.ByType, 2)
	assert.Equal(t, "visit", resp.ByType[0].ContactType)
	assert.Equal(t, 30, resp.ByType[0].Count)
	require.Len(t, resp.TopStores, 2)
	assert.Equal(t, "Panadería Central", resp.TopStores[0].StoreName)
	assert.Equal(t, 25, resp.TopStores[0].ContactCount)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionAnalyticsMeanAndTopTen(t *testing.T) {
	r, mock := newViewRouter(t)

	// Twelve sessions with durations 111..100: mean 105.5 rounds to 106 and
	// only the ten longest make session_details.
	rows := sqlmock.NewRows([]string{
		"session_id", "page_views", "session_start", "session_end", "session_duration_seconds",
	})
	base := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		duration := int64(111 - i)
		start := base.Add(time.Duration(i) * time.Hour)
		rows.AddRow(fmt.Sprintf("session-%d", i), 3, start, start.Add(time.Duration(duration)*time.Second), duration)
	}
	mock.ExpectQuery("GROUP BY session_id").
		WithArgs("900-1").
		WillReturnRows(rows)

	w := perform(r, "GET", "/api/store-views/session-analytics/900-1", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		TotalSessions  int   `json:"total_sessions"`
		AverageSeconds int64 `json:"average_session_duration_seconds"`
		SessionDetails []struct {
			SessionID       string `json:"session_id"`
			DurationSeconds int64  `json:"session_duration_seconds"`
		} `json:"session_details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 12, resp.TotalSessions)
	assert.Equal(t, int64(106), resp.AverageSeconds)
	require.Len(t, resp.SessionDetails, 10)
	assert.Equal(t, int64(111), resp.SessionDetails[0].DurationSeconds)
	assert.Equal(t, int64(102), resp.SessionDetails[9].DurationSeconds)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionAnalyticsEmpty(t *testing.T) {
	r, mock := newViewRouter(t)

	mock.ExpectQuery("GROUP BY session_id").
		WithArgs("900-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"session_id", "page_views", "session_start", "session_end", "session_duration_seconds",
		}))

	w := perform(r, "GET", "/api/store-views/session-analytics/900-1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_sessions":0`)
	assert.Contains(t, w.Body.String(), `"average_session_duration_seconds":0`)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUniqueVisitorsReportsBothCounts(t *testing.T) {
	r, mock := newViewRouter(t)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("900-1").
		WillReturnRows(sqlmock.NewRows([]string{"unique_visitors_by_session"}).AddRow(12))
	mock.ExpectQuery("SELECT COUNT").
		WithArgs("900-1").
		WillReturnRows(sqlmock.NewRows([]string{"unique_visitors_by_ip"}).AddRow(9))

	w := perform(r, "GET", "/api/store-views/unique-visitors/900-1?period=week", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Period    string `json:"period"`
		BySession int    `json:"unique_visitors_by_session"`
		ByIP      int    `json:"unique_visitors_by_ip"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "week", resp.Period)
	assert.Equal(t, 12, resp.BySession)
	assert.Equal(t, 9, resp.ByIP)

	require.NoError(t, mock.ExpectationsWereMet())
}
