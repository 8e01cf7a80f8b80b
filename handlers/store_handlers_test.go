package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nearme/api/store"
)

func newStoreRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	db, mock := newMockDB(t)
	h := NewStoreHandlers(store.NewStoreStore(db), store.NewProductStore(db))

	r := gin.New()
	r.GET("/api/stores/:nit", h.GetStore)
	r.POST("/api/stores", h.CreateStore)
	r.PUT("/api/stores/:nit", h.UpdateStore)
	r.DELETE("/api/stores/:nit", h.DeleteStore)
	r.POST("/api/stores/:nit/views", h.RecordView)
	r.GET("/api/stores/:nit/products", h.GetStoreProducts)
	return r, mock
}

const validStoreBody = `{
	"nit_store": "900-1",
	"store_name": "  Panadería Central  ",
	"address": "Calle 10 #5-51",
	"phone_number": "3001234567",
	"email": "central@panaderia.com",
	"id_store_type": 2,
	"opening_hours": "07:00:00",
	"closing_hours": "19:00:00",
	"note": "Cerrado festivos"
}`

func TestGetStoreNotFound(t *testing.T) {
	r, mock := newStoreRouter(t)

	mock.ExpectQuery("FROM stores WHERE nit_store").
		WillReturnError(sql.ErrNoRows)

	w := perform(r, "GET", "/api/stores/999", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Store not found")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateStoreMissingField(t *testing.T) {
	r, mock := newStoreRouter(t)

	// note is required like every other field.
	w := perform(r, "POST", "/api/stores", `{"nit_store":"900-1","store_name":"X"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Missing required fields: nit_store, store_name, address, phone_number, email, id_store_type, opening_hours, closing_hours, note")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateStoreTrimsAndEchoesNit(t *testing.T) {
	r, mock := newStoreRouter(t)

	mock.ExpectExec("INSERT INTO stores").
		WithArgs("900-1", "Panadería Central", "Calle 10 #5-51", "3001234567",
			"central@panaderia.com", 2, "07:00:00", "19:00:00", "Cerrado festivos").
		WillReturnResult(sqlmock.NewResult(1, 1))

	w := perform(r, "POST", "/api/stores", validStoreBody)
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Message  string `json:"message"`
		NitStore string `json:"nit_store"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "store created", resp.Message)
	assert.Equal(t, "900-1", resp.NitStore)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStoreNotFound(t *testing.T) {
	r, mock := newStoreRouter(t)

	mock.ExpectExec("UPDATE stores SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	w := perform(r, "PUT", "/api/stores/999", validStoreBody)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Store not found")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteStore(t *testing.T) {
	r, mock := newStoreRouter(t)

	mock.ExpectExec("DELETE FROM stores").
		WithArgs("900-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	w := perform(r, "DELETE", "/api/stores/900-1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "store deleted")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordViewReturnsRunningTotal(t *testing.T) {
	r, mock := newStoreRouter(t)

	mock.ExpectQuery("SELECT 1 FROM stores").
		WithArgs("900-1").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
	mock.ExpectExec("INSERT INTO store_views").
		WithArgs("900-1").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("SELECT COUNT").
		WithArgs("900-1").
		WillReturnRows(sqlmock.NewRows([]string{"total_views"}).AddRow(18))

	w := perform(r, "POST", "/api/stores/900-1/views", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		StoreNit   string `json:"store_nit"`
		TotalViews int    `json:"total_views"`
		Message    string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "900-1", resp.StoreNit)
	assert.Equal(t, 18, resp.TotalViews)
	assert.Equal(t, "View recorded successfully", resp.Message)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordViewUnknownStore(t *testing.T) {
	r, mock := newStoreRouter(t)

	mock.ExpectQuery("SELECT 1 FROM stores").
		WithArgs("999").
		WillReturnError(sql.ErrNoRows)

	w := perform(r, "POST", "/api/stores/999/views", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Store not found")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetStoreProducts(t *testing.T) {
	r, mock := newStoreRouter(t)

	mock.ExpectQuery("FROM products WHERE id_store").
		WithArgs("900-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id_product", "product_name", "price", "category", "id_store", "product_description", "sold_out",
		}).AddRow(1, "Pan francés", 0.5, "Panadería", "900-1", "Fresco", false))
	mock.ExpectQuery("SELECT COUNT").
		WithArgs("900-1").
		WillReturnRows(sqlmock.NewRows([]string{"total_views"}).AddRow(7))

	w := perform(r, "GET", "/api/stores/900-1/products", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		StoreNit   string `json:"store_nit"`
		TotalViews int    `json:"total_views"`
		Products   []struct {
			ProductName string `json:"product_name"`
		} `json:"products"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "900-1", resp.StoreNit)
	assert.Equal(t, 7, resp.TotalViews)
	require.Len(t, resp.Products, 1)
	assert.Equal(t, "Pan francés", resp.Products[0].ProductName)

	require.NoError(t, mock.ExpectationsWereMet())
}
