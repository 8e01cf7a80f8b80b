package models

import "time"

// StoreStatistic is one pre-aggregated daily row; (store_id, date) is unique.
type StoreStatistic struct {
	ID                 int64     `json:"id"`
	Date               string    `json:"date"`
	TotalViews         int       `json:"total_views"`
	UniqueVisitors     int       `json:"unique_visitors"`
	TotalContacts      int       `json:"total_contacts"`
	ProductsAdded      int       `json:"products_added"`
	ProductsUpdated    int       `json:"products_updated"`
	ProductsDeleted    int       `json:"products_deleted"`
	ExcelUploads       int       `json:"excel_uploads"`
	LoginSessions      int       `json:"login_sessions"`
	BounceRate         float64   `json:"bounce_rate"`
	AvgSessionDuration int       `json:"avg_session_duration"`
	LastUpdated        time.Time `json:"last_updated"`
}

// StatisticCounters are the mergeable columns of the upsert. Nil means "not
// supplied": the stored value is kept via a database-side COALESCE, so the
// merge never happens in handler code.
type StatisticCounters struct {
	TotalViews         *int     `json:"total_views"`
	UniqueVisitors     *int     `json:"unique_visitors"`
	TotalContacts      *int     `json:"total_contacts"`
	ProductsAdded      *int     `json:"products_added"`
	ProductsUpdated    *int     `json:"products_updated"`
	ProductsDeleted    *int     `json:"products_deleted"`
	ExcelUploads       *int     `json:"excel_uploads"`
	LoginSessions      *int     `json:"login_sessions"`
	BounceRate         *float64 `json:"bounce_rate"`
	AvgSessionDuration *int     `json:"avg_session_duration"`
}

type StatisticRequest struct {
	StoreID string `json:"store_id"`
	Date    string `json:"date"`
	StatisticCounters
}
