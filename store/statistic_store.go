package store

import (
	"context"
	"database/sql"
	"fmt"

	"nearme/api/models"
)

type StatisticStore struct {
	db *sql.DB
}

func NewStatisticStore(db *sql.DB) *StatisticStore {
	return &StatisticStore{db: db}
}

// StatSummary aggregates the counters over a period. Pointer fields stay nil
// (JSON null) when the range holds no rows, matching SQL aggregate semantics.
type StatSummary struct {
	TotalViews           *int64   `json:"total_views"`
	TotalUniqueVisitors  *int64   `json:"total_unique_visitors"`
	TotalContacts        *int64   `json:"total_contacts"`
	TotalProductsAdded   *int64   `json:"total_products_added"`
	TotalProductsUpdated *int64   `json:"total_products_updated"`
	TotalProductsDeleted *int64   `json:"total_products_deleted"`
	TotalExcelUploads    *int64   `json:"total_excel_uploads"`
	TotalLoginSessions   *int64   `json:"total_login_sessions"`
	AvgBounceRate        *float64 `json:"avg_bounce_rate"`
	AvgSessionDuration   *float64 `json:"avg_session_duration"`
	DaysWithData         int      `json:"days_with_data"`
}

type GlobalStatSummary struct {
	TotalViews           *int64   `json:"total_views"`
	TotalUniqueVisitors  *int64   `json:"total_unique_visitors"`
	TotalContacts        *int64   `json:"total_contacts"`
	TotalProductsAdded   *int64   `json:"total_products_added"`
	TotalProductsUpdated *int64   `json:"total_products_updated"`
	TotalProductsDeleted *int64   `json:"total_products_deleted"`
	TotalExcelUploads    *int64   `json:"total_excel_uploads"`
	TotalLoginSessions   *int64   `json:"total_login_sessions"`
	AvgBounceRate        *float64 `json:"avg_bounce_rate"`
	AvgSessionDuration   *float64 `json:"avg_session_duration"`
	ActiveStores         int      `json:"active_stores"`
}

type DailyStat struct {
	Date               string  `json:"date"`
	TotalViews         int     `json:"total_views"`
	UniqueVisitors     int     `json:"unique_visitors"`
	TotalContacts      int     `json:"total_contacts"`
	BounceRate         float64 `json:"bounce_rate"`
	AvgSessionDuration int     `json:"avg_session_duration"`
}

type TopPerformingStore struct {
	StoreID        string  `json:"store_id"`
	StoreName      string  `json:"store_name"`
	TotalViews     int64   `json:"total_views"`
	UniqueVisitors int64   `json:"unique_visitors"`
	TotalContacts  int64   `json:"total_contacts"`
	AvgBounceRate  float64 `json:"avg_bounce_rate"`
}

const statisticColumns = `id, date::text, total_views, unique_visitors, total_contacts,
		products_added, products_updated, products_deleted, excel_uploads,
		login_sessions, bounce_rate, avg_session_duration, last_updated`

func scanStatistic(row interface{ Scan(...any) error }, st *models.StoreStatistic) error {
	return row.Scan(
		&st.ID,
		&st.Date,
		&st.TotalViews,
		&st.UniqueVisitors,
		&st.TotalContacts,
		&st.ProductsAdded,
		&st.ProductsUpdated,
		&st.ProductsDeleted,
		&st.ExcelUploads,
		&st.LoginSessions,
		&st.BounceRate,
		&st.AvgSessionDuration,
		&st.LastUpdated,
	)
}

// Upsert inserts or merges the daily row in one atomic statement, keyed by the
// UNIQUE (store_id, date) constraint. On insert, absent counters default to
// zero; on conflict, absent counters keep their stored values and last_updated
// refreshes. The xmax trick distinguishes the two outcomes.
func (s *StatisticStore) Upsert(ctx context.Context, req *models.StatisticRequest) (int64, bool, error) {
	var id int64
	var created bool
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO store_statistics (store_id, date, total_views, unique_visitors, total_contacts,
			products_added, products_updated, products_deleted, excel_uploads,
			login_sessions, bounce_rate, avg_session_duration)
		VALUES ($1, $2, COALESCE($3, 0), COALESCE($4, 0), COALESCE($5, 0),
			COALESCE($6, 0), COALESCE($7, 0), COALESCE($8, 0), COALESCE($9, 0),
			COALESCE($10, 0), COALESCE($11, 0.0), COALESCE($12, 0))
		ON CONFLICT (store_id, date) DO UPDATE SET
			total_views = COALESCE($3, store_statistics.total_views),
			unique_visitors = COALESCE($4, store_statistics.unique_visitors),
			total_contacts = COALESCE($5, store_statistics.total_contacts),
			products_added = COALESCE($6, store_statistics.products_added),
			products_updated = COALESCE($7, store_statistics.products_updated),
			products_deleted = COALESCE($8, store_statistics.products_deleted),
			excel_uploads = COALESCE($9, store_statistics.excel_uploads),
			login_sessions = COALESCE($10, store_statistics.login_sessions),
			bounce_rate = COALESCE($11, store_statistics.bounce_rate),
			avg_session_duration = COALESCE($12, store_statistics.avg_session_duration),
			last_updated = CURRENT_TIMESTAMP
		RETURNING id, (xmax = 0) AS created`,
		req.StoreID,
		req.Date,
		req.TotalViews,
		req.UniqueVisitors,
		req.TotalContacts,
		req.ProductsAdded,
		req.ProductsUpdated,
		req.ProductsDeleted,
		req.ExcelUploads,
		req.LoginSessions,
		req.BounceRate,
		req.AvgSessionDuration,
	).Scan(&id, &created)
	if err != nil {
		return 0, false, fmt.Errorf("failed to upsert statistics: %w", err)
	}
	return id, created, nil
}

// ListByStore pages through a store's daily rows. An explicit start/end date
// range takes precedence over the named period.
func (s *StatisticStore) ListByStore(ctx context.Context, storeID, startDate, endDate string, period Period, limit, offset int) ([]models.StoreStatistic, int, error) {
	filter := ""
	args := []any{storeID}
	if startDate != "" && endDate != "" {
		args = append(args, startDate, endDate)
		filter = " AND date BETWEEN $2 AND $3"
	} else {
		filter = period.dateFilter("date")
	}

	countQuery := `
		SELECT COUNT(*) AS total
		FROM store_statistics
		WHERE store_id = $1` + filter
	var total int
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count statistics: %w", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`
		SELECT `+statisticColumns+`
		FROM store_statistics
		WHERE store_id = $1%s
		ORDER BY date DESC
		LIMIT $%d OFFSET $%d`, filter, len(args)-1, len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query statistics: %w", err)
	}
	defer rows.Close()

	statistics := []models.StoreStatistic{}
	for rows.Next() {
		var st models.StoreStatistic
		if err := scanStatistic(rows, &st); err != nil {
			return nil, 0, fmt.Errorf("failed to scan statistics row: %w", err)
		}
		statistics = append(statistics, st)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("row error while listing statistics: %w", err)
	}

	return statistics, total, nil
}

func (s *StatisticStore) Summary(ctx context.Context, storeID string, period Period) (*StatSummary, []DailyStat, error) {
	filter := period.dateFilter("date")

	var summary StatSummary
	err := s.db.QueryRowContext(ctx, `
		SELECT SUM(total_views) AS total_views,
			SUM(unique_visitors) AS total_unique_visitors,
			SUM(total_contacts) AS total_contacts,
			SUM(products_added) AS total_products_added,
			SUM(products_updated) AS total_products_updated,
			SUM(products_deleted) AS total_products_deleted,
			SUM(excel_uploads) AS total_excel_uploads,
			SUM(login_sessions) AS total_login_sessions,
			AVG(bounce_rate) AS avg_bounce_rate,
			AVG(avg_session_duration) AS avg_session_duration,
			COUNT(*) AS days_with_data
		FROM store_statistics
		WHERE store_id = $1`+filter, storeID).Scan(
		&summary.TotalViews,
		&summary.TotalUniqueVisitors,
		&summary.TotalContacts,
		&summary.TotalProductsAdded,
		&summary.TotalProductsUpdated,
		&summary.TotalProductsDeleted,
		&summary.TotalExcelUploads,
		&summary.TotalLoginSessions,
		&summary.AvgBounceRate,
		&summary.AvgSessionDuration,
		&summary.DaysWithData,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query statistics summary: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT date::text, total_views, unique_visitors, total_contacts, bounce_rate, avg_session_duration
		FROM store_statistics
		WHERE store_id = $1`+filter+`
		ORDER BY date ASC`, storeID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query daily breakdown: %w", err)
	}
	defer rows.Close()

	daily := []DailyStat{}
	for rows.Next() {
		var d DailyStat
		if err := rows.Scan(&d.Date, &d.TotalViews, &d.UniqueVisitors, &d.TotalContacts, &d.BounceRate, &d.AvgSessionDuration); err != nil {
			return nil, nil, fmt.Errorf("failed to scan daily breakdown row: %w", err)
		}
		daily = append(daily, d)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("row error in daily breakdown: %w", err)
	}

	return &summary, daily, nil
}

func (s *StatisticStore) GlobalSummary(ctx context.Context, period Period) (*GlobalStatSummary, []TopPerformingStore, error) {
	filter := period.whereDateFilter("date")

	var summary GlobalStatSummary
	err := s.db.QueryRowContext(ctx, `
		SELECT SUM(total_views) AS total_views,
			SUM(unique_visitors) AS total_unique_visitors,
			SUM(total_contacts) AS total_contacts,
			SUM(products_added) AS total_products_added,
			SUM(products_updated) AS total_products_updated,
			SUM(products_deleted) AS total_products_deleted,
			SUM(excel_uploads) AS total_excel_uploads,
			SUM(login_sessions) AS total_login_sessions,
			AVG(bounce_rate) AS avg_bounce_rate,
			AVG(avg_session_duration) AS avg_session_duration,
			COUNT(DISTINCT store_id) AS active_stores
		FROM store_statistics`+filter).Scan(
		&summary.TotalViews,
		&summary.TotalUniqueVisitors,
		&summary.TotalContacts,
		&summary.TotalProductsAdded,
		&summary.TotalProductsUpdated,
		&summary.TotalProductsDeleted,
		&summary.TotalExcelUploads,
		&summary.TotalLoginSessions,
		&summary.AvgBounceRate,
		&summary.AvgSessionDuration,
		&summary.ActiveStores,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query global statistics: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT ss.store_id, s.store_name,
			SUM(ss.total_views) AS total_views,
			SUM(ss.unique_visitors) AS unique_visitors,
			SUM(ss.total_contacts) AS total_contacts,
			AVG(ss.bounce_rate) AS avg_bounce_rate
		FROM store_statistics ss
		JOIN stores s ON ss.store_id = s.nit_store`+filter+`
		GROUP BY ss.store_id, s.store_name
		ORDER BY total_views DESC
		LIMIT 10`)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query top performing stores: %w", err)
	}
	defer rows.Close()

	top := []TopPerformingStore{}
	for rows.Next() {
		var t TopPerformingStore
		if err := rows.Scan(&t.StoreID, &t.StoreName, &t.TotalViews, &t.UniqueVisitors, &t.TotalContacts, &t.AvgBounceRate); err != nil {
			return nil, nil, fmt.Errorf("failed to scan top performing store row: %w", err)
		}
		top = append(top, t)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("row error in top performing stores: %w", err)
	}

	return &summary, top, nil
}

// UpdateByKey merges supplied counters into the exact (store_id, date) row.
// Zero rows affected means the row does not exist.
func (s *StatisticStore) UpdateByKey(ctx context.Context, storeID, date string, counters *models.StatisticCounters) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE store_statistics SET
			total_views = COALESCE($1, total_views),
			unique_visitors = COALESCE($2, unique_visitors),
			total_contacts = COALESCE($3, total_contacts),
			products_added = COALESCE($4, products_added),
			products_updated = COALESCE($5, products_updated),
			products_deleted = COALESCE($6, products_deleted),
			excel_uploads = COALESCE($7, excel_uploads),
			login_sessions = COALESCE($8, login_sessions),
			bounce_rate = COALESCE($9, bounce_rate),
			avg_session_duration = COALESCE($10, avg_session_duration),
			last_updated = CURRENT_TIMESTAMP
		WHERE store_id = $11 AND date = $12`,
		counters.TotalViews,
		counters.UniqueVisitors,
		counters.TotalContacts,
		counters.ProductsAdded,
		counters.ProductsUpdated,
		counters.ProductsDeleted,
		counters.ExcelUploads,
		counters.LoginSessions,
		counters.BounceRate,
		counters.AvgSessionDuration,
		storeID,
		date,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update statistics for store %q on %s: %w", storeID, date, err)
	}
	return res.RowsAffected()
}

func (s *StatisticStore) DeleteByKey(ctx context.Context, storeID, date string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM store_statistics
		WHERE store_id = $1 AND date = $2`, storeID, date)
	if err != nil {
		return 0, fmt.Errorf("failed to delete statistics for store %q on %s: %w", storeID, date, err)
	}
	return res.RowsAffected()
}
