package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"nearme/api/models"
)

type ViewStore struct {
	db *sql.DB
}

func NewViewStore(db *sql.DB) *ViewStore {
	return &ViewStore{db: db}
}

// ContactTypeCount mirrors the historical stats row shape, which reports the
// grouped count under two names.
type ContactTypeCount struct {
	TotalContacts int    `json:"total_contacts"`
	ContactType   string `json:"contact_type"`
	CountByType   int    `json:"count_by_type"`
}

type RecentContact struct {
	IDView        int64     `json:"id_view"`
	ContactType   string    `json:"contact_type"`
	ContactMethod string    `json:"contact_method"`
	ViewDate      time.Time `json:"view_date"`
	UserIP        *string   `json:"user_ip"`
}

type StoreViewStats struct {
	Total  int
	ByType []ContactTypeCount
	Recent []RecentContact
}

type ContactRow struct {
	IDView         int64           `json:"id_view"`
	ContactType    string          `json:"contact_type"`
	ContactMethod  string          `json:"contact_method"`
	UserIP         *string         `json:"user_ip"`
	ViewDate       time.Time       `json:"view_date"`
	AdditionalData json.RawMessage `json:"additional_data"`
}

type GlobalTypeCount struct {
	ContactType string `json:"contact_type"`
	Count       int    `json:"count"`
}

type TopStore struct {
	IDStore      string `json:"id_store"`
	StoreName    string `json:"store_name"`
	ContactCount int    `json:"contact_count"`
}

type GlobalViewStats struct {
	Total     int
	ByType    []GlobalTypeCount
	TopStores []TopStore
}

type SessionStat struct {
	SessionID       string    `json:"session_id"`
	PageViews       int       `json:"page_views"`
	SessionStart    time.Time `json:"session_start"`
	SessionEnd      time.Time `json:"session_end"`
	DurationSeconds int64     `json:"session_duration_seconds"`
}

func (s *ViewStore) InsertView(ctx context.Context, req *models.StoreViewRequest) (int64, error) {
	var additional any
	if len(req.AdditionalData) > 0 {
		additional = []byte(req.AdditionalData)
	}

	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO store_views(id_store, contact_type, contact_method, user_ip, user_agent, session_id, additional_data)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id_view`,
		req.IDStore,
		req.ContactType,
		req.ContactMethod,
		req.UserIP,
		req.UserAgent,
		req.SessionID,
		additional,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert store view: %w", err)
	}
	return id, nil
}

func (s *ViewStore) StatsByStore(ctx context.Context, storeID string, period Period) (*StoreViewStats, error) {
	filter := period.timestampFilter("view_date")
	stats := &StoreViewStats{ByType: []ContactTypeCount{}, Recent: []RecentContact{}}

	rows, err := s.db.QueryContext(ctx, `
		SELECT COUNT(*) AS total_contacts, contact_type, COUNT(*) AS count_by_type
		FROM store_views
		WHERE id_store = $1`+filter+`
		GROUP BY contact_type`, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query contact stats: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c ContactTypeCount
		if err := rows.Scan(&c.TotalContacts, &c.ContactType, &c.CountByType); err != nil {
			return nil, fmt.Errorf("failed to scan contact stats row: %w", err)
		}
		stats.ByType = append(stats.ByType, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error in contact stats: %w", err)
	}

	err = s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) AS total
		FROM store_views
		WHERE id_store = $1`+filter, storeID).Scan(&stats.Total)
	if err != nil {
		return nil, fmt.Errorf("failed to count contacts: %w", err)
	}

	recent, err := s.db.QueryContext(ctx, `
		SELECT id_view, contact_type, contact_method, view_date, user_ip
		FROM store_views
		WHERE id_store = $1`+filter+`
		ORDER BY view_date DESC
		LIMIT 10`, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent contacts: %w", err)
	}
	defer recent.Close()
	for recent.Next() {
		var r RecentContact
		if err := recent.Scan(&r.IDView, &r.ContactType, &r.ContactMethod, &r.ViewDate, &r.UserIP); err != nil {
			return nil, fmt.Errorf("failed to scan recent contact row: %w", err)
		}
		stats.Recent = append(stats.Recent, r)
	}
	if err := recent.Err(); err != nil {
		return nil, fmt.Errorf("row error in recent contacts: %w", err)
	}

	return stats, nil
}

func (s *ViewStore) ListByStore(ctx context.Context, storeID string, limit, offset int) ([]ContactRow, int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id_view, contact_type, contact_method, user_ip, view_date, additional_data
		FROM store_views
		WHERE id_store = $1
		ORDER BY view_date DESC
		LIMIT $2 OFFSET $3`, storeID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query contacts: %w", err)
	}
	defer rows.Close()

	contacts := []ContactRow{}
	for rows.Next() {
		var c ContactRow
		var additional []byte
		if err := rows.Scan(&c.IDView, &c.ContactType, &c.ContactMethod, &c.UserIP, &c.ViewDate, &additional); err != nil {
			return nil, 0, fmt.Errorf("failed to scan contact row: %w", err)
		}
		c.AdditionalData = json.RawMessage(additional)
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("row error while listing contacts: %w", err)
	}

	var total int
	err = s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) AS total
		FROM store_views
		WHERE id_store = $1`, storeID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count contacts: %w", err)
	}

	return contacts, total, nil
}

func (s *ViewStore) GlobalStats(ctx context.Context, period Period) (*GlobalViewStats, error) {
	filter := period.whereTimestampFilter("view_date")
	stats := &GlobalViewStats{ByType: []GlobalTypeCount{}, TopStores: []TopStore{}}

	rows, err := s.db.QueryContext(ctx, `
		SELECT contact_type, COUNT(*) AS count
		FROM store_views`+filter+`
		GROUP BY contact_type
		ORDER BY count DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query global contact stats: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c GlobalTypeCount
		if err := rows.Scan(&c.ContactType, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan global contact stats row: %w", err)
		}
		stats.ByType = append(stats.ByType, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error in global contact stats: %w", err)
	}

	top, err := s.db.QueryContext(ctx, `
		SELECT sv.id_store, s.store_name, COUNT(*) AS contact_count
		FROM store_views sv
		JOIN stores s ON sv.id_store = s.nit_store`+filter+`
		GROUP BY sv.id_store, s.store_name
		ORDER BY contact_count DESC
		LIMIT 10`)
	if err != nil {
		return nil, fmt.Errorf("failed to query top stores: %w", err)
	}
	defer top.Close()
	for top.Next() {
		var t TopStore
		if err := top.Scan(&t.IDStore, &t.StoreName, &t.ContactCount); err != nil {
			return nil, fmt.Errorf("failed to scan top store row: %w", err)
		}
		stats.TopStores = append(stats.TopStores, t)
	}
	if err := top.Err(); err != nil {
		return nil, fmt.Errorf("row error in top stores: %w", err)
	}

	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) AS total FROM store_views`+filter).Scan(&stats.Total)
	if err != nil {
		return nil, fmt.Errorf("failed to count global contacts: %w", err)
	}

	return stats, nil
}

// UniqueVisitors returns the two independent distinct counts side by side;
// they are deliberately not merged.
func (s *ViewStore) UniqueVisitors(ctx context.Context, storeID string, period Period) (bySession, byIP int, err error) {
	filter := period.timestampFilter("view_date")

	err = s.db.QueryRowContext(ctx, `
		SELECT COUNT(DISTINCT session_id) AS unique_visitors_by_session
		FROM store_views
		WHERE id_store = $1 AND session_id IS NOT NULL`+filter, storeID).Scan(&bySession)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count unique sessions: %w", err)
	}

	err = s.db.QueryRowContext(ctx, `
		SELECT COUNT(DISTINCT user_ip) AS unique_visitors_by_ip
		FROM store_views
		WHERE id_store = $1 AND user_ip IS NOT NULL`+filter, storeID).Scan(&byIP)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count unique IPs: %w", err)
	}

	return bySession, byIP, nil
}

// SessionAnalytics returns every session ordered by duration descending; the
// handler computes the mean over the full population and truncates to ten.
func (s *ViewStore) SessionAnalytics(ctx context.Context, storeID string, period Period) ([]SessionStat, error) {
	filter := period.timestampFilter("view_date")

	rows, err := s.db.QueryContext(ctx, `
		SELECT session_id,
			COUNT(*) AS page_views,
			MIN(view_date) AS session_start,
			MAX(view_date) AS session_end,
			EXTRACT(EPOCH FROM (MAX(view_date) - MIN(view_date)))::bigint AS session_duration_seconds
		FROM store_views
		WHERE id_store = $1 AND session_id IS NOT NULL`+filter+`
		GROUP BY session_id
		ORDER BY session_duration_seconds DESC`, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query session analytics: %w", err)
	}
	defer rows.Close()

	sessions := []SessionStat{}
	for rows.Next() {
		var st SessionStat
		if err := rows.Scan(&st.SessionID, &st.PageViews, &st.SessionStart, &st.SessionEnd, &st.DurationSeconds); err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		sessions = append(sessions, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error in session analytics: %w", err)
	}

	return sessions, nil
}
