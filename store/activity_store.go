package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"nearme/api/models"
)

type ActivityStore struct {
	db *sql.DB
}

func NewActivityStore(db *sql.DB) *ActivityStore {
	return &ActivityStore{db: db}
}

type ActivityTypeCount struct {
	ActivityType string    `json:"activity_type"`
	Count        int       `json:"count"`
	LastActivity time.Time `json:"last_activity"`
}

type ActivityBrief struct {
	ActivityType        string    `json:"activity_type"`
	ActivityDescription *string   `json:"activity_description"`
	CreatedAt           time.Time `json:"created_at"`
}

type ActivityStats struct {
	Total  int
	ByType []ActivityTypeCount
	Recent []ActivityBrief
}

type ActivityGlobalTypeCount struct {
	ActivityType string `json:"activity_type"`
	Count        int    `json:"count"`
}

type ActiveStore struct {
	UserID        string `json:"user_id"`
	StoreName     string `json:"store_name"`
	ActivityCount int    `json:"activity_count"`
}

type GlobalActivityStats struct {
	Total        int
	ByType       []ActivityGlobalTypeCount
	ActiveStores []ActiveStore
}

// SessionActivity is the per-session row shape; it carries user_id but not
// session_id, which is already the lookup key.
type SessionActivity struct {
	ID                  int64           `json:"id"`
	UserID              string          `json:"user_id"`
	ActivityType        string          `json:"activity_type"`
	ActivityDescription *string         `json:"activity_description"`
	Metadata            json.RawMessage `json:"metadata"`
	IPAddress           *string         `json:"ip_address"`
	CreatedAt           time.Time       `json:"created_at"`
}

func (s *ActivityStore) InsertActivity(ctx context.Context, req *models.ActivityRequest) (int64, error) {
	var description any
	if req.ActivityDescription != "" {
		description = req.ActivityDescription
	}
	var metadata any
	if len(req.Metadata) > 0 {
		metadata = []byte(req.Metadata)
	}

	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO recent_activities(user_id, activity_type, activity_description, metadata, session_id, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		req.UserID,
		req.ActivityType,
		description,
		metadata,
		req.SessionID,
		req.IPAddress,
		req.UserAgent,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert activity: %w", err)
	}
	return id, nil
}

func (s *ActivityStore) ListByStore(ctx context.Context, storeID, activityType string, period Period, limit, offset int) ([]models.RecentActivity, int, error) {
	filter := period.timestampFilter("created_at")

	typeFilter := ""
	args := []any{storeID}
	if activityType != "" {
		args = append(args, activityType)
		typeFilter = fmt.Sprintf(" AND activity_type = $%d", len(args))
	}
	args = append(args, limit, offset)

	query := fmt.Sprintf(`
		SELECT id, activity_type, activity_description, metadata, session_id, ip_address, created_at
		FROM recent_activities
		WHERE user_id = $1%s%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, filter, typeFilter, len(args)-1, len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query activities: %w", err)
	}
	defer rows.Close()

	activities := []models.RecentActivity{}
	for rows.Next() {
		var a models.RecentActivity
		var metadata []byte
		if err := rows.Scan(&a.ID, &a.ActivityType, &a.ActivityDescription, &metadata, &a.SessionID, &a.IPAddress, &a.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan activity row: %w", err)
		}
		a.Metadata = json.RawMessage(metadata)
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("row error while listing activities: %w", err)
	}

	countQuery := `
		SELECT COUNT(*) AS total
		FROM recent_activities
		WHERE user_id = $1` + filter
	countArgs := []any{storeID}
	if activityType != "" {
		countQuery += " AND activity_type = $2"
		countArgs = append(countArgs, activityType)
	}

	var total int
	if err := s.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count activities: %w", err)
	}

	return activities, total, nil
}

func (s *ActivityStore) StatsByStore(ctx context.Context, storeID string, period Period) (*ActivityStats, error) {
	filter := period.timestampFilter("created_at")
	stats := &ActivityStats{ByType: []ActivityTypeCount{}, Recent: []ActivityBrief{}}

	rows, err := s.db.QueryContext(ctx, `
		SELECT activity_type, COUNT(*) AS count, MAX(created_at) AS last_activity
		FROM recent_activities
		WHERE user_id = $1`+filter+`
		GROUP BY activity_type
		ORDER BY count DESC`, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity stats: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c ActivityTypeCount
		if err := rows.Scan(&c.ActivityType, &c.Count, &c.LastActivity); err != nil {
			return nil, fmt.Errorf("failed to scan activity stats row: %w", err)
		}
		stats.ByType = append(stats.ByType, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error in activity stats: %w", err)
	}

	err = s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) AS total
		FROM recent_activities
		WHERE user_id = $1`+filter, storeID).Scan(&stats.Total)
	if err != nil {
		return nil, fmt.Errorf("failed to count activities: %w", err)
	}

	recent, err := s.db.QueryContext(ctx, `
		SELECT activity_type, activity_description, created_at
		FROM recent_activities
		WHERE user_id = $1`+filter+`
		ORDER BY created_at DESC
		LIMIT 10`, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent activities: %w", err)
	}
	defer recent.Close()
	for recent.Next() {
		var b ActivityBrief
		if err := recent.Scan(&b.ActivityType, &b.ActivityDescription, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recent activity row: %w", err)
		}
		stats.Recent = append(stats.Recent, b)
	}
	if err := recent.Err(); err != nil {
		return nil, fmt.Errorf("row error in recent activities: %w", err)
	}

	return stats, nil
}

// BySession returns the session's activities in chronological order.
// ErrNotFound when the session has no rows.
func (s *ActivityStore) BySession(ctx context.Context, sessionID string) ([]SessionActivity, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, activity_type, activity_description, metadata, ip_address, created_at
		FROM recent_activities
		WHERE session_id = $1
		ORDER BY created_at ASC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query session activities: %w", err)
	}
	defer rows.Close()

	activities := []SessionActivity{}
	for rows.Next() {
		var a SessionActivity
		var metadata []byte
		if err := rows.Scan(&a.ID, &a.UserID, &a.ActivityType, &a.ActivityDescription, &metadata, &a.IPAddress, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session activity row: %w", err)
		}
		a.Metadata = json.RawMessage(metadata)
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error in session activities: %w", err)
	}

	if len(activities) == 0 {
		return nil, ErrNotFound
	}
	return activities, nil
}

func (s *ActivityStore) GlobalStats(ctx context.Context, period Period) (*GlobalActivityStats, error) {
	filter := period.whereTimestampFilter("created_at")
	stats := &GlobalActivityStats{ByType: []ActivityGlobalTypeCount{}, ActiveStores: []ActiveStore{}}

	rows, err := s.db.QueryContext(ctx, `
		SELECT activity_type, COUNT(*) AS count
		FROM recent_activities`+filter+`
		GROUP BY activity_type
		ORDER BY count DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query global activity stats: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c ActivityGlobalTypeCount
		if err := rows.Scan(&c.ActivityType, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan global activity stats row: %w", err)
		}
		stats.ByType = append(stats.ByType, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error in global activity stats: %w", err)
	}

	active, err := s.db.QueryContext(ctx, `
		SELECT ra.user_id, s.store_name, COUNT(*) AS activity_count
		FROM recent_activities ra
		JOIN stores s ON ra.user_id = s.nit_store`+filter+`
		GROUP BY ra.user_id, s.store_name
		ORDER BY activity_count DESC
		LIMIT 10`)
	if err != nil {
		return nil, fmt.Errorf("failed to query most active stores: %w", err)
	}
	defer active.Close()
	for active.Next() {
		var a ActiveStore
		if err := active.Scan(&a.UserID, &a.StoreName, &a.ActivityCount); err != nil {
			return nil, fmt.Errorf("failed to scan active store row: %w", err)
		}
		stats.ActiveStores = append(stats.ActiveStores, a)
	}
	if err := active.Err(); err != nil {
		return nil, fmt.Errorf("row error in most active stores: %w", err)
	}

	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) AS total FROM recent_activities`+filter).Scan(&stats.Total)
	if err != nil {
		return nil, fmt.Errorf("failed to count global activities: %w", err)
	}

	return stats, nil
}

// Cleanup purges rows older than the given number of days and reports how
// many were removed.
func (s *ActivityStore) Cleanup(ctx context.Context, days int) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM recent_activities
		WHERE created_at < NOW() - ($1 * INTERVAL '1 day')`, days)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up activities: %w", err)
	}
	return res.RowsAffected()
}
