package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"nearme/api/models"
)

// ErrNotFound is returned by every store when a lookup matches no row, so
// handlers can map it to a 404 without string comparisons.
var ErrNotFound = errors.New("not found")

type StoreStore struct {
	db *sql.DB
}

func NewStoreStore(db *sql.DB) *StoreStore {
	return &StoreStore{db: db}
}

const storeColumns = `nit_store, store_name, address, phone_number, email, id_store_type,
		opening_hours::text, closing_hours::text, note, created_at, updated_at`

func scanStore(row interface{ Scan(...any) error }, s *models.Store) error {
	return row.Scan(
		&s.NitStore,
		&s.StoreName,
		&s.Address,
		&s.PhoneNumber,
		&s.Email,
		&s.IDStoreType,
		&s.OpeningHours,
		&s.ClosingHours,
		&s.Note,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
}

func (s *StoreStore) ListStores(ctx context.Context) ([]models.Store, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+storeColumns+` FROM stores`)
	if err != nil {
		return nil, fmt.Errorf("failed to query stores: %w", err)
	}
	defer rows.Close()

	stores := []models.Store{}
	for rows.Next() {
		var st models.Store
		if err := scanStore(rows, &st); err != nil {
			return nil, fmt.Errorf("failed to scan store row: %w", err)
		}
		stores = append(stores, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error while listing stores: %w", err)
	}
	return stores, nil
}

func (s *StoreStore) GetStore(ctx context.Context, nit string) (*models.Store, error) {
	var st models.Store
	err := scanStore(s.db.QueryRowContext(ctx,
		`SELECT `+storeColumns+` FROM stores WHERE nit_store = $1`, nit), &st)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get store %q: %w", nit, err)
	}
	return &st, nil
}

// Exists is the shared referenced-store check used before inserting views,
// activities, and statistics.
func (s *StoreStore) Exists(ctx context.Context, nit string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM stores WHERE nit_store = $1`, nit).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check store %q: %w", nit, err)
	}
	return true, nil
}

func (s *StoreStore) CreateStore(ctx context.Context, req *models.StoreRequest) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO stores(nit_store, store_name, address, phone_number, email,
			id_store_type, opening_hours, closing_hours, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		req.NitStore,
		req.StoreName,
		req.Address,
		req.PhoneNumber,
		req.Email,
		req.IDStoreType,
		req.OpeningHours,
		req.ClosingHours,
		req.Note,
	)
	if err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}
	return nil
}

// UpdateStore replaces every field, including the primary key itself: the
// request body may rename nit_store.
func (s *StoreStore) UpdateStore(ctx context.Context, nit string, req *models.StoreRequest) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE stores SET nit_store = $1, store_name = $2, address = $3, phone_number = $4,
			email = $5, id_store_type = $6, opening_hours = $7, closing_hours = $8, note = $9,
			updated_at = CURRENT_TIMESTAMP
		WHERE nit_store = $10`,
		req.NitStore,
		req.StoreName,
		req.Address,
		req.PhoneNumber,
		req.Email,
		req.IDStoreType,
		req.OpeningHours,
		req.ClosingHours,
		req.Note,
		nit,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update store %q: %w", nit, err)
	}
	return res.RowsAffected()
}

func (s *StoreStore) DeleteStore(ctx context.Context, nit string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM stores WHERE nit_store = $1`, nit)
	if err != nil {
		return 0, fmt.Errorf("failed to delete store %q: %w", nit, err)
	}
	return res.RowsAffected()
}

// RecordView appends a bare view row (defaults cover type and method) and
// returns the store's running view total. The two statements are intentionally
// independent; the count may include views from concurrent requests.
func (s *StoreStore) RecordView(ctx context.Context, nit string) (int, error) {
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO store_views(id_store) VALUES ($1)`, nit); err != nil {
		return 0, fmt.Errorf("failed to record view for store %q: %w", nit, err)
	}
	return s.CountViews(ctx, nit)
}

func (s *StoreStore) CountViews(ctx context.Context, nit string) (int, error) {
	var total int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) AS total_views FROM store_views WHERE id_store = $1`, nit).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count views for store %q: %w", nit, err)
	}
	return total, nil
}
