package database

import (
	"database/sql"
	"fmt"
	"log"
)

// schemaStatements is executed in order on startup. Every statement is
// idempotent so restarting the server against an existing database is safe.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS stores_type (
		id_store_type SERIAL PRIMARY KEY,
		store_type VARCHAR(100) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS stores (
		nit_store VARCHAR(20) PRIMARY KEY,
		store_name VARCHAR(100) NOT NULL UNIQUE,
		address VARCHAR(255) NOT NULL,
		phone_number VARCHAR(20) NOT NULL UNIQUE,
		email VARCHAR(100) NOT NULL UNIQUE,
		id_store_type INT REFERENCES stores_type(id_store_type) ON DELETE SET NULL,
		opening_hours TIME,
		closing_hours TIME,
		note TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	// Duplicate product names are allowed across stores on purpose.
	`CREATE TABLE IF NOT EXISTS products (
		id_product SERIAL PRIMARY KEY,
		product_name VARCHAR(100) NOT NULL,
		price NUMERIC(10,2) NOT NULL,
		category VARCHAR(50) NOT NULL,
		id_store VARCHAR(20) REFERENCES stores(nit_store) ON DELETE SET NULL,
		product_description TEXT NOT NULL,
		sold_out BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS store_views (
		id_view SERIAL PRIMARY KEY,
		id_store VARCHAR(20) NOT NULL REFERENCES stores(nit_store) ON DELETE CASCADE,
		contact_type VARCHAR(20) NOT NULL DEFAULT 'visit'
			CHECK (contact_type IN ('visit','phone_call','whatsapp','email','social_media','in_person')),
		contact_method VARCHAR(20) NOT NULL DEFAULT 'web'
			CHECK (contact_method IN ('web','mobile_app','api','admin_panel')),
		user_ip VARCHAR(45),
		user_agent TEXT,
		session_id VARCHAR(100),
		additional_data JSONB,
		view_date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_store_views_store_date ON store_views (id_store, view_date)`,
	`CREATE INDEX IF NOT EXISTS idx_store_views_session ON store_views (session_id)`,
	`CREATE TABLE IF NOT EXISTS recent_activities (
		id SERIAL PRIMARY KEY,
		user_id VARCHAR(20) NOT NULL,
		activity_type VARCHAR(30) NOT NULL
			CHECK (activity_type IN ('product_added','product_updated','product_deleted',
				'store_contacted','excel_uploaded','login','logout',
				'profile_updated','password_changed','store_info_updated')),
		activity_description TEXT,
		metadata JSONB,
		session_id VARCHAR(100),
		ip_address VARCHAR(45),
		user_agent TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_recent_activities_user ON recent_activities (user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_recent_activities_type ON recent_activities (activity_type)`,
	`CREATE INDEX IF NOT EXISTS idx_recent_activities_created ON recent_activities (created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_recent_activities_session ON recent_activities (session_id)`,
	`CREATE INDEX IF NOT EXISTS idx_recent_activities_user_type ON recent_activities (user_id, activity_type)`,
	// UNIQUE (store_id, date) backs the ON CONFLICT upsert in the statistics store.
	`CREATE TABLE IF NOT EXISTS store_statistics (
		id SERIAL PRIMARY KEY,
		store_id VARCHAR(20) NOT NULL REFERENCES stores(nit_store) ON DELETE CASCADE,
		date DATE NOT NULL,
		total_views INT NOT NULL DEFAULT 0,
		unique_visitors INT NOT NULL DEFAULT 0,
		total_contacts INT NOT NULL DEFAULT 0,
		products_added INT NOT NULL DEFAULT 0,
		products_updated INT NOT NULL DEFAULT 0,
		products_deleted INT NOT NULL DEFAULT 0,
		excel_uploads INT NOT NULL DEFAULT 0,
		login_sessions INT NOT NULL DEFAULT 0,
		bounce_rate NUMERIC(5,2) NOT NULL DEFAULT 0.00,
		avg_session_duration INT NOT NULL DEFAULT 0,
		last_updated TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (store_id, date)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_store_statistics_date ON store_statistics (date)`,
}

// EnsureSchema creates every table and index the API reads or writes.
func EnsureSchema(db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	log.Println("Database schema is up to date.")
	return nil
}
