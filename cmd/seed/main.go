// Command seed loads a small demo dataset: the store-type catalog, one sample
// store, and a week of randomized views, activities, and daily statistics.
package main

import (
	"database/sql"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"nearme/api/database"
)

var storeTypes = []string{
	"Ropa", "Calzado", "Tecnología", "Electrónica", "Hogar",
	"Muebles", "Decoración", "Deportes", "Juguetes", "Alimentos y Bebidas",
}

const sampleStore = "123-456-7890"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found or error loading .env: %v", err)
	}

	dbClient, err := database.NewPostgresDB()
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL database: %v", err)
	}
	defer dbClient.Close()

	if err := database.EnsureSchema(dbClient.DB); err != nil {
		log.Fatalf("Failed to ensure database schema: %v", err)
	}

	if err := seed(dbClient.DB); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Println("Seeding completed successfully.")
}

func seed(db *sql.DB) error {
	for _, storeType := range storeTypes {
		if _, err := db.Exec(
			`INSERT INTO stores_type(store_type) VALUES ($1)`, storeType); err != nil {
			return fmt.Errorf("failed to insert store type %q: %w", storeType, err)
		}
	}
	log.Printf("Inserted %d store types", len(storeTypes))

	if _, err := db.Exec(`
		INSERT INTO stores(nit_store, store_name, address, phone_number, email,
			id_store_type, opening_hours, closing_hours, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (nit_store) DO NOTHING`,
		sampleStore,
		"Tienda de Prueba",
		"Calle 123 #45-67, Bogotá",
		"3001234567",
		"prueba@tienda.com",
		1,
		"08:00:00",
		"18:00:00",
		"Tienda de prueba para testing",
	); err != nil {
		return fmt.Errorf("failed to insert sample store: %w", err)
	}
	log.Println("Inserted sample store")

	contactTypes := []string{"visit", "whatsapp", "phone_call", "email", "visit"}
	contactMethods := []string{"web", "mobile_app", "web", "web", "web"}
	for i, contactType := range contactTypes {
		sessionID := uuid.New().String()
		viewDate := time.Now().AddDate(0, 0, -rand.Intn(7))
		if _, err := db.Exec(`
			INSERT INTO store_views(id_store, contact_type, contact_method, session_id, user_ip, user_agent, view_date)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			sampleStore,
			contactType,
			contactMethods[i],
			sessionID,
			fmt.Sprintf("192.168.1.%d", 100+i),
			"Mozilla/5.0 (seed)",
			viewDate,
		); err != nil {
			return fmt.Errorf("failed to insert store view: %w", err)
		}
	}
	log.Printf("Inserted %d store views", len(contactTypes))

	activityTypes := []string{"login", "product_added", "product_updated", "store_info_updated"}
	sessionID := uuid.New().String()
	for _, activityType := range activityTypes {
		if _, err := db.Exec(`
			INSERT INTO recent_activities(user_id, activity_type, activity_description, session_id, ip_address, user_agent)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			sampleStore,
			activityType,
			"seeded "+activityType,
			sessionID,
			"192.168.1.100",
			"Mozilla/5.0 (seed)",
		); err != nil {
			return fmt.Errorf("failed to insert activity: %w", err)
		}
	}
	log.Printf("Inserted %d activities", len(activityTypes))

	for day := 0; day < 7; day++ {
		date := time.Now().AddDate(0, 0, -day).Format("2006-01-02")
		if _, err := db.Exec(`
			INSERT INTO store_statistics(store_id, date, total_views, unique_visitors, total_contacts, bounce_rate, avg_session_duration)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (store_id, date) DO NOTHING`,
			sampleStore,
			date,
			rand.Intn(200),
			rand.Intn(80),
			rand.Intn(30),
			float64(rand.Intn(10000))/100.0,
			rand.Intn(600),
		); err != nil {
			return fmt.Errorf("failed to insert statistics for %s: %w", date, err)
		}
	}
	log.Println("Inserted 7 days of statistics")

	return nil
}
