package main

import (
	"log"
	"signup-wizard/internal/config"
	"signup-wizard/internal/database"
	"signup-wizard/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const batchSize = 500

// Copies the submission audit log from the local SQLite file into the
// configured PostgreSQL database, then moves the id sequence past the copied
// rows.
func main() {
	cfg := config.LoadConfig()

	// 1. Connect to SQLite (Source)
	sqliteDB, err := gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to SQLite: %v", err)
	}
	log.Printf("Connected to SQLite at %s", cfg.DBPath)

	// 2. Connect to PostgreSQL (Destination)
	cfg.DBDriver = "postgres"
	database.InitGorm(cfg)
	pgDB := database.GormDB

	log.Println("Starting submission_logs migration...")

	var logs []models.SubmissionLog
	migrated := 0
	result := sqliteDB.Order("id").FindInBatches(&logs, batchSize, func(tx *gorm.DB, batch int) error {
		err := pgDB.Transaction(func(dst *gorm.DB) error {
			return dst.Create(&logs).Error
		})
		if err != nil {
			return err
		}
		migrated += len(logs)
		log.Printf("Batch %d: copied %d rows", batch, len(logs))
		return nil
	})
	if result.Error != nil {
		log.Fatalf("Error migrating submission_logs: %v", result.Error)
	}

	// Rows were inserted with explicit ids, so the serial sequence is behind.
	syncSQL := "SELECT setval(pg_get_serial_sequence('submission_logs', 'id'), coalesce(max(id), 0) + 1, false) FROM submission_logs"
	if err := pgDB.Exec(syncSQL).Error; err != nil {
		log.Fatalf("Error syncing submission_logs sequence: %v", err)
	}

	log.Printf("Migration completed! %d rows copied", migrated)
}
