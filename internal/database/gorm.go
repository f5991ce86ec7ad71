package database

import (
	"context"
	"fmt"
	"log"
	"signup-wizard/internal/config"
	"signup-wizard/internal/models"
	"signup-wizard/internal/wizard"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var GormDB *gorm.DB

// Open connects to the configured driver and migrates the audit tables.
func Open(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		dialector = postgres.Open(cfg.PostgresDSN())
	case "sqlite":
		dialector = sqlite.Open(cfg.DBPath)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.DBDriver, err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.SubmissionLog{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

func InitGorm(cfg *config.Config) {
	var err error
	GormDB, err = Open(cfg)
	if err != nil {
		log.Fatalf("Failed to initialise database: %v", err)
	}
	log.Printf("Connected to %s and migrated submission_logs", cfg.DBDriver)
}

// SubmissionStore is the gorm-backed audit log.
type SubmissionStore struct {
	DB *gorm.DB
}

func NewSubmissionStore(db *gorm.DB) *SubmissionStore {
	return &SubmissionStore{DB: db}
}

func (s *SubmissionStore) RecordSubmission(ctx context.Context, rec wizard.AuditRecord) error {
	channels := make([]string, 0, len(rec.Channels))
	for _, ch := range rec.Channels {
		channels = append(channels, string(ch))
	}

	entry := models.SubmissionLog{
		SessionID:     rec.SessionID,
		Mode:          string(rec.Mode),
		Channels:      strings.Join(channels, ","),
		InterestCount: rec.InterestCount,
		Identifier:    rec.Identifier,
		Success:       rec.Success,
		Status:        rec.Status,
		Message:       rec.Message,
	}
	return s.DB.WithContext(ctx).Create(&entry).Error
}

// Recent returns the newest entries first.
func (s *SubmissionStore) Recent(ctx context.Context, limit int) ([]models.SubmissionLog, error) {
	var logs []models.SubmissionLog
	err := s.DB.WithContext(ctx).Order("created_at DESC, id DESC").Limit(limit).Find(&logs).Error
	if logs == nil {
		logs = []models.SubmissionLog{}
	}
	return logs, err
}
