package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"thesis-hand/config"
	"thesis-hand/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// Open verbindet sich je nach Konfiguration mit PostgreSQL oder der eingebetteten SQLite-Datei.
func Open(cfg *config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	}

	switch cfg.Driver() {
	case "postgres":
		db, err := gorm.Open(postgres.Open(cfg.DSN()), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		return db, nil
	case "sqlite":
		return OpenSQLite(cfg.SQLiteFile())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver())
	}
}

// OpenSQLite öffnet (und erzeugt bei Bedarf) die Datenbankdatei für den Desktop-Modus.
func OpenSQLite(path string) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}
	dsn := path + "?_pragma=foreign_keys(1)&_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)"
	db, err := gorm.Open(sqlite.Dialector{
		DriverName: "sqlite",
		DSN:        dsn,
	}, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	return db, nil
}

// Migrate legt das Schema für beide Datenbanken über AutoMigrate an.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Thesis{},
		&models.Chapter{},
		&models.Task{},
		&models.Milestone{},
		&models.Comment{},
		&models.Reference{},
		&models.SharedAccess{},
		&models.Document{},
		&models.JournalEntry{},
		&models.Flashcard{},
	)
}
