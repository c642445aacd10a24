// Package history persists a summary row per update run in a local
// sqlite database, so past runs can be listed without keeping every
// log file around.
package history

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Run is one recorded update run.
type Run struct {
	ID          uint      `gorm:"primaryKey"`
	StartedAt   time.Time `gorm:"index"`
	Mode        string
	Success     bool
	NewPackages int
	Updates     int
	ReEmerges   int
	Uninstalls  int
	Blocks      int
	LogPath     string
}

// Store wraps the history database.
type Store struct {
	db *gorm.DB
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if err := db.AutoMigrate(&Run{}); err != nil {
		return nil, fmt.Errorf("failed to migrate history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Record stores one run.
func (s *Store) Record(run *Run) error {
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	return s.db.Create(run).Error
}

// List returns recorded runs, newest first. A limit of zero or less
// returns all runs.
func (s *Store) List(limit int) ([]Run, error) {
	var runs []Run
	q := s.db.Order("started_at desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
