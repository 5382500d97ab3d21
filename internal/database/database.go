package database

import (
	"errors"
	"fmt"

	"github.com/gdg-garage/reso-client/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Connect opens the sqlite database at path and migrates the given tables.
func Connect(path string, tables ...any) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	// Each connection to ":memory:" is its own database.
	if path == ":memory:" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("database handle: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if len(tables) > 0 {
		if err := db.AutoMigrate(tables...); err != nil {
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
	}

	return db, nil
}

// KV is a key-value table of local client state.
type KV struct {
	db *gorm.DB
}

// OpenKV opens the state database at path.
func OpenKV(path string) (*KV, error) {
	db, err := Connect(path, &models.StateEntry{})
	if err != nil {
		return nil, err
	}
	return &KV{db: db}, nil
}

func NewKV(db *gorm.DB) *KV {
	return &KV{db: db}
}

func (kv *KV) Get(key string) (string, bool, error) {
	var entry models.StateEntry
	err := kv.db.Where("state_key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	return entry.Value, true, nil
}

func (kv *KV) Set(key, value string) error {
	entry := models.StateEntry{Key: key, Value: value}
	err := kv.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "state_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (kv *KV) Delete(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := kv.db.Where("state_key IN ?", keys).Delete(&models.StateEntry{}).Error; err != nil {
		return fmt.Errorf("delete state: %w", err)
	}
	return nil
}

func (kv *KV) Close() error {
	sqlDB, err := kv.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
