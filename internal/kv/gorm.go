package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// kvRecord is a single row of the kv_records table.
type kvRecord struct {
	Key       string         `gorm:"column:record_key;primaryKey;size:512"`
	Value     datatypes.JSON `gorm:"column:value"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
}

func (kvRecord) TableName() string { return "kv_records" }

// GormStore implements Store on a single SQL table through GORM. It is the
// default production backend (PostgreSQL, value stored as jsonb).
type GormStore struct {
	db *gorm.DB
}

// NewGormStore migrates the kv_records table and returns the store.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&kvRecord{}); err != nil {
		return nil, fmt.Errorf("migrate kv_records: %w", err)
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) Get(ctx context.Context, key string) ([]byte, error) {
	var rec kvRecord
	err := s.db.WithContext(ctx).Where("record_key = ?", key).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(rec.Value), nil
}

func (s *GormStore) Set(ctx context.Context, key string, value []byte) error {
	rec := kvRecord{Key: key, Value: datatypes.JSON(value), UpdatedAt: time.Now().UTC()}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "record_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rec).Error
}

func (s *GormStore) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Where("record_key = ?", key).Delete(&kvRecord{}).Error
}

func (s *GormStore) ScanPrefix(ctx context.Context, prefix string) ([]Entry, error) {
	var recs []kvRecord
	err := s.db.WithContext(ctx).
		Where("record_key LIKE ? ESCAPE '\\'", escapeLike(prefix)+"%").
		Order("record_key").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(recs))
	for _, r := range recs {
		entries = append(entries, Entry{Key: r.Key, Value: []byte(r.Value)})
	}
	return entries, nil
}
