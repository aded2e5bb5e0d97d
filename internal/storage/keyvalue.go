package storage

import (
	"errors"
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/arnold/visiongoals/internal/models"
)

// KeyValue is the durable string store the LocalStore persists into.
type KeyValue interface {
	GetItem(key string) (value string, ok bool, err error)
	SetItem(key, value string) error
	RemoveItem(key string) error
}

// GormKV keeps entries in the kv_entries table (sqlite or postgres).
type GormKV struct {
	db *gorm.DB
}

func NewGormKV(db *gorm.DB) *GormKV {
	return &GormKV{db: db}
}

func (s *GormKV) GetItem(key string) (string, bool, error) {
	if s == nil || s.db == nil {
		return "", false, ErrUnavailable
	}

	var entries []models.KVEntry
	if err := s.db.Where("key = ?", key).Limit(1).Find(&entries).Error; err != nil {
		return "", false, err
	}
	if len(entries) == 0 {
		return "", false, nil
	}
	return entries[0].Value, true, nil
}

func (s *GormKV) SetItem(key, value string) error {
	if s == nil || s.db == nil {
		return ErrUnavailable
	}

	entry := models.KVEntry{Key: key, Value: value, UpdatedAt: time.Now()}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

func (s *GormKV) RemoveItem(key string) error {
	if s == nil || s.db == nil {
		return ErrUnavailable
	}
	err := s.db.Where("key = ?", key).Delete(&models.KVEntry{}).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

// MemoryKV is a process-local store, used for DATABASE_URL=memory and tests.
type MemoryKV struct {
	mu    sync.RWMutex
	items map[string]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{items: make(map[string]string)}
}

func (m *MemoryKV) GetItem(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[key]
	return v, ok, nil
}

func (m *MemoryKV) SetItem(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

func (m *MemoryKV) RemoveItem(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}
