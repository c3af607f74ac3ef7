package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/yeremiapane/smart-pos/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SnapshotStore persists the whole terminal state as one unit.
type SnapshotStore interface {
	// Load returns nil, nil when nothing has been saved yet.
	Load(ctx context.Context) (*models.Snapshot, error)
	Save(ctx context.Context, snap models.Snapshot) error
}

// ErrCorruptSnapshot wraps decoding failures of a stored snapshot.
var ErrCorruptSnapshot = errors.New("stored snapshot is corrupt")

// DefaultSnapshotKey names the row used when no key is configured.
const DefaultSnapshotKey = "smart-pos"

// GormSnapshotStore keeps the snapshot as a JSON document in one row of
// pos_snapshots.
type GormSnapshotStore struct {
	DB  *gorm.DB
	Key string
}

func NewGormSnapshotStore(db *gorm.DB, key string) *GormSnapshotStore {
	if key == "" {
		key = DefaultSnapshotKey
	}
	return &GormSnapshotStore{DB: db, Key: key}
}

// Migrate creates the pos_snapshots table.
func (s *GormSnapshotStore) Migrate() error {
	if err := s.DB.AutoMigrate(&models.StoredSnapshot{}); err != nil {
		return fmt.Errorf("migrate snapshots: %w", err)
	}
	return nil
}

func (s *GormSnapshotStore) Load(ctx context.Context) (*models.Snapshot, error) {
	var row models.StoredSnapshot
	err := s.DB.WithContext(ctx).Where("snapshot_key = ?", s.Key).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot %q: %w", s.Key, err)
	}

	var snap models.Snapshot
	if err := json.Unmarshal([]byte(row.Data), &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	return &snap, nil
}

func (s *GormSnapshotStore) Save(ctx context.Context, snap models.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	row := models.StoredSnapshot{Key: s.Key, Data: string(data)}
	err = s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "snapshot_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("save snapshot %q: %w", s.Key, err)
	}
	return nil
}

// MemorySnapshotStore keeps the encoded snapshot in memory. Saves go through
// the same JSON encoding as the database store.
type MemorySnapshotStore struct {
	mu    sync.Mutex
	data  []byte
	saves int
	// Err, when set, is returned from every call.
	Err error
}

func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{}
}

func (m *MemorySnapshotStore) Load(ctx context.Context) (*models.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if m.data == nil {
		return nil, nil
	}
	var snap models.Snapshot
	if err := json.Unmarshal(m.data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	return &snap, nil
}

func (m *MemorySnapshotStore) Save(ctx context.Context, snap models.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	m.data = data
	m.saves++
	return nil
}

// SetRaw replaces the stored bytes, for simulating damaged storage.
func (m *MemorySnapshotStore) SetRaw(data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = data
}

// Saves counts successful Save calls.
func (m *MemorySnapshotStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
