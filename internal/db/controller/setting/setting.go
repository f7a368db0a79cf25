// Package setting provides CRUD operations for the key/value settings table.
package setting

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AppShell-Admin/AppShell-Admin/internal/db/models"
)

const (
	keyQueryPattern = "setting_key = ?"
)

var (
	// ErrSettingNotFound is returned when a setting is not found.
	ErrSettingNotFound = errors.New("setting not found")
	// ErrSettingKeyEmpty is returned when attempting to read or write a setting with an empty key.
	ErrSettingKeyEmpty = errors.New("setting key cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Get retrieves a setting by its key.
func Get(ctx context.Context, db *gorm.DB, key string) (*models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if key == "" {
		return nil, ErrSettingKeyEmpty
	}

	var setting models.Setting

	result := db.WithContext(ctx).Where(keyQueryPattern, key).First(&setting)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}

		return nil, fmt.Errorf("get setting %q: %w", key, result.Error)
	}

	return &setting, nil
}

// GetAll retrieves all settings as a key to value map.
func GetAll(ctx context.Context, db *gorm.DB) (map[string][]byte, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var settings []models.Setting
	if err := db.WithContext(ctx).Order("setting_key ASC").Find(&settings).Error; err != nil {
		return nil, fmt.Errorf("get all settings: %w", err)
	}

	out := make(map[string][]byte, len(settings))
	for _, s := range settings {
		out[s.Key] = s.Value
	}

	return out, nil
}

// Set creates or replaces the value stored under key.
func Set(ctx context.Context, db *gorm.DB, key string, value []byte) (*models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if key == "" {
		return nil, ErrSettingKeyEmpty
	}

	setting := &models.Setting{
		Key:   key,
		Value: value,
	}

	// single statement upsert on the unique key
	result := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "setting_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(setting)
	if result.Error != nil {
		return nil, fmt.Errorf("set setting %q: %w", key, result.Error)
	}

	return setting, nil
}

// DeleteByKey deletes a setting by key.
func DeleteByKey(ctx context.Context, db *gorm.DB, key string) error {
	if db == nil {
		return ErrDBNil
	}

	if key == "" {
		return ErrSettingKeyEmpty
	}

	result := db.WithContext(ctx).Where(keyQueryPattern, key).Delete(&models.Setting{})
	if result.Error != nil {
		return fmt.Errorf("delete setting %q: %w", key, result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrSettingNotFound
	}

	return nil
}

// Store is a handle on the settings table that encodes values as JSON.
type Store struct {
	db *gorm.DB
}

// NewStore creates a Store.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Load decodes the value stored under key into dst.
// A missing key leaves dst untouched, so callers pre-fill dst with defaults.
func (s *Store) Load(ctx context.Context, key string, dst any) error {
	setting, err := Get(ctx, s.db, key)
	if errors.Is(err, ErrSettingNotFound) {
		return nil
	}

	if err != nil {
		return err
	}

	if len(setting.Value) == 0 {
		return nil
	}

	if err = json.Unmarshal(setting.Value, dst); err != nil {
		return fmt.Errorf("decode setting %q: %w", key, err)
	}

	return nil
}

// Save encodes src as JSON and stores it under key, replacing any previous value.
func (s *Store) Save(ctx context.Context, key string, src any) error {
	data, err := json.Marshal(src)
	if err != nil {
		return fmt.Errorf("encode setting %q: %w", key, err)
	}

	_, err = Set(ctx, s.db, key, data)

	return err
}

// All returns every stored value keyed by setting key.
func (s *Store) All(ctx context.Context) (map[string]json.RawMessage, error) {
	raw, err := GetAll(ctx, s.db)
	if err != nil {
		return nil, err
	}

	out := make(map[string]json.RawMessage, len(raw))
	for k, v := range raw {
		out[k] = v
	}

	return out, nil
}
