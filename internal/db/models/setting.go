// Package models contains database model definitions.
package models

import "time"

// Setting is a JSON blob stored under a unique key.
type Setting struct {
	ID        uint64 `gorm:"primaryKey"`
	Key       string `gorm:"column:setting_key;size:191;uniqueIndex;not null"`
	Value     []byte `gorm:"type:blob"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Setting model.
func (Setting) TableName() string {
	return "settings"
}
