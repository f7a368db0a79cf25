package models

import "time"

// Ordered holds the columns shared by every sortable app shell entity.
// SortOrder is a display hint: ties and gaps are allowed, id breaks ties.
type Ordered struct {
	// ID is the unique identifier.
	ID uint64 `gorm:"primaryKey" json:"id"`
	// Title is shown in the app and in the admin lists.
	Title string `gorm:"size:191;not null" json:"title" form:"title" validate:"required,max=191"`
	// Image is the stored file reference, resolved to a public url on export.
	Image string `gorm:"size:255" json:"image"`
	// SortOrder positions the item, 0 on create means append to the end of its scope.
	SortOrder int `gorm:"not null;default:0;index" json:"sort_order" form:"sort_order" validate:"gte=0"`
	// IsActive hides the item from the exported configuration when false.
	IsActive  bool      `gorm:"not null;index" json:"is_active" form:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Base gives generic code access to the shared columns.
func (o *Ordered) Base() *Ordered {
	return o
}

// SortScope returns the column values partitioning sort_order, nil for the whole table.
func (o *Ordered) SortScope() map[string]any {
	return nil
}
