package models

// Menu is a side menu entry. Entries form a forest of depth two:
// a menu with a parent never has children of its own.
type Menu struct {
	Ordered
	URL      string  `gorm:"size:2048" json:"url" form:"url" validate:"max=2048"`
	ParentID *uint64 `gorm:"index" json:"parent_id"`
}

// TableName specifies the database table name for the Menu model.
func (Menu) TableName() string {
	return "menus"
}

// SearchColumns lists the columns matched by the admin search.
func (*Menu) SearchColumns() []string {
	return []string{"title", "url"}
}

// IsTopLevel reports whether m has no parent.
func (m *Menu) IsTopLevel() bool {
	return m.ParentID == nil
}
