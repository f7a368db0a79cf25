package models

// Tab is an entry of the bottom tab bar.
type Tab struct {
	Ordered
	URL string `gorm:"size:2048" json:"url" form:"url" validate:"required,max=2048"`
}

// TableName specifies the database table name for the Tab model.
func (Tab) TableName() string {
	return "tabs"
}

// SearchColumns lists the columns matched by the admin search.
func (*Tab) SearchColumns() []string {
	return []string{"title", "url"}
}
