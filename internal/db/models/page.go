package models

// Page is a standalone page reachable from the app.
type Page struct {
	Ordered
	Description string `gorm:"type:text" json:"description" form:"description" validate:"max=2000"`
	URL         string `gorm:"size:2048" json:"url" form:"url" validate:"required,max=2048"`
}

// TableName specifies the database table name for the Page model.
func (Page) TableName() string {
	return "pages"
}

// SearchColumns lists the columns matched by the admin search.
func (*Page) SearchColumns() []string {
	return []string{"title", "description", "url"}
}
