package models

const (
	// PositionLeft places a navigation icon in the left part of the header.
	PositionLeft = "left"
	// PositionRight places a navigation icon in the right part of the header.
	PositionRight = "right"
)

// NavigationIcon is a header icon. Sort order is kept per position.
type NavigationIcon struct {
	Ordered
	Action   string `gorm:"size:100" json:"action" form:"action" validate:"max=100"`
	URL      string `gorm:"size:2048" json:"url" form:"url" validate:"required_without=Action,max=2048"`
	Position string `gorm:"size:10;not null;index" json:"position" form:"position" validate:"required,oneof=left right"`
}

// TableName specifies the database table name for the NavigationIcon model.
func (NavigationIcon) TableName() string {
	return "navigation_icons"
}

// SearchColumns lists the columns matched by the admin search.
func (*NavigationIcon) SearchColumns() []string {
	return []string{"title", "action", "url"}
}

// SortScope partitions sort order by position.
func (n *NavigationIcon) SortScope() map[string]any {
	return map[string]any{"position": n.Position}
}
