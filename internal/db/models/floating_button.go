package models

// FloatingButton is a floating action button, it either opens URL or triggers Action.
type FloatingButton struct {
	Ordered
	Action string `gorm:"size:100" json:"action" form:"action" validate:"max=100"`
	URL    string `gorm:"size:2048" json:"url" form:"url" validate:"required_without=Action,max=2048"`
}

// TableName specifies the database table name for the FloatingButton model.
func (FloatingButton) TableName() string {
	return "floating_buttons"
}

// SearchColumns lists the columns matched by the admin search.
func (*FloatingButton) SearchColumns() []string {
	return []string{"title", "action", "url"}
}
