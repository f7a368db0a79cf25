package models

// Walkthrough is an onboarding screen shown on first launch.
type Walkthrough struct {
	Ordered
	Description     string `gorm:"type:text" json:"description" form:"description" validate:"max=2000"`
	BackgroundColor string `gorm:"size:20" json:"background_color" form:"background_color" validate:"omitempty,hexcolor"`
}

// TableName specifies the database table name for the Walkthrough model.
func (Walkthrough) TableName() string {
	return "walkthroughs"
}

// SearchColumns lists the columns matched by the admin search.
func (*Walkthrough) SearchColumns() []string {
	return []string{"title", "description"}
}
