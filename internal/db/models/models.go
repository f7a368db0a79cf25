package models

// All returns every model for auto migration.
func All() []interface{} {
	return []interface{}{
		&Role{},
		&Permission{},
		&RolePermission{},
		&User{},
		&Setting{},
		&Walkthrough{},
		&Tab{},
		&Page{},
		&FloatingButton{},
		&NavigationIcon{},
		&Menu{},
	}
}
