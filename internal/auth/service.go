package auth

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AppShell-Admin/AppShell-Admin/internal/db/models"
)

// Service provides authorization functionality.
type Service struct {
	db *gorm.DB
}

// NewService creates a new auth service.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// HasPermission checks if the role of a user has a specific permission.
func (s *Service) HasPermission(userID uint64, permission string) (bool, error) {
	var count int64

	err := s.db.Table("permissions").
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id").
		Joins("JOIN users ON users.role_id = role_permissions.role_id").
		Where("users.id = ? AND users.active = ? AND permissions.name = ?", userID, true, permission).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check role permission: %w", err)
	}

	return count > 0, nil
}

// HasAnyPermission checks if a user has at least one of the given permissions.
func (s *Service) HasAnyPermission(userID uint64, permissions []string) (bool, error) {
	if len(permissions) == 0 {
		return false, nil
	}

	for _, perm := range permissions {
		has, err := s.HasPermission(userID, perm)
		if err != nil {
			return false, err
		}

		if has {
			return true, nil
		}
	}

	return false, nil
}

// GetUserPermissions retrieves all permissions of the role of a user.
func (s *Service) GetUserPermissions(userID uint64) ([]string, error) {
	var permissions []string

	err := s.db.Table("permissions").
		Select("DISTINCT permissions.name").
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id").
		Joins("JOIN users ON users.role_id = role_permissions.role_id").
		Where("users.id = ? AND users.active = ?", userID, true).
		Order("permissions.name").
		Pluck("permissions.name", &permissions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get user permissions: %w", err)
	}

	return permissions, nil
}

// AssignRoleToUser assigns a role to a user.
func (s *Service) AssignRoleToUser(userID uint64, roleID uint) error {
	return s.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("role_id", roleID).Error
}

// EnsurePermissions creates every known permission and a role holding all
// of them. It returns the role.
func (s *Service) EnsurePermissions(roleName string) (*models.Role, error) {
	return ensureRole(s.db, roleName, Descriptions)
}

func ensureRole(db *gorm.DB, roleName string, perms map[string]string) (*models.Role, error) {
	var role models.Role

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(models.Role{Name: roleName}).
			Attrs(models.Role{Description: "Full access", IsSystem: true}).
			FirstOrCreate(&role).Error; err != nil {
			return fmt.Errorf("failed to create role %s: %w", roleName, err)
		}

		for name, desc := range perms {
			var perm models.Permission
			if err := tx.Where(models.Permission{Name: name}).
				Attrs(models.Permission{Description: desc}).
				FirstOrCreate(&perm).Error; err != nil {
				return fmt.Errorf("failed to create permission %s: %w", name, err)
			}

			link := models.RolePermission{RoleID: role.ID, PermissionID: perm.ID}
			if err := tx.Omit(clause.Associations).
				Clauses(clause.OnConflict{DoNothing: true}).
				Create(&link).Error; err != nil {
				return fmt.Errorf("failed to assign permission %s: %w", name, err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &role, nil
}

// RoleByName returns the role with the given name.
func (s *Service) RoleByName(name string) (*models.Role, error) {
	var role models.Role
	if err := s.db.Where("name = ?", name).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}

		return nil, fmt.Errorf("failed to get role: %w", err)
	}

	return &role, nil
}
