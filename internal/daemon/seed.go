package daemon

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/AppShell-Admin/AppShell-Admin/internal/auth"
)

const (
	adminRole     = "admin"
	adminUser     = "admin"
	adminEmail    = "admin@localhost"
	adminPassword = "changeme"
)

// seed creates the admin role with every permission and, on an empty user
// table, the default operator.
func seed(db *gorm.DB) error {
	role, err := auth.NewService(db).EnsurePermissions(adminRole)
	if err != nil {
		return errors.Wrap(err, "seed permissions")
	}

	local := auth.NewLocalProvider(db)

	count, err := local.CountUsers()
	if err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	if _, err = local.CreateUser(adminUser, adminEmail, adminPassword, role.ID); err != nil {
		return errors.Wrap(err, "seed admin user")
	}

	log.Warn().Str("username", adminUser).Msg("created default admin user, change its password")

	return nil
}
