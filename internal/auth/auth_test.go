package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AppShell-Admin/AppShell-Admin/internal/db/dbtest"
	"github.com/AppShell-Admin/AppShell-Admin/internal/db/models"
	"github.com/AppShell-Admin/AppShell-Admin/internal/web/session"
)

func TestLocalProvider_Authenticate(t *testing.T) {
	db := dbtest.Open(t)
	svc := NewService(db)

	role, err := svc.EnsurePermissions("admin")
	require.NoError(t, err)

	lp := NewLocalProvider(db)

	user, err := lp.CreateUser("alice", "alice@example.com", "secret", role.ID)
	require.NoError(t, err)
	assert.True(t, user.Active)

	_, err = lp.CreateUser("alice", "other@example.com", "secret", role.ID)
	require.ErrorIs(t, err, ErrUserNameOrEmailExists)

	got, err := lp.Authenticate("alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = lp.Authenticate("alice", "wrong")
	require.ErrorIs(t, err, ErrInvalidPassword)

	_, err = lp.Authenticate("bob", "secret")
	require.ErrorIs(t, err, ErrUserNotFound)

	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).Update("active", false).Error)

	_, err = lp.Authenticate("alice", "secret")
	require.ErrorIs(t, err, ErrUserAccountDisabled)
}

func TestLocalProvider_ChangePassword(t *testing.T) {
	db := dbtest.Open(t)
	role, err := NewService(db).EnsurePermissions("admin")
	require.NoError(t, err)

	lp := NewLocalProvider(db)
	user, err := lp.CreateUser("carol", "carol@example.com", "old", role.ID)
	require.NoError(t, err)

	require.ErrorIs(t, lp.ChangePassword(user.ID, "wrong", "new"), ErrInvalidOldPassword)
	require.NoError(t, lp.ChangePassword(user.ID, "old", "new"))

	_, err = lp.Authenticate("carol", "new")
	require.NoError(t, err)
}

func TestService_Permissions(t *testing.T) {
	db := dbtest.Open(t)
	svc := NewService(db)

	admin, err := svc.EnsurePermissions("admin")
	require.NoError(t, err)

	// idempotent
	again, err := svc.EnsurePermissions("admin")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, again.ID)

	editor := models.Role{Name: "editor"}
	require.NoError(t, db.Create(&editor).Error)

	lp := NewLocalProvider(db)
	boss, err := lp.CreateUser("boss", "boss@example.com", "pw", admin.ID)
	require.NoError(t, err)
	clerk, err := lp.CreateUser("clerk", "clerk@example.com", "pw", editor.ID)
	require.NoError(t, err)

	perms, err := svc.GetUserPermissions(boss.ID)
	require.NoError(t, err)
	assert.Len(t, perms, len(Descriptions))

	ok, err := svc.HasPermission(boss.ID, PermAdminExport)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.HasPermission(clerk.ID, PermAdminExport)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.HasAnyPermission(clerk.ID, nil)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.RoleByName("nobody")
	require.ErrorIs(t, err, ErrRoleNotFound)
}

func TestRequirePermission(t *testing.T) {
	db := dbtest.Open(t)
	svc := NewService(db)
	session.Init(nil)

	admin, err := svc.EnsurePermissions("admin")
	require.NoError(t, err)

	viewer := models.Role{Name: "viewer"}
	require.NoError(t, db.Create(&viewer).Error)

	lp := NewLocalProvider(db)
	boss, err := lp.CreateUser("boss", "boss@example.com", "pw", admin.ID)
	require.NoError(t, err)
	guest, err := lp.CreateUser("guest", "guest@example.com", "pw", viewer.ID)
	require.NoError(t, err)

	login := func(u *models.User) string {
		id, err := session.GenerateSessionID()
		require.NoError(t, err)
		require.NoError(t, (&session.Data{User: *u}).Write(id, time.Minute))

		return id
	}

	app := fiber.New()
	app.Get("/export", RequirePermission(svc, PermAdminExport), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	tests := []struct {
		name   string
		cookie string
		want   int
	}{
		{"anonymous", "", fiber.StatusUnauthorized},
		{"unknown session", "deadbeef", fiber.StatusUnauthorized},
		{"missing permission", login(guest), fiber.StatusForbidden},
		{"granted", login(boss), fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/export", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: session.CookieName, Value: tt.cookie})
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}
