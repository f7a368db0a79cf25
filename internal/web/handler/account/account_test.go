package account

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AppShell-Admin/AppShell-Admin/internal/auth"
	"github.com/AppShell-Admin/AppShell-Admin/internal/config"
	"github.com/AppShell-Admin/AppShell-Admin/internal/db/dbtest"
	"github.com/AppShell-Admin/AppShell-Admin/internal/db/models"
	"github.com/AppShell-Admin/AppShell-Admin/internal/web/session"
)

type recordingViews struct {
	mu   sync.Mutex
	data fiber.Map
}

func (v *recordingViews) Load() error { return nil }

func (v *recordingViews) Render(w io.Writer, name string, data interface{}, _ ...string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.data, _ = data.(fiber.Map)
	_, _ = io.WriteString(w, name)

	return nil
}

func (v *recordingViews) errors() map[string]string {
	v.mu.Lock()
	defer v.mu.Unlock()

	errs, _ := v.data["Errors"].(map[string]string)

	return errs
}

type fixture struct {
	app   *fiber.App
	views *recordingViews
	local *auth.LocalProvider
}

func setup(t *testing.T) *fixture {
	t.Helper()

	db := dbtest.Open(t)

	role, err := auth.NewService(db).EnsurePermissions("admin")
	require.NoError(t, err)

	local := auth.NewLocalProvider(db)
	user, err := local.CreateUser("op", "op@example.com", "old-password", role.ID)
	require.NoError(t, err)

	session.Init(nil)
	require.NoError(t, (&session.Data{User: models.User{ID: user.ID, Username: "op"}}).Write("sid", time.Minute))

	views := &recordingViews{}
	app := fiber.New(fiber.Config{Views: views})

	var s Service
	s.Init(app, &config.Config{}, db)

	return &fixture{app: app, views: views, local: local}
}

func (f *fixture) post(t *testing.T, form url.Values, withSession bool) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, Path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	if withSession {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "sid"})
	}

	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = resp.Body.Close()
	})

	return resp
}

func TestPost_ChangesPassword(t *testing.T) {
	f := setup(t)

	resp := f.post(t, url.Values{
		"current_password": {"old-password"},
		"new_password":     {"new-password"},
		"confirm_password": {"new-password"},
	}, true)

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Location"), Path+"?notice=")

	_, err := f.local.Authenticate("op", "new-password")
	require.NoError(t, err)
}

func TestPost_WrongCurrentPassword(t *testing.T) {
	f := setup(t)

	resp := f.post(t, url.Values{
		"current_password": {"wrong"},
		"new_password":     {"new-password"},
		"confirm_password": {"new-password"},
	}, true)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "is incorrect", f.views.errors()["current_password"])

	_, err := f.local.Authenticate("op", "old-password")
	require.NoError(t, err)
}

func TestPost_Validation(t *testing.T) {
	f := setup(t)

	resp := f.post(t, url.Values{
		"current_password": {"old-password"},
		"new_password":     {"short"},
		"confirm_password": {"other"},
	}, true)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	errs := f.views.errors()
	assert.Equal(t, "must be at least 8 characters", errs["new_password"])
	assert.Equal(t, "does not match the new password", errs["confirm_password"])
}

func TestPost_WithoutSession(t *testing.T) {
	f := setup(t)

	resp := f.post(t, url.Values{"current_password": {"old-password"}}, false)

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}
