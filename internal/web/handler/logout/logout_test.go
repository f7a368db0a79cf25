package logout

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AppShell-Admin/AppShell-Admin/internal/config"
	"github.com/AppShell-Admin/AppShell-Admin/internal/db/models"
	"github.com/AppShell-Admin/AppShell-Admin/internal/web/handler/login"
	"github.com/AppShell-Admin/AppShell-Admin/internal/web/session"
)

func TestLogout(t *testing.T) {
	session.Init(nil)

	data := &session.Data{User: models.User{ID: 7, Username: "op"}}
	require.NoError(t, data.Write("sid", time.Minute))

	app := fiber.New()

	var s Service
	s.Init(app, &config.Config{})

	req := httptest.NewRequest(http.MethodPost, Path, nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "sid"})

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	defer func() {
		_ = resp.Body.Close()
	}()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, login.Path, resp.Header.Get("Location"))
	assert.Contains(t, resp.Header.Get("Set-Cookie"), session.CookieName+"=;")

	var after session.Data
	assert.ErrorIs(t, after.Read("sid"), session.ErrNoSession)
}
