package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AppShell-Admin/AppShell-Admin/internal/db/models"
	"github.com/AppShell-Admin/AppShell-Admin/internal/web/handler/login"
	"github.com/AppShell-Admin/AppShell-Admin/internal/web/navigation"
	"github.com/AppShell-Admin/AppShell-Admin/internal/web/session"
)

func newTestApp() *fiber.App {
	app := fiber.New()
	app.Use(Middleware)
	app.Use(func(c *fiber.Ctx) error {
		if u, ok := c.Locals("CurrentUser").(models.User); ok {
			return c.SendString("user:" + u.Username)
		}

		return c.SendString("anonymous")
	})

	return app
}

func request(t *testing.T, app *fiber.App, target, sessionID string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: sessionID})
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = resp.Body.Close()
	})

	return resp
}

func TestMiddleware(t *testing.T) {
	session.Init(nil)

	data := &session.Data{User: models.User{ID: 1, Username: "op", Active: true}}
	require.NoError(t, data.Write("valid", time.Minute))

	app := newTestApp()

	tests := []struct {
		name     string
		target   string
		session  string
		status   int
		location string
	}{
		{name: "public config", target: "/config", status: http.StatusOK},
		{name: "public config section", target: "/config/theme", status: http.StatusOK},
		{name: "public storage", target: "/storage/tabs/a.png", status: http.StatusOK},
		{name: "public health", target: "/health", status: http.StatusOK},
		{name: "public metrics", target: "/metrics", status: http.StatusOK},
		{name: "prefix is not enough", target: "/configuration", status: http.StatusFound, location: login.Path},
		{name: "admin without session", target: "/admin/tab", status: http.StatusFound, location: login.Path},
		{name: "admin with unknown session", target: "/admin/tab", session: "stale", status: http.StatusFound, location: login.Path},
		{name: "admin with session", target: "/admin/tab", session: "valid", status: http.StatusOK},
		{name: "login without session", target: login.Path, status: http.StatusOK},
		{name: "login with session", target: login.Path, session: "valid", status: http.StatusFound, location: navigation.DashboardPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := request(t, app, tt.target, tt.session)
			assert.Equal(t, tt.status, resp.StatusCode)

			if tt.location != "" {
				assert.Equal(t, tt.location, resp.Header.Get("Location"))
			}
		})
	}
}
