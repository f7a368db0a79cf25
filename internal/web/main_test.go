package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AppShell-Admin/AppShell-Admin/internal/appshell"
	"github.com/AppShell-Admin/AppShell-Admin/internal/auth"
	"github.com/AppShell-Admin/AppShell-Admin/internal/config"
	"github.com/AppShell-Admin/AppShell-Admin/internal/db/dbtest"
	"github.com/AppShell-Admin/AppShell-Admin/internal/web/session"
)

const testSession = "web-test-session"

func newTestService(t *testing.T) *Service {
	t.Helper()

	cfg := &config.Config{
		Title:     "AppShell Admin",
		Version:   "test",
		Webserver: config.Webserver{URL: "http://localhost:8080", ShutDownTime: 1},
		Storage:   config.Storage{Disks: map[string]string{config.DefaultDisk: filepath.Join(t.TempDir(), "public")}},
		Export:    config.Export{Disk: config.DefaultDisk, Path: "appshell", Filename: "config.json"},
		Upload:    config.Upload{Disk: config.DefaultDisk, MaxFileSize: 1 << 20},
	}

	db := dbtest.Open(t)

	role, err := auth.NewService(db).EnsurePermissions("admin")
	require.NoError(t, err)

	user, err := auth.NewLocalProvider(db).CreateUser("admin", "admin@localhost", "changeme", role.ID)
	require.NoError(t, err)

	session.Init(nil)
	require.NoError(t, (&session.Data{User: *user}).Write(testSession, time.Minute))

	shell, err := appshell.NewFromConfig(cfg, db, prometheus.NewRegistry())
	require.NoError(t, err)

	return New(cfg, shell, prometheus.NewRegistry())
}

func get(t *testing.T, s *Service, path string, loggedIn bool) (*http.Response, string) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if loggedIn {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: testSession})
	}

	resp, err := s.App.Test(req, -1)
	require.NoError(t, err)

	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, string(body)
}

func TestNew_PublicRoutes(t *testing.T) {
	s := newTestService(t)

	resp, body := get(t, s, "/config", false)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"success":true`)

	resp, _ = get(t, s, "/config/nope", false)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// not started yet
	resp, _ = get(t, s, "/health", false)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	s.alive.Store(true)

	resp, body = get(t, s, "/health", false)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"version":"test"`)

	resp, body = get(t, s, "/static/css/app.css", false)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, ".sidebar")

	resp, _ = get(t, s, "/metrics", false)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestNew_RequiresSession(t *testing.T) {
	s := newTestService(t)

	for _, path := range []string{"/", "/dashboard", "/admin/menu", "/admin/settings/theme", "/account", "/download"} {
		resp, _ := get(t, s, path, false)
		assert.Equal(t, http.StatusFound, resp.StatusCode, path)
		assert.Equal(t, "/login", resp.Header.Get("Location"), path)
	}

	resp, body := get(t, s, "/login", false)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Sign in")
}

func TestNew_RendersAdminPages(t *testing.T) {
	s := newTestService(t)

	pages := map[string]string{
		"/dashboard":                   "Configuration export",
		"/admin/menu":                  "New Menu",
		"/admin/menu/new":              "parent_id",
		"/admin/walkthrough":           "Walkthrough",
		"/admin/navigation-icon":       "All Position",
		"/admin/tab/new":               `enctype="multipart/form-data"`,
		"/admin/settings/app-settings": "app_name",
		"/admin/settings/theme":        "primary_color",
		"/admin/settings/about":        `name="image"`,
		"/account":                     "Change password",
	}

	for path, want := range pages {
		resp, body := get(t, s, path, true)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.Contains(t, body, want, path)
		assert.Contains(t, body, `href="/admin/settings/user-agent"`, path)
	}

	resp, _ := get(t, s, "/login", true)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))
}

func TestBodyLimit(t *testing.T) {
	assert.Equal(t, 4*1024*1024, bodyLimit(0))
	assert.Equal(t, 20<<20+1<<20, bodyLimit(20<<20))
}
