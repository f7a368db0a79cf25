// Package dashboard provides the landing page of the admin panel: content
// counts and the state of the exported configuration.
package dashboard

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/AppShell-Admin/AppShell-Admin/internal/appshell"
	"github.com/AppShell-Admin/AppShell-Admin/internal/auth"
	"github.com/AppShell-Admin/AppShell-Admin/internal/config"
	"github.com/AppShell-Admin/AppShell-Admin/internal/export"
	"github.com/AppShell-Admin/AppShell-Admin/internal/upload"
	"github.com/AppShell-Admin/AppShell-Admin/internal/web/handler"
	"github.com/AppShell-Admin/AppShell-Admin/internal/web/navigation"
)

const (
	// Path is the path to the dashboard page.
	Path = navigation.DashboardPath

	// TemplateName is the name of the dashboard template.
	TemplateName = "dashboard/dashboard"

	defaultTimeout = 30 * time.Second
)

// Counter counts stored entities.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// StatusReader reports the export state.
type StatusReader interface {
	Status(ctx context.Context) (export.Status, error)
}

// Count is one tile of the dashboard.
type Count struct {
	Title string
	URL   string
	Total int64
}

// ExportInfo describes the exported file for the template.
type ExportInfo struct {
	Exists     bool
	Path       string
	PublicURL  string
	Size       string
	ModifiedAt string
}

// Data represents the complete dashboard data.
type Data struct {
	Counts []Count
	Export ExportInfo
}

type counted struct {
	title, url string
	counter    Counter
}

// Service is the dashboard handler service.
type Service struct {
	handler.Service
	cfg      *config.Config
	counters []counted
	status   StatusReader
}

// Handler is the dashboard handler.
var Handler = Service{}

// Init initializes the dashboard handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, shell *appshell.Shell, authService *auth.Service) {
	if app == nil || cfg == nil || shell == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.wire(cfg, shell)

	// register routes with permission checks
	app.Get(Path,
		auth.RequirePermission(authService, auth.PermDashboardView),
		s.Get,
	)
}

func (s *Service) wire(cfg *config.Config, shell *appshell.Shell) {
	s.cfg = cfg
	s.status = shell.Exporter
	s.counters = []counted{
		{"Menus", "/admin/menu", shell.Menus},
		{"Walkthrough screens", "/admin/walkthrough", shell.Walkthroughs},
		{"Tabs", "/admin/tab", shell.Tabs},
		{"Pages", "/admin/page", shell.Pages},
		{"Floating buttons", "/admin/floating-button", shell.FloatingButtons},
		{"Navigation icons", "/admin/navigation-icon", shell.NavigationIcons},
	}
}

// Get handles the dashboard page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	nav := navigation.NewContext("Dashboard", "dashboard", "dashboard").
		AddBreadcrumb("Home", Path, false).
		AddBreadcrumb("Dashboard", Path, true)

	ctx, cancel := context.WithTimeout(c.UserContext(), defaultTimeout)
	defer cancel()

	data, err := s.collect(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to load dashboard")

		return c.Status(handler.StatusFor(err)).SendString(handler.UserMessage(err))
	}

	view := handler.Flash(c)
	view["Navigation"] = nav
	view["Data"] = data

	return c.Render(TemplateName, view, handler.BaseLayout)
}

func (s *Service) collect(ctx context.Context) (Data, error) {
	data := Data{Counts: make([]Count, 0, len(s.counters))}

	for _, cn := range s.counters {
		n, err := cn.counter.Count(ctx)
		if err != nil {
			return Data{}, err
		}

		data.Counts = append(data.Counts, Count{Title: cn.title, URL: cn.url, Total: n})
	}

	st, err := s.status.Status(ctx)
	if err != nil {
		return Data{}, err
	}

	data.Export = ExportInfo{Exists: st.Exists, Path: st.Path}

	if st.Exists {
		// the export is only reachable below /storage when it shares the upload disk
		if s.cfg.Export.Disk == s.cfg.Upload.Disk {
			data.Export.PublicURL = strings.TrimRight(s.cfg.Webserver.URL, "/") + upload.PublicPrefix + st.Path
		}

		data.Export.Size = sizeLabel(st.Size)
		data.Export.ModifiedAt = st.ModTime.UTC().Format(time.RFC3339)
	}

	return data, nil
}

// sizeLabel formats n bytes for humans.
func sizeLabel(n int64) string {
	const kib = 1024

	if n < kib {
		return strconv.FormatInt(n, 10) + " B"
	}

	return strconv.FormatFloat(float64(n)/kib, 'f', 1, 64) + " KiB"
}
