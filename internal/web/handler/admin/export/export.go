// Package export provides the handlers writing and downloading the exported
// app configuration file.
package export

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/AppShell-Admin/AppShell-Admin/internal/appshell"
	"github.com/AppShell-Admin/AppShell-Admin/internal/auth"
	"github.com/AppShell-Admin/AppShell-Admin/internal/config"
	exporter "github.com/AppShell-Admin/AppShell-Admin/internal/export"
	"github.com/AppShell-Admin/AppShell-Admin/internal/web/handler"
	"github.com/AppShell-Admin/AppShell-Admin/internal/web/navigation"
)

const (
	// Path triggers an export.
	Path = handler.RootPath + "export"
	// DownloadPath streams the exported file.
	DownloadPath = handler.RootPath + "download"
)

// Service is the export handler service.
type Service struct {
	handler.Service
	cfg      *config.Config
	exporter *exporter.Exporter
}

// Handler is the export handler.
var Handler = Service{}

// Init initializes the export handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, shell *appshell.Shell, authService *auth.Service) {
	if app == nil || cfg == nil || shell == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.Register(app, cfg, shell.Exporter, auth.RequirePermission(authService, auth.PermAdminExport))
}

// Register mounts the routes behind guard.
func (s *Service) Register(app *fiber.App, cfg *config.Config, e *exporter.Exporter, guard fiber.Handler) {
	s.cfg = cfg
	s.exporter = e

	app.Post(Path, guard, s.Export)
	app.Get(DownloadPath, guard, s.Download)
}

// Export writes the configuration file.
func (s *Service) Export(c *fiber.Ctx) error {
	path, err := s.exporter.ExportToFile(c.UserContext())
	if err != nil {
		log.Error().Err(err).Msg("configuration export failed")

		if handler.WantsJSON(c) {
			return handler.JSONError(c, err, s.cfg.DevMode)
		}

		return c.Redirect(navigation.DashboardPath + "?" + handler.ErrorQuery + "=" +
			url.QueryEscape("Export failed: "+handler.UserMessage(err)))
	}

	log.Info().Str("path", path).Msg("configuration exported")

	if handler.WantsJSON(c) {
		return c.JSON(handler.Envelope{
			Success: true,
			Message: "Configuration exported",
			Data:    fiber.Map{"path": path},
		})
	}

	return c.Redirect(navigation.DashboardPath + "?" + handler.NoticeQuery + "=" +
		url.QueryEscape("Configuration exported to "+path))
}

// Download streams the last exported file as an attachment.
func (s *Service) Download(c *fiber.Ctx) error {
	f, info, err := s.exporter.Open(c.UserContext())
	if err != nil {
		if handler.StatusFor(err) != fiber.StatusNotFound {
			log.Error().Err(err).Msg("failed to open exported configuration")
		}

		if handler.WantsJSON(c) {
			return handler.JSONError(c, err, s.cfg.DevMode)
		}

		return c.Status(handler.StatusFor(err)).SendString(handler.UserMessage(err))
	}

	c.Attachment(s.exporter.Filename())
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)

	// fasthttp closes f once the body is sent
	return c.SendStream(f, int(info.Size()))
}
