// Package api serves the generated app configuration to the mobile app.
package api

import (
	"context"
	"slices"
	"sync/atomic"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/AppShell-Admin/AppShell-Admin/internal/appconfig"
	"github.com/AppShell-Admin/AppShell-Admin/internal/appshell"
	"github.com/AppShell-Admin/AppShell-Admin/internal/auth"
	"github.com/AppShell-Admin/AppShell-Admin/internal/config"
	"github.com/AppShell-Admin/AppShell-Admin/internal/web/handler"
)

const (
	// ConfigPath serves the complete configuration.
	ConfigPath = handler.RootPath + "config"
	// HealthPath reports liveness.
	HealthPath = handler.RootPath + "health"

	generateTimeout = 30 * time.Second
)

// Generator builds the aggregate configuration.
type Generator interface {
	Generate(ctx context.Context) (*appconfig.Config, error)
}

// Service is the api handler service.
type Service struct {
	handler.Service
	cfg   *config.Config
	gen   Generator
	alive *atomic.Bool
}

// Handler is the api handler.
var Handler = Service{}

// Init initializes the api handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, shell *appshell.Shell, _ *auth.Service) {
	if app == nil || cfg == nil || shell == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.Register(app, cfg, shell.Exporter, s.alive)
}

// Register mounts the routes on app. alive, when not nil, makes /health
// answer 503 once it turns false.
func (s *Service) Register(app *fiber.App, cfg *config.Config, gen Generator, alive *atomic.Bool) {
	s.cfg = cfg
	s.gen = gen
	s.alive = alive

	app.Get(ConfigPath, s.Config)
	app.Get(ConfigPath+"/:section", s.Section)
	app.Get(HealthPath, s.Health)
}

// SetAlive attaches the liveness flag of the web service.
func (s *Service) SetAlive(alive *atomic.Bool) {
	s.alive = alive
}

func (s *Service) generate(c *fiber.Ctx) (*appconfig.Config, error) {
	ctx, cancel := context.WithTimeout(c.UserContext(), generateTimeout)
	defer cancel()

	return s.gen.Generate(ctx)
}

// Config returns the complete aggregate configuration.
func (s *Service) Config(c *fiber.Ctx) error {
	cfg, err := s.generate(c)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate app configuration")
		return handler.JSONError(c, err, s.cfg.DevMode)
	}

	return c.JSON(handler.Envelope{Success: true, Data: cfg})
}

// Section returns one section of the aggregate configuration.
func (s *Service) Section(c *fiber.Ctx) error {
	name := c.Params("section")

	if !slices.Contains(appconfig.SectionNames, name) {
		return handler.JSONError(c, appconfig.ErrUnknownSection, false)
	}

	cfg, err := s.generate(c)
	if err != nil {
		log.Error().Err(err).Str("section", name).Msg("failed to generate app configuration")
		return handler.JSONError(c, err, s.cfg.DevMode)
	}

	data, err := cfg.Section(name)
	if err != nil {
		return handler.JSONError(c, err, s.cfg.DevMode)
	}

	return c.JSON(handler.Envelope{Success: true, Data: data})
}

// Health reports the service state for load balancers.
func (s *Service) Health(c *fiber.Ctx) error {
	status, code := "ok", fiber.StatusOK
	if s.alive != nil && !s.alive.Load() {
		status, code = "shutting down", fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    status,
		"version":   s.cfg.Version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
