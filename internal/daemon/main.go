// Package daemon wires the database, the session storage, the app shell and
// the web service.
package daemon

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	sessionmysql "github.com/gofiber/storage/mysql/v2"
	sessionpostgres "github.com/gofiber/storage/postgres/v3"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/AppShell-Admin/AppShell-Admin/internal/appshell"
	"github.com/AppShell-Admin/AppShell-Admin/internal/config"
	"github.com/AppShell-Admin/AppShell-Admin/internal/db"
	"github.com/AppShell-Admin/AppShell-Admin/internal/db/dsn"
	"github.com/AppShell-Admin/AppShell-Admin/internal/logger"
	"github.com/AppShell-Admin/AppShell-Admin/internal/web"
	"github.com/AppShell-Admin/AppShell-Admin/internal/web/session"
)

const sessionTable = "sessions"

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
}

// Start starts the web service and blocks until it is shut down by a signal.
// Pending log entries are flushed before it returns.
func (d *Daemon) Start() error {
	defer func() { _ = logger.Close() }()

	go d.webService.WaitShutdown()

	return d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))
}

// Open initialises logging, connects and migrates the database, seeds the
// default operator and builds the app shell. It is shared by the start and
// export commands.
func Open(cfg *config.Config) (*gorm.DB, *appshell.Shell, error) {
	if cfg == nil {
		return nil, nil, errors.New("config is nil")
	}

	if err := logger.Init(cfg.Log); err != nil {
		return nil, nil, errors.Wrap(err, "init logger")
	}

	database, err := db.Open(cfg)
	if err != nil {
		return nil, nil, err
	}

	if err = seed(database); err != nil {
		return nil, nil, err
	}

	shell, err := appshell.NewFromConfig(cfg, database, prometheus.DefaultRegisterer)
	if err != nil {
		return nil, nil, err
	}

	return database, shell, nil
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) (*Daemon, error) {
	_, shell, err := Open(cfg)
	if err != nil {
		return nil, err
	}

	session.Init(sessionStorage(cfg))

	log.Info().
		Str("engine", cfg.DB.GormEngine).
		Int("port", cfg.Webserver.Port).
		Bool("dev", cfg.DevMode).
		Msg("starting appshell admin")

	return &Daemon{
		cfg:        cfg,
		webService: web.New(cfg, shell, prometheus.DefaultGatherer),
	}, nil
}

// sessionStorage keeps sessions next to the data on mysql and postgres.
// sqlite falls back to the in-memory store.
func sessionStorage(cfg *config.Config) fiber.Storage {
	switch cfg.DB.GormEngine {
	case config.GormEngineMySQL, "":
		return sessionmysql.New(sessionmysql.Config{
			ConnectionURI: dsn.MySQL(cfg),
			Table:         sessionTable,
		})
	case config.GormEnginePostgres:
		return sessionpostgres.New(sessionpostgres.Config{
			ConnectionURI: dsn.Postgres(cfg),
			Table:         sessionTable,
		})
	default:
		log.Warn().Str("engine", cfg.DB.GormEngine).Msg("sessions are kept in memory")

		return nil
	}
}
