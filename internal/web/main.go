package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/AppShell-Admin/AppShell-Admin/internal/appshell"
	"github.com/AppShell-Admin/AppShell-Admin/internal/auth"
	"github.com/AppShell-Admin/AppShell-Admin/internal/config"
	fiberlogger "github.com/AppShell-Admin/AppShell-Admin/internal/logger/adapter/fiber"
	"github.com/AppShell-Admin/AppShell-Admin/internal/upload"
	"github.com/AppShell-Admin/AppShell-Admin/internal/web/handler"
	"github.com/AppShell-Admin/AppShell-Admin/internal/web/handler/account"
	"github.com/AppShell-Admin/AppShell-Admin/internal/web/handler/admin/content"
	"github.com/AppShell-Admin/AppShell-Admin/internal/web/handler/admin/export"
	"github.com/AppShell-Admin/AppShell-Admin/internal/web/handler/admin/settings"
	"github.com/AppShell-Admin/AppShell-Admin/internal/web/handler/api"
	"github.com/AppShell-Admin/AppShell-Admin/internal/web/handler/dashboard"
	"github.com/AppShell-Admin/AppShell-Admin/internal/web/handler/login"
	"github.com/AppShell-Admin/AppShell-Admin/internal/web/handler/logout"
	authmiddleware "github.com/AppShell-Admin/AppShell-Admin/internal/web/middleware/auth"
	"github.com/AppShell-Admin/AppShell-Admin/internal/web/navigation"
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	shell        *appshell.Shell
	authService  *auth.Service
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	s.alive.Store(true)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for graceful shutdown of the web service.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	// Wait interrupt or shutdown request through /shutdown
	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so /health returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	// stop fiber http server
	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// New creates a new web service with the given configuration. gatherer
// backs /metrics and may be nil for the default registry.
func New(cfg *config.Config, shell *appshell.Shell, gatherer prometheus.Gatherer) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if shell == nil || shell.DB == nil {
		panic("shell cannot be nil")
	}

	templateEngine := html.NewFileSystem(templateFS(), ".gohtml")

	// in debug mode, use local filesystem for templates
	if cfg.DevMode {
		templateEngine = html.New("./internal/web/"+templateDir, ".gohtml")
		templateEngine.ShouldReload = true

		log.Warn().Msg("debug mode enabled: using local filesystem for templates")
	}

	// Add template helper functions
	templateEngine.AddFunc("iterate", func(count int) []int {
		result := make([]int, count)
		for i := range result {
			result[i] = i
		}

		return result
	})
	templateEngine.AddFunc("add", func(a, b int) int {
		return a + b
	})
	templateEngine.AddFunc("sub", func(a, b int) int {
		return a - b
	})
	templateEngine.AddFunc("deref", func(s *string) string {
		if s == nil {
			return ""
		}

		return *s
	})

	// create fiber app
	app := fiber.New(
		fiber.Config{
			ReadBufferSize:    8192,
			AppName:           cfg.Title,
			CaseSensitive:     true,
			Prefork:           false,
			Immutable:         true,
			Views:             templateEngine,
			PassLocalsToViews: true,
			BodyLimit:         bodyLimit(cfg.Upload.MaxFileSize),
		},
	)

	app.Use(fiberlogger.New(fiberlogger.Config{
		Config:    cfg.Log,
		SkipPaths: []string{"/health", "/metrics"},
	}))

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New())
	}

	// serve embedded static files
	app.Use("/static",
		filesystem.New(
			filesystem.Config{
				Root:       staticFS(),
				PathPrefix: staticDir,
				Browse:     cfg.Webserver.BrowseStatic,
				MaxAge:     staticMaxAge(cfg.Webserver.CacheEnabled),
			},
		),
	)

	// uploaded images and the exported configuration
	app.Use(strings.TrimSuffix(upload.PublicPrefix, "/"),
		filesystem.New(
			filesystem.Config{
				Root:   afero.NewHttpFs(shell.Uploads.Fs()),
				MaxAge: 3600, //nolint:mnd
			},
		),
	)

	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	// session cookie encryption
	if cfg.Webserver.CookieEncryptionKey != "" {
		app.Use(encryptcookie.New(encryptcookie.Config{Key: cfg.Webserver.CookieEncryptionKey}))
	}

	// basic auth middleware
	app.Use(authmiddleware.Middleware)

	// Initialize auth service
	authService := auth.NewService(shell.DB)

	// Add permissions to fiber.Locals middleware (after auth)
	app.Use(auth.AddPermissionsToLocals(authService))
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("Sidebar", navigation.Sidebar())
		c.Locals("AppTitle", cfg.Title)

		return c.Next()
	})

	// init web service
	service := &Service{
		cfg:         cfg,
		App:         app,
		shell:       shell,
		authService: authService,
	}

	// init handlers (they register their own routes with permission checks)
	if err := login.Handler.Init(app, cfg, shell.DB); err != nil {
		log.Fatal().Err(err).Msg("failed to init login handler")
	}

	logout.Handler.Init(app, cfg)
	account.Handler.Init(app, cfg, shell.DB)

	api.Handler.SetAlive(&service.alive)

	for _, h := range []handler.Service{
		&api.Handler,
		&dashboard.Handler,
		&export.Handler,
		&content.Handler,
		&settings.Handler,
	} {
		h.Init(app, cfg, shell, authService)
	}

	// redirect root to dashboard
	app.Get(handler.RootPath, func(c *fiber.Ctx) error {
		return c.Redirect(navigation.DashboardPath)
	})

	return service
}

// bodyLimit leaves room for form fields next to the largest allowed upload.
func bodyLimit(maxFileSize int64) int {
	const (
		formOverhead = 1 << 20
		minimum      = fiber.DefaultBodyLimit
	)

	if limit := int(maxFileSize) + formOverhead; limit > minimum {
		return limit
	}

	return minimum
}

func staticMaxAge(cache bool) int {
	if cache {
		return 86400 //nolint:mnd
	}

	return 0
}
