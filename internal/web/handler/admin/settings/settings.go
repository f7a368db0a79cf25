// Package settings provides the admin forms of the singleton setting
// sections (app settings, theme, splash, AdMob, OneSignal, ...). Each
// section is stored as one JSON document in the settings table.
package settings

import (
	"context"
	"mime/multipart"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/AppShell-Admin/AppShell-Admin/internal/appconfig"
	"github.com/AppShell-Admin/AppShell-Admin/internal/appshell"
	"github.com/AppShell-Admin/AppShell-Admin/internal/auth"
	"github.com/AppShell-Admin/AppShell-Admin/internal/config"
	"github.com/AppShell-Admin/AppShell-Admin/internal/db/controller/collection"
	"github.com/AppShell-Admin/AppShell-Admin/internal/upload"
	"github.com/AppShell-Admin/AppShell-Admin/internal/web/handler"
)

const (
	// BasePath is the path of the settings pages.
	BasePath = handler.RootPath + "admin/settings"

	// TemplateName is the name of the settings form template.
	TemplateName = "admin/settings/form"

	// ImageField is the multipart field carrying an uploaded image.
	ImageField = "image"
	// RemoveImageField clears the stored image when set to "true".
	RemoveImageField = "remove_image"
	// ExtrasField carries the free form JSON of the app settings.
	ExtrasField = "extras"

	imageDir = "settings"
)

// Documents loads and saves setting documents. Implemented by setting.Store.
type Documents interface {
	Load(ctx context.Context, key string, dst any) error
	Save(ctx context.Context, key string, src any) error
}

// Images stores uploaded images. Implemented by upload.Service.
type Images interface {
	UploadImage(fh *multipart.FileHeader, dir string) (string, error)
	DeleteFile(ref string) error
	URL(ref string) *string
}

// Service is the settings handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	store     Documents
	images    Images
	validator *validator.Validate
	pages     map[string]page
	order     []page
}

// Handler is the settings handler.
var Handler = Service{}

// Init initializes the settings handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, shell *appshell.Shell, authService *auth.Service) {
	if app == nil || cfg == nil || shell == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.Register(app, cfg, shell.Settings, shell.Uploads, auth.RequirePermission(authService, auth.PermAdminSettings))
}

// Register mounts the settings routes behind guard.
func (s *Service) Register(app *fiber.App, cfg *config.Config, store Documents, images Images, guard fiber.Handler) {
	s.cfg = cfg
	s.store = store
	s.images = images
	s.validator = collection.NewValidator()
	s.order = sections()
	s.pages = make(map[string]page, len(s.order))

	for _, p := range s.order {
		s.pages[p.meta().Slug] = p
	}

	app.Route(BasePath, func(router fiber.Router) {
		router.Use(guard)
		router.Get(handler.RouterRootPath, s.Index)
		router.Get("/:section", s.Get)
		router.Post("/:section", s.Post)
	})
}

// Index redirects to the first section.
func (s *Service) Index(c *fiber.Ctx) error {
	return c.Redirect(s.order[0].meta().Path)
}

// Get renders the form of a section.
func (s *Service) Get(c *fiber.Ctx) error {
	p, ok := s.pages[c.Params("section")]
	if !ok {
		return s.pageError(c, appconfig.ErrUnknownSection)
	}

	return p.get(c, s)
}

// Post saves a section.
func (s *Service) Post(c *fiber.Ctx) error {
	p, ok := s.pages[c.Params("section")]
	if !ok {
		return s.pageError(c, appconfig.ErrUnknownSection)
	}

	return p.post(c, s)
}

func (s *Service) metas() []Meta {
	out := make([]Meta, len(s.order))
	for i, p := range s.order {
		out[i] = p.meta()
	}

	return out
}

// uploadImage stores the image of the request, if any, and returns its reference.
func (s *Service) uploadImage(c *fiber.Ctx) (string, error) {
	fh, err := c.FormFile(ImageField)
	if err != nil || fh == nil || fh.Size == 0 {
		// no file chosen
		return "", nil //nolint:nilerr
	}

	ref, err := s.images.UploadImage(fh, imageDir)
	if err != nil {
		if reason := upload.Rejection(err); reason != nil {
			return "", collection.NewValidationError(ImageField, reason.Error())
		}

		return "", err
	}

	return ref, nil
}

func (s *Service) discard(ref string) {
	if ref == "" {
		return
	}

	if err := s.images.DeleteFile(ref); err != nil {
		log.Warn().Err(err).Str("image", ref).Msg("failed to delete settings image, continuing")
	}
}

func (s *Service) pageError(c *fiber.Ctx, err error) error {
	if handler.StatusFor(err) == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("settings request failed")
	}

	if handler.WantsJSON(c) {
		return handler.JSONError(c, err, s.cfg.DevMode)
	}

	return c.Status(handler.StatusFor(err)).SendString(handler.UserMessage(err))
}
