// Package account lets the signed in operator change their password.
package account

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/AppShell-Admin/AppShell-Admin/internal/auth"
	"github.com/AppShell-Admin/AppShell-Admin/internal/config"
	"github.com/AppShell-Admin/AppShell-Admin/internal/web/handler"
	"github.com/AppShell-Admin/AppShell-Admin/internal/web/handler/login"
	"github.com/AppShell-Admin/AppShell-Admin/internal/web/navigation"
	"github.com/AppShell-Admin/AppShell-Admin/internal/web/session"
)

const (
	// Path is the account page.
	Path = handler.RootPath + "account"

	// TemplateName is the password form.
	TemplateName = "account/password"
)

// Form is the password change form.
type Form struct {
	CurrentPassword string `form:"current_password" validate:"required"`
	NewPassword     string `form:"new_password"     validate:"required,min=8,max=128,nefield=CurrentPassword"`
	ConfirmPassword string `form:"confirm_password" validate:"required,eqfield=NewPassword"`
}

var messages = map[string]string{
	"required": "is required",
	"min":      "must be at least 8 characters",
	"max":      "is too long",
	"nefield":  "must differ from the current password",
	"eqfield":  "does not match the new password",
}

// Service serves the account page.
type Service struct {
	cfg       *config.Config
	localAuth *auth.LocalProvider
	validator *validator.Validate
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers the account routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)

		return
	}

	s.cfg = cfg
	s.localAuth = auth.NewLocalProvider(db)
	s.validator = validator.New()
	s.validator.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("form")
	})

	app.Get(Path, s.Get)
	app.Post(Path, s.Post)
}

func (s *Service) render(c *fiber.Ctx, status int, errs map[string]string) error {
	nav := navigation.NewContext("Account", "account", "password").
		AddBreadcrumb("Home", navigation.DashboardPath, false).
		AddBreadcrumb("Account", Path, true)

	data := handler.Flash(c)
	data["Navigation"] = nav
	data["Errors"] = errs

	if len(errs) > 0 && data["Error"] == "" {
		data["Error"] = "Please correct the highlighted errors"
	}

	return c.Status(status).Render(TemplateName, data, handler.BaseLayout)
}

// Get renders the password form.
func (s *Service) Get(c *fiber.Ctx) error {
	return s.render(c, fiber.StatusOK, nil)
}

// Post changes the password of the current operator.
func (s *Service) Post(c *fiber.Ctx) error {
	sess, err := session.FromContext(c)
	if err != nil {
		return c.Redirect(login.Path)
	}

	form := new(Form)
	if err = c.BodyParser(form); err != nil {
		return s.render(c, fiber.StatusBadRequest, map[string]string{"current_password": "invalid form data"})
	}

	if errs := s.validate(form); len(errs) > 0 {
		return s.render(c, fiber.StatusBadRequest, errs)
	}

	err = s.localAuth.ChangePassword(sess.User.ID, form.CurrentPassword, form.NewPassword)
	if errors.Is(err, auth.ErrInvalidOldPassword) {
		return s.render(c, fiber.StatusBadRequest, map[string]string{"current_password": "is incorrect"})
	}

	if err != nil {
		log.Error().Err(err).Uint64("user_id", sess.User.ID).Msg("failed to change password")

		return c.Status(fiber.StatusInternalServerError).SendString(handler.UserMessage(err))
	}

	log.Info().Uint64("user_id", sess.User.ID).Msg("password changed")

	return c.Redirect(Path + "?" + handler.NoticeQuery + "=Password+changed")
}

func (s *Service) validate(form *Form) map[string]string {
	err := s.validator.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"new_password": err.Error()}
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		msg, ok := messages[fe.Tag()]
		if !ok {
			msg = "is invalid"
		}

		out[strings.TrimSpace(fe.Field())] = msg
	}

	return out
}
