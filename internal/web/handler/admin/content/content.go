// Package content provides the admin pages of the ordered app shell content:
// menus, walkthrough screens, tabs, pages, floating buttons and navigation
// icons. Every type is served by the same generic Resource.
package content

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/AppShell-Admin/AppShell-Admin/internal/appshell"
	"github.com/AppShell-Admin/AppShell-Admin/internal/auth"
	"github.com/AppShell-Admin/AppShell-Admin/internal/config"
	"github.com/AppShell-Admin/AppShell-Admin/internal/db/models"
	"github.com/AppShell-Admin/AppShell-Admin/internal/web/handler"
)

// Service is the content handler service.
type Service struct {
	handler.Service
}

// Handler is the content handler.
var Handler = Service{}

var (
	titleField = handler.Field{Name: "title", Label: "Title", Type: handler.FieldText, Required: true}
	urlField   = handler.Field{Name: "url", Label: "URL", Type: handler.FieldURL, Required: true}
	sortField  = handler.Field{
		Name: "sort_order", Label: "Sort order", Type: handler.FieldNumber,
		Help: "Lower numbers come first. Leave 0 to append at the end.",
	}
	activeField = handler.Field{Name: "is_active", Label: "Active", Type: handler.FieldCheckbox}
	actionField = handler.Field{
		Name: "action", Label: "Action", Type: handler.FieldText,
		Help: "Native action, e.g. share or exit. Used when no URL is set.",
	}
	positionField = handler.Field{
		Name: "position", Label: "Position", Type: handler.FieldSelect, Required: true,
		Options: []handler.Option{
			{Value: models.PositionLeft, Label: "Left"},
			{Value: models.PositionRight, Label: "Right"},
		},
	}
)

// Init initializes the content handlers.
func (s *Service) Init(app *fiber.App, cfg *config.Config, shell *appshell.Shell, authService *auth.Service) {
	if app == nil || cfg == nil || shell == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	guard := func(permission string) fiber.Handler {
		return auth.RequirePermission(authService, permission)
	}

	Walkthroughs(shell, cfg.DevMode).Register(app, guard(auth.PermAdminWalkthroughs))
	Tabs(shell, cfg.DevMode).Register(app, guard(auth.PermAdminTabs))
	Pages(shell, cfg.DevMode).Register(app, guard(auth.PermAdminPages))
	FloatingButtons(shell, cfg.DevMode).Register(app, guard(auth.PermAdminFloatingButtons))
	NavigationIcons(shell, cfg.DevMode).Register(app, guard(auth.PermAdminNavigationIcons))
	Menus(shell, cfg.DevMode).Register(app, guard(auth.PermAdminMenus))
}

// Walkthroughs returns the walkthrough screen resource.
func Walkthroughs(shell *appshell.Shell, devMode bool) *Resource[models.Walkthrough, *models.Walkthrough] {
	return &Resource[models.Walkthrough, *models.Walkthrough]{
		Name:     "walkthrough",
		Title:    "Walkthrough",
		Singular: "Walkthrough screen",
		ImageDir: "walkthrough",
		Fields: []handler.Field{
			titleField,
			{Name: "description", Label: "Description", Type: handler.FieldTextarea},
			{Name: "background_color", Label: "Background color", Type: handler.FieldColor},
			sortField,
			activeField,
		},
		Columns: []handler.Field{{Name: "background_color", Label: "Background"}},
		Store:   shell.Walkthroughs,
		Images:  shell.Uploads,
		DevMode: devMode,
	}
}

// Tabs returns the bottom tab resource.
func Tabs(shell *appshell.Shell, devMode bool) *Resource[models.Tab, *models.Tab] {
	return &Resource[models.Tab, *models.Tab]{
		Name:     "tab",
		Title:    "Tabs",
		Singular: "Tab",
		ImageDir: "tabs",
		Fields:   []handler.Field{titleField, urlField, sortField, activeField},
		Columns:  []handler.Field{{Name: "url", Label: "URL"}},
		Store:    shell.Tabs,
		Images:   shell.Uploads,
		DevMode:  devMode,
	}
}

// Pages returns the page resource.
func Pages(shell *appshell.Shell, devMode bool) *Resource[models.Page, *models.Page] {
	return &Resource[models.Page, *models.Page]{
		Name:     "page",
		Title:    "Pages",
		Singular: "Page",
		ImageDir: "pages",
		Fields: []handler.Field{
			titleField,
			{Name: "description", Label: "Description", Type: handler.FieldTextarea},
			urlField,
			sortField,
			activeField,
		},
		Columns: []handler.Field{{Name: "url", Label: "URL"}},
		Store:   shell.Pages,
		Images:  shell.Uploads,
		DevMode: devMode,
	}
}

// FloatingButtons returns the floating button resource.
func FloatingButtons(shell *appshell.Shell, devMode bool) *Resource[models.FloatingButton, *models.FloatingButton] {
	optionalURL := urlField
	optionalURL.Required = false

	return &Resource[models.FloatingButton, *models.FloatingButton]{
		Name:     "floating-button",
		Title:    "Floating buttons",
		Singular: "Floating button",
		ImageDir: "floating-buttons",
		Fields:   []handler.Field{titleField, actionField, optionalURL, sortField, activeField},
		Columns:  []handler.Field{{Name: "action", Label: "Action"}, {Name: "url", Label: "URL"}},
		Store:    shell.FloatingButtons,
		Images:   shell.Uploads,
		DevMode:  devMode,
	}
}

// NavigationIcons returns the header icon resource.
func NavigationIcons(shell *appshell.Shell, devMode bool) *Resource[models.NavigationIcon, *models.NavigationIcon] {
	optionalURL := urlField
	optionalURL.Required = false

	return &Resource[models.NavigationIcon, *models.NavigationIcon]{
		Name:     "navigation-icon",
		Title:    "Navigation icons",
		Singular: "Navigation icon",
		ImageDir: "navigation-icons",
		Fields:   []handler.Field{titleField, positionField, actionField, optionalURL, sortField, activeField},
		Columns: []handler.Field{
			{Name: "position", Label: "Position"},
			{Name: "action", Label: "Action"},
			{Name: "url", Label: "URL"},
		},
		Filters: []handler.Field{positionField},
		Store:   shell.NavigationIcons,
		Images:  shell.Uploads,
		DevMode: devMode,
	}
}
