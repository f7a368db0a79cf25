package settings

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/AppShell-Admin/AppShell-Admin/internal/db/controller/collection"
	"github.com/AppShell-Admin/AppShell-Admin/internal/web/handler"
	"github.com/AppShell-Admin/AppShell-Admin/internal/web/navigation"
)

// page is a settings form bound to one setting key.
type page interface {
	meta() Meta
	get(c *fiber.Ctx, s *Service) error
	post(c *fiber.Ctx, s *Service) error
}

// Meta describes a section to the templates.
type Meta struct {
	Slug     string
	Key      string
	Title    string
	Path     string
	HasImage bool
}

// Section is the settings form of the document type T.
type Section[T any] struct {
	Slug   string // url segment, e.g. "app-settings"
	Key    string // setting key
	Title  string
	Fields []handler.Field
	// Image points at the image reference of v, nil when the section has none.
	Image func(v *T) **string
	// Prepare reads form values the body parser cannot map onto v.
	Prepare func(c *fiber.Ctx, v *T) error
}

func (sec *Section[T]) meta() Meta {
	return Meta{
		Slug:     sec.Slug,
		Key:      sec.Key,
		Title:    sec.Title,
		Path:     BasePath + "/" + sec.Slug,
		HasImage: sec.Image != nil,
	}
}

func (sec *Section[T]) load(ctx context.Context, s *Service) (*T, error) {
	v := new(T)
	if err := s.store.Load(ctx, sec.Key, v); err != nil {
		return nil, err
	}

	return v, nil
}

func (sec *Section[T]) get(c *fiber.Ctx, s *Service) error {
	v, err := sec.load(c.UserContext(), s)
	if err != nil {
		return s.pageError(c, err)
	}

	if handler.WantsJSON(c) {
		return c.JSON(handler.Envelope{Success: true, Data: v})
	}

	return sec.render(c, s, fiber.StatusOK, v, nil)
}

func (sec *Section[T]) render(c *fiber.Ctx, s *Service, status int, v *T, errs map[string]string) error {
	var image *string
	if sec.Image != nil {
		if ref := *sec.Image(v); ref != nil {
			image = s.images.URL(*ref)
		}
	}

	m := sec.meta()

	data := handler.Flash(c)
	data["Navigation"] = navigation.NewContext(sec.Title, "settings", sec.Slug).
		AddBreadcrumb("Home", navigation.DashboardPath, false).
		AddBreadcrumb("Settings", BasePath, false).
		AddBreadcrumb(sec.Title, m.Path, true)
	data["Section"] = m
	data["Sections"] = s.metas()
	data["Fields"] = handler.FormFields(sec.Fields, v, errs)
	data["Errors"] = errs
	data["ImageURL"] = image

	return c.Status(status).Render(TemplateName, data, handler.BaseLayout)
}

func (sec *Section[T]) post(c *fiber.Ctx, s *Service) error {
	ctx := c.UserContext()

	existing, err := sec.load(ctx, s)
	if err != nil {
		return s.pageError(c, err)
	}

	v := new(T)
	if err = c.BodyParser(v); err != nil {
		log.Debug().Err(err).Str("section", sec.Slug).Msg("failed to parse settings form")
		return sec.fail(c, s, v, collection.NewValidationError("form", "could not be parsed"))
	}

	var oldRef, newRef string

	if sec.Image != nil {
		if ref := *sec.Image(existing); ref != nil {
			oldRef = *ref
		}

		*sec.Image(v) = *sec.Image(existing)

		if c.FormValue(RemoveImageField) == "true" {
			*sec.Image(v) = nil
		}

		if newRef, err = s.uploadImage(c); err != nil {
			return sec.fail(c, s, v, err)
		}

		if newRef != "" {
			*sec.Image(v) = &newRef
		}
	}

	if sec.Prepare != nil {
		if err = sec.Prepare(c, v); err == nil {
			err = collection.ValidateStruct(s.validator, v)
		}
	} else {
		err = collection.ValidateStruct(s.validator, v)
	}

	if err == nil {
		err = s.store.Save(ctx, sec.Key, v)
	}

	if err != nil {
		s.discard(newRef)

		if newRef != "" {
			*sec.Image(v) = *sec.Image(existing)
		}

		return sec.fail(c, s, v, err)
	}

	if sec.Image != nil && oldRef != "" {
		if cur := *sec.Image(v); cur == nil || *cur != oldRef {
			s.discard(oldRef)
		}
	}

	log.Info().Str("section", sec.Slug).Msg("settings saved")

	if handler.WantsJSON(c) {
		return c.JSON(handler.Envelope{Success: true, Message: sec.Title + " saved", Data: v})
	}

	return c.Redirect(sec.meta().Path + "?" + handler.NoticeQuery + "=" + url.QueryEscape(sec.Title+" saved"))
}

func (sec *Section[T]) fail(c *fiber.Ctx, s *Service, v *T, err error) error {
	if handler.StatusFor(err) == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("section", sec.Slug).Msg("failed to save settings")
	}

	if handler.WantsJSON(c) {
		return handler.JSONError(c, err, s.cfg.DevMode)
	}

	ve, ok := collection.AsValidationError(err)
	if !ok {
		return s.pageError(c, err)
	}

	return sec.render(c, s, fiber.StatusBadRequest, v, ve.Fields)
}

// parseExtras reads a JSON object from the extras textarea.
func parseExtras(c *fiber.Ctx) (map[string]any, error) {
	raw := strings.TrimSpace(c.FormValue(ExtrasField))
	if raw == "" {
		return nil, nil
	}

	var out map[string]any
	if err := json.Unmarshal([]byte(raw), &out); err != nil || out == nil {
		return nil, collection.NewValidationError(ExtrasField, "must be a JSON object")
	}

	return out, nil
}
