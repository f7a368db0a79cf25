package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/AppShell-Admin/AppShell-Admin/internal/appconfig"
	"github.com/AppShell-Admin/AppShell-Admin/internal/db/controller/collection"
	"github.com/AppShell-Admin/AppShell-Admin/internal/db/controller/menu"
	"github.com/AppShell-Admin/AppShell-Admin/internal/export"
)

// Envelope is the JSON body returned by the API endpoints.
type Envelope struct {
	Success bool              `json:"success"`
	Data    any               `json:"data"`
	Message string            `json:"message,omitempty"`
	Error   string            `json:"error,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// StatusFor maps a domain error to an HTTP status code.
func StatusFor(err error) int {
	if _, ok := collection.AsValidationError(err); ok {
		return fiber.StatusBadRequest
	}

	switch {
	case errors.Is(err, collection.ErrNotFound),
		errors.Is(err, appconfig.ErrUnknownSection),
		errors.Is(err, export.ErrNotExported):
		return fiber.StatusNotFound
	case errors.Is(err, menu.ErrHasDependents):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// UserMessage returns the message shown to operators for err. Storage and
// serialization failures get a generic message; details belong in the log.
func UserMessage(err error) string {
	if ve, ok := collection.AsValidationError(err); ok {
		return ve.Error()
	}

	switch {
	case errors.Is(err, collection.ErrNotFound):
		return "The requested item does not exist."
	case errors.Is(err, appconfig.ErrUnknownSection):
		return "Unknown configuration section."
	case errors.Is(err, export.ErrNotExported):
		return "The configuration has not been exported yet. Run an export first."
	case errors.Is(err, menu.ErrHasDependents):
		return "This menu still has children. Delete them first."
	default:
		return "The operation failed, please try again."
	}
}

// JSONError writes err as a failed Envelope. Internal detail is only
// included when detail is true (dev mode).
func JSONError(c *fiber.Ctx, err error, detail bool) error {
	body := Envelope{Success: false, Message: UserMessage(err)}

	if ve, ok := collection.AsValidationError(err); ok {
		body.Errors = ve.Fields
	}

	if detail {
		body.Error = err.Error()
	}

	return c.Status(StatusFor(err)).JSON(body)
}

// WantsJSON reports whether the client prefers a JSON response.
func WantsJSON(c *fiber.Ctx) bool {
	accept := c.Get(fiber.HeaderAccept)
	return strings.Contains(accept, fiber.MIMEApplicationJSON) && !strings.Contains(accept, fiber.MIMETextHTML)
}

// Flash returns the notice and error query values set by a redirect.
func Flash(c *fiber.Ctx) fiber.Map {
	return fiber.Map{
		"Notice": c.Query(NoticeQuery),
		"Error":  c.Query(ErrorQuery),
	}
}
