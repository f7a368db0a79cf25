package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/AppShell-Admin/AppShell-Admin/internal/web/handler/login"
	"github.com/AppShell-Admin/AppShell-Admin/internal/web/handler/logout"
	"github.com/AppShell-Admin/AppShell-Admin/internal/web/navigation"
	"github.com/AppShell-Admin/AppShell-Admin/internal/web/session"
)

// PublicPrefixes are served without a session. The mobile app reads /config
// and /storage, load balancers and Prometheus poll /health and /metrics.
var PublicPrefixes = []string{ //nolint:gochecknoglobals
	"/static",
	"/storage",
	"/config",
	"/health",
	"/metrics",
	logout.Path,
}

// Middleware is a Fiber middleware that checks for user authentication.
func Middleware(c *fiber.Ctx) error {
	if IsPublic(c) {
		return c.Next()
	}

	isLoginPage := IsLoginPage(c)

	sessData, err := session.FromContext(c)
	if err != nil {
		// If we're already on the login page, don't redirect (would cause loop)
		if isLoginPage {
			return c.Next()
		}

		return c.Redirect(login.Path)
	}

	// Add the current user to locals for template access
	c.Locals("CurrentUser", sessData.User)

	if isLoginPage {
		return c.Redirect(navigation.DashboardPath)
	}

	return c.Next()
}

// IsPublic reports whether the request path needs no session.
func IsPublic(c *fiber.Ctx) bool {
	p := strings.ToLower(c.Path())

	for _, prefix := range PublicPrefixes {
		if p == prefix || strings.HasPrefix(p, prefix+"/") {
			return true
		}
	}

	return false
}

// IsLoginPage checks if the current request is for the login page.
func IsLoginPage(c *fiber.Ctx) bool {
	p := strings.ToLower(c.Path())
	return p == login.Path || strings.HasPrefix(p, login.Path+"/")
}
