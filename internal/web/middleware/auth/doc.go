// Package auth provides authentication middleware for the web application.
//
// The middleware handles session validation, user authentication checks,
// and automatic redirection for unauthenticated requests. It also adds
// the current user to the request context for use in handlers and templates.
//
// Public routes (static assets, the public storage disk, the configuration
// API, health, metrics and logout) pass without a session. Every other
// request without a valid session is redirected to the login page, and a
// logged in operator opening the login page is sent to the dashboard.
//
// Usage:
//
//	app.Use(authmiddleware.Middleware)
//
// Permission checks are done per route by auth.RequirePermission.
package auth
