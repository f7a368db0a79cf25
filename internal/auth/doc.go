// Package auth provides authentication and authorization for the admin panel.
//
// Operators log in against the local users table; passwords are hashed with
// Argon2id. Authorization is role based: a user has one role and a role holds
// a set of permissions such as "admin.export".
//
// # Permission Checking
//
// The Service type provides methods for checking user permissions:
//   - HasPermission: Check if user has a specific permission
//   - HasAnyPermission: Check if user has at least one permission from a list
//   - GetUserPermissions: Retrieve all permissions for a user
//
// # Middleware
//
// Fiber middleware functions are provided for route protection:
//   - RequirePermission: Protect routes requiring a specific permission
//   - RequireAnyPermission: Protect routes requiring any of several permissions
//   - AddPermissionsToLocals: Add user permissions to template context
//
// Example usage:
//
//	authService := auth.NewService(db)
//
//	app.Post("/export",
//	    auth.RequirePermission(authService, auth.PermAdminExport),
//	    handler,
//	)
package auth
