// Package main provides the entry point of AppShell Admin.
// It runs a Fiber web server with an admin panel for the content and settings
// of a white-labeled mobile app shell, serves the aggregated configuration as
// JSON under /config and exports it to a file on the configured disk. The
// application uses gorm for persistence on MySQL, PostgreSQL or SQLite.
package main
