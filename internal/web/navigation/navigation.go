// Package navigation provides utilities for managing navigation state and breadcrumbs.
package navigation

import "github.com/AppShell-Admin/AppShell-Admin/internal/auth"

// DashboardPath is the landing page after login.
const DashboardPath = "/dashboard"

// BreadcrumbItem represents a single breadcrumb link.
type BreadcrumbItem struct {
	Title  string
	URL    string
	Active bool
}

// Context represents the navigation context for a page.
type Context struct {
	ActiveSection string
	ActivePage    string
	Breadcrumbs   []BreadcrumbItem
	PageTitle     string
}

// NewContext creates a new navigation context.
func NewContext(pageTitle, activeSection, activePage string) *Context {
	return &Context{
		PageTitle:     pageTitle,
		ActiveSection: activeSection,
		ActivePage:    activePage,
		Breadcrumbs:   make([]BreadcrumbItem, 0),
	}
}

// NewAdminContext creates a context below Home > Admin.
func NewAdminContext(pageTitle, activePage string) *Context {
	return NewContext(pageTitle, "admin", activePage).
		AddBreadcrumb("Home", DashboardPath, false).
		AddBreadcrumb("Admin", "#", false)
}

// AddBreadcrumb adds a breadcrumb item to the context.
func (c *Context) AddBreadcrumb(title, url string, active bool) *Context {
	c.Breadcrumbs = append(c.Breadcrumbs, BreadcrumbItem{
		Title:  title,
		URL:    url,
		Active: active,
	})

	return c
}

// IsActive checks if the given section and page match the current context.
func (c *Context) IsActive(section, page string) bool {
	return c.ActiveSection == section && c.ActivePage == page
}

// IsSectionActive checks if the given section is active.
func (c *Context) IsSectionActive(section string) bool {
	return c.ActiveSection == section
}

// Item is a sidebar link shown when the user holds Permission.
type Item struct {
	Title      string
	URL        string
	Section    string
	Page       string
	Permission string
}

// Group is a titled block of sidebar links.
type Group struct {
	Title string
	Items []Item
}

// Sidebar returns the sidebar of the admin panel.
func Sidebar() []Group {
	return []Group{
		{
			Title: "Overview",
			Items: []Item{
				{Title: "Dashboard", URL: DashboardPath, Section: "dashboard", Page: "dashboard", Permission: auth.PermDashboardView},
			},
		},
		{
			Title: "Content",
			Items: []Item{
				{Title: "Menus", URL: "/admin/menu", Section: "admin", Page: "menu", Permission: auth.PermAdminMenus},
				{Title: "Walkthrough", URL: "/admin/walkthrough", Section: "admin", Page: "walkthrough", Permission: auth.PermAdminWalkthroughs},
				{Title: "Tabs", URL: "/admin/tab", Section: "admin", Page: "tab", Permission: auth.PermAdminTabs},
				{Title: "Pages", URL: "/admin/page", Section: "admin", Page: "page", Permission: auth.PermAdminPages},
				{Title: "Floating buttons", URL: "/admin/floating-button", Section: "admin", Page: "floating-button", Permission: auth.PermAdminFloatingButtons},
				{Title: "Navigation icons", URL: "/admin/navigation-icon", Section: "admin", Page: "navigation-icon", Permission: auth.PermAdminNavigationIcons},
			},
		},
		{
			Title: "Settings",
			Items: []Item{
				{Title: "App settings", URL: "/admin/settings/app-settings", Section: "settings", Page: "app-settings", Permission: auth.PermAdminSettings},
				{Title: "Theme", URL: "/admin/settings/theme", Section: "settings", Page: "theme", Permission: auth.PermAdminSettings},
				{Title: "Splash", URL: "/admin/settings/splash", Section: "settings", Page: "splash", Permission: auth.PermAdminSettings},
				{Title: "AdMob", URL: "/admin/settings/admob", Section: "settings", Page: "admob", Permission: auth.PermAdminSettings},
				{Title: "OneSignal", URL: "/admin/settings/onesignal", Section: "settings", Page: "onesignal", Permission: auth.PermAdminSettings},
				{Title: "Progress bar", URL: "/admin/settings/progress-bar", Section: "settings", Page: "progress-bar", Permission: auth.PermAdminSettings},
				{Title: "Exit popup", URL: "/admin/settings/exit-popup", Section: "settings", Page: "exit-popup", Permission: auth.PermAdminSettings},
				{Title: "Share", URL: "/admin/settings/share", Section: "settings", Page: "share", Permission: auth.PermAdminSettings},
				{Title: "About", URL: "/admin/settings/about", Section: "settings", Page: "about", Permission: auth.PermAdminSettings},
				{Title: "User agent", URL: "/admin/settings/user-agent", Section: "settings", Page: "user-agent", Permission: auth.PermAdminSettings},
			},
		},
	}
}
