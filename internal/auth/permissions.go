package auth

// Permission constants define the available permissions in the system.
// They are seeded on start and assigned to roles.
const (
	// PermDashboardView allows viewing the dashboard with export status.
	PermDashboardView = "dashboard.view"

	// PermAdminSettings allows editing the app settings sections.
	PermAdminSettings = "admin.settings"
	// PermAdminMenus allows managing the side menu.
	PermAdminMenus = "admin.menus"
	// PermAdminWalkthroughs allows managing onboarding screens.
	PermAdminWalkthroughs = "admin.walkthroughs"
	// PermAdminTabs allows managing bottom tabs.
	PermAdminTabs = "admin.tabs"
	// PermAdminPages allows managing pages.
	PermAdminPages = "admin.pages"
	// PermAdminFloatingButtons allows managing floating buttons.
	PermAdminFloatingButtons = "admin.floating_buttons"
	// PermAdminNavigationIcons allows managing header icons.
	PermAdminNavigationIcons = "admin.navigation_icons"
	// PermAdminExport allows exporting and downloading the app configuration.
	PermAdminExport = "admin.export"
)

// Descriptions maps every permission to a human readable description.
var Descriptions = map[string]string{ //nolint:gochecknoglobals
	PermDashboardView:        "View the dashboard",
	PermAdminSettings:        "Edit app settings",
	PermAdminMenus:           "Manage menus",
	PermAdminWalkthroughs:    "Manage walkthrough screens",
	PermAdminTabs:            "Manage tabs",
	PermAdminPages:           "Manage pages",
	PermAdminFloatingButtons: "Manage floating buttons",
	PermAdminNavigationIcons: "Manage navigation icons",
	PermAdminExport:          "Export and download the app configuration",
}
