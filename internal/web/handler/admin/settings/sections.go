package settings

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AppShell-Admin/AppShell-Admin/internal/appconfig"
	"github.com/AppShell-Admin/AppShell-Admin/internal/web/handler"
)

func enabled(label string) handler.Field {
	return handler.Field{Name: "enabled", Label: label, Type: handler.FieldCheckbox}
}

// sections returns every settings form in sidebar order.
func sections() []page {
	return []page{
		&Section[appconfig.AppSettings]{
			Slug: "app-settings", Key: appconfig.KeyAppSettings, Title: "App settings",
			Fields: []handler.Field{
				{Name: "app_name", Label: "App name", Type: handler.FieldText, Required: true},
				{Name: "package_name", Label: "Package name", Type: handler.FieldText},
				{Name: "version", Label: "Version", Type: handler.FieldText},
				{Name: "website_url", Label: "Website", Type: handler.FieldURL},
				{Name: "description", Label: "Description", Type: handler.FieldTextarea},
				{Name: "contact_email", Label: "Contact email", Type: handler.FieldText},
				{Name: "privacy_url", Label: "Privacy policy URL", Type: handler.FieldURL},
				{Name: "terms_url", Label: "Terms URL", Type: handler.FieldURL},
				{
					Name: ExtrasField, Label: "Extra values", Type: handler.FieldJSON,
					Help: "A JSON object passed through to the app unchanged.",
				},
			},
			Image: func(v *appconfig.AppSettings) **string { return &v.Logo },
			Prepare: func(c *fiber.Ctx, v *appconfig.AppSettings) error {
				extras, err := parseExtras(c)
				v.Extras = extras

				return err
			},
		},
		&Section[appconfig.Theme]{
			Slug: "theme", Key: appconfig.KeyTheme, Title: "Theme",
			Fields: []handler.Field{
				{Name: "primary_color", Label: "Primary color", Type: handler.FieldColor},
				{Name: "secondary_color", Label: "Secondary color", Type: handler.FieldColor},
				{Name: "accent_color", Label: "Accent color", Type: handler.FieldColor},
				{Name: "background_color", Label: "Background color", Type: handler.FieldColor},
				{Name: "text_color", Label: "Text color", Type: handler.FieldColor},
				{Name: "dark_mode", Label: "Dark mode", Type: handler.FieldCheckbox},
				{Name: "font_family", Label: "Font family", Type: handler.FieldText},
			},
		},
		&Section[appconfig.Splash]{
			Slug: "splash", Key: appconfig.KeySplash, Title: "Splash screen",
			Fields: []handler.Field{
				enabled("Show splash screen"),
				{Name: "background_color", Label: "Background color", Type: handler.FieldColor},
				{Name: "duration_ms", Label: "Duration (ms)", Type: handler.FieldNumber},
			},
			Image: func(v *appconfig.Splash) **string { return &v.Image },
		},
		&Section[appconfig.AdMob]{
			Slug: "admob", Key: appconfig.KeyAdMob, Title: "AdMob",
			Fields: []handler.Field{
				enabled("Show ads"),
				{Name: "app_id", Label: "App ID", Type: handler.FieldText, Help: "Required when ads are enabled."},
				{Name: "banner_id", Label: "Banner unit ID", Type: handler.FieldText},
				{Name: "interstitial_id", Label: "Interstitial unit ID", Type: handler.FieldText},
				{Name: "rewarded_id", Label: "Rewarded unit ID", Type: handler.FieldText},
				{Name: "interstitial_interval", Label: "Interstitial interval (page views)", Type: handler.FieldNumber},
			},
		},
		&Section[appconfig.OneSignal]{
			Slug: "onesignal", Key: appconfig.KeyOneSignal, Title: "OneSignal",
			Fields: []handler.Field{
				enabled("Enable push notifications"),
				{Name: "app_id", Label: "App ID", Type: handler.FieldText, Help: "Required when push is enabled."},
				{Name: "prompt_on_start", Label: "Ask for permission on start", Type: handler.FieldCheckbox},
			},
		},
		&Section[appconfig.ProgressBar]{
			Slug: "progress-bar", Key: appconfig.KeyProgressBar, Title: "Progress bar",
			Fields: []handler.Field{
				enabled("Show progress bar"),
				{
					Name: "style", Label: "Style", Type: handler.FieldSelect,
					Options: []handler.Option{
						{Value: appconfig.ProgressLinear, Label: "Linear"},
						{Value: appconfig.ProgressCircular, Label: "Circular"},
					},
				},
				{Name: "color", Label: "Color", Type: handler.FieldColor},
			},
		},
		&Section[appconfig.ExitPopup]{
			Slug: "exit-popup", Key: appconfig.KeyExitPopup, Title: "Exit popup",
			Fields: []handler.Field{
				enabled("Confirm before exit"),
				{Name: "title", Label: "Title", Type: handler.FieldText},
				{Name: "message", Label: "Message", Type: handler.FieldTextarea},
				{Name: "confirm_text", Label: "Confirm button", Type: handler.FieldText},
				{Name: "cancel_text", Label: "Cancel button", Type: handler.FieldText},
			},
		},
		&Section[appconfig.Share]{
			Slug: "share", Key: appconfig.KeyShare, Title: "Share",
			Fields: []handler.Field{
				enabled("Enable sharing"),
				{Name: "text", Label: "Text", Type: handler.FieldTextarea},
				{Name: "url", Label: "URL", Type: handler.FieldURL},
			},
		},
		&Section[appconfig.About]{
			Slug: "about", Key: appconfig.KeyAbout, Title: "About",
			Fields: []handler.Field{
				enabled("Show about screen"),
				{Name: "title", Label: "Title", Type: handler.FieldText},
				{Name: "content", Label: "Content", Type: handler.FieldTextarea},
			},
			Image: func(v *appconfig.About) **string { return &v.Image },
		},
		&Section[appconfig.UserAgent]{
			Slug: "user-agent", Key: appconfig.KeyUserAgent, Title: "User agent",
			Fields: []handler.Field{
				enabled("Override user agent"),
				{Name: "android", Label: "Android", Type: handler.FieldText},
				{Name: "ios", Label: "iOS", Type: handler.FieldText},
			},
		},
	}
}
