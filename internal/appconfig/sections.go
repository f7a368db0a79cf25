package appconfig

// Setting keys, one JSON document per key.
const (
	KeyAppSettings = "app_settings"
	KeyTheme       = "theme"
	KeySplash      = "splash"
	KeyAdMob       = "admob"
	KeyOneSignal   = "onesignal"
	KeyProgressBar = "progress_bar"
	KeyExitPopup   = "exit_popup"
	KeyShare       = "share"
	KeyAbout       = "about"
	KeyUserAgent   = "user_agent"
)

// AppSettings is the app metadata. Logo holds a stored image reference and is
// replaced by its public url in the aggregate.
type AppSettings struct {
	AppName      string         `json:"app_name" form:"app_name" validate:"required,max=100"`
	PackageName  string         `json:"package_name" form:"package_name" validate:"max=191"`
	Version      string         `json:"version" form:"version" validate:"max=50"`
	WebsiteURL   string         `json:"website_url" form:"website_url" validate:"omitempty,url"`
	Logo         *string        `json:"logo" form:"-"`
	Description  string         `json:"description" form:"description" validate:"max=2000"`
	ContactEmail string         `json:"contact_email" form:"contact_email" validate:"omitempty,email"`
	PrivacyURL   string         `json:"privacy_url" form:"privacy_url" validate:"omitempty,url"`
	TermsURL     string         `json:"terms_url" form:"terms_url" validate:"omitempty,url"`
	Extras       map[string]any `json:"extras,omitempty" form:"-"`
}

// Theme holds the app colours.
type Theme struct {
	PrimaryColor    string `json:"primary_color" form:"primary_color" validate:"omitempty,hexcolor"`
	SecondaryColor  string `json:"secondary_color" form:"secondary_color" validate:"omitempty,hexcolor"`
	AccentColor     string `json:"accent_color" form:"accent_color" validate:"omitempty,hexcolor"`
	BackgroundColor string `json:"background_color" form:"background_color" validate:"omitempty,hexcolor"`
	TextColor       string `json:"text_color" form:"text_color" validate:"omitempty,hexcolor"`
	DarkMode        bool   `json:"dark_mode" form:"dark_mode"`
	FontFamily      string `json:"font_family" form:"font_family" validate:"max=100"`
}

// Splash is the launch screen.
type Splash struct {
	Enabled         bool    `json:"enabled" form:"enabled"`
	Image           *string `json:"image" form:"-"`
	BackgroundColor string  `json:"background_color" form:"background_color" validate:"omitempty,hexcolor"`
	DurationMS      int     `json:"duration_ms" form:"duration_ms" validate:"gte=0,lte=30000"`
}

// AdMob holds the ad unit ids.
type AdMob struct {
	Enabled              bool   `json:"enabled" form:"enabled"`
	AppID                string `json:"app_id" form:"app_id" validate:"required_if=Enabled true,max=191"`
	BannerID             string `json:"banner_id" form:"banner_id" validate:"max=191"`
	InterstitialID       string `json:"interstitial_id" form:"interstitial_id" validate:"max=191"`
	RewardedID           string `json:"rewarded_id" form:"rewarded_id" validate:"max=191"`
	InterstitialInterval int    `json:"interstitial_interval" form:"interstitial_interval" validate:"gte=0"`
}

// OneSignal configures push notifications.
type OneSignal struct {
	Enabled       bool   `json:"enabled" form:"enabled"`
	AppID         string `json:"app_id" form:"app_id" validate:"required_if=Enabled true,max=191"`
	PromptOnStart bool   `json:"prompt_on_start" form:"prompt_on_start"`
}

// Progress bar styles.
const (
	ProgressLinear   = "linear"
	ProgressCircular = "circular"
)

// ProgressBar is the page load indicator.
type ProgressBar struct {
	Enabled bool   `json:"enabled" form:"enabled"`
	Style   string `json:"style" form:"style" validate:"omitempty,oneof=linear circular"`
	Color   string `json:"color" form:"color" validate:"omitempty,hexcolor"`
}

// ExitPopup asks before closing the app.
type ExitPopup struct {
	Enabled     bool   `json:"enabled" form:"enabled"`
	Title       string `json:"title" form:"title" validate:"max=191"`
	Message     string `json:"message" form:"message" validate:"max=1000"`
	ConfirmText string `json:"confirm_text" form:"confirm_text" validate:"max=50"`
	CancelText  string `json:"cancel_text" form:"cancel_text" validate:"max=50"`
}

// Share configures the share action.
type Share struct {
	Enabled bool   `json:"enabled" form:"enabled"`
	Text    string `json:"text" form:"text" validate:"max=1000"`
	URL     string `json:"url" form:"url" validate:"omitempty,url"`
}

// About is the about screen.
type About struct {
	Enabled bool    `json:"enabled" form:"enabled"`
	Title   string  `json:"title" form:"title" validate:"max=191"`
	Content string  `json:"content" form:"content" validate:"max=10000"`
	Image   *string `json:"image" form:"-"`
}

// UserAgent overrides the web view user agent per platform.
type UserAgent struct {
	Enabled bool   `json:"enabled" form:"enabled"`
	Android string `json:"android" form:"android" validate:"max=500"`
	IOS     string `json:"ios" form:"ios" validate:"max=500"`
}
