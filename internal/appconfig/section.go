package appconfig

import "errors"

// ErrUnknownSection is returned by Section for names outside SectionNames.
var ErrUnknownSection = errors.New("unknown configuration section")

// SectionNames lists the names accepted by Section in document order.
var SectionNames = []string{ //nolint:gochecknoglobals
	"app-settings",
	"walkthrough",
	"menu",
	"left-header-icons",
	"right-header-icons",
	"tabs",
	"pages",
	"floating-buttons",
	"theme",
	"splash",
	"admob",
	"onesignal",
	"progress-bar",
	"exit-popup",
	"share",
	"about",
	"user-agent",
}

// Section returns one part of c by its url name, e.g. "app-settings".
func (c *Config) Section(name string) (any, error) {
	switch name {
	case "app-settings":
		return c.AppSettings, nil
	case "walkthrough":
		return c.Walkthrough, nil
	case "menu":
		return c.Menu, nil
	case "left-header-icons":
		return c.LeftHeaderIcons, nil
	case "right-header-icons":
		return c.RightHeaderIcons, nil
	case "tabs":
		return c.Tabs, nil
	case "pages":
		return c.Pages, nil
	case "floating-buttons":
		return c.FloatingButtons, nil
	case "theme":
		return c.Theme, nil
	case "splash":
		return c.Splash, nil
	case "admob":
		return c.AdMob, nil
	case "onesignal":
		return c.OneSignal, nil
	case "progress-bar":
		return c.ProgressBar, nil
	case "exit-popup":
		return c.ExitPopup, nil
	case "share":
		return c.Share, nil
	case "about":
		return c.About, nil
	case "user-agent":
		return c.UserAgent, nil
	default:
		return nil, ErrUnknownSection
	}
}
