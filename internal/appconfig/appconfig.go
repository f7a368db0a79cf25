// Package appconfig assembles the configuration document consumed by the
// mobile app from the settings table and the ordered collections.
//
// Every call to Generate reads the stores again; nothing is cached.
package appconfig

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/AppShell-Admin/AppShell-Admin/internal/db/controller/menu"
	"github.com/AppShell-Admin/AppShell-Admin/internal/db/models"
)

// Config is the aggregate document.
type Config struct {
	AppSettings      AppSettings       `json:"app_settings"`
	Walkthrough      []WalkthroughItem `json:"walkthrough"`
	Menu             []MenuItem        `json:"menu"`
	LeftHeaderIcons  []IconItem        `json:"left_header_icons"`
	RightHeaderIcons []IconItem        `json:"right_header_icons"`
	Tabs             []TabItem         `json:"tabs"`
	Pages            []PageItem        `json:"pages"`
	FloatingButtons  []ButtonItem      `json:"floating_buttons"`
	Theme            Theme             `json:"theme"`
	Splash           Splash            `json:"splash"`
	AdMob            AdMob             `json:"admob"`
	OneSignal        OneSignal         `json:"onesignal"`
	ProgressBar      ProgressBar       `json:"progress_bar"`
	ExitPopup        ExitPopup         `json:"exit_popup"`
	Share            Share             `json:"share"`
	About            About             `json:"about"`
	UserAgent        UserAgent         `json:"user_agent"`
	GeneratedAt      string            `json:"generated_at"`
}

// WalkthroughItem is one onboarding screen.
type WalkthroughItem struct {
	ID              uint64  `json:"id"`
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	Image           *string `json:"image"`
	BackgroundColor string  `json:"background_color"`
	SortOrder       int     `json:"sort_order"`
}

// MenuItem is a top-level menu entry with its children.
type MenuItem struct {
	ID        uint64      `json:"id"`
	Title     string      `json:"title"`
	Image     *string     `json:"image"`
	URL       string      `json:"url"`
	SortOrder int         `json:"sort_order"`
	Children  []MenuChild `json:"children"`
}

// MenuChild is a second level menu entry.
type MenuChild struct {
	ID        uint64  `json:"id"`
	Title     string  `json:"title"`
	Image     *string `json:"image"`
	URL       string  `json:"url"`
	SortOrder int     `json:"sort_order"`
}

// IconItem is a header navigation icon.
type IconItem struct {
	ID        uint64  `json:"id"`
	Title     string  `json:"title"`
	Image     *string `json:"image"`
	Action    string  `json:"action"`
	URL       string  `json:"url"`
	SortOrder int     `json:"sort_order"`
}

// TabItem is a bottom tab.
type TabItem struct {
	ID        uint64  `json:"id"`
	Title     string  `json:"title"`
	Image     *string `json:"image"`
	URL       string  `json:"url"`
	SortOrder int     `json:"sort_order"`
}

// PageItem is a standalone page.
type PageItem struct {
	ID          uint64  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Image       *string `json:"image"`
	URL         string  `json:"url"`
	SortOrder   int     `json:"sort_order"`
}

// ButtonItem is a floating action button.
type ButtonItem struct {
	ID        uint64  `json:"id"`
	Title     string  `json:"title"`
	Image     *string `json:"image"`
	Action    string  `json:"action"`
	URL       string  `json:"url"`
	SortOrder int     `json:"sort_order"`
}

// SettingsLoader reads a JSON setting into dst, leaving dst untouched when absent.
type SettingsLoader interface {
	Load(ctx context.Context, key string, dst any) error
}

// ActiveLister returns the active rows of a collection in display order.
type ActiveLister[T any] interface {
	Active(ctx context.Context, where map[string]any) ([]T, error)
}

// MenuTree returns the active menu forest.
type MenuTree interface {
	Tree(ctx context.Context) ([]menu.Node, error)
}

// URLResolver turns a stored image reference into a public url.
type URLResolver interface {
	URL(ref string) *string
}

// Sources are the stores read by the Generator.
type Sources struct {
	Settings        SettingsLoader
	Walkthroughs    ActiveLister[models.Walkthrough]
	Tabs            ActiveLister[models.Tab]
	Pages           ActiveLister[models.Page]
	FloatingButtons ActiveLister[models.FloatingButton]
	NavigationIcons ActiveLister[models.NavigationIcon]
	Menus           MenuTree
	Images          URLResolver
}

// Generator builds Config documents.
type Generator struct {
	src Sources
	now func() time.Time
}

// New creates a Generator.
func New(src Sources) *Generator {
	return &Generator{src: src, now: time.Now}
}

// WithClock replaces the time source, for tests.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate reads every store and assembles a fresh Config.
func (g *Generator) Generate(ctx context.Context) (*Config, error) {
	cfg := &Config{
		Walkthrough:      []WalkthroughItem{},
		Menu:             []MenuItem{},
		LeftHeaderIcons:  []IconItem{},
		RightHeaderIcons: []IconItem{},
		Tabs:             []TabItem{},
		Pages:            []PageItem{},
		FloatingButtons:  []ButtonItem{},
	}

	if err := g.loadSettings(ctx, cfg); err != nil {
		return nil, err
	}

	if err := g.loadCollections(ctx, cfg); err != nil {
		return nil, err
	}

	if err := g.loadMenu(ctx, cfg); err != nil {
		return nil, err
	}

	cfg.GeneratedAt = g.now().UTC().Format(time.RFC3339)

	return cfg, nil
}

func (g *Generator) loadSettings(ctx context.Context, cfg *Config) error {
	sections := []struct {
		key string
		dst any
	}{
		{KeyAppSettings, &cfg.AppSettings},
		{KeyTheme, &cfg.Theme},
		{KeySplash, &cfg.Splash},
		{KeyAdMob, &cfg.AdMob},
		{KeyOneSignal, &cfg.OneSignal},
		{KeyProgressBar, &cfg.ProgressBar},
		{KeyExitPopup, &cfg.ExitPopup},
		{KeyShare, &cfg.Share},
		{KeyAbout, &cfg.About},
		{KeyUserAgent, &cfg.UserAgent},
	}

	for _, s := range sections {
		if err := g.src.Settings.Load(ctx, s.key, s.dst); err != nil {
			return errors.Wrapf(err, "load setting %s", s.key)
		}
	}

	cfg.AppSettings.Logo = g.resolve(cfg.AppSettings.Logo)
	cfg.Splash.Image = g.resolve(cfg.Splash.Image)
	cfg.About.Image = g.resolve(cfg.About.Image)

	return nil
}

func (g *Generator) loadCollections(ctx context.Context, cfg *Config) error {
	walkthroughs, err := g.src.Walkthroughs.Active(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "load walkthrough")
	}

	for _, w := range walkthroughs {
		cfg.Walkthrough = append(cfg.Walkthrough, WalkthroughItem{
			ID:              w.ID,
			Title:           w.Title,
			Description:     w.Description,
			Image:           g.url(w.Image),
			BackgroundColor: w.BackgroundColor,
			SortOrder:       w.SortOrder,
		})
	}

	for position, dst := range map[string]*[]IconItem{
		models.PositionLeft:  &cfg.LeftHeaderIcons,
		models.PositionRight: &cfg.RightHeaderIcons,
	} {
		icons, err := g.src.NavigationIcons.Active(ctx, map[string]any{"position": position})
		if err != nil {
			return errors.Wrapf(err, "load %s header icons", position)
		}

		for _, i := range icons {
			*dst = append(*dst, IconItem{
				ID:        i.ID,
				Title:     i.Title,
				Image:     g.url(i.Image),
				Action:    i.Action,
				URL:       i.URL,
				SortOrder: i.SortOrder,
			})
		}
	}

	tabs, err := g.src.Tabs.Active(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "load tabs")
	}

	for _, t := range tabs {
		cfg.Tabs = append(cfg.Tabs, TabItem{
			ID:        t.ID,
			Title:     t.Title,
			Image:     g.url(t.Image),
			URL:       t.URL,
			SortOrder: t.SortOrder,
		})
	}

	pages, err := g.src.Pages.Active(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "load pages")
	}

	for _, p := range pages {
		cfg.Pages = append(cfg.Pages, PageItem{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			Image:       g.url(p.Image),
			URL:         p.URL,
			SortOrder:   p.SortOrder,
		})
	}

	buttons, err := g.src.FloatingButtons.Active(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "load floating buttons")
	}

	for _, b := range buttons {
		cfg.FloatingButtons = append(cfg.FloatingButtons, ButtonItem{
			ID:        b.ID,
			Title:     b.Title,
			Image:     g.url(b.Image),
			Action:    b.Action,
			URL:       b.URL,
			SortOrder: b.SortOrder,
		})
	}

	return nil
}

func (g *Generator) loadMenu(ctx context.Context, cfg *Config) error {
	tree, err := g.src.Menus.Tree(ctx)
	if err != nil {
		return errors.Wrap(err, "load menu")
	}

	for _, n := range tree {
		item := MenuItem{
			ID:        n.ID,
			Title:     n.Title,
			Image:     g.url(n.Image),
			URL:       n.URL,
			SortOrder: n.SortOrder,
			Children:  make([]MenuChild, 0, len(n.Children)),
		}

		for _, c := range n.Children {
			item.Children = append(item.Children, MenuChild{
				ID:        c.ID,
				Title:     c.Title,
				Image:     g.url(c.Image),
				URL:       c.URL,
				SortOrder: c.SortOrder,
			})
		}

		cfg.Menu = append(cfg.Menu, item)
	}

	return nil
}

func (g *Generator) url(ref string) *string {
	if ref == "" || g.src.Images == nil {
		return nil
	}

	return g.src.Images.URL(ref)
}

func (g *Generator) resolve(ref *string) *string {
	if ref == nil {
		return nil
	}

	return g.url(*ref)
}
