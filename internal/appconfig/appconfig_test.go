package appconfig_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AppShell-Admin/AppShell-Admin/internal/appconfig"
	"github.com/AppShell-Admin/AppShell-Admin/internal/config"
	"github.com/AppShell-Admin/AppShell-Admin/internal/db/controller/collection"
	"github.com/AppShell-Admin/AppShell-Admin/internal/db/controller/menu"
	"github.com/AppShell-Admin/AppShell-Admin/internal/db/controller/setting"
	"github.com/AppShell-Admin/AppShell-Admin/internal/db/dbtest"
	"github.com/AppShell-Admin/AppShell-Admin/internal/db/models"
	"github.com/AppShell-Admin/AppShell-Admin/internal/upload"
)

type fixture struct {
	settings     *setting.Store
	walkthroughs *collection.Repository[models.Walkthrough, *models.Walkthrough]
	tabs         *collection.Repository[models.Tab, *models.Tab]
	pages        *collection.Repository[models.Page, *models.Page]
	buttons      *collection.Repository[models.FloatingButton, *models.FloatingButton]
	icons        *collection.Repository[models.NavigationIcon, *models.NavigationIcon]
	menus        *menu.Store
	gen          *appconfig.Generator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := dbtest.Open(t)
	images := upload.New(afero.NewMemMapFs(), config.Upload{}, "https://admin.example.com")

	f := &fixture{
		settings:     setting.NewStore(db),
		walkthroughs: collection.New[models.Walkthrough](db, images),
		tabs:         collection.New[models.Tab](db, images),
		pages:        collection.New[models.Page](db, images),
		buttons:      collection.New[models.FloatingButton](db, images),
		icons:        collection.New[models.NavigationIcon](db, images),
		menus:        menu.NewStore(db, images),
	}

	f.gen = appconfig.New(appconfig.Sources{
		Settings:        f.settings,
		Walkthroughs:    f.walkthroughs,
		Tabs:            f.tabs,
		Pages:           f.pages,
		FloatingButtons: f.buttons,
		NavigationIcons: f.icons,
		Menus:           f.menus,
		Images:          images,
	})

	return f
}

func walkthroughTitles(cfg *appconfig.Config) []string {
	out := make([]string, 0, len(cfg.Walkthrough))
	for _, w := range cfg.Walkthrough {
		out = append(out, w.Title)
	}

	return out
}

func TestGenerate_Empty(t *testing.T) {
	f := newFixture(t)

	cfg, err := f.gen.Generate(context.Background())
	require.NoError(t, err)

	data, err := json.Marshal(cfg)
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))

	for _, key := range []string{
		"app_settings", "walkthrough", "menu", "left_header_icons", "right_header_icons",
		"tabs", "pages", "floating_buttons", "theme", "splash", "admob", "onesignal",
		"progress_bar", "exit_popup", "share", "about", "user_agent", "generated_at",
	} {
		assert.Contains(t, doc, key)
	}

	assert.JSONEq(t, "[]", string(doc["walkthrough"]))
	assert.JSONEq(t, "[]", string(doc["menu"]))
}

func TestGenerate_WalkthroughScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	a := &models.Walkthrough{Ordered: models.Ordered{Title: "A", IsActive: true}}
	b := &models.Walkthrough{Ordered: models.Ordered{Title: "B", IsActive: true}}

	require.NoError(t, f.walkthroughs.Create(ctx, a))
	require.NoError(t, f.walkthroughs.Create(ctx, b))
	assert.Equal(t, 1, a.SortOrder)
	assert.Equal(t, 2, b.SortOrder)

	_, err := f.walkthroughs.ToggleActive(ctx, a.ID)
	require.NoError(t, err)

	cfg, err := f.gen.Generate(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, walkthroughTitles(cfg))

	_, err = f.walkthroughs.ToggleActive(ctx, a.ID)
	require.NoError(t, err)

	cfg, err = f.gen.Generate(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, walkthroughTitles(cfg))
}

func TestGenerate_OrderingAndActiveFilter(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	for i, title := range []string{"first", "second", "third", "fourth", "fifth"} {
		tab := &models.Tab{Ordered: models.Ordered{Title: title, IsActive: i%2 == 0}, URL: "https://example.com/" + title}
		require.NoError(t, f.tabs.Create(ctx, tab))
	}

	cfg, err := f.gen.Generate(ctx)
	require.NoError(t, err)

	require.Len(t, cfg.Tabs, 3)
	assert.Equal(t, "first", cfg.Tabs[0].Title)
	assert.Equal(t, "third", cfg.Tabs[1].Title)
	assert.Equal(t, "fifth", cfg.Tabs[2].Title)

	for i := 1; i < len(cfg.Tabs); i++ {
		assert.Greater(t, cfg.Tabs[i].SortOrder, cfg.Tabs[i-1].SortOrder)
	}
}

func TestGenerate_HeaderIconsAndImages(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.icons.Create(ctx, &models.NavigationIcon{
		Ordered: models.Ordered{Title: "back", Image: "icons/back.png", IsActive: true}, Action: "back", Position: models.PositionLeft,
	}))
	require.NoError(t, f.icons.Create(ctx, &models.NavigationIcon{
		Ordered: models.Ordered{Title: "share", IsActive: true}, Action: "share", Position: models.PositionRight,
	}))
	require.NoError(t, f.icons.Create(ctx, &models.NavigationIcon{
		Ordered: models.Ordered{Title: "hidden", IsActive: false}, Action: "reload", Position: models.PositionRight,
	}))

	cfg, err := f.gen.Generate(ctx)
	require.NoError(t, err)

	require.Len(t, cfg.LeftHeaderIcons, 1)
	require.NotNil(t, cfg.LeftHeaderIcons[0].Image)
	assert.Equal(t, "https://admin.example.com/storage/icons/back.png", *cfg.LeftHeaderIcons[0].Image)

	require.Len(t, cfg.RightHeaderIcons, 1)
	assert.Equal(t, "share", cfg.RightHeaderIcons[0].Title)
	assert.Nil(t, cfg.RightHeaderIcons[0].Image)
}

func TestGenerate_MenuAndSettings(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	about := &models.Menu{Ordered: models.Ordered{Title: "About", IsActive: true}, URL: "https://example.com/about"}
	require.NoError(t, f.menus.Create(ctx, about))
	require.NoError(t, f.menus.Create(ctx, &models.Menu{
		Ordered: models.Ordered{Title: "Team", IsActive: true}, URL: "https://example.com/team", ParentID: &about.ID,
	}))

	logo := "branding/logo.png"
	require.NoError(t, f.settings.Save(ctx, appconfig.KeyAppSettings, appconfig.AppSettings{AppName: "Shell", Logo: &logo}))
	require.NoError(t, f.settings.Save(ctx, appconfig.KeyTheme, appconfig.Theme{PrimaryColor: "#112233", DarkMode: true}))

	cfg, err := f.gen.Generate(ctx)
	require.NoError(t, err)

	require.Len(t, cfg.Menu, 1)
	require.Len(t, cfg.Menu[0].Children, 1)
	assert.Equal(t, "Team", cfg.Menu[0].Children[0].Title)

	assert.Equal(t, "Shell", cfg.AppSettings.AppName)
	require.NotNil(t, cfg.AppSettings.Logo)
	assert.Equal(t, "https://admin.example.com/storage/branding/logo.png", *cfg.AppSettings.Logo)
	assert.Equal(t, "#112233", cfg.Theme.PrimaryColor)
	assert.True(t, cfg.Theme.DarkMode)
	assert.False(t, cfg.AdMob.Enabled)

	// the stored reference is untouched by generation
	var stored appconfig.AppSettings
	require.NoError(t, f.settings.Load(ctx, appconfig.KeyAppSettings, &stored))
	assert.Equal(t, logo, *stored.Logo)
}

func TestGenerate_Idempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.pages.Create(ctx, &models.Page{Ordered: models.Ordered{Title: "Privacy", IsActive: true}, URL: "https://example.com/privacy"}))
	require.NoError(t, f.buttons.Create(ctx, &models.FloatingButton{Ordered: models.Ordered{Title: "Call", IsActive: true}, Action: "call"}))

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	f.gen.WithClock(func() time.Time {
		now = now.Add(time.Minute)
		return now
	})

	first, err := f.gen.Generate(ctx)
	require.NoError(t, err)

	second, err := f.gen.Generate(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, first.GeneratedAt, second.GeneratedAt)

	first.GeneratedAt, second.GeneratedAt = "", ""

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestGenerate_ClockIsUTC(t *testing.T) {
	f := newFixture(t)

	loc := time.FixedZone("UTC+2", 2*60*60)
	f.gen.WithClock(func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, loc) })

	cfg, err := f.gen.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2026-03-01T10:00:00Z", cfg.GeneratedAt)
}

type failingSettings struct{}

func (failingSettings) Load(context.Context, string, any) error {
	return errors.New("connection refused") //nolint:err113
}

func TestGenerate_StorageFailure(t *testing.T) {
	gen := appconfig.New(appconfig.Sources{Settings: failingSettings{}})

	_, err := gen.Generate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load setting app_settings")
}

func TestSection(t *testing.T) {
	cfg := &appconfig.Config{Theme: appconfig.Theme{PrimaryColor: "#000000"}}

	for _, name := range appconfig.SectionNames {
		_, err := cfg.Section(name)
		require.NoError(t, err, name)
	}

	theme, err := cfg.Section("theme")
	require.NoError(t, err)
	assert.Equal(t, "#000000", theme.(appconfig.Theme).PrimaryColor) //nolint:forcetypeassert

	_, err = cfg.Section("secrets")
	require.ErrorIs(t, err, appconfig.ErrUnknownSection)
}
