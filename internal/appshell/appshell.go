// Package appshell wires the stores, the configuration generator, the
// exporter and the upload service into one handle shared by the web
// handlers and the CLI.
package appshell

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/afero"
	"gorm.io/gorm"

	"github.com/AppShell-Admin/AppShell-Admin/internal/appconfig"
	"github.com/AppShell-Admin/AppShell-Admin/internal/config"
	"github.com/AppShell-Admin/AppShell-Admin/internal/db/controller/collection"
	"github.com/AppShell-Admin/AppShell-Admin/internal/db/controller/menu"
	"github.com/AppShell-Admin/AppShell-Admin/internal/db/controller/setting"
	"github.com/AppShell-Admin/AppShell-Admin/internal/db/models"
	"github.com/AppShell-Admin/AppShell-Admin/internal/export"
	"github.com/AppShell-Admin/AppShell-Admin/internal/upload"
)

// Shell holds every store of the admin panel.
type Shell struct {
	DB              *gorm.DB
	Settings        *setting.Store
	Walkthroughs    *collection.Repository[models.Walkthrough, *models.Walkthrough]
	Tabs            *collection.Repository[models.Tab, *models.Tab]
	Pages           *collection.Repository[models.Page, *models.Page]
	FloatingButtons *collection.Repository[models.FloatingButton, *models.FloatingButton]
	NavigationIcons *collection.Repository[models.NavigationIcon, *models.NavigationIcon]
	Menus           *menu.Store
	Uploads         *upload.Service
	Generator       *appconfig.Generator
	Exporter        *export.Exporter
	Metrics         *export.Metrics
}

// New wires a Shell. Uploaded images live on uploads, the export on exportFs.
func New(cfg *config.Config, db *gorm.DB, uploads *upload.Service, exportFs afero.Fs, metrics *export.Metrics) *Shell {
	s := &Shell{
		DB:              db,
		Settings:        setting.NewStore(db),
		Walkthroughs:    collection.New[models.Walkthrough](db, uploads),
		Tabs:            collection.New[models.Tab](db, uploads),
		Pages:           collection.New[models.Page](db, uploads),
		FloatingButtons: collection.New[models.FloatingButton](db, uploads),
		NavigationIcons: collection.New[models.NavigationIcon](db, uploads),
		Menus:           menu.NewStore(db, uploads),
		Uploads:         uploads,
		Metrics:         metrics,
	}

	s.Generator = appconfig.New(appconfig.Sources{
		Settings:        s.Settings,
		Walkthroughs:    s.Walkthroughs,
		Tabs:            s.Tabs,
		Pages:           s.Pages,
		FloatingButtons: s.FloatingButtons,
		NavigationIcons: s.NavigationIcons,
		Menus:           s.Menus,
		Images:          uploads,
	})

	s.Exporter = export.New(exportFs, s.Generator, cfg.Export.Path, cfg.Export.Filename, metrics)

	return s
}

// NewFromConfig wires a Shell on the local disks named in cfg and registers
// the export metrics with reg, which may be nil.
func NewFromConfig(cfg *config.Config, db *gorm.DB, reg prometheus.Registerer) (*Shell, error) {
	uploads, err := upload.NewFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	exportFs, err := export.DiskFs(cfg)
	if err != nil {
		return nil, err
	}

	return New(cfg, db, uploads, exportFs, export.NewMetrics(reg)), nil
}
