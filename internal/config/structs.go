package config

import (
	"time"

	"github.com/AppShell-Admin/AppShell-Admin/internal/logger"
)

const (
	// DefaultDisk is the disk used when none is configured.
	DefaultDisk = "public"
	// DefaultExportFilename is the file name of the exported configuration.
	DefaultExportFilename = "config.json"
)

// Session settings.
type Session struct {
	ExpiryTime time.Duration
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Version   string // reported by /health
	Webserver Webserver
	Storage   Storage
	Export    Export
	Upload    Upload
}

// Webserver implement webserver settings.
type Webserver struct {
	BrowseStatic        bool    // enable static file browsing (for development purposes only)
	CacheEnabled        bool    // true = enable cache, false = disable cache
	DisableRecover      bool    // disable recover middleware
	Domain              string  // domain name for the webserver
	Port                int     // listening port for the webserver
	ShutDownTime        int     // wait time for shutdown
	URL                 string  // base url for the webserver
	CookieEncryptionKey string  // encryption key for cookies
	Session             Session // session settings
}

// Storage maps disk names to root directories on the local filesystem.
type Storage struct {
	Disks map[string]string
}

// Export holds the location of the exported app configuration.
type Export struct {
	Disk     string // disk name from Storage.Disks
	Path     string // directory below the disk root
	Filename string
}

// Upload holds the limits applied to uploaded images.
type Upload struct {
	Disk              string
	MaxWidth          int
	MaxHeight         int
	Quality           int   // jpeg quality 1-100
	MaxFileSize       int64 // bytes
	AllowedExtensions []string
}

// DiskRoot returns the root directory of the named disk.
func (c *Config) DiskRoot(disk string) string {
	return c.Storage.Disks[disk]
}
