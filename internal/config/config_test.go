package config

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func projectConfigPath(t *testing.T) string {
	t.Helper()

	// Get the project root by going up from internal/config
	projectRoot, err := filepath.Abs("../../")
	require.NoError(t, err, "failed to get project root")

	return filepath.Join(projectRoot, "etc") + string(filepath.Separator)
}

func TestReadConfig(t *testing.T) {
	cfg, err := ReadConfig(projectConfigPath(t))
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.Title)
	assert.NotZero(t, cfg.Webserver.Port)
	assert.NotEmpty(t, cfg.Webserver.URL)
	assert.NotEmpty(t, cfg.DB.Host)
	assert.NotEmpty(t, cfg.Version)

	// storage and export defaults
	assert.Equal(t, DefaultDisk, cfg.Export.Disk)
	assert.Equal(t, "appshell", cfg.Export.Path)
	assert.Equal(t, DefaultExportFilename, cfg.Export.Filename)
	assert.NotEmpty(t, cfg.DiskRoot(cfg.Export.Disk))

	// upload limits
	assert.Positive(t, cfg.Upload.MaxWidth)
	assert.Positive(t, cfg.Upload.MaxFileSize)
	assert.Contains(t, cfg.Upload.AllowedExtensions, "png")

	// log file names come from lowercase keys
	assert.Equal(t, "access.log", cfg.Log.File.AccessLog)
	assert.Positive(t, cfg.Webserver.Session.ExpiryTime.Hours())
}

func TestConfigValidation(t *testing.T) {
	disks := Storage{Disks: map[string]string{DefaultDisk: "/tmp"}}

	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name: "valid config",
			config: Config{
				Webserver: Webserver{Port: 8080, URL: "http://localhost:8080"},
				Storage:   disks,
			},
		},
		{
			name: "missing port",
			config: Config{
				Webserver: Webserver{Port: 0, URL: "http://localhost:8080"},
				Storage:   disks,
			},
			wantErr: ErrWebServerPortCanNotBeZero,
		},
		{
			name: "missing URL",
			config: Config{
				Webserver: Webserver{Port: 8080, URL: ""},
				Storage:   disks,
			},
			wantErr: ErrEmptyURL,
		},
		{
			name: "unknown export disk",
			config: Config{
				Webserver: Webserver{Port: 8080, URL: "http://localhost:8080"},
				Storage:   disks,
				Export:    Export{Disk: "s3"},
			},
			wantErr: ErrUnknownDisk,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate(&tt.config)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, defaultShutDownTime, tt.config.Webserver.ShutDownTime)
			assert.Equal(t, DefaultExportFilename, tt.config.Export.Filename)
		})
	}
}

func TestReadConfigWithJSONOverride(t *testing.T) {
	t.Setenv(ConfigJSONEnv, `{"Title":"Test Override","Webserver":{"Port":9090},"Export":{"Filename":"app.json"}}`)

	cfg, err := ReadConfig(projectConfigPath(t))
	require.NoError(t, err)

	assert.Equal(t, "Test Override", cfg.Title)
	assert.Equal(t, 9090, cfg.Webserver.Port)
	assert.Equal(t, "app.json", cfg.Export.Filename)

	// untouched values survive the merge
	assert.Equal(t, "http://localhost:8080", cfg.Webserver.URL)
}

func TestReadConfigWithBrokenJSONOverride(t *testing.T) {
	t.Setenv(ConfigJSONEnv, `{"Title":`)

	_, err := ReadConfig(projectConfigPath(t))
	require.Error(t, err)
}

func TestDumpConfigJSON(t *testing.T) {
	cfg := Config{
		Title:   "Test",
		DevMode: true,
		Webserver: Webserver{
			Port: 8080,
			URL:  "http://localhost:8080",
		},
	}

	jsonStr, err := DumpConfigJSON(&cfg)
	require.NoError(t, err)
	assert.True(t, strings.Contains(jsonStr, "Test"), "DumpConfigJSON() output should contain Title")
}
