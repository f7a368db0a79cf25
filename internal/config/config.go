// Package config handles input from etc/*.toml files
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the name of the main configuration file without extension.
	ConfigFileName = "main"

	// ConfigJSONEnv holds a JSON document merged over the file configuration.
	ConfigJSONEnv = "APPSHELL_ADMIN_CONFIG_JSON"

	defaultShutDownTime = 5
)

// ReadConfig from config file.
func ReadConfig(path string) (Config, error) {
	var (
		c             Config
		jsonConfigEnv string
		err           error
	)

	// Read main configuration
	if path == "" {
		path = "./etc/"
	}

	v := viper.New()
	v.SetConfigName(ConfigFileName)
	v.SetConfigType("toml")
	v.AddConfigPath(filepath.Clean(path))

	if err = v.ReadInConfig(); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	// override it from env
	jsonConfigEnv = os.Getenv(ConfigJSONEnv)

	if jsonConfigEnv != "" {
		if err = mergeJSONConfig(v, jsonConfigEnv); err != nil {
			return Config{}, err
		}
	}

	if err = v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode main config file")
	}

	return c, validate(&c)
}

// mergeJSONConfig merges a JSON encoded configuration over the values already read.
func mergeJSONConfig(v *viper.Viper, configAsJSON string) error {
	j := viper.New()
	j.SetConfigType("json")

	if err := j.ReadConfig(strings.NewReader(configAsJSON)); err != nil {
		return errors.Wrap(err, "failed to read json config override")
	}

	return errors.Wrap(v.MergeConfigMap(j.AllSettings()), "failed to merge json config override")
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c *Config) (string, error) {
	var buffer bytes.Buffer
	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// validate minimal config settings and fill in defaults.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	// validate webserver listening port
	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	// validate base url, it is used to build public image urls
	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = defaultShutDownTime
	}

	if c.Export.Filename == "" {
		c.Export.Filename = DefaultExportFilename
	}

	if c.Export.Disk == "" {
		c.Export.Disk = DefaultDisk
	}

	if c.Upload.Disk == "" {
		c.Upload.Disk = DefaultDisk
	}

	if _, ok := c.Storage.Disks[c.Export.Disk]; !ok {
		return errors.Wrapf(ErrUnknownDisk, "export disk %q", c.Export.Disk)
	}

	if _, ok := c.Storage.Disks[c.Upload.Disk]; !ok {
		return errors.Wrapf(ErrUnknownDisk, "upload disk %q", c.Upload.Disk)
	}

	return nil
}
