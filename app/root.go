// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"

	"github.com/AppShell-Admin/AppShell-Admin/internal/config"
)

var (
	configPath string // Path to the configuration directory
	cfg        config.Config

	rootCmd = &cobra.Command{
		Use:   "appshell-admin",
		Short: "AppShell Admin manages the configuration of a white-labeled mobile app shell",
		Long: `AppShell Admin is a web-based admin panel for a white-labeled mobile app shell.
It stores menus, walkthrough screens, tabs, pages, floating buttons, navigation icons
and app settings, and serves or exports them as a single JSON configuration.`,
		Args: cobra.OnlyValidArgs,
	}
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the directory holding main.toml (default ./etc/)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func readConfig() error {
	var err error

	cfg, err = config.ReadConfig(configPath)

	return err
}
