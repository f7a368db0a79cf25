package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AppShell-Admin/AppShell-Admin/internal/daemon"
	"github.com/AppShell-Admin/AppShell-Admin/internal/logger"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the app configuration to the export disk and print its path",
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return readConfig()
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, shell, err := daemon.Open(&cfg)
		if err != nil {
			return err
		}

		defer func() { _ = logger.Close() }()

		path, err := shell.Exporter.ExportToFile(cmd.Context())
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), path)

		return err
	},
}
