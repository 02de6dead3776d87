// Package config implements the fectl config subcommands.
package config

import (
	"github.com/spf13/cobra"

	"github.com/marmos91/fileengine/cmd/fectl/cmdutil"
)

// Cmd is the parent command for configuration management.
var Cmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the fectl configuration",
	Long: `Create, inspect and validate the fectl configuration file.

The configuration holds the server address, the default identity sent with
every request, and the logging, telemetry and metrics settings.`,
}

// skipSetup marks subcommands that handle the configuration file themselves.
var skipSetup = map[string]string{cmdutil.SkipSetupAnnotation: "true"}

func init() {
	Cmd.AddCommand(initCmd)
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(validateCmd)
	Cmd.AddCommand(schemaCmd)
	Cmd.AddCommand(editCmd)
}
