package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marmos91/fileengine/cmd/fectl/cmdutil"
	"github.com/marmos91/fileengine/pkg/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Write the default configuration to --config, or to the default location.

Examples:
  fectl config init
  fectl config init --config ./fectl.yaml --force`,
	Annotations: skipSetup,
	Args:        cobra.NoArgs,
	RunE:        runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing file")
}

func runInit(cmd *cobra.Command, args []string) error {
	path, err := config.InitConfig(cmdutil.Flags.ConfigFile, initForce)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", path)
	return nil
}
