package config

import (
	"github.com/spf13/cobra"

	"github.com/marmos91/fileengine/cmd/fectl/cmdutil"
	"github.com/marmos91/fileengine/internal/cli/output"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the configuration after defaults, environment variables and flags
have been applied. YAML is printed unless --output json is given.`,
	Args: cobra.NoArgs,
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	p, err := cmdutil.Printer(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if p.Format() == output.FormatJSON {
		return output.PrintJSON(p.Out(), cmdutil.Cfg)
	}
	return output.PrintYAML(p.Out(), cmdutil.Cfg)
}
