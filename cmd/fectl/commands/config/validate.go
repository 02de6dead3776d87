package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marmos91/fileengine/cmd/fectl/cmdutil"
	"github.com/marmos91/fileengine/pkg/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration file",
	Long: `Validate the fectl configuration file.

Checks for syntax errors, invalid values and claims that cannot be sent.

Examples:
  fectl config validate
  fectl config validate --config /etc/fileengine/config.yaml`,
	Annotations: skipSetup,
	Args:        cobra.NoArgs,
	RunE:        runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.MustLoad(cmdutil.Flags.ConfigFile)
	if err != nil {
		return err
	}
	if _, err := cfg.Identity.Defaults(); err != nil {
		return err
	}

	displayPath := cmdutil.EmptyOr(cmdutil.Flags.ConfigFile, config.GetDefaultConfigPath())

	var warnings []string
	if cfg.Server.Insecure {
		warnings = append(warnings, "server.insecure is set - requests are sent in plaintext")
	}
	if cfg.Identity.Tenant == "" {
		warnings = append(warnings, "identity.tenant is empty - requests carry no tenant")
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Configuration file: %s\n", displayPath)
	_, _ = fmt.Fprintln(out, "Validation: OK")

	if len(warnings) > 0 {
		_, _ = fmt.Fprintln(out, "\nWarnings:")
		for _, w := range warnings {
			_, _ = fmt.Fprintf(out, "  - %s\n", w)
		}
	}

	_, _ = fmt.Fprintln(out, "\nConfiguration summary:")
	_, _ = fmt.Fprintf(out, "  Server:     %s\n", cfg.Server.Address)
	_, _ = fmt.Fprintf(out, "  User:       %s\n", cfg.Identity.User)
	_, _ = fmt.Fprintf(out, "  Tenant:     %s\n", cmdutil.EmptyOr(cfg.Identity.Tenant, "-"))
	_, _ = fmt.Fprintf(out, "  Log level:  %s\n", cfg.Logging.Level)
	return nil
}
