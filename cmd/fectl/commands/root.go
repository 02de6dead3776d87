// Package commands implements the CLI commands for fectl.
package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/marmos91/fileengine/cmd/fectl/cmdutil"
	configcmd "github.com/marmos91/fileengine/cmd/fectl/commands/config"
	metacmd "github.com/marmos91/fileengine/cmd/fectl/commands/meta"
	permcmd "github.com/marmos91/fileengine/cmd/fectl/commands/perm"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var skipSetup = map[string]string{cmdutil.SkipSetupAnnotation: "true"}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "fectl",
	Short: "FileEngine client",
	Long: `fectl is the command-line client of the FileEngine file service.

It creates directories and files, stores and retrieves file versions, moves,
copies and removes entities, and manages metadata and permissions. Every
request carries the identity (user, tenant, roles, claims) from the
configuration file, overridable with flags.

Start a local in-memory service with "fectl sandbox" to try it out.

Use "fectl [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		cmdutil.Flags.TenantSet = flags.Changed("tenant")
		cmdutil.Flags.RolesSet = flags.Changed("role")
		cmdutil.Flags.ClaimsSet = flags.Changed("claim")

		for c := cmd; c != nil; c = c.Parent() {
			if cmdutil.SkipSetup(c.Annotations) {
				return nil
			}
		}
		return cmdutil.Setup(cmd.Context(), Version)
	},
}

// Execute runs the command line until completion or SIGINT/SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer cmdutil.Shutdown(context.Background())

	return rootCmd.ExecuteContext(ctx)
}

// GetRootCmd returns the root command for testing purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVarP(&cmdutil.Flags.ConfigFile, "config", "c", "", "Config file (default: $XDG_CONFIG_HOME/fileengine/config.yaml)")
	f.StringVarP(&cmdutil.Flags.Server, "server", "s", "", "FileService address host:port (overrides config)")
	f.StringVarP(&cmdutil.Flags.User, "user", "u", "", "User sent with every request (overrides config)")
	f.StringVarP(&cmdutil.Flags.Tenant, "tenant", "t", "", "Tenant sent with every request (overrides config)")
	f.StringArrayVar(&cmdutil.Flags.Roles, "role", nil, "Role sent with every request, repeatable; --role \"\" sends none (overrides config)")
	f.StringArrayVar(&cmdutil.Flags.Claims, "claim", nil, "Claim 'name' or 'key=value', repeatable; --claim \"\" sends none (overrides config)")
	f.StringVarP(&cmdutil.Flags.Output, "output", "o", "table", "Output format (table|json|yaml)")
	f.BoolVar(&cmdutil.Flags.NoColor, "no-color", false, "Disable colored output")
	f.BoolVarP(&cmdutil.Flags.Verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(mkdirCmd, lsCmd)
	rootCmd.AddCommand(touchCmd, putCmd, getCmd)
	rootCmd.AddCommand(statCmd, existsCmd, mvCmd, cpCmd, rmCmd, renameCmd)
	rootCmd.AddCommand(revisionsCmd, restoreCmd, purgeCmd, undeleteCmd)
	rootCmd.AddCommand(usageCmd, syncCmd)
	rootCmd.AddCommand(demoCmd, sandboxCmd)
	rootCmd.AddCommand(metacmd.Cmd)
	rootCmd.AddCommand(permcmd.Cmd)
	rootCmd.AddCommand(configcmd.Cmd)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
