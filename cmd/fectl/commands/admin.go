package commands

import (
	"github.com/spf13/cobra"

	"github.com/marmos91/fileengine/cmd/fectl/cmdutil"
	"github.com/marmos91/fileengine/pkg/fileengine"
)

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show tenant storage usage",
	Long: `Show the storage usage of the current tenant (--tenant or the configured
identity).`,
	Args: cobra.NoArgs,
	RunE: runUsage,
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Ask the service to synchronize the tenant",
	Args:  cobra.NoArgs,
	RunE:  runSync,
}

func runUsage(cmd *cobra.Command, args []string) error {
	p, err := cmdutil.Printer(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return cmdutil.WithClient(func(c *fileengine.Client) error {
		usage := c.StorageUsage(cmd.Context())
		if usage == nil {
			return cmdutil.Failed("storage usage")
		}
		return p.Print(usage, usageView(usage))
	})
}

func runSync(cmd *cobra.Command, args []string) error {
	p, err := cmdutil.Printer(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return cmdutil.WithClient(func(c *fileengine.Client) error {
		if !c.TriggerSync(cmd.Context()) {
			return cmdutil.Failed("sync")
		}
		p.Success("Sync triggered")
		return nil
	})
}
