package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marmos91/fileengine/cmd/fectl/cmdutil"
	"github.com/marmos91/fileengine/internal/cli/prompt"
	"github.com/marmos91/fileengine/pkg/fileengine"
)

var (
	purgeKeep  int
	purgeForce bool
)

var revisionsCmd = &cobra.Command{
	Use:   "revisions <uid>",
	Short: "List the versions of a file",
	Long: `List the stored versions of <uid>, newest first. The # column is the value
to pass to "fectl get --back".`,
	Args: cobra.ExactArgs(1),
	RunE: runRevisions,
}

var restoreCmd = &cobra.Command{
	Use:   "restore <uid> <version>",
	Short: "Restore a file to an earlier version",
	Long: `Store the content of <version> as the newest version of <uid> and print
the version that was created.

Examples:
  fectl restore 1b4e28ba-2fa1-11d2-883f-0016d3cca427 1700000000.000001`,
	Args: cobra.ExactArgs(2),
	RunE: runRestore,
}

var purgeCmd = &cobra.Command{
	Use:   "purge <uid>",
	Short: "Delete old versions of a file",
	Long: `Delete all but the newest --keep versions of <uid>.

--keep 0 deletes every version and asks to type the UID to confirm, unless
--force is given.

Examples:
  fectl purge 1b4e28ba-2fa1-11d2-883f-0016d3cca427 --keep 2`,
	Args: cobra.ExactArgs(1),
	RunE: runPurge,
}

var undeleteCmd = &cobra.Command{
	Use:   "undelete <uid>",
	Short: "Restore a removed entity",
	Args:  cobra.ExactArgs(1),
	RunE:  runUndelete,
}

func init() {
	purgeCmd.Flags().IntVar(&purgeKeep, "keep", 1, "Number of newest versions to keep")
	purgeCmd.Flags().BoolVarP(&purgeForce, "force", "f", false, "Skip confirmation prompt")
}

func runRevisions(cmd *cobra.Command, args []string) error {
	p, err := cmdutil.Printer(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return cmdutil.WithClient(func(c *fileengine.Client) error {
		revisions := c.Revisions(cmd.Context(), args[0])
		if len(revisions) == 0 && !p.Structured() {
			p.Warning("No versions found.")
			return nil
		}
		return p.Print(revisions, RevisionList(revisions))
	})
}

type restoreResult struct {
	UID     string `json:"uid" yaml:"uid"`
	Version string `json:"version" yaml:"version"`
}

func runRestore(cmd *cobra.Command, args []string) error {
	p, err := cmdutil.Printer(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return cmdutil.WithClient(func(c *fileengine.Client) error {
		version, ok := c.RestoreToVersion(cmd.Context(), args[0], args[1])
		if !ok {
			return cmdutil.Failed("restore %s to %s", args[0], args[1])
		}
		if p.Structured() {
			return p.Print(restoreResult{UID: args[0], Version: version}, nil)
		}
		p.Success(fmt.Sprintf("Restored %s as version %s", args[0], cmdutil.EmptyOr(version, args[1])))
		return nil
	})
}

func runPurge(cmd *cobra.Command, args []string) error {
	if purgeKeep < 0 {
		return fmt.Errorf("--keep must not be negative")
	}
	p, err := cmdutil.Printer(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	if purgeKeep == 0 && !purgeForce {
		confirmed, err := prompt.ConfirmWord(fmt.Sprintf("Delete every version of %s", args[0]), args[0])
		if err != nil && !prompt.IsAborted(err) {
			return err
		}
		if !confirmed {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
	}

	return cmdutil.WithClient(func(c *fileengine.Client) error {
		if !c.PurgeOldVersions(cmd.Context(), args[0], purgeKeep) {
			return cmdutil.Failed("purge %s", args[0])
		}
		p.Success(fmt.Sprintf("Purged %s, kept %d version(s)", args[0], purgeKeep))
		return nil
	})
}

func runUndelete(cmd *cobra.Command, args []string) error {
	p, err := cmdutil.Printer(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return cmdutil.WithClient(func(c *fileengine.Client) error {
		if !c.UndeleteFile(cmd.Context(), args[0]) {
			return cmdutil.Failed("undelete %s", args[0])
		}
		p.Success(fmt.Sprintf("Restored %s", args[0]))
		return nil
	})
}
