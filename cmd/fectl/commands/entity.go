package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marmos91/fileengine/cmd/fectl/cmdutil"
	"github.com/marmos91/fileengine/pkg/fileengine"
)

var (
	mvName  string
	rmForce bool
)

var statCmd = &cobra.Command{
	Use:   "stat <uid>",
	Short: "Show entity details",
	Args:  cobra.ExactArgs(1),
	RunE:  runStat,
}

var existsCmd = &cobra.Command{
	Use:   "exists <uid>",
	Short: "Check whether an entity exists",
	Long: `Print whether <uid> exists. The exit status is 0 either way; only errors
reaching the service change it.`,
	Args: cobra.ExactArgs(1),
	RunE: runExists,
}

var mvCmd = &cobra.Command{
	Use:   "mv <uid> <dest-parent-uid>",
	Short: "Move an entity",
	Long: `Move <uid> under <dest-parent-uid>, optionally renaming it afterwards.

Examples:
  fectl mv 1b4e28ba-2fa1-11d2-883f-0016d3cca427 6fa459ea-ee8a-3ca4-894e-db77e160355e
  fectl mv 1b4e28ba-2fa1-11d2-883f-0016d3cca427 "" --name archived.txt`,
	Args: cobra.ExactArgs(2),
	RunE: runMv,
}

var cpCmd = &cobra.Command{
	Use:   "cp <uid> <dest-parent-uid>",
	Short: "Copy an entity",
	Args:  cobra.ExactArgs(2),
	RunE:  runCp,
}

var rmCmd = &cobra.Command{
	Use:   "rm <uid>",
	Short: "Remove a file or directory",
	Long: `Remove <uid>. Files and directories are both supported; removed entities
can be brought back with "fectl undelete".

Examples:
  fectl rm 1b4e28ba-2fa1-11d2-883f-0016d3cca427
  fectl rm 1b4e28ba-2fa1-11d2-883f-0016d3cca427 --force`,
	Args: cobra.ExactArgs(1),
	RunE: runRm,
}

var renameCmd = &cobra.Command{
	Use:   "rename <uid> <new-name>",
	Short: "Rename an entity",
	Args:  cobra.ExactArgs(2),
	RunE:  runRename,
}

func init() {
	mvCmd.Flags().StringVar(&mvName, "name", "", "Rename the entity after moving it")
	rmCmd.Flags().BoolVarP(&rmForce, "force", "f", false, "Skip confirmation prompt")
}

func runStat(cmd *cobra.Command, args []string) error {
	p, err := cmdutil.Printer(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return cmdutil.WithClient(func(c *fileengine.Client) error {
		info := c.Stat(cmd.Context(), args[0])
		if info == nil {
			return cmdutil.Failed("stat %s", args[0])
		}
		return p.Print(info, fileInfoView(info))
	})
}

type existsResult struct {
	UID    string `json:"uid" yaml:"uid"`
	Exists bool   `json:"exists" yaml:"exists"`
}

func runExists(cmd *cobra.Command, args []string) error {
	p, err := cmdutil.Printer(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return cmdutil.WithClient(func(c *fileengine.Client) error {
		exists := c.EntityExists(cmd.Context(), args[0])
		if p.Structured() {
			return p.Print(existsResult{UID: args[0], Exists: exists}, nil)
		}
		_, err := fmt.Fprintln(p.Out(), cmdutil.BoolToYesNo(exists))
		return err
	})
}

func runMv(cmd *cobra.Command, args []string) error {
	p, err := cmdutil.Printer(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	var opts []fileengine.CallOption
	if mvName != "" {
		opts = append(opts, fileengine.WithNewName(mvName))
	}
	return cmdutil.WithClient(func(c *fileengine.Client) error {
		if !c.Move(cmd.Context(), args[0], args[1], opts...) {
			return cmdutil.Failed("move %s", args[0])
		}
		p.Success(fmt.Sprintf("Moved %s", args[0]))
		return nil
	})
}

func runCp(cmd *cobra.Command, args []string) error {
	p, err := cmdutil.Printer(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return cmdutil.WithClient(func(c *fileengine.Client) error {
		if !c.Copy(cmd.Context(), args[0], args[1]) {
			return cmdutil.Failed("copy %s", args[0])
		}
		p.Success(fmt.Sprintf("Copied %s", args[0]))
		return nil
	})
}

func runRm(cmd *cobra.Command, args []string) error {
	p, err := cmdutil.Printer(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	label := fmt.Sprintf("Remove %s", args[0])
	return cmdutil.RunWithConfirmation(cmd.OutOrStdout(), label, rmForce, func() error {
		return cmdutil.WithClient(func(c *fileengine.Client) error {
			if !c.Remove(cmd.Context(), args[0]) {
				return cmdutil.Failed("remove %s", args[0])
			}
			p.Success(fmt.Sprintf("Removed %s", args[0]))
			return nil
		})
	})
}

func runRename(cmd *cobra.Command, args []string) error {
	p, err := cmdutil.Printer(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return cmdutil.WithClient(func(c *fileengine.Client) error {
		if !c.Rename(cmd.Context(), args[0], args[1]) {
			return cmdutil.Failed("rename %s", args[0])
		}
		p.Success(fmt.Sprintf("Renamed %s to %s", args[0], args[1]))
		return nil
	})
}
