package commands

import (
	"github.com/spf13/cobra"

	"github.com/marmos91/fileengine/cmd/fectl/cmdutil"
	"github.com/marmos91/fileengine/pkg/fileengine"
)

var lsDeleted bool

var mkdirCmd = &cobra.Command{
	Use:   "mkdir <parent-uid> <name>",
	Short: "Create a directory",
	Long: `Create a directory named <name> under <parent-uid> and print its UID.

Use "" as the parent to create the directory at the tenant root.

Examples:
  fectl mkdir "" projects
  fectl mkdir 1b4e28ba-2fa1-11d2-883f-0016d3cca427 reports`,
	Args: cobra.ExactArgs(2),
	RunE: runMkdir,
}

var lsCmd = &cobra.Command{
	Use:   "ls [uid]",
	Short: "List a directory",
	Long: `List the children of a directory. Without a UID the tenant root is listed.

Examples:
  fectl ls
  fectl ls 1b4e28ba-2fa1-11d2-883f-0016d3cca427 --deleted
  fectl ls -o json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLs,
}

func init() {
	lsCmd.Flags().BoolVar(&lsDeleted, "deleted", false, "Include soft-deleted entries")
}

func runMkdir(cmd *cobra.Command, args []string) error {
	p, err := cmdutil.Printer(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return cmdutil.WithClient(func(c *fileengine.Client) error {
		uid, ok := c.Mkdir(cmd.Context(), args[0], args[1])
		if !ok {
			return cmdutil.Failed("mkdir %s", args[1])
		}
		return printUID(p, uid)
	})
}

func runLs(cmd *cobra.Command, args []string) error {
	uid := ""
	if len(args) == 1 {
		uid = args[0]
	}
	p, err := cmdutil.Printer(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return cmdutil.WithClient(func(c *fileengine.Client) error {
		entries := c.Dir(cmd.Context(), uid, lsDeleted)
		if entries == nil {
			entries = []fileengine.DirEntry{}
		}
		if len(entries) == 0 && !p.Structured() {
			p.Warning("No entries found.")
			return nil
		}
		return p.Print(entries, EntryList(entries))
	})
}
