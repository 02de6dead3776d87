// Package meta implements the fectl meta subcommands.
package meta

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/marmos91/fileengine/cmd/fectl/cmdutil"
	"github.com/marmos91/fileengine/internal/cli/output"
	"github.com/marmos91/fileengine/pkg/fileengine"
)

var version string

// Cmd is the parent command for metadata management.
var Cmd = &cobra.Command{
	Use:   "meta",
	Short: "Manage entity metadata",
	Long: `Read and write the key/value metadata of an entity.

get and list read the metadata recorded with a file version when --version
is given.

Examples:
  fectl meta set 1b4e28ba-2fa1-11d2-883f-0016d3cca427 owner finance
  fectl meta list 1b4e28ba-2fa1-11d2-883f-0016d3cca427
  fectl meta get 1b4e28ba-2fa1-11d2-883f-0016d3cca427 owner --version 1700000000.000001`,
}

var getCmd = &cobra.Command{
	Use:   "get <uid> <key>",
	Short: "Get a metadata value",
	Args:  cobra.ExactArgs(2),
	RunE:  runGet,
}

var setCmd = &cobra.Command{
	Use:   "set <uid> <key> <value>",
	Short: "Set a metadata value",
	Args:  cobra.ExactArgs(3),
	RunE:  runSet,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <uid> <key>",
	Short: "Delete a metadata key",
	Args:  cobra.ExactArgs(2),
	RunE:  runDelete,
}

var listCmd = &cobra.Command{
	Use:   "list <uid>",
	Short: "List all metadata",
	Args:  cobra.ExactArgs(1),
	RunE:  runList,
}

func init() {
	getCmd.Flags().StringVar(&version, "version", "", "Read the metadata of this file version")
	listCmd.Flags().StringVar(&version, "version", "", "Read the metadata of this file version")

	Cmd.AddCommand(getCmd)
	Cmd.AddCommand(setCmd)
	Cmd.AddCommand(deleteCmd)
	Cmd.AddCommand(listCmd)
}

type entry struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

func runGet(cmd *cobra.Command, args []string) error {
	uid, key := args[0], args[1]
	p, err := cmdutil.Printer(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return cmdutil.WithClient(func(c *fileengine.Client) error {
		var (
			value string
			ok    bool
		)
		if version != "" {
			value, ok = c.GetMetadataForVersion(cmd.Context(), uid, version, key)
		} else {
			value, ok = c.GetMetadata(cmd.Context(), uid, key)
		}
		if !ok {
			return cmdutil.Failed("get metadata %s of %s", key, uid)
		}
		if p.Structured() {
			return p.Print(entry{Key: key, Value: value}, nil)
		}
		_, err := fmt.Fprintln(p.Out(), value)
		return err
	})
}

func runSet(cmd *cobra.Command, args []string) error {
	uid, key, value := args[0], args[1], args[2]
	p, err := cmdutil.Printer(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return cmdutil.WithClient(func(c *fileengine.Client) error {
		if !c.SetMetadata(cmd.Context(), uid, key, value) {
			return cmdutil.Failed("set metadata %s of %s", key, uid)
		}
		p.Success(fmt.Sprintf("Set %s on %s", key, uid))
		return nil
	})
}

func runDelete(cmd *cobra.Command, args []string) error {
	uid, key := args[0], args[1]
	p, err := cmdutil.Printer(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return cmdutil.WithClient(func(c *fileengine.Client) error {
		if !c.DeleteMetadata(cmd.Context(), uid, key) {
			return cmdutil.Failed("delete metadata %s of %s", key, uid)
		}
		p.Success(fmt.Sprintf("Deleted %s from %s", key, uid))
		return nil
	})
}

func runList(cmd *cobra.Command, args []string) error {
	uid := args[0]
	p, err := cmdutil.Printer(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return cmdutil.WithClient(func(c *fileengine.Client) error {
		var md map[string]string
		if version != "" {
			md = c.GetAllMetadataForVersion(cmd.Context(), uid, version)
		} else {
			md = c.GetAllMetadata(cmd.Context(), uid)
		}
		if len(md) == 0 && !p.Structured() {
			p.Warning("No metadata found.")
			return nil
		}
		return p.Print(md, table(md))
	})
}

// table renders md sorted by key.
func table(md map[string]string) *output.Table {
	keys := make([]string, 0, len(md))
	for k := range md {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	t := output.NewTable("KEY", "VALUE")
	for _, k := range keys {
		t.Add(k, md[k])
	}
	return t
}
