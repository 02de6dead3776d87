// Package perm implements the fectl perm subcommands.
package perm

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marmos91/fileengine/cmd/fectl/cmdutil"
	"github.com/marmos91/fileengine/pkg/fileengine"
	"github.com/marmos91/fileengine/pkg/fileservice"
)

// Cmd is the parent command for permission management.
var Cmd = &cobra.Command{
	Use:   "perm",
	Short: "Manage permissions",
	Long: `Grant, revoke and check permissions on an entity.

Permissions: READ, WRITE, DELETE, LIST_DELETED, UNDELETE, VIEW_VERSIONS,
RETRIEVE_BACK_VERSION, RESTORE_TO_VERSION, EXECUTE (case-insensitive).

Examples:
  fectl perm grant 1b4e28ba-2fa1-11d2-883f-0016d3cca427 alice read
  fectl perm check 1b4e28ba-2fa1-11d2-883f-0016d3cca427 write --user alice
  fectl perm revoke 1b4e28ba-2fa1-11d2-883f-0016d3cca427 alice read`,
}

var grantCmd = &cobra.Command{
	Use:   "grant <uid> <principal> <permission>",
	Short: "Grant a permission to a user or role",
	Args:  cobra.ExactArgs(3),
	RunE:  runGrant,
}

var revokeCmd = &cobra.Command{
	Use:   "revoke <uid> <principal> <permission>",
	Short: "Revoke a permission from a user or role",
	Args:  cobra.ExactArgs(3),
	RunE:  runRevoke,
}

var checkCmd = &cobra.Command{
	Use:   "check <uid> <permission>",
	Short: "Check whether the current identity holds a permission",
	Args:  cobra.ExactArgs(2),
	RunE:  runCheck,
}

func init() {
	Cmd.AddCommand(grantCmd)
	Cmd.AddCommand(revokeCmd)
	Cmd.AddCommand(checkCmd)
}

// parse converts a permission name, with "-" accepted for "_".
func parse(name string) (fileengine.Permission, error) {
	return fileservice.ParsePermission(strings.ReplaceAll(name, "-", "_"))
}

func runGrant(cmd *cobra.Command, args []string) error {
	return change(cmd, args, "Granted", "to", (*fileengine.Client).GrantPermission)
}

func runRevoke(cmd *cobra.Command, args []string) error {
	return change(cmd, args, "Revoked", "from", (*fileengine.Client).RevokePermission)
}

type changeFunc func(*fileengine.Client, context.Context, string, string, fileengine.Permission, ...fileengine.CallOption) bool

func change(cmd *cobra.Command, args []string, verb, prep string, fn changeFunc) error {
	uid, principal := args[0], args[1]
	perm, err := parse(args[2])
	if err != nil {
		return err
	}
	p, err := cmdutil.Printer(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return cmdutil.WithClient(func(c *fileengine.Client) error {
		if !fn(c, cmd.Context(), uid, principal, perm) {
			return cmdutil.Failed("%s %s on %s for %s", strings.ToLower(verb), perm, uid, principal)
		}
		p.Success(fmt.Sprintf("%s %s on %s %s %s", verb, perm, uid, prep, principal))
		return nil
	})
}

type checkResult struct {
	UID        string `json:"uid" yaml:"uid"`
	Permission string `json:"permission" yaml:"permission"`
	Allowed    bool   `json:"allowed" yaml:"allowed"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	uid := args[0]
	perm, err := parse(args[1])
	if err != nil {
		return err
	}
	p, err := cmdutil.Printer(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return cmdutil.WithClient(func(c *fileengine.Client) error {
		allowed := c.CheckPermission(cmd.Context(), uid, perm)
		if p.Structured() {
			return p.Print(checkResult{UID: uid, Permission: perm.String(), Allowed: allowed}, nil)
		}
		_, err := fmt.Fprintln(p.Out(), cmdutil.BoolToYesNo(allowed))
		return err
	})
}
