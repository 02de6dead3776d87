package commands

import (
	"context"
	"fmt"
	"io"
	"net"

	"github.com/spf13/cobra"

	"github.com/marmos91/fileengine/cmd/fectl/cmdutil"
	"github.com/marmos91/fileengine/internal/cli/timeutil"
	"github.com/marmos91/fileengine/internal/logger"
	"github.com/marmos91/fileengine/internal/sandbox"
	"github.com/marmos91/fileengine/pkg/authctx"
	"github.com/marmos91/fileengine/pkg/fileengine"
)

var demoLocal bool

// demoIdentity is a superuser, so that the walkthrough is not stopped by
// permission checks.
var demoIdentity = authctx.Defaults{
	User:   "root",
	Tenant: "default",
	Roles:  []string{"admin", "superuser"},
	Claims: authctx.Flags("read", "write", "delete", "admin"),
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Walk through the client operations",
	Long: `Run a scripted walkthrough of the client: create a directory tree, write
and read a file, list versions, grant and check permissions, read storage
usage, restore and purge versions.

The demo runs as user "root" with the admin and superuser roles in tenant
"default". With --local it starts an in-memory service first and talks to it
instead of the configured server.

Examples:
  fectl demo --local
  fectl demo --server files.example.com:50051`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

func init() {
	demoCmd.Flags().BoolVar(&demoLocal, "local", false, "Run against an in-process sandbox")
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg := *cmdutil.Cfg
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if demoLocal {
		lis, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("failed to start sandbox: %w", err)
		}
		srv := sandbox.NewServer(lis.Addr().String(), "", nil)
		done := make(chan error, 1)
		go func() { done <- srv.ServeListener(ctx, lis) }()
		defer func() {
			cancel()
			if err := <-done; err != nil {
				logger.Warn("sandbox stopped with error", logger.Err(err))
			}
		}()

		cfg.Server.Address = lis.Addr().String()
		cfg.Server.Insecure = true
	}

	client, err := cmdutil.NewClientAs(&cfg, demoIdentity)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	d := &demo{ctx: ctx, c: client, out: cmd.OutOrStdout()}
	d.run()
	if d.failures > 0 {
		return cmdutil.Failed("demo: %d step(s)", d.failures)
	}
	_, _ = fmt.Fprintln(d.out, "\nDemo completed successfully!")
	return nil
}

type demo struct {
	ctx      context.Context
	c        *fileengine.Client
	out      io.Writer
	failures int
}

func (d *demo) step(ok bool, format string, args ...any) bool {
	if !ok {
		d.failures++
		format = "FAILED: " + format
	}
	_, _ = fmt.Fprintf(d.out, format+"\n", args...)
	return ok
}

func (d *demo) section(title string) {
	_, _ = fmt.Fprintf(d.out, "\n--- %s ---\n", title)
}

func (d *demo) run() {
	root, ok := d.c.Mkdir(d.ctx, "", "demo_root")
	if !d.step(ok, "Created root directory with UID: %s", root) {
		return
	}
	sub, ok := d.c.Mkdir(d.ctx, root, "subdir")
	if !d.step(ok, "Created subdirectory with UID: %s", sub) {
		return
	}
	file, ok := d.c.Touch(d.ctx, sub, "demo_file.txt")
	if !d.step(ok, "Created file with UID: %s", file) {
		return
	}

	content := "This is a demo file for the FileEngine Go client."
	put, ok := d.c.PutString(d.ctx, file, content)
	d.step(ok, "Written content with version timestamp: %s", put.Version)

	if r, ok := d.c.Get(d.ctx, file, 0); d.step(ok, "Read content:") {
		data, _ := io.ReadAll(r)
		_, _ = fmt.Fprintf(d.out, "  %q\n", data)
	}

	entries := d.c.Dir(d.ctx, root, false)
	d.step(len(entries) > 0, "Directory contents: %d entries", len(entries))
	for _, e := range entries {
		_, _ = fmt.Fprintf(d.out, "  %s  %s  %s\n", e.UID, e.Type, e.Name)
	}

	_, ok = d.c.PutString(d.ctx, file, content+" Second revision.")
	d.step(ok, "Written a second version")
	revisions := d.c.Revisions(d.ctx, file)
	d.step(len(revisions) > 0, "File revisions: %d", len(revisions))
	for _, r := range revisions {
		_, _ = fmt.Fprintf(d.out, "  %s  %s\n", r.Version, timeutil.FormatVersion(r.Version))
	}

	name := d.c.FileName(d.ctx, file)
	d.step(len(name) == 1, "File name: %v", name)
	mtime, ok := d.c.FileMtime(d.ctx, file)
	d.step(ok, "Modification time: %s", timeutil.FormatTime(mtime))

	d.section("Permission Operations")
	d.step(d.c.GrantPermission(d.ctx, file, "demo_user", fileengine.PermRead), "Granted read permission to demo_user")
	d.step(d.c.CheckPermission(d.ctx, file, fileengine.PermRead), "User has read permission")
	d.step(d.c.RevokePermission(d.ctx, file, "demo_user", fileengine.PermRead), "Revoked read permission from demo_user")

	d.section("Status Operations")
	if usage := d.c.StorageUsage(d.ctx); d.step(usage != nil, "Storage usage:") {
		_, _ = fmt.Fprintf(d.out, "  used %s of %s (%.2f%%)\n",
			timeutil.FormatBytes(usage.UsedSpace), timeutil.FormatBytes(usage.TotalSpace), usage.UsagePercentage)
	}
	d.step(d.c.TriggerSync(d.ctx), "Sync triggered")

	if len(revisions) > 1 {
		restored, ok := d.c.RestoreToVersion(d.ctx, file, revisions[1].Version)
		d.step(ok, "Restored to version %s as %s", revisions[1].Version, restored)
	}
	d.step(d.c.PurgeOldVersions(d.ctx, file, 2), "Purged old versions, kept 2")
}
