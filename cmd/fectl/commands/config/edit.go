package config

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/marmos91/fileengine/cmd/fectl/cmdutil"
	"github.com/marmos91/fileengine/pkg/config"
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open configuration in editor",
	Long: `Open the configuration file in $EDITOR, falling back to $VISUAL and vi.
The file is validated after the editor exits.`,
	Annotations: skipSetup,
	Args:        cobra.NoArgs,
	RunE:        runEdit,
}

func runEdit(cmd *cobra.Command, args []string) error {
	configPath := cmdutil.EmptyOr(cmdutil.Flags.ConfigFile, config.GetDefaultConfigPath())

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return fmt.Errorf("configuration file not found: %s\n\n"+
			"Create it first with:\n"+
			"  fectl config init --config %s",
			configPath, configPath)
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		editor = "vi"
	}

	editorCmd := exec.Command(editor, configPath)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr
	if err := editorCmd.Run(); err != nil {
		return fmt.Errorf("failed to run editor: %w", err)
	}

	if _, err := config.MustLoad(configPath); err != nil {
		return fmt.Errorf("configuration is invalid after editing: %w", err)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Configuration is valid.")
	return nil
}
