package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/marmos91/fileengine/cmd/fectl/cmdutil"
	"github.com/marmos91/fileengine/pkg/fileengine"
)

var (
	getBack int
	getOut  string
)

var touchCmd = &cobra.Command{
	Use:   "touch <parent-uid> <name>",
	Short: "Create an empty file",
	Long: `Create an empty file named <name> under <parent-uid> and print its UID.

Examples:
  fectl touch 1b4e28ba-2fa1-11d2-883f-0016d3cca427 notes.txt`,
	Args: cobra.ExactArgs(2),
	RunE: runTouch,
}

var putCmd = &cobra.Command{
	Use:   "put <uid> [file|-]",
	Short: "Store a new version of a file",
	Long: `Store the content of a local file, or of standard input, as a new version
of <uid>. Without a file argument, or with "-", standard input is read.

Examples:
  fectl put 1b4e28ba-2fa1-11d2-883f-0016d3cca427 report.pdf
  echo "hello" | fectl put 1b4e28ba-2fa1-11d2-883f-0016d3cca427`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runPut,
}

var getCmd = &cobra.Command{
	Use:   "get <uid>",
	Short: "Read the content of a file",
	Long: `Write the content of <uid> to standard output or to --out.

With --back N the content of the version N steps behind the latest is read;
0 is the latest version.

Examples:
  fectl get 1b4e28ba-2fa1-11d2-883f-0016d3cca427
  fectl get 1b4e28ba-2fa1-11d2-883f-0016d3cca427 --back 1 --out previous.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func init() {
	getCmd.Flags().IntVar(&getBack, "back", 0, "Versions behind the latest (0 is the latest)")
	getCmd.Flags().StringVar(&getOut, "out", "", "Write the content to this file instead of stdout")
}

func runTouch(cmd *cobra.Command, args []string) error {
	p, err := cmdutil.Printer(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return cmdutil.WithClient(func(c *fileengine.Client) error {
		uid, ok := c.Touch(cmd.Context(), args[0], args[1])
		if !ok {
			return cmdutil.Failed("touch %s", args[1])
		}
		return printUID(p, uid)
	})
}

func runPut(cmd *cobra.Command, args []string) error {
	payload, err := readPayload(cmd.InOrStdin(), args[1:])
	if err != nil {
		return err
	}
	p, err := cmdutil.Printer(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return cmdutil.WithClient(func(c *fileengine.Client) error {
		result, ok := c.Put(cmd.Context(), args[0], payload)
		if !ok {
			return cmdutil.Failed("put %s", args[0])
		}
		if p.Structured() {
			return p.Print(result, nil)
		}
		p.Success(fmt.Sprintf("Stored %d bytes as version %s", len(payload), result.Version))
		return nil
	})
}

// readPayload reads the named file, or stdin when no name or "-" is given.
func readPayload(stdin io.Reader, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return data, nil
}

func runGet(cmd *cobra.Command, args []string) error {
	return cmdutil.WithClient(func(c *fileengine.Client) error {
		content, ok := c.Get(cmd.Context(), args[0], getBack)
		if !ok {
			return cmdutil.Failed("get %s", args[0])
		}

		if getOut == "" {
			_, err := io.Copy(cmd.OutOrStdout(), content)
			return err
		}

		f, err := os.Create(getOut)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", getOut, err)
		}
		if _, err := io.Copy(f, content); err != nil {
			_ = f.Close()
			return fmt.Errorf("failed to write %s: %w", getOut, err)
		}
		return f.Close()
	})
}
