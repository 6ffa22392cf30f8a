package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ironsheep/image-edit-mcp/internal/script"
)

func newScriptCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "script <file>",
		Short: "Run a file of editing commands",
		Long: `Run editing commands from a file, one per line. Use "-" to read stdin.

Commands:
  load <path>
  save <path>
  generate france|greece|switzerland <height>
  generate checkerboard <square-size>
  generate rainbow horizontal|vertical <width> <height>
  apply grayscale|sepia|blur|sharpen|dither
  apply mosaic <seeds>
  undo
  redo

Blank lines and lines starting with # are ignored. The run stops at the first
failing line.`,
		Example: `  image-edit-mcp script edits.txt
  echo "generate france 300
save flag.png" | image-edit-mcp script -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(cmd, opts, args[0])
		},
	}
}

func runScript(cmd *cobra.Command, opts *rootOptions, path string) error {
	logger := loggerFromContext(cmd.Context())
	prog := newProgress(logger)

	var in io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open script: %w", err)
		}
		defer f.Close()
		in = f
	}

	ed, err := newEditor(cmd, opts.cfg)
	if err != nil {
		return err
	}

	n, err := script.NewRunner(ed, logger).Run(cmd.Context(), in)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Ran %d commands", n))
	return nil
}
