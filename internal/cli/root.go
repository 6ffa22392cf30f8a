package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ironsheep/image-edit-mcp/internal/config"
	"github.com/ironsheep/image-edit-mcp/internal/editerr"
	"github.com/ironsheep/image-edit-mcp/internal/imaging"
	"github.com/ironsheep/image-edit-mcp/internal/script"
	"github.com/ironsheep/image-edit-mcp/internal/server"
	"github.com/ironsheep/image-edit-mcp/internal/session"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// SetVersion sets the version information shown by --version and reported
// to MCP clients. main calls it with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the CLI. A failure is logged to stderr as its user-facing
// message, with the error code and script line as fields when present.
func Execute() error {
	cmd, err := newRootCmd().ExecuteContextC(context.Background())
	if err != nil {
		w := io.Writer(os.Stderr)
		if cmd != nil {
			w = cmd.ErrOrStderr()
		}
		reportError(w, err)
	}
	return err
}

func reportError(w io.Writer, err error) {
	var kv []interface{}
	if code := editerr.GetCode(err); code != "" {
		kv = append(kv, "code", code)
	}
	var lerr *script.LineError
	if errors.As(err, &lerr) {
		kv = append(kv, "line", lerr.Line)
	}
	newLogger(w, charmlog.InfoLevel).Error(editerr.UserMessage(err), kv...)
}

// rootOptions carries the persistent flags and the config they resolve to.
type rootOptions struct {
	configPath string
	verbose    bool
	cfg        config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "image-edit-mcp",
		Short: "MCP server for editing raster images",
		Long: `image-edit-mcp edits one image at a time through a fixed catalogue of filters
(grayscale, sepia, blur, sharpen, dither, mosaic) with bounded undo/redo.

Run without a subcommand it serves the Model Context Protocol over stdin/stdout;
configure it in your MCP client. Use "script" to run a command file instead.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			opts.cfg = cfg

			level := cfg.Level()
			if opts.verbose {
				level = charmlog.DebugLevel
			}
			logger := newLogger(cmd.ErrOrStderr(), level)
			cmd.SetContext(withLogger(cmd.Context(), logger))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("image-edit-mcp %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a TOML config file")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newScriptCmd(opts))

	return root
}

// newEditor builds the editing session the config describes.
func newEditor(cmd *cobra.Command, cfg config.Config) (*session.Editor, error) {
	return session.New(imaging.NewFileStore(),
		session.WithHistoryCapacity(cfg.HistoryCapacity),
		session.WithRand(cfg.Rand()),
		session.WithLogger(loggerFromContext(cmd.Context())),
	)
}

func runServe(cmd *cobra.Command, opts *rootOptions) error {
	logger := loggerFromContext(cmd.Context())
	ed, err := newEditor(cmd, opts.cfg)
	if err != nil {
		return err
	}

	srv := server.New(ed,
		server.WithLogger(logger),
		server.WithPreviewMaxDimension(opts.cfg.Preview.MaxDimension),
		server.WithVersion(version),
	)
	logger.Debug("serving MCP on stdio", "version", version, "commit", commit, "pid", os.Getpid())
	if err := srv.Serve(cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}
