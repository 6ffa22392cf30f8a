// Package script runs line-oriented editing scripts against an editor.
//
// A script is plain text, one command per line:
//
//	load res/flower.png
//	apply mosaic 500
//	apply sepia
//	save out/flower-mosaic.png
//	generate france 300
//	generate rainbow vertical 400 200
//	undo
//	redo
//
// The command word is case-insensitive. Blank lines and lines starting with
// '#' are skipped. Extra trailing words are ignored. The first failing line
// stops the run; its error carries the 1-based line number.
package script

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/ironsheep/image-edit-mcp/internal/editerr"
	"github.com/ironsheep/image-edit-mcp/internal/imaging"
	"github.com/ironsheep/image-edit-mcp/internal/pattern"
)

// Editor is the subset of session.Editor a script drives.
type Editor interface {
	Load(path string) error
	Save(path string) error
	Replace(b *imaging.Buffer, source string) error
	Apply(name string) error
	Mosaic(seeds int) error
	Undo() error
	Redo() error
	Loaded() bool
}

// LineError reports the script line that failed.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d (%q): %v", e.Line, e.Text, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// Runner executes scripts.
type Runner struct {
	editor Editor
	logger *log.Logger
}

// NewRunner creates a runner over editor. A nil logger discards.
func NewRunner(editor Editor, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{editor: editor, logger: logger}
}

// Run executes every line of r in order. It returns the number of commands
// executed and stops at the first failure or when ctx is cancelled.
func (r *Runner) Run(ctx context.Context, in io.Reader) (int, error) {
	scanner := bufio.NewScanner(in)
	lineNo, executed := 0, 0
	for scanner.Scan() {
		lineNo++
		if err := ctx.Err(); err != nil {
			return executed, err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := r.exec(strings.Fields(line)); err != nil {
			return executed, &LineError{Line: lineNo, Text: line, Err: err}
		}
		executed++
		r.logger.Debug("script command", "line", lineNo, "command", line)
	}
	if err := scanner.Err(); err != nil {
		return executed, fmt.Errorf("read script: %w", err)
	}
	return executed, nil
}

func (r *Runner) exec(words []string) error {
	cmd, args := strings.ToLower(words[0]), words[1:]
	switch cmd {
	case "load":
		if len(args) < 1 {
			return invalid("load needs a file path")
		}
		return r.editor.Load(args[0])
	case "save":
		if !r.editor.Loaded() {
			return editerr.New(editerr.ErrCodeEmptyHistory, "nothing to save: no image loaded yet")
		}
		if len(args) < 1 {
			return invalid("save needs a file path")
		}
		return r.editor.Save(args[0])
	case "generate":
		return r.generate(args)
	case "apply":
		return r.apply(args)
	case "undo":
		return r.editor.Undo()
	case "redo":
		return r.editor.Redo()
	default:
		return invalid("unknown command %q", cmd)
	}
}

func (r *Runner) generate(args []string) error {
	if len(args) < 1 {
		return invalid("generate needs a pattern name")
	}
	req := pattern.Request{Pattern: strings.ToLower(args[0])}
	if req.Pattern == "rainbow" {
		if len(args) < 4 {
			return invalid("usage: generate rainbow horizontal|vertical <width> <height>")
		}
		req.Orientation = args[1]
		var err error
		if req.Width, err = atoi(args[2], "width"); err != nil {
			return err
		}
		if req.Height, err = atoi(args[3], "height"); err != nil {
			return err
		}
	} else {
		if len(args) < 2 {
			return invalid("usage: generate %s <size>", req.Pattern)
		}
		var err error
		if req.Size, err = atoi(args[1], "size"); err != nil {
			return err
		}
	}

	b, err := pattern.Generate(req)
	if err != nil {
		return err
	}
	return r.editor.Replace(b, req.Pattern)
}

func (r *Runner) apply(args []string) error {
	if len(args) < 1 {
		return invalid("apply needs a filter name")
	}
	name := strings.ToLower(args[0])
	if name != "mosaic" {
		return r.editor.Apply(name)
	}
	if len(args) < 2 {
		return invalid("usage: apply mosaic <seeds>")
	}
	seeds, err := atoi(args[1], "seeds")
	if err != nil {
		return err
	}
	return r.editor.Mosaic(seeds)
}

func atoi(s, what string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, invalid("%s must be a whole number, got %q", what, s)
	}
	return n, nil
}

func invalid(format string, args ...any) error {
	return editerr.New(editerr.ErrCodeInvalidInput, format, args...)
}
