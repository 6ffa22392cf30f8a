// Package session holds the single live image being edited together with its
// undo/redo history.
//
// An Editor is what the outer surfaces talk to. Every editing operation runs
// on a private clone of the live image and is committed to the history only
// when it succeeds, so a failed operation never leaves a half-edited image
// behind.
package session

import (
	"image"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ironsheep/image-edit-mcp/internal/editerr"
	"github.com/ironsheep/image-edit-mcp/internal/history"
	"github.com/ironsheep/image-edit-mcp/internal/imaging"
)

// Store reads and writes images. imaging.FileStore is the production
// implementation.
type Store interface {
	Open(path string) (*imaging.Buffer, error)
	Save(path string, b *imaging.Buffer) error
}

// Option configures an Editor.
type Option func(*Editor)

// WithHistoryCapacity sets how many states the undo history retains.
// Values below history.MinCapacity make New fail.
func WithHistoryCapacity(n int) Option {
	return func(e *Editor) { e.capacity = n }
}

// WithRand sets the random source used to place mosaic seeds.
func WithRand(r *rand.Rand) Option {
	return func(e *Editor) { e.rng = r }
}

// WithLogger sets the logger for operation timing. The default discards.
func WithLogger(l *log.Logger) Option {
	return func(e *Editor) { e.logger = l }
}

// Editor is the editing session.
//
// Editor is not safe for concurrent use.
type Editor struct {
	store    Store
	capacity int
	rng      *rand.Rand
	logger   *log.Logger

	hist   *history.Buffer // nil until the first Load or Replace
	source string
}

// New creates an editor with nothing loaded.
//
// # Errors
//
//   - INVALID_DIMENSION if the history capacity is below history.MinCapacity
func New(store Store, opts ...Option) (*Editor, error) {
	e := &Editor{
		store:    store,
		capacity: history.DefaultCapacity,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.capacity < history.MinCapacity {
		return nil, editerr.New(editerr.ErrCodeInvalidDimension,
			"history capacity %d below minimum %d", e.capacity, history.MinCapacity)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}
	return e, nil
}

// Status summarizes the session for reporting.
type Status struct {
	Loaded     bool   `json:"loaded"`
	Source     string `json:"source,omitempty"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	HistoryLen int    `json:"history_len"`
	RedoLen    int    `json:"redo_len"`
	Capacity   int    `json:"capacity"`
	CanUndo    bool   `json:"can_undo"`
	CanRedo    bool   `json:"can_redo"`
}

// Load opens path and makes it the live image. The history restarts with the
// loaded image as its only state.
//
// On error the session is unchanged.
func (e *Editor) Load(path string) error {
	start := time.Now()
	b, err := e.store.Open(path)
	if err != nil {
		return err
	}
	h, err := history.NewWithCapacity(e.capacity)
	if err != nil {
		return err
	}
	h.Add(b)
	e.hist = h
	e.source = path
	e.logger.Debug("loaded image", "path", path,
		"width", b.Width(), "height", b.Height(), "elapsed", time.Since(start))
	return nil
}

// Replace swaps in b wholesale, for example a freshly generated pattern. The
// previous image stays reachable through Undo. If nothing was loaded yet,
// the history starts here.
func (e *Editor) Replace(b *imaging.Buffer, source string) error {
	if e.hist == nil {
		h, err := history.NewWithCapacity(e.capacity)
		if err != nil {
			return err
		}
		e.hist = h
	}
	e.hist.Add(b)
	e.source = source
	e.logger.Debug("replaced image", "source", source,
		"width", b.Width(), "height", b.Height(), "history", e.hist)
	return nil
}

// Save writes the live image to path through the store.
//
// # Errors
//
//   - EMPTY_HISTORY if nothing is loaded
//   - whatever the store reports
func (e *Editor) Save(path string) error {
	start := time.Now()
	b, err := e.live()
	if err != nil {
		return err
	}
	if err := e.store.Save(path, b); err != nil {
		return err
	}
	e.logger.Debug("saved image", "path", path, "elapsed", time.Since(start))
	return nil
}

// Apply runs the named filter (grayscale, sepia, blur, sharpen or dither).
func (e *Editor) Apply(name string) error {
	f, err := imaging.LookupFilter(name)
	if err != nil {
		return err
	}
	return e.transform(name, f)
}

// Mosaic segments the live image into seeds cells.
func (e *Editor) Mosaic(seeds int) error {
	return e.transform("mosaic", func(b *imaging.Buffer) error {
		return imaging.Mosaic(b, seeds, e.rng)
	})
}

func (e *Editor) transform(name string, f imaging.Transform) error {
	start := time.Now()
	cur, err := e.live()
	if err != nil {
		return err
	}
	work := cur.Clone()
	if err := f(work); err != nil {
		return err
	}
	e.hist.Add(work)
	e.logger.Debug("applied filter", "filter", name,
		"elapsed", time.Since(start), "history", e.hist)
	return nil
}

// Undo steps back one state. It is a no-op when there is nothing to undo.
func (e *Editor) Undo() error {
	if e.hist == nil {
		return editerr.New(editerr.ErrCodeEmptyHistory, "no image loaded")
	}
	e.hist.Undo()
	e.logger.Debug("undo", "history", e.hist)
	return nil
}

// Redo re-applies the most recently undone state. It is a no-op when there
// is nothing to redo.
func (e *Editor) Redo() error {
	if e.hist == nil {
		return editerr.New(editerr.ErrCodeEmptyHistory, "no image loaded")
	}
	e.hist.Redo()
	e.logger.Debug("redo", "history", e.hist)
	return nil
}

// CanUndo reports whether Undo would change the live image.
func (e *Editor) CanUndo() bool { return e.hist != nil && e.hist.CanUndo() }

// CanRedo reports whether Redo would change the live image.
func (e *Editor) CanRedo() bool { return e.hist != nil && e.hist.CanRedo() }

// Loaded reports whether there is a live image.
func (e *Editor) Loaded() bool { return e.hist != nil }

// Current returns a copy of the live image.
func (e *Editor) Current() (*imaging.Buffer, error) {
	b, err := e.live()
	if err != nil {
		return nil, err
	}
	return b.Clone(), nil
}

// Image returns the live image as an NRGBA copy.
func (e *Editor) Image() (image.Image, error) {
	b, err := e.live()
	if err != nil {
		return nil, err
	}
	return b.Image(), nil
}

// Status reports the live image size and history depth.
func (e *Editor) Status() Status {
	st := Status{Capacity: e.capacity}
	if e.hist == nil {
		return st
	}
	b, _ := e.hist.Current()
	st.Loaded = true
	st.Source = e.source
	st.Width, st.Height = b.Width(), b.Height()
	st.HistoryLen = e.hist.Len()
	st.RedoLen = e.hist.RedoLen()
	st.CanUndo = e.hist.CanUndo()
	st.CanRedo = e.hist.CanRedo()
	return st
}

// live returns the history's current state without copying.
func (e *Editor) live() (*imaging.Buffer, error) {
	if e.hist == nil {
		return nil, editerr.New(editerr.ErrCodeEmptyHistory, "no image loaded")
	}
	return e.hist.Current()
}
