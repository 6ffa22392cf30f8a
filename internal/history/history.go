// Package history keeps a bounded undo/redo history of image buffers.
//
// The history is a fixed-capacity ring with two cursors: head is the current
// state and tail the oldest state still retained. Once the ring is full, a new
// state overwrites the oldest one. States removed by Undo go onto a separate,
// unbounded redo stack that any Add discards.
//
// Every stored entry is a private deep copy; nothing in the history aliases a
// buffer the caller still edits.
package history

import (
	"fmt"

	"github.com/ironsheep/image-edit-mcp/internal/editerr"
	"github.com/ironsheep/image-edit-mcp/internal/imaging"
)

// DefaultCapacity is the number of states retained when no capacity is given.
const DefaultCapacity = 10

// MinCapacity is the smallest usable ring: one current state plus one to
// undo into.
const MinCapacity = 2

// Buffer is the undo/redo history. The zero value is not usable; call New.
//
// head == tail holds exactly when at most one state is retained. The redo
// stack is non-empty only between an Undo and the next Add.
//
// Buffer is not safe for concurrent use.
type Buffer struct {
	ring  []*imaging.Buffer
	head  int
	tail  int
	empty bool
	redo  []*imaging.Buffer
}

// New creates a history with DefaultCapacity slots.
func New() *Buffer {
	h, _ := NewWithCapacity(DefaultCapacity)
	return h
}

// NewWithCapacity creates a history holding up to capacity states.
// Capacities below MinCapacity are rejected with INVALID_DIMENSION.
func NewWithCapacity(capacity int) (*Buffer, error) {
	if capacity < MinCapacity {
		return nil, editerr.New(editerr.ErrCodeInvalidDimension,
			"history capacity %d below minimum %d", capacity, MinCapacity)
	}
	return &Buffer{
		ring:  make([]*imaging.Buffer, capacity),
		empty: true,
	}, nil
}

// Capacity returns the number of ring slots.
func (h *Buffer) Capacity() int { return len(h.ring) }

// Add stores a deep copy of b as the new current state and discards any
// pending redo states. When the ring is full the oldest state is dropped.
func (h *Buffer) Add(b *imaging.Buffer) {
	entry := b.Clone()
	if !h.empty {
		h.advanceHead()
	}
	h.ring[h.head] = entry
	h.empty = false
	clear(h.redo)
	h.redo = h.redo[:0]
}

// Undo steps back one state. It does nothing when there is no older state.
func (h *Buffer) Undo() {
	if h.head == h.tail {
		return
	}
	h.redo = append(h.redo, h.ring[h.head])
	h.ring[h.head] = nil
	h.head = (h.head - 1 + len(h.ring)) % len(h.ring)
}

// Redo re-applies the most recently undone state. It does nothing when the
// redo stack is empty.
func (h *Buffer) Redo() {
	n := len(h.redo)
	if n == 0 {
		return
	}
	entry := h.redo[n-1]
	h.redo[n-1] = nil
	h.redo = h.redo[:n-1]

	h.advanceHead()
	h.ring[h.head] = entry
}

// Current returns the state at head. The returned buffer belongs to the
// history; callers that intend to mutate it must Clone it first.
//
// # Errors
//
//   - EMPTY_HISTORY if nothing has been added yet
func (h *Buffer) Current() (*imaging.Buffer, error) {
	if h.empty {
		return nil, editerr.New(editerr.ErrCodeEmptyHistory, "no image in history")
	}
	return h.ring[h.head], nil
}

// CanUndo reports whether Undo would change the current state.
func (h *Buffer) CanUndo() bool { return h.head != h.tail }

// CanRedo reports whether Redo would change the current state.
func (h *Buffer) CanRedo() bool { return len(h.redo) > 0 }

// Len returns the number of retained states, not counting redo states.
func (h *Buffer) Len() int {
	if h.empty {
		return 0
	}
	return (h.head-h.tail+len(h.ring))%len(h.ring) + 1
}

// RedoLen returns the number of states waiting on the redo stack.
func (h *Buffer) RedoLen() int { return len(h.redo) }

// String describes the cursor state, for logs.
func (h *Buffer) String() string {
	return fmt.Sprintf("history{head=%d tail=%d len=%d redo=%d cap=%d}",
		h.head, h.tail, h.Len(), len(h.redo), len(h.ring))
}

// advanceHead moves head forward one slot. If head lands on tail the ring is
// full and tail moves too, evicting the oldest state.
func (h *Buffer) advanceHead() {
	h.head = (h.head + 1) % len(h.ring)
	if h.head == h.tail {
		h.ring[h.tail] = nil
		h.tail = (h.tail + 1) % len(h.ring)
	}
}
