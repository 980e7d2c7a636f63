// Package document combines the gap buffer and position tracker into the
// Document: the single-buffer model that insert, delete, and navigate
// operations act on, and that the renderer and history replay against.
//
// A Document is a value passed explicitly to every operation rather than
// global process state, so the engine is reentrant and testable; the
// action-API wrappers in internal/action are a thin adapter that binds a
// UI's default document.
package document

import (
	"errors"

	"github.com/dshills/keystorm/internal/engine/gapbuffer"
	"github.com/dshills/keystorm/internal/engine/tracking"
)

// Invalid is the sentinel a Mark takes once an enclosing delete has
// invalidated it (NullBias policy).
const Invalid = tracking.Invalid

// Errors returned by Document operations.
var (
	// ErrInvalidRange is returned when a delete range is not ordered
	// start <= end in compact order.
	ErrInvalidRange = errors.New("document: invalid range")

	// ErrPositionInvalid is returned when a caller-supplied position does
	// not lie in a valid, readable location.
	ErrPositionInvalid = errors.New("document: position invalid")
)

// Document is the gap-buffer-backed text store with position tracking.
// It is not safe for concurrent use: per the engine's single-threaded
// cooperative scheduling model, all operations on one Document run on one
// goroutine. No snapshot type is provided for rendering on another
// goroutine.
type Document struct {
	buf *gapbuffer.Buffer
	tr  *tracking.Tracker

	curLeftH  tracking.Handle
	curRightH tracking.Handle

	hasSelection bool
	selAnchorH   tracking.Handle

	renderStartH tracking.Handle

	col      int
	colDirty bool
}

// New creates an empty document.
func New() *Document {
	return newFromBuffer(gapbuffer.New())
}

// NewFromBytes creates a document initialized with file content, placed
// flush at the buffer's end so curleft=bufstart and curright=bufend-len.
func NewFromBytes(content []byte) *Document {
	return newFromBuffer(gapbuffer.NewFromBytes(content))
}

func newFromBuffer(buf *gapbuffer.Buffer) *Document {
	d := &Document{
		buf: buf,
		tr:  tracking.New(),
	}
	d.curLeftH = d.tr.Register(buf.CurLeft(), tracking.Policy{})
	d.curRightH = d.tr.Register(buf.CurRight(), tracking.Policy{})
	d.renderStartH = d.tr.Register(buf.BufStart(), tracking.Policy{
		OnDelete: tracking.LeftBias,
		OnInsert: tracking.LeftOfInsert,
	})
	d.colDirty = true
	return d
}

// Reinit atomically swaps in new content, preserving the Document's
// identity: existing pointers to this Document remain valid, but every
// handle (selection, render origin, cursor) is reset as if freshly
// loaded. Mirrors the load-time contract in spec.md §6.
func (d *Document) Reinit(content []byte) {
	buf := gapbuffer.NewFromBytes(content)
	tr := tracking.New()
	d.buf = buf
	d.tr = tr
	d.curLeftH = tr.Register(buf.CurLeft(), tracking.Policy{})
	d.curRightH = tr.Register(buf.CurRight(), tracking.Policy{})
	d.renderStartH = tr.Register(buf.BufStart(), tracking.Policy{
		OnDelete: tracking.LeftBias,
		OnInsert: tracking.LeftOfInsert,
	})
	d.hasSelection = false
	d.colDirty = true
	d.col = 0
}

// BufStart is always 0.
func (d *Document) BufStart() int { return d.buf.BufStart() }

// BufEnd is the current raw length of the backing array.
func (d *Document) BufEnd() int { return d.buf.BufEnd() }

// CurLeft is the raw offset of the gap's left edge (the insertion point).
func (d *Document) CurLeft() int { return d.buf.CurLeft() }

// CurRight is the raw offset of the gap's right edge.
func (d *Document) CurRight() int { return d.buf.CurRight() }

// Cursor is an alias for CurLeft: the position new typing appears at.
func (d *Document) Cursor() int { return d.CurLeft() }

// Len returns the logical (compact) length of the document.
func (d *Document) Len() int { return d.buf.Len() }

// Compact maps a raw offset to its compact, gap-collapsed coordinate, used
// to order two positions.
func (d *Document) Compact(raw int) int { return d.buf.Compact(raw) }

// Before reports whether raw offset a logically precedes b.
func (d *Document) Before(a, b int) bool { return d.Compact(a) < d.Compact(b) }

// RawFromLogical maps a logical (compact) index back to its current raw
// offset. History entries are addressed by logical index rather than a
// stashed raw offset, since unrelated edits may run between an entry's
// recording and its eventual undo.
func (d *Document) RawFromLogical(idx int) int { return d.buf.RawFromCompact(idx) }

// RenderStart is the raw offset of the first byte the renderer draws.
func (d *Document) RenderStart() int { return d.tr.Value(d.renderStartH) }

// SetRenderStart forcibly relocates the render origin (used by Scroll).
func (d *Document) SetRenderStart(raw int) { d.tr.Set(d.renderStartH, raw) }

// SelAnchor returns the selection anchor and whether a selection exists.
func (d *Document) SelAnchor() (int, bool) {
	if !d.hasSelection {
		return 0, false
	}
	if !d.tr.IsValid(d.selAnchorH) {
		d.hasSelection = false
		return 0, false
	}
	return d.tr.Value(d.selAnchorH), true
}

// ClearSelection sets selanchor = null.
func (d *Document) ClearSelection() {
	if d.hasSelection {
		d.tr.Unregister(d.selAnchorH)
		d.hasSelection = false
	}
}

// SelectionRange returns the selection span in raw order (lo, hi) with
// lo compact-before-or-equal hi, or ok=false if there is no selection.
func (d *Document) SelectionRange() (lo, hi int, ok bool) {
	anchor, has := d.SelAnchor()
	if !has {
		return 0, 0, false
	}
	cur := d.CurLeft()
	if d.Before(anchor, cur) {
		return anchor, cur, true
	}
	return cur, anchor, true
}

// isColDirty reports whether the cached visual column needs recomputing.
func (d *Document) isColDirty() bool { return d.colDirty }

// Col returns the cached visual column of the insertion point.
func (d *Document) Col() int { return d.col }

// SetCol sets the cached visual column and clears the dirty flag; used by
// vertical navigation to preserve the column across short lines.
func (d *Document) SetCol(c int) {
	d.col = c
	d.colDirty = false
}

// markDirty flags the column cache stale; called by every edit and
// horizontal move.
func (d *Document) markDirty() { d.colDirty = true }

// registerScoped registers a temporary handle a caller can read back after
// an operation to see where a position ended up, per spec.md §4.4/§9:
// "the supplied pos is itself registered with neutral policy for the
// duration so a caller can observe its new location."
func (d *Document) registerScoped(raw int, policy tracking.Policy) tracking.Handle {
	return d.tr.Register(raw, policy)
}

func (d *Document) readScoped(h tracking.Handle) int {
	return d.tr.Value(h)
}

func (d *Document) unregisterScoped(h tracking.Handle) {
	d.tr.Unregister(h)
}

// Mark registers raw as a tracked position under policy, returning a
// handle a caller can read back with MarkValue after performing edits
// elsewhere in the document. This is the exported form of the scoped
// handles Insert/DeleteRange use internally, for callers (like a
// multi-line reindent) that must touch several locations in one logical
// operation and restore the user's cursor/selection afterward, since
// each individual Insert/DeleteRange retargets curLeftH/curRightH to its
// own edit site.
func (d *Document) Mark(raw int, policy tracking.Policy) tracking.Handle {
	return d.tr.Register(raw, policy)
}

// MarkValue returns the current raw offset of a Mark, or Invalid if an
// enclosing delete invalidated it under NullBias.
func (d *Document) MarkValue(h tracking.Handle) int {
	return d.tr.Value(h)
}

// Unmark releases a handle obtained from Mark.
func (d *Document) Unmark(h tracking.Handle) {
	d.tr.Unregister(h)
}
