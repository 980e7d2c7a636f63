// Package tracking implements the position tracker: the Document's internal
// discipline for keeping every live handle into the gap buffer consistent
// across grows, inserts, deletes, and gap moves. It is invisible from
// outside the Document.
//
// The tracker never decides *when* an event happens; the Document drives
// each gapbuffer.Buffer mutation and then calls the matching On* method
// here so every registered handle gets rewritten together. Two passes are
// used throughout: new values are computed into a pending field from the
// *old* values of every handle (including handles that are themselves
// being updated this pass), then committed in a second pass. This matters
// because most policies need to compare against curleft/curright's old
// value while those same fields are being recomputed.
package tracking

import "github.com/dshills/keystorm/internal/engine/gapbuffer"

// Invalid is the sentinel value a handle takes when its policy is NullBias
// and the range containing it is deleted.
const Invalid = -1

// Handle identifies a registered position. It is stable across grows and
// gap moves — the tracker rewrites the raw offset underneath it, never the
// Handle's identity.
type Handle uint32

type entry struct {
	value   int
	pending int
	policy  Policy
}

// Tracker is the multiset of registered handles.
type Tracker struct {
	entries map[Handle]*entry
	nextID  Handle
}

// New creates an empty tracker.
func New() *Tracker {
	return &Tracker{entries: make(map[Handle]*entry)}
}

// Register adds a handle at the given raw offset with the given policy and
// returns its stable id.
func (t *Tracker) Register(value int, policy Policy) Handle {
	t.nextID++
	id := t.nextID
	t.entries[id] = &entry{value: value, policy: policy}
	return id
}

// Unregister removes a handle. Unlike the C source's refcounted multiset
// (needed because it registered raw pointers into shared storage), Go's
// Register returns a fresh, independently-owned id per call, so there is
// no aliasing to refcount: removing is unconditional.
func (t *Tracker) Unregister(h Handle) {
	delete(t.entries, h)
}

// Value returns the handle's current raw offset, or Invalid if it has been
// nulled out by a NullBias delete.
func (t *Tracker) Value(h Handle) int {
	e, ok := t.entries[h]
	if !ok {
		return Invalid
	}
	return e.value
}

// Set forcibly overwrites a handle's raw offset, bypassing any policy.
// Used by the Document to seed builtin handles (curleft, curright,
// renderstart) after operations that already know the exact new value.
func (t *Tracker) Set(h Handle, value int) {
	if e, ok := t.entries[h]; ok {
		e.value = value
	}
}

// IsValid reports whether h is registered and not nulled out.
func (t *Tracker) IsValid(h Handle) bool {
	e, ok := t.entries[h]
	return ok && e.value != Invalid
}

// OnGrow rebases every handle after the backing array reallocates.
// Handles at or past the old gap's right edge (the lower section) shift by
// g.Delta; handles before it (the upper section) are untouched.
func (t *Tracker) OnGrow(g gapbuffer.Grow) {
	for _, e := range t.entries {
		if e.value >= g.OldEnd {
			e.pending = e.value + g.Delta
		} else {
			e.pending = e.value
		}
	}
	t.flip()
}

// OnGapMove rebases every handle after the gap relocates. curLeft and
// curRight identify the two handles that slide with the gap's edges
// directly (they are exempt from the generic shift-by-span rule); every
// other handle keeps its logical position. On a leftward move (Delta > 0)
// handles in (shift.Lo, shift.Hi] shift by shift.Delta — Hi is the old
// curleft, which would otherwise fall inside the new gap — while a handle
// at Lo stays put as the new curleft. On a rightward move (Delta < 0)
// handles in [shift.Lo, shift.Hi] shift, so a handle at the target ends at
// the new curleft. Either way a handle at the gap's new position reads as
// the insertion point, which OnInsert relies on. Every other handle is
// untouched — the compact() projection does the rest of the work.
func (t *Tracker) OnGapMove(shift gapbuffer.Shift, curLeft, curRight Handle, newCurLeft, newCurRight int) {
	for id, e := range t.entries {
		switch id {
		case curLeft:
			e.pending = newCurLeft
		case curRight:
			e.pending = newCurRight
		default:
			in := e.value > shift.Lo && e.value <= shift.Hi
			if shift.Delta < 0 {
				in = e.value >= shift.Lo && e.value <= shift.Hi
			}
			if in {
				e.pending = e.value + shift.Delta
			} else {
				e.pending = e.value
			}
		}
	}
	t.flip()
}

// OnInsert resolves handles sitting exactly at the insertion point P after
// len bytes were written there. A handle left there by the preceding gap
// move already reads as "before the inserted text" (LeftOfInsert) for
// free, since P remains a valid raw offset once the gap's left edge moves
// past it to P+len; RightOfInsert handles are explicitly advanced.
func (t *Tracker) OnInsert(p, length int) {
	for _, e := range t.entries {
		if e.value == p && e.policy.OnInsert == RightOfInsert {
			e.pending = p + length
		} else {
			e.pending = e.value
		}
	}
	t.flip()
}

// OnDelete resolves handles whose raw offset falls inside [rawL, rawR),
// which has just been absorbed into the gap. Handles outside the range
// need no raw rewrite at all: their compact() projection already reflects
// the shorter document because the gap is now wider.
func (t *Tracker) OnDelete(rawL, rawR int) {
	for _, e := range t.entries {
		if e.value >= rawL && e.value < rawR {
			switch e.policy.OnDelete {
			case LeftBias:
				e.pending = rawL
			case RightBias:
				e.pending = rawR
			case NullBias:
				e.pending = Invalid
			}
		} else {
			e.pending = e.value
		}
	}
	t.flip()
}

func (t *Tracker) flip() {
	for _, e := range t.entries {
		e.value = e.pending
	}
}

// Len returns the number of registered handles. Exposed for tests.
func (t *Tracker) Len() int {
	return len(t.entries)
}
