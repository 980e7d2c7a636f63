// Package gapbuffer implements the contiguous byte storage with a movable
// gap that backs the document engine. It knows nothing about positions,
// policies, or UTF-8 — it only moves bytes and reports, to its caller, the
// raw-offset shifts those moves cause so a position tracker can rebase its
// handles. See internal/engine/document for the layer that understands
// Unicode scalars and logical positions.
package gapbuffer

import "errors"

// MinGapWidth is the minimum number of free bytes the gap must always hold.
// It is large enough to absorb one maximal UTF-8 scalar after any operation.
const MinGapWidth = 4

// ErrAllocation names the allocation-failure error class, the one
// fatal-class error in the engine's error design. EnsureGap does not
// return it: a failed make panics instead of returning an error.
var ErrAllocation = errors.New("gapbuffer: allocation failure")

// Shift describes the raw-offset displacement caused by relocating the
// gap. Bytes previously at any raw offset in [Lo, Hi) now live at offset+
// Delta; everything else is untouched. A position tracker uses this to
// rebase handles without needing to know the gap's internal mechanics.
type Shift struct {
	Lo, Hi int
	Delta  int
}

// Grow describes the raw-offset displacement caused by reallocating the
// backing array. Bytes at or after OldEnd (the lower section) move by
// Delta; bytes before OldEnd (the upper section) are untouched.
type Grow struct {
	OldEnd int
	Delta  int
}

// Buffer is the gap-buffer storage: a byte slice logically partitioned
// into an upper section [0, curleft), a gap [curleft, curright), and a
// lower section [curright, len(data)). bufstart is always 0; bufend is
// always len(data). The gap holds no logical content.
type Buffer struct {
	data     []byte
	curleft  int
	curright int
}

// New creates an empty buffer with headroom for a handful of edits before
// its first grow.
func New() *Buffer {
	const initialGap = 64
	return &Buffer{
		data:     make([]byte, initialGap),
		curleft:  0,
		curright: initialGap,
	}
}

// NewFromBytes creates a buffer whose content is placed flush at the end of
// the backing array, so CurLeft()==0 and CurRight()==len(data)-len(content).
// This is the load-time layout: the whole gap sits before the content,
// ready for edits to be typed at the front.
func NewFromBytes(content []byte) *Buffer {
	headroom := MinGapWidth + 64
	size := len(content) + headroom
	data := make([]byte, size)
	copy(data[size-len(content):], content)
	return &Buffer{
		data:     data,
		curleft:  0,
		curright: size - len(content),
	}
}

// BufStart is always 0.
func (b *Buffer) BufStart() int { return 0 }

// BufEnd is the raw length of the backing array.
func (b *Buffer) BufEnd() int { return len(b.data) }

// CurLeft is the raw offset of the gap's left edge.
func (b *Buffer) CurLeft() int { return b.curleft }

// CurRight is the raw offset of the gap's right edge.
func (b *Buffer) CurRight() int { return b.curright }

// GapWidth is the number of free bytes currently in the gap.
func (b *Buffer) GapWidth() int { return b.curright - b.curleft }

// Len returns the logical (compact) length of the document: the upper
// section length plus the lower section length.
func (b *Buffer) Len() int {
	return b.curleft + (len(b.data) - b.curright)
}

// Compact maps a raw offset to its compact (gap-collapsed) coordinate.
func (b *Buffer) Compact(raw int) int {
	if raw < b.curright {
		return raw
	}
	return raw - b.GapWidth()
}

// RawFromCompact maps a compact coordinate back to its raw offset: the
// inverse of Compact. Compact positions at or past curleft's compact value
// resolve to the lower section, past the gap.
func (b *Buffer) RawFromCompact(c int) int {
	if c < b.curleft {
		return c
	}
	return c + b.GapWidth()
}

// ByteAt reads the byte at raw offset p. p must not be curleft (the start
// of the gap) or BufEnd(); callers (the tracker-aware document layer) are
// responsible for only reading at legal positions.
func (b *Buffer) ByteAt(raw int) byte {
	return b.data[raw]
}

// Slice returns a copy of the logical bytes between two raw offsets lo<=hi
// that do not straddle the gap (the caller splits straddling ranges at
// curleft/curright first).
func (b *Buffer) Slice(lo, hi int) []byte {
	out := make([]byte, hi-lo)
	copy(out, b.data[lo:hi])
	return out
}

// EnsureGap grows the backing array, if necessary, so the gap is at least
// MinGapWidth+extra bytes wide. It returns the Grow description (zero value
// if no reallocation was needed) so a tracker can rebase lower-section
// handles.
func (b *Buffer) EnsureGap(extra int) (Grow, error) {
	need := MinGapWidth + extra
	if b.GapWidth() >= need {
		return Grow{}, nil
	}

	oldLen := len(b.data)
	oldEnd := b.curright
	newLen := oldLen
	if newLen == 0 {
		newLen = need
	}
	for newLen-(oldLen-oldEnd)-b.curleft < need {
		newLen *= 2
	}

	newData := make([]byte, newLen)
	copy(newData[:b.curleft], b.data[:b.curleft])
	lowerLen := oldLen - oldEnd
	newCurRight := newLen - lowerLen
	copy(newData[newCurRight:], b.data[oldEnd:])

	b.data = newData
	b.curright = newCurRight

	return Grow{OldEnd: oldEnd, Delta: newLen - oldLen}, nil
}

// MoveGapTo relocates the gap so it begins at raw offset pos, preserving
// its width, by memmoving the bytes strictly between the gap's old
// position and pos. pos must itself be a currently-valid raw offset (not
// strictly inside the gap). It returns the Shift describing which raw
// offsets moved and by how much, so a tracker can rebase non-gap handles;
// curleft/curright are rebased internally and read back via CurLeft/
// CurRight.
func (b *Buffer) MoveGapTo(pos int) Shift {
	gw := b.GapWidth()
	switch {
	case pos < b.curleft:
		n := b.curleft - pos
		copy(b.data[pos+gw:b.curright], b.data[pos:b.curleft])
		b.curleft = pos
		b.curright = pos + gw
		return Shift{Lo: pos, Hi: pos + n, Delta: gw}
	case pos > b.curright:
		n := pos - b.curright
		copy(b.data[b.curleft:b.curleft+n], b.data[b.curright:pos])
		b.curleft += n
		b.curright = pos
		return Shift{Lo: pos - n, Hi: pos, Delta: -gw}
	default:
		// pos is curleft or curright itself: both raw edges already map
		// to the same compact position (the gap has no logical width),
		// so the gap genuinely does not need to move.
		return Shift{Lo: pos, Hi: pos, Delta: 0}
	}
}

// WriteIntoGap copies content into the front of the current gap and
// advances CurLeft past it. The caller must have ensured GapWidth() >=
// len(content) beforehand.
func (b *Buffer) WriteIntoGap(content []byte) {
	copy(b.data[b.curleft:], content)
	b.curleft += len(content)
}

// AbsorbIntoGap extends the gap's right edge to newCurRight, absorbing the
// raw bytes in [curright, newCurRight) as deleted content without moving
// any bytes. newCurRight must be >= CurRight().
func (b *Buffer) AbsorbIntoGap(newCurRight int) {
	b.curright = newCurRight
}

// Raw exposes the full backing array for the document package, which
// understands the gap layout well enough to scan it directly (skipping the
// gap itself) when walking scalar boundaries. No other package should use
// this.
func (b *Buffer) Raw() []byte { return b.data }
