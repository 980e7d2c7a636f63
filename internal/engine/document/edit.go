package document

import (
	"github.com/dshills/keystorm/internal/engine/runeio"
	"github.com/dshills/keystorm/internal/engine/tracking"
)

// Insert writes content at raw offset pos and returns pos's new raw
// location. Content always lands to its left, so the returned offset's
// compact position is Compact(pos)+len(content); its raw value differs
// from pos+len(content) whenever the gap had to move. The error is the
// one EnsureGap reports; EnsureGap returns none, since a failed
// allocation panics inside make.
func (d *Document) Insert(pos int, content []byte) (int, error) {
	scoped := d.registerScoped(pos, tracking.Policy{OnInsert: tracking.RightOfInsert})
	defer d.unregisterScoped(scoped)

	if grow, err := d.buf.EnsureGap(len(content)); err != nil {
		return pos, err
	} else if grow.Delta != 0 {
		d.tr.OnGrow(grow)
	}

	target := d.readScoped(scoped)
	shift := d.buf.MoveGapTo(target)
	d.tr.OnGapMove(shift, d.curLeftH, d.curRightH, d.buf.CurLeft(), d.buf.CurRight())

	writeAt := d.buf.CurLeft()
	d.buf.WriteIntoGap(content)
	d.tr.Set(d.curLeftH, d.buf.CurLeft())

	d.tr.OnInsert(writeAt, len(content))
	d.markDirty()

	return d.readScoped(scoped), nil
}

// InsertRune is a convenience wrapper around Insert for a single scalar.
func (d *Document) InsertRune(pos int, r rune) (int, error) {
	var buf [runeio.MaxEncodedLen]byte
	n := runeio.Encode(r, buf[:])
	return d.Insert(pos, buf[:n])
}

// DeleteRange removes the logical content in [lo, hi) (compact order;
// caller passes raw offsets). Any other handle whose raw offset falls
// inside the deleted span is resolved per its own policy — in particular
// a selection anchor sitting inside the deleted text is invalidated
// because selanchor uses NullBias.
func (d *Document) DeleteRange(lo, hi int) error {
	if d.Compact(lo) > d.Compact(hi) {
		return ErrInvalidRange
	}
	if lo == hi {
		return nil
	}

	scopedHi := d.registerScoped(hi, tracking.Policy{OnDelete: tracking.RightBias})
	defer d.unregisterScoped(scopedHi)

	shift := d.buf.MoveGapTo(lo)
	d.tr.OnGapMove(shift, d.curLeftH, d.curRightH, d.buf.CurLeft(), d.buf.CurRight())

	rebasedHi := d.readScoped(scopedHi)
	d.buf.AbsorbIntoGap(rebasedHi)
	d.tr.Set(d.curRightH, d.buf.CurRight())

	d.tr.OnDelete(d.buf.CurLeft(), rebasedHi)
	d.markDirty()

	return nil
}

// ByteAt returns the single raw byte at offset pos. Callers must only
// pass offsets that lie outside the gap (CurLeft()..CurRight()).
func (d *Document) ByteAt(pos int) byte {
	return d.buf.ByteAt(pos)
}

// Bytes returns a copy of the logical content between two raw offsets
// lo<=hi in compact order, splitting the read at the gap if the range
// straddles it.
func (d *Document) Bytes(lo, hi int) []byte {
	if lo == hi {
		return nil
	}
	cl, cr := d.buf.CurLeft(), d.buf.CurRight()
	if hi <= cl || lo >= cr {
		return d.buf.Slice(lo, hi)
	}
	out := make([]byte, 0, (cl-lo)+(hi-cr))
	out = append(out, d.buf.Slice(lo, cl)...)
	out = append(out, d.buf.Slice(cr, hi)...)
	return out
}

// All returns a copy of the full document content in logical order.
func (d *Document) All() []byte {
	return d.Bytes(d.BufStart(), d.BufEnd())
}
