package document

import (
	"github.com/dshills/keystorm/internal/engine/runeio"
	"github.com/dshills/keystorm/internal/engine/tracking"
)

// tabStop matches the renderer's fixed 8-column tab expansion so the
// column cache used by vertical navigation agrees with what gets drawn.
const tabStop = 8

// decodeForward decodes the scalar starting at compact position c, or
// (runeio.EOF, 0) at end of document.
func (d *Document) decodeForward(c int) (rune, int) {
	n := d.Len()
	if c >= n {
		return runeio.EOF, 0
	}
	end := c + runeio.MaxEncodedLen
	if end > n {
		end = n
	}
	b := d.Bytes(d.buf.RawFromCompact(c), d.buf.RawFromCompact(end))
	return runeio.Decode(b)
}

// decodeBackward decodes the scalar ending at compact position c, or
// (runeio.EOF, 0) at the start of document.
func (d *Document) decodeBackward(c int) (rune, int) {
	if c <= 0 {
		return runeio.EOF, 0
	}
	start := c - runeio.MaxEncodedLen
	if start < 0 {
		start = 0
	}
	b := d.Bytes(d.buf.RawFromCompact(start), d.buf.RawFromCompact(c))
	return runeio.DecodeLast(b)
}

// Navigate moves the insertion point to raw offset pos. If selecting is
// true and no selection is active yet, the current cursor location becomes
// the selection anchor before moving; if selecting is false, any active
// selection is dropped. The gap physically relocates to pos.
func (d *Document) Navigate(pos int, selecting bool) {
	if selecting {
		if !d.hasSelection {
			d.selAnchorH = d.tr.Register(d.buf.CurLeft(), tracking.Policy{OnDelete: tracking.NullBias})
			d.hasSelection = true
		}
	} else {
		d.ClearSelection()
	}

	shift := d.buf.MoveGapTo(pos)
	d.tr.OnGapMove(shift, d.curLeftH, d.curRightH, d.buf.CurLeft(), d.buf.CurRight())
	d.markDirty()
}

// WalkRune returns the raw offset delta scalars away from pos (negative
// delta walks backward). It stops at the buffer's logical bounds.
func (d *Document) WalkRune(pos, delta int) int {
	c := d.Compact(pos)
	for delta > 0 {
		_, size := d.decodeForward(c)
		if size == 0 {
			break
		}
		c += size
		delta--
	}
	for delta < 0 {
		_, size := d.decodeBackward(c)
		if size == 0 {
			break
		}
		c -= size
		delta++
	}
	return d.buf.RawFromCompact(c)
}

func classify(r rune) int {
	switch {
	case r == runeio.EOF:
		return 0
	case r == ' ' || r == '\t' || r == '\n' || r == '\r':
		return 1
	case isWordRune(r):
		return 2
	default:
		return 3
	}
}

func isWordRune(r rune) bool {
	return r == '_' ||
		(r >= '0' && r <= '9') ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		r > 0x7F
}

// WalkWord returns the raw offset one word boundary away from pos per
// delta's sign: forward skips the rest of the current word/punct run (if
// any) then any following whitespace, landing on the first scalar of the
// next run; backward is the mirror.
func (d *Document) WalkWord(pos, delta int) int {
	c := d.Compact(pos)
	for n := delta; n > 0; n-- {
		r, size := d.decodeForward(c)
		if size == 0 {
			break
		}
		cls := classify(r)
		if cls != 1 {
			for {
				r, size := d.decodeForward(c)
				if size == 0 || classify(r) != cls {
					break
				}
				c += size
			}
		}
		for {
			r, size := d.decodeForward(c)
			if size == 0 || classify(r) != 1 {
				break
			}
			c += size
		}
	}
	for n := delta; n < 0; n++ {
		for {
			r, size := d.decodeBackward(c)
			if size == 0 || classify(r) != 1 {
				break
			}
			c -= size
		}
		r, size := d.decodeBackward(c)
		if size != 0 {
			cls := classify(r)
			for {
				r, size := d.decodeBackward(c)
				if size == 0 || classify(r) != cls {
					break
				}
				c -= size
			}
		}
	}
	return d.buf.RawFromCompact(c)
}

// lineStart returns the compact position of the first scalar of the line
// containing compact position c (the scalar just past the nearest
// preceding '\n', or 0).
func (d *Document) lineStart(c int) int {
	for {
		r, size := d.decodeBackward(c)
		if size == 0 {
			return c
		}
		if r == '\n' {
			return c
		}
		c -= size
	}
}

// lineEnd returns the compact position of the line's terminating '\n', or
// Len() if the line is the last and unterminated.
func (d *Document) lineEnd(c int) int {
	for {
		r, size := d.decodeForward(c)
		if size == 0 {
			return c
		}
		if r == '\n' {
			return c
		}
		c += size
	}
}

// LineStart returns the raw offset of the first scalar of the line
// containing raw offset pos.
func (d *Document) LineStart(pos int) int {
	return d.buf.RawFromCompact(d.lineStart(d.Compact(pos)))
}

// LineEnd returns the raw offset of the line's terminating '\n', or
// BufEnd() if the line is the last and unterminated.
func (d *Document) LineEnd(pos int) int {
	return d.buf.RawFromCompact(d.lineEnd(d.Compact(pos)))
}

// Column returns the visual column (tab-expanded) of raw offset pos within
// its line.
func (d *Document) Column(pos int) int {
	c := d.Compact(pos)
	start := d.lineStart(c)
	col := 0
	for p := start; p < c; {
		r, size := d.decodeForward(p)
		if size == 0 {
			break
		}
		if r == '\t' {
			col = (col + tabStop) &^ (tabStop - 1)
		} else {
			col++
		}
		p += size
	}
	return col
}

// PositionNearColumn returns the raw offset on the line beginning at raw
// offset lineStartPos whose visual column is nearest to (without
// exceeding) col, clamped to the line's end.
func (d *Document) PositionNearColumn(lineStartPos, col int) int {
	start := d.Compact(lineStartPos)
	end := d.lineEnd(start)
	c := start
	cur := 0
	for c < end && cur < col {
		r, size := d.decodeForward(c)
		if size == 0 {
			break
		}
		var next int
		if r == '\t' {
			next = (cur + tabStop) &^ (tabStop - 1)
		} else {
			next = cur + 1
		}
		if next > col {
			break
		}
		cur = next
		c += size
	}
	return d.buf.RawFromCompact(c)
}

// WalkRow returns the raw offset delta rows away from pos, preserving the
// document's cached visual column (recomputing it first if dirty).
func (d *Document) WalkRow(pos, delta int) int {
	if d.isColDirty() {
		d.SetCol(d.Column(pos))
	}
	c := d.Compact(pos)
	for delta > 0 {
		end := d.lineEnd(c)
		if end >= d.Len() {
			c = end
			break
		}
		c = end + 1 // past the '\n'
		delta--
	}
	for delta < 0 {
		start := d.lineStart(c)
		if start == 0 {
			c = 0
			break
		}
		c = d.lineStart(start - 1)
		delta++
	}
	target := d.PositionNearColumn(d.buf.RawFromCompact(d.lineStart(c)), d.col)
	return target
}

// isBlankRow reports whether the row starting at compact position rowStart
// is a paragraph boundary: its first non-whitespace scalar is a newline or
// end-of-stream. A row made up entirely of spaces, tabs, or carriage
// returns counts as blank, not just a truly empty one.
func (d *Document) isBlankRow(rowStart int) bool {
	c := rowStart
	for {
		r, size := d.decodeForward(c)
		if size == 0 || r == '\n' {
			return true
		}
		if r != ' ' && r != '\t' && r != '\r' {
			return false
		}
		c += size
	}
}

// rowAfter returns the compact start of the row following the one starting
// at c, or (c, false) if c's row is the last (unterminated) row.
func (d *Document) rowAfter(c int) (int, bool) {
	end := d.lineEnd(c)
	if end >= d.Len() {
		return c, false
	}
	return end + 1, true
}

// rowBefore returns the compact start of the row preceding the one starting
// at c, or (0, false) if c already starts the first row.
func (d *Document) rowBefore(c int) (int, bool) {
	start := d.lineStart(c)
	if start == 0 {
		return 0, false
	}
	return d.lineStart(start - 1), true
}

// WalkParagraph returns the raw offset delta paragraph boundaries away from
// pos. A paragraph boundary is a run of one or more blank rows (rows whose
// first non-whitespace scalar is a newline or end-of-stream); each step
// advances past the next such run, landing on the first row after it (or
// the last reachable row if the run extends to end-of-stream). The walk
// always advances at least one row even if pos already sits on a boundary.
func (d *Document) WalkParagraph(pos, delta int) int {
	c := d.Compact(pos)
	rowStart := d.lineStart(c)
	step := 1
	if delta < 0 {
		step = -1
	}
	for n := delta; n != 0; n -= step {
		var next int
		var ok bool
		if step > 0 {
			next, ok = d.rowAfter(rowStart)
		} else {
			next, ok = d.rowBefore(rowStart)
		}
		if !ok {
			break
		}
		rowStart = next
		for d.isBlankRow(rowStart) {
			if step > 0 {
				next, ok = d.rowAfter(rowStart)
			} else {
				next, ok = d.rowBefore(rowStart)
			}
			if !ok {
				break
			}
			rowStart = next
		}
	}
	return d.buf.RawFromCompact(rowStart)
}

// Scroll recenters RenderStart on the cursor when it has scrolled out of
// view. It first normalizes RenderStart to its row start. Then, if the
// cursor's row is above RenderStart or at/below the last of rowCount
// visible rows, it sets RenderStart to rowCount/2 rows above the cursor's
// row, clamped to the buffer start. rowCount is the viewport's row count;
// this is the one Document method the renderer calls before laying out a
// frame.
func (d *Document) Scroll(rowCount int) {
	rs := d.lineStart(d.Compact(d.RenderStart()))
	d.SetRenderStart(d.buf.RawFromCompact(rs))
	if rowCount <= 0 {
		return
	}

	curRow := d.lineStart(d.Compact(d.CurLeft()))

	recenter := curRow < rs
	if !recenter {
		c, row := rs, 0
		for c != curRow && row < rowCount-1 {
			next, ok := d.rowAfter(c)
			if !ok {
				break
			}
			c = next
			row++
		}
		recenter = c != curRow || row >= rowCount-1
	}
	if !recenter {
		return
	}

	c := curRow
	for i, above := 0, rowCount/2; i < above; i++ {
		prev, ok := d.rowBefore(c)
		if !ok {
			break
		}
		c = prev
	}
	d.SetRenderStart(d.buf.RawFromCompact(c))
}
