package action

import (
	"github.com/dshills/keystorm/internal/engine/document"
	"github.com/dshills/keystorm/internal/engine/tracking"
)

// InsertText inserts s at curleft, first deleting any active selection —
// the selection-aware write path spec.md's External Interfaces section
// describes for every scalar-input action.
func (e *Editor) InsertText(s []byte) error {
	if _, err := e.deleteSelectionOrNone(); err != nil {
		return err
	}
	pos, err := e.recordInsert(e.Doc.CurLeft(), s)
	if err != nil {
		return err
	}
	e.Doc.Navigate(pos, false)
	return nil
}

// Newline inserts U+000A at the cursor, per the `newline` action.
func (e *Editor) Newline(arg Arg) error {
	return e.InsertText([]byte{'\n'})
}

// ChangeIndent indents (arg.I > 0) or dedents (arg.I < 0) every line
// intersecting the selection, or the cursor's line if there is none.
//
// Each line's edit relocates the gap buffer's gap to that line, which
// retargets the document's own cursor/selection handles along with it —
// fine for a single edit, but this touches several lines in one logical
// action. The original selection (or cursor) is pinned with Marks before
// the edit loop and restored from them afterward, rather than left to
// wherever the last line's edit happened to leave the gap.
func (e *Editor) ChangeIndent(arg Arg) error {
	lo, hi, hasSel := e.Doc.SelectionRange()
	if !hasSel {
		lo = e.Doc.CurLeft()
		hi = lo
	}

	loH := e.Doc.Mark(lo, tracking.Policy{OnDelete: tracking.LeftBias, OnInsert: tracking.LeftOfInsert})
	hiH := e.Doc.Mark(hi, tracking.Policy{OnDelete: tracking.RightBias, OnInsert: tracking.RightOfInsert})
	defer e.Doc.Unmark(loH)
	defer e.Doc.Unmark(hiH)

	hiIdx := e.Doc.Compact(hi)

	var lineStarts []int
	raw := e.Doc.LineStart(lo)
	for {
		lineStarts = append(lineStarts, e.Doc.Compact(raw))
		endRaw := e.Doc.LineEnd(raw)
		endIdx := e.Doc.Compact(endRaw)
		if endIdx >= hiIdx || endIdx >= e.Doc.Len() {
			break
		}
		raw = e.Doc.WalkRune(endRaw, 1)
	}

	// Apply from the last line to the first so earlier indices stay
	// valid as each line's length changes.
	for i := len(lineStarts) - 1; i >= 0; i-- {
		start := lineStarts[i]
		raw := e.Doc.RawFromLogical(start)
		if arg.I > 0 {
			if _, err := e.recordInsert(raw, []byte{'\t'}); err != nil {
				return err
			}
		} else if arg.I < 0 {
			if e.Doc.ByteAt(raw) == '\t' {
				tabEnd := e.Doc.RawFromLogical(start + 1)
				if err := e.recordDelete(raw, tabEnd); err != nil {
					return err
				}
			}
		}
	}

	newLo := e.Doc.MarkValue(loH)
	newHi := e.Doc.MarkValue(hiH)
	if newLo == document.Invalid {
		newLo = e.Doc.BufStart()
	}
	if newHi == document.Invalid || e.Doc.Before(newHi, newLo) {
		newHi = newLo
	}
	e.Doc.Navigate(newLo, false)
	if hasSel {
		e.Doc.Navigate(newHi, true)
	}
	return nil
}

// DeleteChar deletes the selection if present, else one scalar in the
// direction given by arg.I's sign.
func (e *Editor) DeleteChar(arg Arg) error {
	if deleted, err := e.deleteSelectionOrNone(); err != nil || deleted {
		return err
	}
	dir := sign(arg.I)
	cur := e.Doc.CurLeft()
	other := e.Doc.WalkRune(cur, dir)
	lo, hi := cur, other
	if dir < 0 {
		lo, hi = other, cur
	}
	if err := e.recordDelete(lo, hi); err != nil {
		return err
	}
	e.Doc.Navigate(lo, false)
	return nil
}

// DeleteWord deletes the selection if present, else from the cursor to
// the next word boundary in the direction given by arg.I's sign.
func (e *Editor) DeleteWord(arg Arg) error {
	if deleted, err := e.deleteSelectionOrNone(); err != nil || deleted {
		return err
	}
	dir := sign(arg.I)
	cur := e.Doc.CurLeft()
	other := e.Doc.WalkWord(cur, dir)
	lo, hi := cur, other
	if dir < 0 {
		lo, hi = other, cur
	}
	if err := e.recordDelete(lo, hi); err != nil {
		return err
	}
	e.Doc.Navigate(lo, false)
	return nil
}

// DeleteRow deletes the selection if present, else the current line
// including its trailing newline.
func (e *Editor) DeleteRow(arg Arg) error {
	if deleted, err := e.deleteSelectionOrNone(); err != nil || deleted {
		return err
	}
	cur := e.Doc.CurLeft()
	startRaw := e.Doc.LineStart(cur)
	endRaw := e.Doc.LineEnd(startRaw)
	if e.Doc.Compact(endRaw) < e.Doc.Len() {
		endRaw = e.Doc.WalkRune(endRaw, 1) // consume the trailing newline
	}
	if err := e.recordDelete(startRaw, endRaw); err != nil {
		return err
	}
	e.Doc.Navigate(startRaw, false)
	return nil
}

func sign(v int) int {
	if v < 0 {
		return -1
	}
	return 1
}
