package action

import "github.com/dshills/keystorm/internal/engine/history"

// Undo reverses the most recent entry and repositions the cursor at the
// reversed action's resulting location: an Insert's reverse (a Delete)
// leaves the cursor at the deletion point; a Delete's reverse (an
// Insert) leaves it just past the reinserted bytes.
func (e *Editor) Undo(arg Arg) error {
	rev, err := e.Hist.Undo(e.Doc)
	if err == history.ErrNothingToUndo {
		return nil
	}
	if err != nil {
		return err
	}
	e.repositionAfter(rev)
	return nil
}

// Redo re-applies the next entry and repositions the cursor the same
// way a fresh record of that entry would have.
func (e *Editor) Redo(arg Arg) error {
	entry, err := e.Hist.Redo(e.Doc)
	if err == history.ErrNothingToRedo {
		return nil
	}
	if err != nil {
		return err
	}
	e.repositionAfter(entry)
	return nil
}

func (e *Editor) repositionAfter(entry history.Entry) {
	idx := entry.Index
	if entry.Kind == history.Insert {
		idx += entry.Length()
	}
	e.Doc.Navigate(e.Doc.RawFromLogical(idx), false)
}
