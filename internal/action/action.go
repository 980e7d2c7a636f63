// Package action implements the editor's action API: the small, fixed
// set of verbs a UI layer drives (indent, delete, navigate, edit,
// persist, undo/redo), each taking one sign-encoded argument scalar.
// This mirrors the argument-struct convention of the engine this design
// was distilled from, where every bound action took a single `const Arg
// *arg` carrying one interpreted integer.
package action

import (
	"github.com/dshills/keystorm/internal/config"
	"github.com/dshills/keystorm/internal/engine/document"
	"github.com/dshills/keystorm/internal/engine/history"
)

// Arg is the tagged argument every action takes. Its meaning is
// interpreted per action: a direction sign, a magnitude, or ignored
// entirely. Actions return no status; a caller that needs outcomes
// reads Editor's state directly afterward, matching the engine's
// no-status action ABI. The one exception is the error result, which
// carries failures of the document edit itself; load and save failures
// are reported on standard error and return nil.
type Arg struct {
	I int
}

// Editor binds a Document, its undo/redo Log, and the configured file
// path together — the thin adapter spec.md describes as what turns the
// reentrant, explicitly-passed Document into a single UI-facing default.
type Editor struct {
	Doc  *document.Document
	Hist *history.Log
	Cfg  *config.Config
}

// New creates an Editor from cfg, loading cfg.Path if set.
func New(cfg *config.Config) (*Editor, error) {
	e := &Editor{
		Doc:  document.New(),
		Hist: history.New(),
		Cfg:  cfg,
	}
	if cfg.Path != "" {
		if err := e.Load(Arg{}); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Func is the signature every bound action satisfies.
type Func func(e *Editor, arg Arg) error

// Table maps action names to their implementation, for a UI layer that
// dispatches by name (a keymap, a command palette) rather than calling
// methods directly.
var Table = map[string]Func{
	"changeindent":  (*Editor).ChangeIndent,
	"deletechar":    (*Editor).DeleteChar,
	"deleteword":    (*Editor).DeleteWord,
	"deleterow":     (*Editor).DeleteRow,
	"navchar":       (*Editor).NavChar,
	"navword":       (*Editor).NavWord,
	"navrow":        (*Editor).NavRow,
	"navpage":       (*Editor).NavPage,
	"navline":       (*Editor).NavLine,
	"navparagraph":  (*Editor).NavParagraph,
	"navdocument":   (*Editor).NavDocument,
	"newline":       (*Editor).Newline,
	"save":          (*Editor).Save,
	"load":          (*Editor).Load,
	"undo":          (*Editor).Undo,
	"redo":          (*Editor).Redo,
}

// recordInsert performs doc.Insert at raw and records it in history by
// logical index, keeping the undo log consistent with the document.
func (e *Editor) recordInsert(raw int, content []byte) (int, error) {
	idx := e.Doc.Compact(raw)
	newPos, err := e.Doc.Insert(raw, content)
	if err != nil {
		return raw, err
	}
	e.Hist.Record(history.Entry{Kind: history.Insert, Index: idx, Payload: content})
	return newPos, nil
}

// recordDelete performs doc.DeleteRange on [lo,hi) and records the
// deleted bytes in history by logical index.
func (e *Editor) recordDelete(lo, hi int) error {
	if lo == hi {
		return nil
	}
	payload := e.Doc.Bytes(lo, hi)
	idx := e.Doc.Compact(lo)
	if err := e.Doc.DeleteRange(lo, hi); err != nil {
		return err
	}
	e.Hist.Record(history.Entry{Kind: history.Delete, Index: idx, Payload: payload})
	return nil
}

// deleteSelectionOrNone deletes the active selection, if any, recording
// it in history. Reports whether a selection was deleted.
func (e *Editor) deleteSelectionOrNone() (bool, error) {
	lo, hi, ok := e.Doc.SelectionRange()
	if !ok {
		return false, nil
	}
	if err := e.recordDelete(lo, hi); err != nil {
		return false, err
	}
	e.Doc.ClearSelection()
	return true, nil
}
