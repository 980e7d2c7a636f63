package history

import (
	"errors"
	"sync"

	"github.com/dshills/keystorm/internal/engine/document"
)

// Errors returned by undo/redo at the ends of the log.
var (
	ErrNothingToUndo = errors.New("history: nothing to undo")
	ErrNothingToRedo = errors.New("history: nothing to redo")
)

// Log is the append-only entry list with a cursor splitting it into a
// done prefix [0,cursor) and a redoable suffix [cursor,len(entries)).
// Go's append already grows the backing array geometrically, satisfying
// the engine's storage-growth requirement without a hand-rolled doubling
// scheme.
type Log struct {
	mu      sync.Mutex
	entries []Entry
	cursor  int
}

// New creates an empty history log.
func New() *Log {
	return &Log{}
}

// Record truncates any redoable suffix, appends entry, and advances the
// cursor past it. entry.Payload is copied so the log never aliases the
// live document buffer.
func (l *Log) Record(entry Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	payload := make([]byte, len(entry.Payload))
	copy(payload, entry.Payload)
	entry.Payload = payload

	l.entries = append(l.entries[:l.cursor], entry)
	l.cursor = len(l.entries)
}

// CanUndo reports whether there is a done entry to reverse.
func (l *Log) CanUndo() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cursor > 0
}

// CanRedo reports whether there is a redoable entry.
func (l *Log) CanRedo() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cursor < len(l.entries)
}

// Undo reverses the most recently done entry against doc and moves the
// cursor back over it. It returns the reversed entry so the caller can
// reposition the insertion point at Index (Insert's reverse) or
// Index+Length (Delete's reverse).
func (l *Log) Undo(doc *document.Document) (Entry, error) {
	l.mu.Lock()
	if l.cursor == 0 {
		l.mu.Unlock()
		return Entry{}, ErrNothingToUndo
	}
	l.cursor--
	entry := l.entries[l.cursor]
	l.mu.Unlock()

	rev := entry.reversed()
	if err := apply(doc, rev); err != nil {
		l.mu.Lock()
		l.cursor++
		l.mu.Unlock()
		return Entry{}, err
	}
	return rev, nil
}

// Redo re-applies the next entry past the cursor and advances past it.
func (l *Log) Redo(doc *document.Document) (Entry, error) {
	l.mu.Lock()
	if l.cursor >= len(l.entries) {
		l.mu.Unlock()
		return Entry{}, ErrNothingToRedo
	}
	entry := l.entries[l.cursor]
	l.mu.Unlock()

	if err := apply(doc, entry); err != nil {
		return Entry{}, err
	}

	l.mu.Lock()
	l.cursor++
	l.mu.Unlock()
	return entry, nil
}

// apply executes entry against doc by logical index: Insert writes
// Payload at Index and calls Document.Insert; Delete converts Index and
// Length to a raw [lo,hi) range and calls Document.DeleteRange.
func apply(doc *document.Document, entry Entry) error {
	switch entry.Kind {
	case Insert:
		pos := doc.RawFromLogical(entry.Index)
		_, err := doc.Insert(pos, entry.Payload)
		return err
	case Delete:
		lo := doc.RawFromLogical(entry.Index)
		hi := doc.RawFromLogical(entry.Index + entry.Length())
		return doc.DeleteRange(lo, hi)
	default:
		return nil
	}
}

// Len reports the total number of entries, done and redoable.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Cursor reports the current done/redoable split point, for tests.
func (l *Log) Cursor() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cursor
}
