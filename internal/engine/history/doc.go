// Package history provides undo/redo for the document engine.
//
// Unlike a command-pattern stack, the log here is a single append-only
// slice of tagged entries (Insert or Delete) addressed by logical index
// rather than by live handle, plus a cursor splitting it into a done
// prefix and a redoable suffix:
//
//	entries: [e0 e1 e2 e3 e4]
//	                  ^cursor   (e0..e2 done, e3..e4 redoable)
//
// record truncates the redoable suffix, appends, and advances the
// cursor. undo/redo move the cursor and apply the entry (or its reverse)
// to a Document by logical index, never by a stashed raw offset — a raw
// offset recorded at action time would be stale by the time an unrelated
// edit runs before the undo.
package history
