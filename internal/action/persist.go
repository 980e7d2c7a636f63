package action

import (
	"fmt"
	"os"

	"github.com/dshills/keystorm/internal/engine/history"
)

// Save writes the document's full content to Cfg.Path. On failure it
// reports a human-readable message to standard error and leaves the
// document untouched. The file is written in place with os.WriteFile, so
// a failure part-way through can leave it truncated.
func (e *Editor) Save(arg Arg) error {
	if e.Cfg.Path == "" {
		fmt.Fprintln(os.Stderr, "save: no file path configured")
		return nil
	}
	if err := os.WriteFile(e.Cfg.Path, e.Doc.All(), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "save %s: %v\n", e.Cfg.Path, err)
		return nil
	}
	return nil
}

// Load reads Cfg.Path and atomically replaces the document: the tracker
// is reinitialized and every handle rebound, the selection is cleared,
// and the cursor and render origin return to the buffer start. On
// failure the existing document is left exactly as it was.
func (e *Editor) Load(arg Arg) error {
	content, err := os.ReadFile(e.Cfg.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load %s: %v\n", e.Cfg.Path, err)
		return nil
	}
	e.Doc.Reinit(content)
	e.Hist = history.New()
	return nil
}
