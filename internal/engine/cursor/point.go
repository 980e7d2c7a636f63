// Package cursor holds the small screen-space value types the renderer
// reports back to a UI: a grid row/column pair. The document engine's own
// notion of cursor is a raw buffer offset owned by Document; this package
// exists only for the coordinate the renderer hands the caller once it
// has walked the document and found where curleft landed on screen.
package cursor

import "fmt"

// Point is a zero-indexed (row, column) cell in the renderer's output
// grid.
type Point struct {
	Row int
	Col int
}

// String returns a human-readable representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d:%d)", p.Row, p.Col)
}
