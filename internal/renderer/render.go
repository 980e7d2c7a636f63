// Package renderer lays the document out onto a fixed grid of cells.
//
// Render is a pure function of Document state: it calls Document.Scroll
// to keep renderstart coherent with the cursor, then walks scalars from
// renderstart filling cells left to right, top to bottom, expanding tabs
// and toggling an in-selection style whenever the scan crosses the
// selection anchor or the cursor (the two edges of the selected span).
// It never mutates the document beyond that one Scroll call.
package renderer

import (
	"github.com/dshills/keystorm/internal/engine/cursor"
	"github.com/dshills/keystorm/internal/engine/document"
	"github.com/dshills/keystorm/internal/engine/runeio"
	"github.com/dshills/keystorm/internal/renderer/core"
)

// DefaultStyle and SelectionStyle are applied to cells depending on
// whether the scan position is inside the active selection. Callers may
// override these package variables before calling Render.
var (
	DefaultStyle   = core.DefaultStyle()
	SelectionStyle = core.DefaultStyle().WithAttributes(core.AttrReverse)
)

// Grid is the fixed row/column output surface Render fills. Rows and Cols
// are set by the caller (typically the backend's current size) before
// each Render call.
type Grid struct {
	Rows, Cols int
	Cells      [][]core.Cell
}

// NewGrid allocates a grid of the given size, filled with space cells.
func NewGrid(rows, cols int) *Grid {
	g := &Grid{Rows: rows, Cols: cols}
	g.Cells = make([][]core.Cell, rows)
	for r := range g.Cells {
		g.Cells[r] = make([]core.Cell, cols)
		for c := range g.Cells[r] {
			g.Cells[r][c] = core.EmptyCell()
		}
	}
	return g
}

func (g *Grid) clear() {
	empty := core.EmptyCell()
	for r := range g.Cells {
		for c := range g.Cells[r] {
			g.Cells[r][c] = empty
		}
	}
}

func (g *Grid) set(r, c int, ch rune, style core.Style) {
	if r < 0 || r >= g.Rows || c < 0 || c >= g.Cols {
		return
	}
	g.Cells[r][c] = core.NewStyledCell(ch, style)
}

const tabStop = 8

// Render lays doc out onto grid and returns the screen cell curleft
// landed on. It first calls doc.Scroll(grid.Rows) so renderstart stays
// coherent, then scans scalar by scalar from renderstart.
func Render(doc *document.Document, grid *Grid) cursor.Point {
	doc.Scroll(grid.Rows)
	grid.clear()

	start := doc.Compact(doc.RenderStart())
	curLeft := doc.Compact(doc.CurLeft())
	anchorRaw, hasSelection := doc.SelAnchor()
	anchor := doc.Compact(anchorRaw)
	n := doc.Len()

	inSelection := hasSelection && anchor < start

	row, col := 0, 0
	cursorPt := cursor.Point{Row: 0, Col: 0}
	cursorFound := false

	c := start
	for c < n {
		if hasSelection && c == anchor {
			inSelection = !inSelection
		}
		if hasSelection && c == curLeft {
			inSelection = !inSelection
		}
		if !cursorFound && c == curLeft {
			cursorPt = cursor.Point{Row: row, Col: col}
			cursorFound = true
		}

		r, size := decodeAt(doc, c, n)
		if size == 0 {
			break
		}

		style := DefaultStyle
		if inSelection {
			style = SelectionStyle
		}

		switch r {
		case '\n':
			for col < grid.Cols {
				grid.set(row, col, ' ', style)
				col++
			}
			row++
			col = 0
			if row >= grid.Rows {
				return finishCursor(cursorFound, cursorPt, row, col)
			}
		case '\t':
			next := (col + tabStop) &^ (tabStop - 1)
			for col < next && col < grid.Cols {
				grid.set(row, col, ' ', style)
				col++
			}
			if col >= grid.Cols {
				row++
				col = 0
				if row >= grid.Rows {
					return finishCursor(cursorFound, cursorPt, row, col)
				}
			}
		default:
			grid.set(row, col, r, style)
			col++
			if col >= grid.Cols {
				row++
				col = 0
				if row >= grid.Rows {
					return finishCursor(cursorFound, cursorPt, row, col)
				}
			}
		}

		c += size
	}

	if hasSelection && c == anchor {
		inSelection = !inSelection
	}
	if !cursorFound && c == curLeft {
		cursorPt = cursor.Point{Row: row, Col: col}
	}

	return cursorPt
}

func finishCursor(found bool, pt cursor.Point, row, col int) cursor.Point {
	if found {
		return pt
	}
	return cursor.Point{Row: row, Col: col}
}

// decodeAt decodes the scalar starting at compact position c, bounded by
// the document's logical length n.
func decodeAt(doc *document.Document, c, n int) (rune, int) {
	end := c + runeio.MaxEncodedLen
	if end > n {
		end = n
	}
	lo := doc.RawFromLogical(c)
	hi := doc.RawFromLogical(end)
	return runeio.Decode(doc.Bytes(lo, hi))
}
