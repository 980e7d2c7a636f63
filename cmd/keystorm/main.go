// Package main is the entry point for the Keystorm editor.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"unicode/utf8"

	"github.com/dshills/keystorm/internal/action"
	"github.com/dshills/keystorm/internal/config"
	"github.com/dshills/keystorm/internal/renderer"
	"github.com/dshills/keystorm/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	path, showVersion := parseFlags()
	if showVersion {
		fmt.Printf("keystorm %s (%s, %s)\n", version, commit, date)
		return 0
	}

	term, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := term.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize terminal: %v\n", err)
		return 1
	}
	defer term.Shutdown()

	cols, rows := term.Size()
	cfg := config.New(config.WithPath(path), config.WithViewport(cols, rows))
	ed, err := action.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open %s: %v\n", path, err)
		return 1
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	quit := make(chan struct{})
	go func() {
		<-signals
		close(quit)
	}()

	loop(ed, term, quit)
	return 0
}

// loop runs the editor's read-dispatch-render cycle until quit fires or
// ctrl-q is pressed. Every keystroke resolves to at most one action.Table
// entry; unmapped keys are ignored.
func loop(ed *action.Editor, term *backend.Terminal, quit chan struct{}) {
	draw(ed, term)
	for {
		select {
		case <-quit:
			return
		default:
		}

		ev := term.PollEvent()
		switch ev.Type {
		case backend.EventResize:
			ed.Cfg.Cols, ed.Cfg.Rows = ev.Width, ev.Height
		case backend.EventKey:
			if ev.Key == backend.KeyRune {
				buf := make([]byte, utf8.RuneLen(ev.Rune))
				utf8.EncodeRune(buf, ev.Rune)
				if err := ed.InsertText(buf); err != nil {
					fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				}
				break
			}
			name, arg, isQuit := resolve(ev)
			if isQuit {
				return
			}
			if fn, ok := action.Table[name]; ok {
				if err := fn(ed, arg); err != nil {
					fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				}
			}
		}
		draw(ed, term)
	}
}

func draw(ed *action.Editor, term *backend.Terminal) {
	cols, rows := term.Size()
	grid := renderer.NewGrid(rows, cols)
	cursorPt := renderer.Render(ed.Doc, grid)
	term.Clear()
	for r := 0; r < grid.Rows; r++ {
		for c := 0; c < grid.Cols; c++ {
			term.SetCell(c, r, grid.Cells[r][c])
		}
	}
	term.ShowCursor(cursorPt.Col, cursorPt.Row)
	term.Show()
}

// resolve maps a raw key event to an action.Table name and argument, per
// spec.md's Action API table. Rune insertion and ctrl-q (quit, which
// isn't an editor action) are handled directly rather than through the
// table.
func resolve(ev backend.Event) (name string, arg action.Arg, isQuit bool) {
	switch ev.Key {
	case backend.KeyCtrlQ:
		return "", action.Arg{}, true
	case backend.KeyEnter:
		return "newline", action.Arg{}, false
	case backend.KeyTab:
		return "changeindent", action.Arg{I: 1}, false
	case backend.KeyBackspace:
		return "deletechar", action.Arg{I: -1}, false
	case backend.KeyDelete:
		return "deletechar", action.Arg{I: 1}, false
	case backend.KeyLeft:
		return "navchar", action.Arg{I: dir(ev.Mod, -1)}, false
	case backend.KeyRight:
		return "navchar", action.Arg{I: dir(ev.Mod, 1)}, false
	case backend.KeyUp:
		return "navrow", action.Arg{I: dir(ev.Mod, -1)}, false
	case backend.KeyDown:
		return "navrow", action.Arg{I: dir(ev.Mod, 1)}, false
	case backend.KeyPageUp:
		return "navpage", action.Arg{I: dir(ev.Mod, -1)}, false
	case backend.KeyPageDown:
		return "navpage", action.Arg{I: dir(ev.Mod, 1)}, false
	case backend.KeyHome:
		return "navline", action.Arg{I: dir(ev.Mod, -1)}, false
	case backend.KeyEnd:
		return "navline", action.Arg{I: dir(ev.Mod, 1)}, false
	case backend.KeyCtrlS:
		return "save", action.Arg{}, false
	case backend.KeyCtrlZ:
		return "undo", action.Arg{}, false
	case backend.KeyCtrlY:
		return "redo", action.Arg{}, false
	case backend.KeyCtrlW:
		return "deleteword", action.Arg{I: -1}, false
	case backend.KeyCtrlK:
		return "deleterow", action.Arg{I: 1}, false
	default:
		return "", action.Arg{}, false
	}
}

// dir returns base, doubled in magnitude when shift is held, matching
// the `±2 extends the selection` convention every nav* action shares.
func dir(mod backend.ModMask, base int) int {
	if mod.Has(backend.ModShift) {
		return base * 2
	}
	return base
}

func parseFlags() (path string, showVersion bool) {
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Parse()
	if flag.NArg() > 0 {
		path = flag.Arg(0)
	}
	return path, showVersion
}
