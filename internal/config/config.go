// Package config holds the small set of settings the editor binary needs
// at startup: the file path to load, and the viewport size the renderer
// lays its grid out to. There is no live-reload, layering, or schema
// validation here — the engine has nothing that changes at runtime
// beyond what the terminal itself reports on resize.
package config

// Default configuration values.
const (
	DefaultTabWidth = 8
	DefaultCols     = 80
	DefaultRows     = 24
)

// Config holds the editor's startup settings.
type Config struct {
	Path string
	Cols int
	Rows int
}

// Option configures a Config during creation.
type Option func(*Config)

// WithPath sets the file path to load on startup. An empty path starts
// the editor on an empty, unnamed document.
func WithPath(path string) Option {
	return func(c *Config) { c.Path = path }
}

// WithViewport sets the initial grid size. Values <= 0 are ignored; the
// editor resizes to the terminal's reported size regardless once running.
func WithViewport(cols, rows int) Option {
	return func(c *Config) {
		if cols > 0 {
			c.Cols = cols
		}
		if rows > 0 {
			c.Rows = rows
		}
	}
}

// New builds a Config from the given options, defaulting to an unnamed
// document and an 80x24 viewport.
func New(opts ...Option) *Config {
	c := &Config{Cols: DefaultCols, Rows: DefaultRows}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
