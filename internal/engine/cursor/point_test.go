package cursor

import "testing"

func TestPointString(t *testing.T) {
	p := Point{Row: 2, Col: 5}
	if got, want := p.String(), "(2:5)"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
