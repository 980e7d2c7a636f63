package core

import (
	"testing"
)

func TestColorDefault(t *testing.T) {
	c := ColorDefault
	if !c.IsDefault() {
		t.Error("ColorDefault should be default")
	}
}

func TestColorFromRGB(t *testing.T) {
	c := ColorFromRGB(255, 128, 64)

	if c.R != 255 {
		t.Errorf("expected R 255, got %d", c.R)
	}
	if c.G != 128 {
		t.Errorf("expected G 128, got %d", c.G)
	}
	if c.B != 64 {
		t.Errorf("expected B 64, got %d", c.B)
	}
	if c.Indexed {
		t.Error("RGB color should not be indexed")
	}
	if c.IsDefault() {
		t.Error("RGB color should not be default")
	}
}

func TestColorFromIndex(t *testing.T) {
	c := ColorFromIndex(42)

	if c.R != 42 {
		t.Errorf("expected index 42, got %d", c.R)
	}
	if !c.Indexed {
		t.Error("indexed color should have Indexed true")
	}
	if c.IsDefault() {
		t.Error("indexed color should not be default")
	}
}

func TestColorEquals(t *testing.T) {
	c1 := ColorFromRGB(255, 128, 64)
	c2 := ColorFromRGB(255, 128, 64)
	c3 := ColorFromRGB(255, 128, 65)
	c4 := ColorFromIndex(10)
	c5 := ColorFromIndex(10)

	if !c1.Equals(c2) {
		t.Error("identical RGB colors should be equal")
	}
	if c1.Equals(c3) {
		t.Error("different RGB colors should not be equal")
	}
	if !c4.Equals(c5) {
		t.Error("identical indexed colors should be equal")
	}
	if c1.Equals(c4) {
		t.Error("RGB and indexed colors should not be equal")
	}
}

func TestPredefinedColors(t *testing.T) {
	colors := []Color{ColorRed, ColorGreen, ColorBlue}

	for _, c := range colors {
		if c.IsDefault() {
			t.Errorf("predefined color should not be default: %+v", c)
		}
		if c.Indexed {
			t.Errorf("predefined color should be RGB: %+v", c)
		}
	}
}

func TestAttributeHas(t *testing.T) {
	a := AttrBold | AttrItalic

	if !a.Has(AttrBold) {
		t.Error("should have Bold")
	}
	if !a.Has(AttrItalic) {
		t.Error("should have Italic")
	}
	if a.Has(AttrUnderline) {
		t.Error("should not have Underline")
	}
}

func TestDefaultStyle(t *testing.T) {
	s := DefaultStyle()

	if !s.Foreground.IsDefault() {
		t.Error("default style foreground should be default")
	}
	if !s.Background.IsDefault() {
		t.Error("default style background should be default")
	}
	if s.Attributes != AttrNone {
		t.Error("default style should have no attributes")
	}
}

func TestStyleWithForeground(t *testing.T) {
	s := DefaultStyle().WithForeground(ColorBlue)

	if !s.Foreground.Equals(ColorBlue) {
		t.Error("WithForeground should set foreground")
	}
}

func TestStyleWithAttributes(t *testing.T) {
	s := DefaultStyle().WithAttributes(AttrReverse)

	if !s.Attributes.Has(AttrReverse) {
		t.Error("WithAttributes should set Reverse")
	}
}

func TestStyleEquals(t *testing.T) {
	s1 := DefaultStyle().WithForeground(ColorRed)
	s2 := DefaultStyle().WithForeground(ColorRed)
	s3 := DefaultStyle().WithForeground(ColorBlue)

	if !s1.Equals(s2) {
		t.Error("identical styles should be equal")
	}
	if s1.Equals(s3) {
		t.Error("styles with different foregrounds should not be equal")
	}
}

func TestEmptyCell(t *testing.T) {
	c := EmptyCell()

	if c.Rune != ' ' {
		t.Errorf("empty cell rune should be space, got %q", c.Rune)
	}
	if c.Width != 1 {
		t.Errorf("empty cell width should be 1, got %d", c.Width)
	}
	if !c.Style.Foreground.IsDefault() {
		t.Error("empty cell should have default style")
	}
}

func TestNewCell(t *testing.T) {
	c := NewCell('X')

	if c.Rune != 'X' {
		t.Errorf("expected rune 'X', got %q", c.Rune)
	}
	if c.Width != 1 {
		t.Errorf("expected width 1, got %d", c.Width)
	}
}

func TestNewStyledCell(t *testing.T) {
	style := DefaultStyle().WithForeground(ColorRed)
	c := NewStyledCell('A', style)

	if c.Rune != 'A' {
		t.Errorf("expected rune 'A', got %q", c.Rune)
	}
	if !c.Style.Foreground.Equals(ColorRed) {
		t.Error("styled cell should have red foreground")
	}
}

func TestContinuationCell(t *testing.T) {
	c := ContinuationCell()

	if c.Rune != 0 {
		t.Errorf("continuation cell rune should be 0, got %q", c.Rune)
	}
	if c.Width != 0 {
		t.Errorf("continuation cell width should be 0, got %d", c.Width)
	}
	if !c.IsContinuation() {
		t.Error("IsContinuation should return true")
	}
}

func TestCellEquals(t *testing.T) {
	c1 := NewCell('A')
	c2 := NewCell('A')
	c3 := NewCell('B')

	if !c1.Equals(c2) {
		t.Error("identical cells should be equal")
	}
	if c1.Equals(c3) {
		t.Error("different cells should not be equal")
	}
}

func TestRuneWidth(t *testing.T) {
	tests := []struct {
		r     rune
		width int
	}{
		{'A', 1},
		{'a', 1},
		{'0', 1},
		{' ', 1},
		{'中', 2},
		{'日', 2},
		{'あ', 2},
		{'\t', 0}, // Tab is a control character, display width handled by layout
		{'\n', 0},
		{'\x00', 0},
	}

	for _, tt := range tests {
		got := RuneWidth(tt.r)
		if got != tt.width {
			t.Errorf("RuneWidth(%q) = %d, want %d", tt.r, got, tt.width)
		}
	}
}

func TestNewScreenRect(t *testing.T) {
	r := NewScreenRect(5, 10, 15, 30)

	if r.Top != 5 {
		t.Errorf("expected top 5, got %d", r.Top)
	}
	if r.Left != 10 {
		t.Errorf("expected left 10, got %d", r.Left)
	}
	if r.Bottom != 15 {
		t.Errorf("expected bottom 15, got %d", r.Bottom)
	}
	if r.Right != 30 {
		t.Errorf("expected right 30, got %d", r.Right)
	}
}
