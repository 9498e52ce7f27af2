// Package layout tracks typographic state and a vertical cursor for paged
// output. It wraps text greedily against a fixed content width and decides
// when a new page is needed, without knowing anything about the backend
// that finally draws the page.
//
// All lengths are in the unit of the Geometry, millimetres for A4.
package layout

import "strings"

// Weight is a font face style.
type Weight string

// Font weights. Italic is a style rather than a weight, but backends treat
// both the same way.
const (
	Normal Weight = "normal"
	Bold   Weight = "bold"
	Italic Weight = "italic"
)

// Color is an RGB colour.
type Color struct{ R, G, B uint8 }

// Black is the default text colour.
var Black = Color{}

// Gray returns the gray colour with all channels set to v.
func Gray(v uint8) Color {
	return Color{R: v, G: v, B: v}
}

// Font describes the active typeface.
type Font struct {
	Family string
	Weight Weight
	Size   float64
	Color  Color
}

// Geometry describes the page and where content may go on it.
type Geometry struct {
	Width   float64
	Height  float64
	Margin  float64
	BreakAt float64
}

// A4 is a portrait A4 page in millimetres with 20 mm margins. Content
// drawn past y = 270 triggers a page break at the next block.
func A4() Geometry {
	return Geometry{Width: 210, Height: 297, Margin: 20, BreakAt: 270}
}

// ContentWidth is the page width minus both side margins.
func (g Geometry) ContentWidth() float64 {
	return g.Width - 2*g.Margin
}

// State is the cursor position and active font. Methods return an updated
// copy and never touch a page.
type State struct {
	Y    float64
	Font Font
	Page int
}

// Start returns the state at the top of the first page.
func Start(g Geometry, font Font) State {
	return State{Y: g.Margin, Font: font, Page: 1}
}

// SetFont replaces weight, size and family. Colour is kept.
func (s State) SetFont(weight Weight, size float64, family string) State {
	s.Font.Weight = weight
	s.Font.Size = size
	s.Font.Family = family
	return s
}

// WithWeight changes only the weight.
func (s State) WithWeight(weight Weight) State {
	s.Font.Weight = weight
	return s
}

// WithColor changes only the text colour.
func (s State) WithColor(c Color) State {
	s.Font.Color = c
	return s
}

// Advance moves the cursor down by delta.
func (s State) Advance(delta float64) State {
	s.Y += delta
	return s
}

// NeedsBreak reports whether the cursor is past the page-bottom threshold.
func (s State) NeedsBreak(g Geometry) bool {
	return s.Y > g.BreakAt
}

// NextPage moves the cursor to the top margin of a new page.
func (s State) NextPage(g Geometry) State {
	s.Y = g.Margin
	s.Page++
	return s
}

// Measurer reports the rendered width of text in a font.
type Measurer interface {
	Measure(text string, font Font) float64
}

// MeasureFunc adapts a function to Measurer.
type MeasureFunc func(text string, font Font) float64

// Measure calls f.
func (f MeasureFunc) Measure(text string, font Font) float64 {
	return f(text, font)
}

// Wrap splits text into lines no wider than width. Each hard line break
// starts a new line; within a hard line, whitespace-separated tokens are
// packed greedily and joined by single spaces. A token wider than width is
// never split and sits alone on an overflowing line. A blank hard line
// yields an empty line.
func Wrap(m Measurer, font Font, text string, width float64) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var lines []string
	for _, hard := range strings.Split(text, "\n") {
		lines = append(lines, wrapLine(m, font, hard, width)...)
	}
	return lines
}

func wrapLine(m Measurer, font Font, line string, width float64) []string {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return []string{""}
	}

	var lines []string
	current := tokens[0]
	for _, tok := range tokens[1:] {
		candidate := current + " " + tok
		if m.Measure(candidate, font) <= width {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = tok
	}
	return append(lines, current)
}
