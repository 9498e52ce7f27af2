// Package layouttest provides a recording Canvas for tests.
package layouttest

import (
	"unicode/utf8"

	"github.com/gorewood/folio/internal/layout"
)

// Op is one recorded canvas call.
type Op struct {
	Kind  string // "page", "text" or "line"
	Font  layout.Font
	Color layout.Color
	X, Y  float64
	X2    float64
	Y2    float64
	Text  string
}

// Recorder is a layout.Canvas that records every call. Each rune measures
// CharWidth units regardless of font, so wrapping is easy to predict.
type Recorder struct {
	CharWidth float64
	Ops       []Op
}

// New returns a Recorder where every rune is 1 unit wide.
func New() *Recorder {
	return &Recorder{CharWidth: 1}
}

// Measure implements layout.Measurer.
func (r *Recorder) Measure(text string, _ layout.Font) float64 {
	return float64(utf8.RuneCountInString(text)) * r.CharWidth
}

// AddPage implements layout.Canvas.
func (r *Recorder) AddPage() {
	r.Ops = append(r.Ops, Op{Kind: "page"})
}

// Text implements layout.Canvas.
func (r *Recorder) Text(font layout.Font, x, y float64, text string) {
	r.Ops = append(r.Ops, Op{Kind: "text", Font: font, X: x, Y: y, Text: text})
}

// Line implements layout.Canvas.
func (r *Recorder) Line(color layout.Color, x1, y1, x2, y2 float64) {
	r.Ops = append(r.Ops, Op{Kind: "line", Color: color, X: x1, Y: y1, X2: x2, Y2: y2})
}

// Pages returns how many pages were added.
func (r *Recorder) Pages() int {
	return len(r.Filter("page"))
}

// Filter returns the ops of one kind, in call order.
func (r *Recorder) Filter(kind string) []Op {
	var ops []Op
	for _, op := range r.Ops {
		if op.Kind == kind {
			ops = append(ops, op)
		}
	}
	return ops
}

// Texts returns the drawn strings in call order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Filter("text") {
		out = append(out, op.Text)
	}
	return out
}
