package layout

// Canvas is the draw sink a renderer writes pages to. Coordinates are in
// Geometry units with the origin at the top-left corner and y growing down;
// y is the text baseline for Text.
type Canvas interface {
	Measurer
	AddPage()
	Text(font Font, x, y float64, text string)
	Line(color Color, x1, y1, x2, y2 float64)
}

// Cursor couples a State with the Canvas it draws on. It is the imperative
// shell around State: every method replaces the held state with the updated
// copy.
type Cursor struct {
	geo    Geometry
	canvas Canvas
	state  State
}

// NewCursor adds the first page to canvas and positions the cursor at its
// top margin.
func NewCursor(g Geometry, canvas Canvas, font Font) *Cursor {
	canvas.AddPage()
	return &Cursor{geo: g, canvas: canvas, state: Start(g, font)}
}

// State returns the current state.
func (c *Cursor) State() State { return c.state }

// Geometry returns the page geometry.
func (c *Cursor) Geometry() Geometry { return c.geo }

// SetFont replaces weight, size and family.
func (c *Cursor) SetFont(weight Weight, size float64, family string) {
	c.state = c.state.SetFont(weight, size, family)
}

// SetWeight changes only the weight.
func (c *Cursor) SetWeight(weight Weight) {
	c.state = c.state.WithWeight(weight)
}

// SetColor changes only the text colour.
func (c *Cursor) SetColor(color Color) {
	c.state = c.state.WithColor(color)
}

// Advance moves the cursor down by delta.
func (c *Cursor) Advance(delta float64) {
	c.state = c.state.Advance(delta)
}

// BreakIfNeeded starts a new page when the cursor is past the threshold.
// It reports whether a page was added.
func (c *Cursor) BreakIfNeeded() bool {
	if !c.state.NeedsBreak(c.geo) {
		return false
	}
	c.canvas.AddPage()
	c.state = c.state.NextPage(c.geo)
	return true
}

// Wrap splits text to the content width in the current font.
func (c *Cursor) Wrap(text string) []string {
	return Wrap(c.canvas, c.state.Font, text, c.geo.ContentWidth())
}

// DrawLines draws lines at the left margin, the first at the cursor and
// each following one lineHeight lower. The cursor does not move.
func (c *Cursor) DrawLines(lines []string, lineHeight float64) {
	for i, line := range lines {
		if line == "" {
			continue
		}
		c.canvas.Text(c.state.Font, c.geo.Margin, c.state.Y+float64(i)*lineHeight, line)
	}
}

// Rule draws a horizontal line at the cursor from x1 to x2.
func (c *Cursor) Rule(color Color, x1, x2 float64) {
	c.canvas.Line(color, x1, c.state.Y, x2, c.state.Y)
}

// Pages returns the number of pages started so far.
func (c *Cursor) Pages() int { return c.state.Page }
