package export

import (
	"bytes"
	"context"
	"io"
	"strings"
	"time"

	"github.com/gorewood/folio/internal/layout"
	"github.com/gorewood/folio/internal/output"
	"github.com/gorewood/folio/internal/slug"
	"github.com/gorewood/folio/internal/story"
)

// Typography for the PDF path. Sizes are in points, spacing in page units.
const (
	fontFamily = "Helvetica"

	titleSize       = 24
	titleLineHeight = 10
	titleGap        = 5

	bylineSize    = 12
	bylineAdvance = 10
	ruleAdvance   = 10

	headingSize    = 14
	bodySize       = 11
	bodyLineHeight = 6
	summaryGap     = 8
	blockGap       = 4

	separatorHalfWidth = 30
	separatorAdvance   = 8
)

var (
	bylineColor    = layout.Gray(100)
	ruleColor      = layout.Gray(200)
	separatorColor = layout.Gray(150)
)

// DefaultCreator is written to the PDF Creator field.
const DefaultCreator = "folio"

// Metadata is the document information dictionary.
type Metadata struct {
	Title   string
	Author  string
	Subject string
	Creator string
	Created time.Time
}

// Backend is a page-description sink that can serialize itself.
type Backend interface {
	layout.Canvas
	SetMetadata(meta Metadata)
	PageCount() int
	Output(w io.Writer) error
}

// BackendFunc acquires a fresh Backend for one render.
type BackendFunc func(geo layout.Geometry) (Backend, error)

// Options control RenderPDF. The zero value renders A4 through gofpdf with
// a creation date of the Unix epoch.
type Options struct {
	Geometry     layout.Geometry
	Backend      BackendFunc
	CreationDate time.Time
	Creator      string
}

func (o Options) withDefaults() Options {
	if o.Geometry == (layout.Geometry{}) {
		o.Geometry = layout.A4()
	}
	if o.Backend == nil {
		o.Backend = NewFPDF
	}
	if o.CreationDate.IsZero() {
		o.CreationDate = time.Unix(0, 0).UTC()
	}
	if o.Creator == "" {
		o.Creator = DefaultCreator
	}
	return o
}

// Result is a rendered PDF.
type Result struct {
	Name  string
	Data  []byte
	Pages int
}

// RenderPDF lays the story out on A4 pages and returns the serialized PDF.
//
// A backend is acquired for every call and never shared. If it cannot be
// acquired, or fails to serialize, an error is returned and no data is
// produced. The context is only consulted before rendering starts.
func RenderPDF(ctx context.Context, s *story.Story, opts Options) (*Result, error) {
	if s == nil {
		return nil, output.NewUserError("story is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	backend, err := opts.Backend(opts.Geometry)
	if err != nil {
		return nil, output.NewSystemErrorWithCause("failed to acquire PDF backend", err)
	}

	backend.SetMetadata(Metadata{
		Title:   s.Title,
		Author:  s.AuthorName,
		Subject: s.Summary,
		Creator: opts.Creator,
		Created: opts.CreationDate,
	})

	cur := layout.NewCursor(opts.Geometry, backend, layout.Font{
		Family: fontFamily,
		Weight: layout.Normal,
		Size:   bodySize,
		Color:  layout.Black,
	})
	drawHeader(cur, s)

	cur.SetFont(layout.Normal, bodySize, fontFamily)
	for _, block := range s.Blocks() {
		drawBlock(cur, block)
	}

	var buf bytes.Buffer
	if err := backend.Output(&buf); err != nil {
		return nil, output.NewSystemErrorWithCause("failed to serialize PDF", err)
	}

	return &Result{
		Name:  slug.Filename(s.Title, "pdf"),
		Data:  buf.Bytes(),
		Pages: backend.PageCount(),
	}, nil
}

func drawHeader(cur *layout.Cursor, s *story.Story) {
	drawTitle(cur, s.Title)
	drawByline(cur, s.AuthorName)
	drawRule(cur)
	if s.Summary != "" {
		drawSummary(cur, s.Summary)
	}
}

func drawTitle(cur *layout.Cursor, title string) {
	cur.SetFont(layout.Bold, titleSize, fontFamily)
	lines := cur.Wrap(title)
	cur.DrawLines(lines, titleLineHeight)
	cur.Advance(float64(len(lines))*titleLineHeight + titleGap)
}

func drawByline(cur *layout.Cursor, author string) {
	cur.SetFont(layout.Normal, bylineSize, fontFamily)
	cur.SetColor(bylineColor)
	cur.DrawLines([]string{"By " + author}, bylineAdvance)
	cur.Advance(bylineAdvance)
}

// drawRule draws the full-width rule under the byline and restores black
// text.
func drawRule(cur *layout.Cursor) {
	geo := cur.Geometry()
	cur.Rule(ruleColor, geo.Margin, geo.Width-geo.Margin)
	cur.Advance(ruleAdvance)
	cur.SetColor(layout.Black)
}

func drawSummary(cur *layout.Cursor, summary string) {
	cur.SetFont(layout.Italic, bodySize, fontFamily)
	lines := cur.Wrap(summary)
	cur.DrawLines(lines, bodyLineHeight)
	cur.Advance(float64(len(lines))*bodyLineHeight + summaryGap)
}

// drawBlock renders one block. Blocks with no visible text are skipped
// before the page-break check so they never start a page.
func drawBlock(cur *layout.Cursor, block story.Block) {
	text := strings.TrimSpace(BlockText(block))
	if text == "" {
		return
	}

	cur.BreakIfNeeded()

	switch block.(type) {
	case story.Heading:
		cur.SetFont(layout.Bold, headingSize, fontFamily)
	case story.Bold:
		cur.SetWeight(layout.Bold)
	default:
		cur.SetFont(layout.Normal, bodySize, fontFamily)
	}

	if _, ok := block.(story.Separator); ok {
		center := cur.Geometry().Width / 2
		cur.Rule(separatorColor, center-separatorHalfWidth, center+separatorHalfWidth)
		cur.Advance(separatorAdvance)
		return
	}

	lines := cur.Wrap(text)
	cur.DrawLines(lines, bodyLineHeight)
	cur.Advance(float64(len(lines))*bodyLineHeight + blockGap)
}
