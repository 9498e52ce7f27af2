package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/text/encoding/charmap"

	"github.com/gorewood/folio/internal/layout"
)

// fpdfBackend draws with the gofpdf core fonts. Core fonts only cover
// Windows-1252, so every string is re-encoded before it is measured or
// drawn.
type fpdfBackend struct {
	pdf *gofpdf.Fpdf
}

// NewFPDF acquires a gofpdf document sized to geo, in millimetres.
func NewFPDF(geo layout.Geometry) (Backend, error) {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: geo.Width, Ht: geo.Height},
	})
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("initializing gofpdf: %w", err)
	}

	pdf.SetMargins(geo.Margin, geo.Margin, geo.Margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCatalogSort(true)

	return &fpdfBackend{pdf: pdf}, nil
}

func (b *fpdfBackend) SetMetadata(meta Metadata) {
	b.pdf.SetTitle(meta.Title, true)
	b.pdf.SetAuthor(meta.Author, true)
	if meta.Subject != "" {
		b.pdf.SetSubject(meta.Subject, true)
	}
	b.pdf.SetCreator(meta.Creator, true)
	b.pdf.SetCreationDate(meta.Created)
}

func (b *fpdfBackend) AddPage() {
	b.pdf.AddPage()
}

func (b *fpdfBackend) Text(font layout.Font, x, y float64, text string) {
	b.apply(font)
	b.pdf.Text(x, y, toWindows1252(text))
}

func (b *fpdfBackend) Line(color layout.Color, x1, y1, x2, y2 float64) {
	b.pdf.SetDrawColor(int(color.R), int(color.G), int(color.B))
	b.pdf.Line(x1, y1, x2, y2)
}

func (b *fpdfBackend) Measure(text string, font layout.Font) float64 {
	b.apply(font)
	return b.pdf.GetStringWidth(toWindows1252(text))
}

func (b *fpdfBackend) PageCount() int {
	return b.pdf.PageNo()
}

func (b *fpdfBackend) Output(w io.Writer) error {
	if err := b.pdf.Output(w); err != nil {
		return fmt.Errorf("writing PDF: %w", err)
	}
	return nil
}

func (b *fpdfBackend) apply(font layout.Font) {
	b.pdf.SetFont(font.Family, fpdfStyle(font.Weight), font.Size)
	b.pdf.SetTextColor(int(font.Color.R), int(font.Color.G), int(font.Color.B))
}

func fpdfStyle(w layout.Weight) string {
	switch w {
	case layout.Bold:
		return "B"
	case layout.Italic:
		return "I"
	default:
		return ""
	}
}

// toWindows1252 re-encodes s for the core fonts. Runes outside the code
// page become '?'.
func toWindows1252(s string) string {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if b, ok := charmap.Windows1252.EncodeRune(r); ok {
			out = append(out, b)
			continue
		}
		out = append(out, '?')
	}
	return string(out)
}
