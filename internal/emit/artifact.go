// Package emit turns rendered stories into named artifacts and delivers
// them to a directory, a stream or an HTTP response.
package emit

import (
	"context"
	"fmt"
	"strings"

	"github.com/gorewood/folio/internal/export"
	"github.com/gorewood/folio/internal/output"
	"github.com/gorewood/folio/internal/slug"
	"github.com/gorewood/folio/internal/story"
)

// MIME types of the artifacts.
const (
	MIMEText     = "text/plain; charset=utf-8"
	MIMEPDF      = "application/pdf"
	MIMEJSON     = "application/json"
	MIMEMarkdown = "text/markdown; charset=utf-8"
)

// Artifact is a complete output file held in memory.
type Artifact struct {
	Name     string
	MIMEType string
	Data     []byte
}

// TextArtifact renders the plain-text transcript as <slug>.txt.
// The artifact constructors expect a non-nil story; Render checks for nil.
func TextArtifact(s *story.Story) Artifact {
	return Artifact{
		Name:     slug.Filename(s.Title, "txt"),
		MIMEType: MIMEText,
		Data:     []byte(export.RenderText(s)),
	}
}

// PDFArtifact wraps a rendered PDF.
func PDFArtifact(result *export.Result) Artifact {
	return Artifact{Name: result.Name, MIMEType: MIMEPDF, Data: result.Data}
}

// JSONArtifact renders the normalized story document as <slug>.json.
func JSONArtifact(s *story.Story) (Artifact, error) {
	data, err := export.RenderJSON(s)
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{Name: slug.Filename(s.Title, "json"), MIMEType: MIMEJSON, Data: data}, nil
}

// MarkdownArtifact renders markdown with frontmatter as <slug>.md.
func MarkdownArtifact(s *story.Story) Artifact {
	return Artifact{
		Name:     slug.Filename(s.Title, "md"),
		MIMEType: MIMEMarkdown,
		Data:     []byte(export.FormatMarkdown(s, true)),
	}
}

// Format selects which artifact Render produces.
type Format string

// Supported formats. The value is also the file extension.
const (
	FormatText     Format = "txt"
	FormatPDF      Format = "pdf"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "md"
)

// Formats lists every supported format in display order.
var Formats = []Format{FormatText, FormatPDF, FormatJSON, FormatMarkdown}

// ParseFormat accepts a format name or a common alias.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "txt", "text":
		return FormatText, nil
	case "pdf":
		return FormatPDF, nil
	case "json":
		return FormatJSON, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	default:
		return "", output.NewUserError(fmt.Sprintf("unknown format %q (want txt, pdf, json or md)", name))
	}
}

// Render produces the artifact for one format. opts only applies to PDF.
func Render(ctx context.Context, s *story.Story, format Format, opts export.Options) (Artifact, error) {
	if s == nil {
		return Artifact{}, output.NewUserError("story is required")
	}

	switch format {
	case FormatText:
		return TextArtifact(s), nil
	case FormatPDF:
		result, err := export.RenderPDF(ctx, s, opts)
		if err != nil {
			return Artifact{}, err
		}
		return PDFArtifact(result), nil
	case FormatJSON:
		return JSONArtifact(s)
	case FormatMarkdown:
		return MarkdownArtifact(s), nil
	default:
		return Artifact{}, output.NewUserError(fmt.Sprintf("unknown format %q", format))
	}
}
