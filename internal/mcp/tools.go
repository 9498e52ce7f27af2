package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/folio/internal/emit"
	"github.com/gorewood/folio/internal/export"
	"github.com/gorewood/folio/internal/logger"
	"github.com/gorewood/folio/internal/slug"
	"github.com/gorewood/folio/internal/story"
)

// resolve returns the inline story document, or the stored story named
// by want. Exactly one of them must be set.
func (deps Deps) resolve(doc, want string) (*story.Story, error) {
	inline := strings.TrimSpace(doc)
	switch {
	case inline != "" && want != "":
		return nil, errors.New("pass either story or slug, not both")
	case inline != "":
		s, err := story.FromJSON([]byte(inline))
		if err != nil {
			return nil, fmt.Errorf("parsing story: %w", err)
		}
		if err := s.MalformedBlocks(); err != nil {
			logger.OrNop(deps.Log).Warn("malformed blocks dropped", "slug", slug.Make(s.Title), "error", err)
		}
		return s, nil
	case want != "":
		if deps.Store == nil {
			return nil, errors.New("no story directory configured")
		}
		entry, err := deps.Store.Find(want)
		if err != nil {
			return nil, err
		}
		return entry.Story, nil
	default:
		return nil, errors.New("story or slug is required")
	}
}

// --- render_text ---

// RenderTextInput is the input for the render_text tool.
type RenderTextInput struct {
	Story string `json:"story,omitempty" jsonschema:"story document as a JSON string"`
	Slug  string `json:"slug,omitempty"  jsonschema:"slug of a story in the story directory"`
}

// RenderTextOutput is the output for the render_text tool.
type RenderTextOutput struct {
	Name string `json:"name" jsonschema:"file name the transcript would be saved as"`
	Text string `json:"text" jsonschema:"the plain-text transcript"`
}

func handleRenderText(deps Deps) mcp.ToolHandlerFor[RenderTextInput, RenderTextOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input RenderTextInput) (*mcp.CallToolResult, RenderTextOutput, error) {
		s, err := deps.resolve(input.Story, input.Slug)
		if err != nil {
			return nil, RenderTextOutput{}, err
		}
		return nil, RenderTextOutput{
			Name: slug.Filename(s.Title, "txt"),
			Text: export.RenderText(s),
		}, nil
	}
}

// --- export_story ---

// ExportInput is the input for the export_story tool.
type ExportInput struct {
	Story  string `json:"story,omitempty" jsonschema:"story document as a JSON string"`
	Slug   string `json:"slug,omitempty"  jsonschema:"slug of a story in the story directory"`
	Format string `json:"format"          jsonschema:"output format: txt, pdf, json or md"`
}

// ExportOutput is the output for the export_story tool.
type ExportOutput struct {
	Name  string `json:"name"  jsonschema:"file name of the artifact"`
	Path  string `json:"path"  jsonschema:"where the artifact was written"`
	Bytes int    `json:"bytes" jsonschema:"size of the artifact in bytes"`
}

func handleExport(deps Deps) mcp.ToolHandlerFor[ExportInput, ExportOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ExportInput) (*mcp.CallToolResult, ExportOutput, error) {
		if deps.Emitter == nil {
			return nil, ExportOutput{}, errors.New("no output directory configured")
		}
		format, err := emit.ParseFormat(input.Format)
		if err != nil {
			return nil, ExportOutput{}, err
		}
		s, err := deps.resolve(input.Story, input.Slug)
		if err != nil {
			return nil, ExportOutput{}, err
		}

		artifact, err := emit.Render(ctx, s, format, deps.PDF)
		if err != nil {
			return nil, ExportOutput{}, fmt.Errorf("rendering %s: %w", format, err)
		}
		dest, err := deps.Emitter.Emit(ctx, artifact)
		if err != nil {
			return nil, ExportOutput{}, fmt.Errorf("writing %s: %w", artifact.Name, err)
		}

		deps.Log.Info("story exported", "format", format, "path", dest, "bytes", len(artifact.Data))
		return nil, ExportOutput{Name: artifact.Name, Path: dest, Bytes: len(artifact.Data)}, nil
	}
}

// --- list_stories ---

// ListInput is the input for the list_stories tool (no parameters needed).
type ListInput struct{}

// StorySummary describes one stored story.
type StorySummary struct {
	Slug       string `json:"slug"        jsonschema:"title slug"`
	Title      string `json:"title"       jsonschema:"story title"`
	AuthorName string `json:"author_name" jsonschema:"author name"`
	Blocks     int    `json:"blocks"      jsonschema:"number of content blocks"`
	Path       string `json:"path"        jsonschema:"source file"`
}

// ListOutput is the output for the list_stories tool.
type ListOutput struct {
	Count   int            `json:"count"             jsonschema:"number of stories found"`
	Skipped int            `json:"skipped"           jsonschema:"files that could not be parsed"`
	Stories []StorySummary `json:"stories,omitempty" jsonschema:"stories sorted by path"`
}

func handleList(deps Deps) mcp.ToolHandlerFor[ListInput, ListOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ ListInput) (*mcp.CallToolResult, ListOutput, error) {
		if deps.Store == nil {
			return nil, ListOutput{}, errors.New("no story directory configured")
		}
		entries, stats, err := deps.Store.List()
		if err != nil {
			return nil, ListOutput{}, fmt.Errorf("listing stories: %w", err)
		}

		out := ListOutput{Count: len(entries), Skipped: stats.Skipped}
		for _, e := range entries {
			out.Stories = append(out.Stories, StorySummary{
				Slug:       e.Slug,
				Title:      e.Story.Title,
				AuthorName: e.Story.AuthorName,
				Blocks:     len(e.Story.Blocks()),
				Path:       e.Path,
			})
		}
		return nil, out, nil
	}
}

// --- slugify ---

// SlugifyInput is the input for the slugify tool.
type SlugifyInput struct {
	Title string `json:"title" jsonschema:"title to slugify"`
}

// SlugifyOutput is the output for the slugify tool.
type SlugifyOutput struct {
	Slug      string            `json:"slug"      jsonschema:"lowercase ASCII slug, at most 50 characters"`
	Filenames map[string]string `json:"filenames" jsonschema:"file name per export format"`
}

func handleSlugify() mcp.ToolHandlerFor[SlugifyInput, SlugifyOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input SlugifyInput) (*mcp.CallToolResult, SlugifyOutput, error) {
		out := SlugifyOutput{
			Slug:      slug.Make(input.Title),
			Filenames: make(map[string]string, len(emit.Formats)),
		}
		for _, f := range emit.Formats {
			out.Filenames[string(f)] = slug.Filename(input.Title, string(f))
		}
		return nil, out, nil
	}
}
