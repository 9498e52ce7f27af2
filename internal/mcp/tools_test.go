package mcp

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/folio/internal/emit"
	"github.com/gorewood/folio/internal/story"
)

const harborJSON = `{"title": "Harbor Report", "author_name": "Ada", "content": {"blocks": [
	{"type": "heading", "text": "Morning"},
	{"type": "paragraph", "text": "Fog lifted early."}
]}}`

// --- Test helpers ---

func makeDeps(t *testing.T) (Deps, string) {
	t.Helper()
	storyDir := t.TempDir()
	outDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(storyDir, "harbor.json"), []byte(harborJSON), 0o600); err != nil {
		t.Fatalf("writing story: %v", err)
	}
	return Deps{
		Store:   story.NewStore(storyDir),
		Emitter: &emit.DirEmitter{Dir: outDir},
	}, outDir
}

// --- render_text ---

func TestHandleRenderText_Inline(t *testing.T) {
	handler := handleRenderText(Deps{})

	_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, RenderTextInput{Story: harborJSON})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Name != "harbor-report.txt" {
		t.Errorf("Name = %q, want %q", out.Name, "harbor-report.txt")
	}
	if !strings.HasPrefix(out.Text, "Harbor Report\nBy Ada\n") {
		t.Errorf("Text = %q", out.Text)
	}
	if !strings.Contains(out.Text, "## Morning\n\n") {
		t.Errorf("Text missing heading: %q", out.Text)
	}
}

func TestHandleRenderText_BySlug(t *testing.T) {
	deps, _ := makeDeps(t)
	handler := handleRenderText(deps)

	_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, RenderTextInput{Slug: "harbor-report"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.Text, "Fog lifted early.") {
		t.Errorf("Text = %q", out.Text)
	}
}

func TestHandleRenderText_Errors(t *testing.T) {
	deps, _ := makeDeps(t)
	tests := []struct {
		name  string
		deps  Deps
		input RenderTextInput
	}{
		{name: "neither", deps: deps, input: RenderTextInput{}},
		{name: "both", deps: deps, input: RenderTextInput{Story: harborJSON, Slug: "harbor-report"}},
		{name: "bad json", deps: deps, input: RenderTextInput{Story: "{nope"}},
		{name: "unknown slug", deps: deps, input: RenderTextInput{Slug: "missing"}},
		{name: "slug without store", deps: Deps{}, input: RenderTextInput{Slug: "harbor-report"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := handleRenderText(tt.deps)(context.Background(), &mcp.CallToolRequest{}, tt.input)
			if err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

// --- export_story ---

func TestHandleExport_WritesFile(t *testing.T) {
	deps, outDir := makeDeps(t)
	handler := handleExport(deps)

	_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, ExportInput{Slug: "harbor-report", Format: "pdf"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Path != filepath.Join(outDir, "harbor-report.pdf") {
		t.Errorf("Path = %q", out.Path)
	}

	data, err := os.ReadFile(out.Path)
	if err != nil {
		t.Fatalf("reading artifact: %v", err)
	}
	if len(data) != out.Bytes {
		t.Errorf("Bytes = %d, file has %d", out.Bytes, len(data))
	}
	if !strings.HasPrefix(string(data), "%PDF-") {
		t.Error("artifact is not a PDF")
	}
}

func TestHandleExport_RefusesOverwrite(t *testing.T) {
	deps, _ := makeDeps(t)
	handler := handleExport(deps)
	input := ExportInput{Story: harborJSON, Format: "txt"}

	if _, _, err := handler(context.Background(), &mcp.CallToolRequest{}, input); err != nil {
		t.Fatalf("first export: %v", err)
	}
	if _, _, err := handler(context.Background(), &mcp.CallToolRequest{}, input); err == nil {
		t.Error("second export should fail on existing file")
	}
}

func TestHandleExport_Errors(t *testing.T) {
	deps, _ := makeDeps(t)

	_, _, err := handleExport(deps)(context.Background(), &mcp.CallToolRequest{}, ExportInput{Story: harborJSON, Format: "docx"})
	if err == nil {
		t.Error("expected error for unknown format")
	}

	_, _, err = handleExport(Deps{})(context.Background(), &mcp.CallToolRequest{}, ExportInput{Story: harborJSON, Format: "txt"})
	if err == nil {
		t.Error("expected error without an emitter")
	}
}

// --- list_stories ---

func TestHandleList(t *testing.T) {
	deps, _ := makeDeps(t)
	handler := handleList(deps)

	_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, ListInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Count != 1 {
		t.Fatalf("Count = %d, want 1", out.Count)
	}
	got := out.Stories[0]
	if got.Slug != "harbor-report" || got.Blocks != 2 || got.AuthorName != "Ada" {
		t.Errorf("Stories[0] = %+v", got)
	}
}

// --- slugify ---

func TestHandleSlugify(t *testing.T) {
	_, out, err := handleSlugify()(context.Background(), &mcp.CallToolRequest{}, SlugifyInput{Title: "Hello, World!!! 2024"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Slug != "hello-world-2024" {
		t.Errorf("Slug = %q", out.Slug)
	}
	if out.Filenames["md"] != "hello-world-2024.md" {
		t.Errorf("Filenames = %v", out.Filenames)
	}

	_, out, _ = handleSlugify()(context.Background(), &mcp.CallToolRequest{}, SlugifyInput{Title: "???"})
	if out.Slug != "" || out.Filenames["pdf"] != "story.pdf" {
		t.Errorf("empty slug output = %+v", out)
	}
}

// --- server ---

func TestNewServer_RegistersTools(t *testing.T) {
	ctx := context.Background()
	deps, _ := makeDeps(t)
	server := NewServer("test", deps)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	if err != nil {
		t.Fatalf("server connect: %v", err)
	}
	defer serverSession.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "test"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	defer session.Close()

	result, err := session.ListTools(ctx, nil)
	if err != nil {
		t.Fatalf("ListTools: %v", err)
	}

	var names []string
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
	}
	sort.Strings(names)
	want := []string{"export_story", "list_stories", "render_text", "slugify"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("tools = %v, want %v", names, want)
	}
}
