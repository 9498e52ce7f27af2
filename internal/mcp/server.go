// Package mcp provides a Model Context Protocol server for folio.
// It exposes story rendering as MCP tools that any MCP-capable agent can use.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/folio/internal/emit"
	"github.com/gorewood/folio/internal/export"
	"github.com/gorewood/folio/internal/logger"
	"github.com/gorewood/folio/internal/story"
)

// Deps are the collaborators the tools share. Store may be nil, in which
// case stories can only be passed inline.
type Deps struct {
	Store   *story.Store
	Emitter emit.Emitter
	PDF     export.Options
	Log     *logger.Logger
}

// NewServer creates an MCP server with all folio tools registered.
func NewServer(version string, deps Deps) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "folio",
		Version: version,
	}, nil)
	deps.Log = logger.OrNop(deps.Log)
	registerTools(server, deps)
	return server
}

func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// writeAnnotations returns annotations for tools that create files but
// never replace them.
func writeAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(false),
		OpenWorldHint:   boolPtr(false),
	}
}

func registerTools(server *mcp.Server, deps Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "render_text",
		Description: "Render a story as a plain-text transcript. Pass the story document inline as JSON, or the slug of a story in the story directory.",
		Annotations: readOnlyAnnotations(),
	}, handleRenderText(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "export_story",
		Description: "Render a story to a file (txt, pdf, json or md) in the output directory and return where it was written. Existing files are never overwritten.",
		Annotations: writeAnnotations(),
	}, handleExport(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_stories",
		Description: "List stories found in the story directory with their slugs and block counts.",
		Annotations: readOnlyAnnotations(),
	}, handleList(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "slugify",
		Description: "Compute the URL-safe slug of a title and the file names each export format would use.",
		Annotations: readOnlyAnnotations(),
	}, handleSlugify())
}
