package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/gorewood/folio/internal/emit"
	foliomcp "github.com/gorewood/folio/internal/mcp"
	"github.com/gorewood/folio/internal/story"
)

// newMCPCmd creates the mcp command for running as an MCP server.
func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run folio as a Model Context Protocol (MCP) server over stdio.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "folio": {
        "command": "folio",
        "args": ["mcp"]
      }
    }
  }

Available tools: render_text, export_story, list_stories, slugify`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer a.log.Sync()

			server := foliomcp.NewServer(buildVersion(), foliomcp.Deps{
				Store:   story.NewStore(a.cfg.StoryDir),
				Emitter: &emit.DirEmitter{Dir: a.cfg.OutputDir, Overwrite: a.cfg.Export.Overwrite, Log: a.log},
				Log:     a.log,
			})
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
