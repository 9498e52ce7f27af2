package main

import (
	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/gorewood/folio/internal/export"
	"github.com/gorewood/folio/internal/slug"
)

// previewWidth is the word-wrap column for rendered previews.
const previewWidth = 80

// newPreviewCmd creates the preview command.
func newPreviewCmd() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "preview <story>",
		Short: "Show a story in the terminal",
		Long: `Render a story as Markdown and show it in the terminal.

On a terminal the Markdown is styled; otherwise, or with --raw, it is
printed as-is so it can be piped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd, args[0], raw)
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print Markdown without styling")

	return cmd
}

func runPreview(cmd *cobra.Command, ref string, raw bool) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.log.Sync()

	loader := a.newLoader(cmd)
	defer func() { _ = loader.Close() }()

	s, err := loader.Load(cmd.Context(), ref)
	if err != nil {
		a.printer.Error(err)
		return err
	}

	markdown := export.FormatMarkdown(s, false)
	if a.printer.IsJSON() {
		return a.printer.WriteJSON(map[string]any{
			"slug":     slug.Make(s.Title),
			"markdown": markdown,
		})
	}

	if raw || !a.printer.IsTTY() {
		a.printer.Print("%s", markdown)
		return nil
	}
	a.printer.Print("%s", renderMarkdown(markdown))
	return nil
}

// renderMarkdown styles markdown for the terminal, falling back to the
// source text if the renderer cannot be built.
func renderMarkdown(markdown string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(previewWidth),
	)
	if err != nil {
		return markdown
	}
	rendered, err := renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return rendered
}
