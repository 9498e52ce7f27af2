package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/folio/internal/emit"
	"github.com/gorewood/folio/internal/slug"
)

// newSlugCmd creates the slug command.
func newSlugCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "slug <title>...",
		Short: "Print the slug of a title",
		Long: `Print the URL-safe slug folio derives from a title. Multiple
arguments are joined with spaces.

Examples:
  folio slug "Hello, World!!! 2024"   # hello-world-2024
  folio slug --json My Story          # slug plus the file name per format`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := newPrinter(cmd)
			title := strings.Join(args, " ")

			if printer.IsJSON() {
				filenames := make(map[string]string, len(emit.Formats))
				for _, f := range emit.Formats {
					filenames[string(f)] = slug.Filename(title, string(f))
				}
				return printer.WriteJSON(map[string]any{
					"title":     title,
					"slug":      slug.Make(title),
					"filenames": filenames,
				})
			}

			printer.Println(slug.Make(title))
			return nil
		},
	}
}
