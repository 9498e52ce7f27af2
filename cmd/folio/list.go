package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gorewood/folio/internal/export"
	"github.com/gorewood/folio/internal/story"
)

// newListCmd creates the list command.
func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [dir]",
		Short: "List stories in a directory",
		Long: `List every JSON, YAML and TOML story below a directory.

The directory defaults to story_dir from the config file. Files that do
not parse as stories are counted and skipped.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, args)
		},
	}
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.log.Sync()

	dir := a.cfg.StoryDir
	if len(args) == 1 {
		dir = args[0]
	}

	entries, stats, err := story.NewStore(dir).List()
	if err != nil {
		a.printer.Error(err)
		return err
	}

	if a.printer.IsJSON() {
		if entries == nil {
			entries = []*story.Entry{}
		}
		return export.FormatJSON(a.printer, entries)
	}

	if len(entries) == 0 {
		a.printer.Println("No stories found in " + dir)
	} else {
		rows := make([][]string, 0, len(entries))
		for _, e := range entries {
			rows = append(rows, []string{
				e.Slug,
				e.Story.Title,
				e.Story.AuthorName,
				strconv.Itoa(len(e.Story.Blocks())),
				e.Path,
			})
		}
		a.printer.Table([]string{"SLUG", "TITLE", "AUTHOR", "BLOCKS", "PATH"}, rows)
	}

	if stats.Skipped > 0 {
		a.printer.Warn("skipped %d file(s) that are not valid stories", stats.Skipped)
	}
	return nil
}
