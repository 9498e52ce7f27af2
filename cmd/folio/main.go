// Package main provides the entry point for the folio CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gorewood/folio/internal/config"
	"github.com/gorewood/folio/internal/envfile"
	"github.com/gorewood/folio/internal/output"
)

// Build info set via ldflags at build time by goreleaser.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	code := run()
	os.Exit(code)
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd()
	err := fang.Execute(ctx, cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd creates the root command for the folio CLI.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folio",
		Short: "Render stories to text, PDF and more",
		Long: `Folio - render block-based stories to portable documents.

A story is a title, an author, an optional summary and an ordered list of
content blocks (paragraphs, headings, lists, images, links, ...). Folio
turns it into:
  - a plain-text transcript (.txt)
  - a paginated A4 PDF (.pdf)
  - normalized JSON (.json) or Markdown (.md)

Stories are read from JSON, YAML or TOML files, from http(s) URLs, or
from stdin with "-". All commands support --json for structured output.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if isJSONMode(cmd) {
				printer := output.NewPrinter(cmd.OutOrStdout(), true, false)
				err := output.NewUserError("no command specified. Run 'folio --help' for usage")
				printer.Error(err)
				return err
			}
			return cmd.Help()
		},
	}

	// Environment variables always take precedence over file values.
	cmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		_, _ = envfile.LoadFiles(config.EnvFiles()...)
		return nil
	}

	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().String("color", "auto", "Color output: auto, always or never")
	cmd.PersistentFlags().String("config", "", "Config file (default: <config dir>/config.yaml)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug details to stderr")

	lipgloss.SetHasDarkBackground(true)

	addCommandGroups(cmd)
	addCommands(cmd)

	return cmd
}

// addCommandGroups defines the command groups for help output.
func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "render", Title: "Render Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "library", Title: "Library Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "server", Title: "Server Commands:"})
}

// addCommands adds all subcommands with their group assignments.
func addCommands(cmd *cobra.Command) {
	addGroupedCommand(cmd, newExportCmd(), "render")
	addGroupedCommand(cmd, newPreviewCmd(), "render")

	addGroupedCommand(cmd, newListCmd(), "library")
	addGroupedCommand(cmd, newSlugCmd(), "library")

	addGroupedCommand(cmd, newServeCmd(), "server")
	addGroupedCommand(cmd, newMCPCmd(), "server")
}

// addGroupedCommand adds a subcommand with a group assignment.
func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}
