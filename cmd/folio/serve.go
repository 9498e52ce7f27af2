package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/folio/internal/export"
	"github.com/gorewood/folio/internal/output"
	"github.com/gorewood/folio/internal/server"
	"github.com/gorewood/folio/internal/story"
)

// newServeCmd creates the serve command for running the HTTP export API.
func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP export API",
		Long: `Serve story exports over HTTP.

Endpoints:
  GET  /healthcheck
  POST /api/export/{txt|pdf|json|md}     story JSON in the body, file in the response
  POST /api/slug                         {"title": "..."} -> slug and file names
  GET  /api/stories                      stories in story_dir
  GET  /api/stories/{slug}/{format}      export a stored story

The server stops gracefully on Ctrl-C.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer a.log.Sync()

			if addr == "" {
				addr = a.cfg.Server.Addr
			}

			srv := server.NewServer(server.RouterConfig{
				ExportHandler: server.NewExportHandler(story.NewStore(a.cfg.StoryDir), export.Options{}, a.log),
				HealthHandler: server.NewHealthHandler(),
				Log:           a.log,
				MaxBodyBytes:  a.cfg.Server.MaxBodyBytes,
			}, server.Options{
				Addr:         addr,
				ReadTimeout:  a.cfg.Server.ReadTimeout,
				WriteTimeout: a.cfg.Server.WriteTimeout,
			})

			if !a.printer.IsJSON() {
				a.printer.Stderr("listening on http://%s\n", addr)
			}
			if err := srv.Run(cmd.Context()); err != nil {
				err = output.NewSystemErrorWithCause("server failed: "+err.Error(), err)
				a.printer.Error(err)
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")

	return cmd
}
