package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/folio/internal/config"
	"github.com/gorewood/folio/internal/logger"
	"github.com/gorewood/folio/internal/output"
	"github.com/gorewood/folio/internal/source"
)

// app is what every command needs once flags are parsed.
type app struct {
	cfg     config.Config
	log     *logger.Logger
	printer *output.Printer
}

// lookupFlag finds a local or persistent flag by name.
func lookupFlag(cmd *cobra.Command, name string) string {
	flag := cmd.Flags().Lookup(name)
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup(name)
	}
	if flag == nil {
		return ""
	}
	return flag.Value.String()
}

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	return lookupFlag(cmd, "json") == "true"
}

// newPrinter builds the printer for cmd from --json and --color.
func newPrinter(cmd *cobra.Command) *output.Printer {
	out := cmd.OutOrStdout()
	color := output.ResolveColorMode(lookupFlag(cmd, "color"), output.IsTTY(out))
	return output.NewPrinter(out, isJSONMode(cmd), color).WithStderr(cmd.ErrOrStderr())
}

// loadApp reads configuration and builds the logger. Errors are printed
// before they are returned.
func loadApp(cmd *cobra.Command) (*app, error) {
	printer := newPrinter(cmd)

	path := lookupFlag(cmd, "config")
	if path == "" {
		path = config.FilePath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		err = output.NewUserErrorWithCause("invalid configuration: "+err.Error(), err)
		printer.Error(err)
		return nil, err
	}

	level := cfg.LogLevel
	if lookupFlag(cmd, "verbose") == "true" {
		level = "debug"
	}
	log, err := logger.New(cfg.LogMode, level)
	if err != nil {
		err = output.NewUserErrorWithCause("invalid logging configuration: "+err.Error(), err)
		printer.Error(err)
		return nil, err
	}

	return &app{cfg: cfg, log: log, printer: printer}, nil
}

// newLoader builds a story loader from the fetch settings, reading "-"
// from the command's stdin.
func (a *app) newLoader(cmd *cobra.Command) *source.Loader {
	return source.NewLoader(source.Options{
		Retries:   a.cfg.Fetch.Retries,
		RetryWait: a.cfg.Fetch.RetryWait,
		Timeout:   a.cfg.Fetch.Timeout,
		UserAgent: a.cfg.Fetch.UserAgent,
		Stdin:     cmd.InOrStdin(),
		Log:       a.log,
	})
}
