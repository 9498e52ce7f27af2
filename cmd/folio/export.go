package main

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/gorewood/folio/internal/batch"
	"github.com/gorewood/folio/internal/emit"
	"github.com/gorewood/folio/internal/output"
	"github.com/gorewood/folio/internal/source"
	"github.com/gorewood/folio/internal/watch"
)

type exportFlags struct {
	formats []string
	out     string
	force   bool
	jobs    int
	watch   bool
}

// newExportCmd creates the export command.
func newExportCmd() *cobra.Command {
	var flags exportFlags

	cmd := &cobra.Command{
		Use:   "export <story>...",
		Short: "Render stories to files",
		Long: `Render one or more stories to files named after their title slug.

Each <story> is a JSON, YAML or TOML file, an http(s) URL, or "-" to read
JSON from stdin. Existing files are never replaced unless --force is set.

Examples:
  folio export story.json                       # story.txt and story.pdf in the output dir
  folio export -f pdf -o ./out a.json b.yaml    # PDFs for two stories
  folio export -f txt -o - story.json           # transcript to stdout
  folio export --watch drafts/*.json            # re-export on every save`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args, flags)
		},
	}

	cmd.Flags().StringSliceVarP(&flags.formats, "format", "f", nil, "Output formats: txt, pdf, json, md (default from config)")
	cmd.Flags().StringVarP(&flags.out, "out", "o", "", "Output directory, or - for stdout (default from config)")
	cmd.Flags().BoolVar(&flags.force, "force", false, "Replace existing files")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "Stories exported in parallel (default from config)")
	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "Re-export local files when they change")

	return cmd
}

func runExport(cmd *cobra.Command, refs []string, flags exportFlags) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.log.Sync()

	formats, err := resolveFormats(flags.formats, a.cfg.Export.Formats)
	if err != nil {
		a.printer.Error(err)
		return err
	}

	outDir := flags.out
	if outDir == "" {
		outDir = a.cfg.OutputDir
	}
	jobs := flags.jobs
	if jobs <= 0 {
		jobs = a.cfg.Export.Jobs
	}
	overwrite := flags.force || a.cfg.Export.Overwrite

	toStdout := outDir == "-"
	if flags.watch {
		if err := validateWatchRefs(refs, toStdout); err != nil {
			a.printer.Error(err)
			return err
		}
		overwrite = true
	}

	var emitter emit.Emitter
	if toStdout {
		emitter = &emit.WriterEmitter{W: cmd.OutOrStdout()}
		jobs = 1
	} else {
		emitter = &emit.DirEmitter{Dir: outDir, Overwrite: overwrite, Log: a.log}
	}

	loader := a.newLoader(cmd)
	defer func() { _ = loader.Close() }()

	runner := &batch.Runner{Source: loader, Emitter: emitter, Jobs: jobs, Log: a.log}

	runErr := exportOnce(cmd.Context(), a.printer, runner, refs, formats, !toStdout)
	if !flags.watch {
		return runErr
	}
	return watchAndExport(cmd.Context(), a, runner, refs, formats)
}

// exportOnce runs the batch and reports each result. report is false when
// the artifacts themselves went to stdout; failures are reported anyway.
func exportOnce(ctx context.Context, printer *output.Printer, runner *batch.Runner, refs []string, formats []emit.Format, report bool) error {
	results, err := runner.Run(ctx, refs, formats)

	if printer.IsJSON() && report {
		if printErr := printResultsJSON(printer, results); printErr != nil {
			return printErr
		}
		return err
	}

	for _, r := range results {
		if r.Err != nil {
			printer.Error(resultError(r))
			continue
		}
		if report {
			if printErr := printer.Written(r.Name, r.Dest, r.Bytes); printErr != nil {
				return printErr
			}
		}
	}
	return err
}

// resultError prefixes a failure with the ref and format it belongs to,
// keeping its exit code.
func resultError(r batch.Result) error {
	prefix := fmt.Sprintf("%s (%s): ", r.Ref, r.Format)
	var exitErr *output.ExitError
	if errors.As(r.Err, &exitErr) {
		return &output.ExitError{Code: exitErr.Code, Message: prefix + exitErr.Message, Cause: exitErr.Cause}
	}
	return &output.ExitError{Code: output.GetExitCode(r.Err), Message: prefix + r.Err.Error()}
}

func watchAndExport(ctx context.Context, a *app, runner *batch.Runner, refs []string, formats []emit.Format) error {
	w, err := watch.New(refs, watch.DefaultDebounce, func(ctx context.Context, path string) {
		_ = exportOnce(ctx, a.printer, runner, []string{path}, formats, true)
	}, a.log)
	if err != nil {
		err = output.NewSystemErrorWithCause("failed to watch stories", err)
		a.printer.Error(err)
		return err
	}
	defer func() { _ = w.Close() }()

	if !a.printer.IsJSON() {
		a.printer.Stderr("watching %d file(s), press Ctrl-C to stop\n", len(refs))
	}
	return w.Run(ctx)
}

func resolveFormats(flagValues, defaults []string) ([]emit.Format, error) {
	names := flagValues
	if len(names) == 0 {
		names = defaults
	}
	if len(names) == 0 {
		return nil, output.NewUserError("no output format selected")
	}

	formats := make([]emit.Format, 0, len(names))
	for _, name := range names {
		f, err := emit.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(formats, f) {
			formats = append(formats, f)
		}
	}
	return formats, nil
}

func validateWatchRefs(refs []string, toStdout bool) error {
	if toStdout {
		return output.NewUserError("--watch cannot write to stdout")
	}
	for _, ref := range refs {
		if ref == source.Stdin || source.IsRemote(ref) {
			return output.NewUserError("--watch only works with local files, got " + ref)
		}
	}
	return nil
}

type exportResultJSON struct {
	Ref    string `json:"ref"`
	Format string `json:"format"`
	Name   string `json:"name,omitempty"`
	Path   string `json:"path,omitempty"`
	Bytes  int    `json:"bytes,omitempty"`
	Error  string `json:"error,omitempty"`
}

func printResultsJSON(printer *output.Printer, results []batch.Result) error {
	out := make([]exportResultJSON, 0, len(results))
	for _, r := range results {
		item := exportResultJSON{Ref: r.Ref, Format: string(r.Format), Name: r.Name, Path: r.Dest, Bytes: r.Bytes}
		if r.Err != nil {
			item.Error = r.Err.Error()
		}
		out = append(out, item)
	}
	return printer.WriteJSON(map[string]any{"results": out})
}
