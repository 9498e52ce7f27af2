// Package batch exports many stories in many formats with bounded
// concurrency.
package batch

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/gorewood/folio/internal/emit"
	"github.com/gorewood/folio/internal/export"
	"github.com/gorewood/folio/internal/logger"
	"github.com/gorewood/folio/internal/story"
)

// Source resolves a story reference.
type Source interface {
	Load(ctx context.Context, ref string) (*story.Story, error)
}

// Runner loads every ref once and emits one artifact per format.
type Runner struct {
	Source  Source
	Emitter emit.Emitter
	PDF     export.Options
	Jobs    int
	Log     *logger.Logger
}

// Result is the outcome of one ref in one format. Err is set when either
// loading or emitting failed; the other fields are then partial.
type Result struct {
	Ref    string
	Format emit.Format
	Name   string
	Dest   string
	Bytes  int
	Err    error
}

// Run exports refs × formats. Results come back in input order, refs
// first. One failure does not stop the others: every error is joined into
// the returned error.
func (r *Runner) Run(ctx context.Context, refs []string, formats []emit.Format) ([]Result, error) {
	log := logger.OrNop(r.Log)
	results := make([]Result, len(refs)*len(formats))

	var g errgroup.Group
	g.SetLimit(max(r.Jobs, 1))

	for i, ref := range refs {
		slots := results[i*len(formats) : (i+1)*len(formats)]
		g.Go(func() error {
			r.exportRef(ctx, log, ref, formats, slots)
			return nil
		})
	}
	_ = g.Wait()

	var errs []error
	for _, res := range results {
		if res.Err != nil {
			errs = append(errs, fmt.Errorf("%s (%s): %w", res.Ref, res.Format, res.Err))
		}
	}
	return results, errors.Join(errs...)
}

func (r *Runner) exportRef(ctx context.Context, log *logger.Logger, ref string, formats []emit.Format, slots []Result) {
	for j, f := range formats {
		slots[j] = Result{Ref: ref, Format: f}
	}

	if err := ctx.Err(); err != nil {
		for j := range slots {
			slots[j].Err = err
		}
		return
	}

	s, err := r.Source.Load(ctx, ref)
	if err != nil {
		for j := range slots {
			slots[j].Err = err
		}
		log.Warn("story load failed", "ref", ref, "error", err)
		return
	}
	if err := s.MalformedBlocks(); err != nil {
		log.Warn("malformed blocks dropped", "ref", ref, "error", err)
	}

	for j, f := range formats {
		artifact, err := emit.Render(ctx, s, f, r.PDF)
		if err != nil {
			slots[j].Err = err
			continue
		}
		slots[j].Name = artifact.Name
		slots[j].Bytes = len(artifact.Data)

		dest, err := r.Emitter.Emit(ctx, artifact)
		if err != nil {
			slots[j].Err = err
			continue
		}
		slots[j].Dest = dest
		log.Debug("artifact emitted", "ref", ref, "format", f, "dest", dest)
	}
}
