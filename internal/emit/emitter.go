package emit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gorewood/folio/internal/logger"
	"github.com/gorewood/folio/internal/output"
)

// Emitter delivers an artifact and returns where it went.
type Emitter interface {
	Emit(ctx context.Context, a Artifact) (string, error)
}

// DirEmitter writes artifacts into Dir under their own name.
//
// Each write goes to a temporary file in Dir that is synced and then moved
// into place, so the target is either absent or complete. The temporary
// file is removed on every path out of Emit.
type DirEmitter struct {
	Dir       string
	Overwrite bool
	Log       *logger.Logger
}

// Emit writes a to Dir. Without Overwrite an existing target is a conflict
// and nothing is written.
func (e *DirEmitter) Emit(ctx context.Context, a Artifact) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := sanitizeFilename(a.Name)
	if name == "" {
		return "", output.NewUserError(fmt.Sprintf("invalid artifact name %q", a.Name))
	}
	target := filepath.Join(e.Dir, name)

	if !e.Overwrite {
		if _, err := os.Lstat(target); err == nil {
			return "", output.NewConflictError("file already exists: " + target)
		}
	}

	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return "", output.NewSystemErrorWithCause("failed to create output directory "+e.Dir, err)
	}

	if err := writeFile(target, a.Data, e.Overwrite); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return "", output.NewConflictError("file already exists: " + target)
		}
		return "", output.NewSystemErrorWithCause("failed to write "+target, err)
	}

	logger.OrNop(e.Log).Debug("artifact written", "path", target, "bytes", len(a.Data), "mime", a.MIMEType)
	return target, nil
}

// writeFile stages data in a temp file next to path, then renames it over
// path, or hard-links it when existing files must not be replaced.
func writeFile(path string, data []byte, overwrite bool) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".folio-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("write data: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o600); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}

	if overwrite {
		if err := os.Rename(tmpPath, path); err != nil {
			return fmt.Errorf("rename temp file: %w", err)
		}
		return nil
	}
	if err := os.Link(tmpPath, path); err != nil {
		return fmt.Errorf("link temp file: %w", err)
	}
	return nil
}

// WriterEmitter streams artifacts to W, typically stdout.
type WriterEmitter struct {
	W io.Writer
}

// Emit writes the artifact bytes and returns "-".
func (e *WriterEmitter) Emit(ctx context.Context, a Artifact) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, err := e.W.Write(a.Data); err != nil {
		return "", output.NewSystemErrorWithCause("failed to write "+a.Name, err)
	}
	return "-", nil
}
