//go:build integration

// Package integration provides end-to-end tests for the folio CLI.
// These tests build the binary and run full export workflows against real
// files and a local HTTP server.
//
// Run with: go test -tags=integration ./internal/integration/...
package integration

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

const storyJSON = `{
  "title": "Integration Story",
  "author_name": "Ivy",
  "summary": "End to end.",
  "content": {"blocks": [
    {"type": "heading", "text": "Start"},
    {"type": "paragraph", "text": "Hello from the pipeline."},
    {"type": "separator"},
    {"type": "list", "listType": "unordered", "items": ["a", "b"]}
  ]}
}`

const storyYAML = `title: YAML Story
author_name: Yan
content:
  blocks:
    - type: bold
      text: Loud
`

// workspace is a temp directory with a freshly built folio binary.
type workspace struct {
	t      *testing.T
	dir    string
	binary string
}

func newWorkspace(t *testing.T) *workspace {
	t.Helper()

	dir := t.TempDir()

	binary := filepath.Join(dir, "folio")
	buildCmd := exec.Command("go", "build", "-o", binary, "./cmd/folio")
	buildCmd.Dir = findProjectRoot(t)
	buildCmd.Env = append(os.Environ(), "CGO_ENABLED=0")
	if output, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to build folio: %v\n%s", err, output)
	}

	return &workspace{t: t, dir: dir, binary: binary}
}

// findProjectRoot locates the project root by finding go.mod.
func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

func (w *workspace) write(name, content string) string {
	w.t.Helper()
	path := filepath.Join(w.dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		w.t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		w.t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// folio runs the binary and returns stdout, stderr and the exit code.
func (w *workspace) folio(stdin string, args ...string) (string, string, int) {
	w.t.Helper()

	cmd := exec.Command(w.binary, args...)
	cmd.Dir = w.dir
	cmd.Env = append(os.Environ(),
		"FOLIO_CONFIG_HOME="+filepath.Join(w.dir, "config"),
		"FOLIO_OUTPUT_DIR=",
		"FOLIO_STORY_DIR=",
		"NO_COLOR=1",
	)
	cmd.Stdin = strings.NewReader(stdin)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	code := 0
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.ExitCode()
	} else if err != nil {
		w.t.Fatalf("running folio: %v", err)
	}
	return stdout.String(), stderr.String(), code
}

func TestExportWorkflow(t *testing.T) {
	ws := newWorkspace(t)
	src := ws.write("stories/integration.json", storyJSON)
	ws.write("stories/yaml.yaml", storyYAML)
	out := filepath.Join(ws.dir, "out")

	stdout, stderr, code := ws.folio("", "export", "-f", "txt,pdf,md,json", "-o", out, src)
	if code != 0 {
		t.Fatalf("export exit %d\nstdout: %s\nstderr: %s", code, stdout, stderr)
	}

	for _, name := range []string{"integration-story.txt", "integration-story.pdf", "integration-story.md", "integration-story.json"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}

	txt, _ := os.ReadFile(filepath.Join(out, "integration-story.txt"))
	if !strings.Contains(string(txt), "\n## Start\n\n") || !strings.Contains(string(txt), "• a\n• b\n\n") {
		t.Errorf("unexpected transcript:\n%s", txt)
	}

	pdf, _ := os.ReadFile(filepath.Join(out, "integration-story.pdf"))
	if !bytes.HasPrefix(pdf, []byte("%PDF-")) {
		t.Error("PDF output has no %PDF- header")
	}

	// Second run without --force conflicts.
	_, _, code = ws.folio("", "export", "-f", "txt", "-o", out, src)
	if code != 3 {
		t.Errorf("re-export exit = %d, want 3", code)
	}

	// list sees both stories.
	stdout, _, code = ws.folio("", "list", "--json", filepath.Join(ws.dir, "stories"))
	if code != 0 {
		t.Fatalf("list exit %d", code)
	}
	var entries []map[string]any
	if err := json.Unmarshal([]byte(stdout), &entries); err != nil {
		t.Fatalf("list --json: %v\n%s", err, stdout)
	}
	if len(entries) != 2 {
		t.Errorf("list found %d stories, want 2", len(entries))
	}
}

func TestExportFromStdinAndURL(t *testing.T) {
	ws := newWorkspace(t)

	stdout, _, code := ws.folio(storyJSON, "export", "-f", "txt", "-o", "-", "-")
	if code != 0 {
		t.Fatalf("stdin export exit %d", code)
	}
	if !strings.HasPrefix(stdout, "Integration Story\nBy Ivy\n") {
		t.Errorf("stdin transcript = %q", stdout)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write([]byte(storyYAML))
	}))
	defer srv.Close()

	stdout, _, code = ws.folio("", "export", "-f", "txt", "-o", "-", srv.URL+"/story")
	if code != 0 {
		t.Fatalf("url export exit %d", code)
	}
	if !strings.Contains(stdout, "**Loud**") {
		t.Errorf("url transcript = %q", stdout)
	}
}

func TestUserErrors(t *testing.T) {
	ws := newWorkspace(t)

	_, _, code := ws.folio("", "export", filepath.Join(ws.dir, "missing.json"))
	if code != 1 {
		t.Errorf("missing story exit = %d, want 1", code)
	}

	_, _, code = ws.folio("{broken", "export", "-o", "-", "-")
	if code != 1 {
		t.Errorf("broken stdin exit = %d, want 1", code)
	}

	stdout, _, code := ws.folio("", "slug", "Hello, World!!! 2024")
	if code != 0 || strings.TrimSpace(stdout) != "hello-world-2024" {
		t.Errorf("slug = %q (exit %d)", stdout, code)
	}
}
