package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorewood/folio/internal/output"
	"github.com/gorewood/folio/internal/story"
)

func newTestLoader(t *testing.T, stdin string) *Loader {
	t.Helper()
	opts := DefaultOptions()
	opts.Retries = 0
	opts.Timeout = 5 * time.Second
	opts.Stdin = strings.NewReader(stdin)
	l := NewLoader(opts)
	t.Cleanup(func() { _ = l.Close() })
	return l
}

func TestIsRemote(t *testing.T) {
	tests := []struct {
		ref  string
		want bool
	}{
		{"https://example.com/s.json", true},
		{"http://localhost:8080/s", true},
		{"ftp://example.com/s.json", false},
		{"stories/s.json", false},
		{"-", false},
		{"https://", false},
	}
	for _, tt := range tests {
		if got := IsRemote(tt.ref); got != tt.want {
			t.Errorf("IsRemote(%q) = %v, want %v", tt.ref, got, tt.want)
		}
	}
}

func TestLoad_Stdin(t *testing.T) {
	l := newTestLoader(t, `{"title": "Piped", "author_name": "P"}`)

	s, err := l.Load(context.Background(), Stdin)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Title != "Piped" {
		t.Errorf("Title = %q", s.Title)
	}
}

func TestLoad_StdinEmpty(t *testing.T) {
	l := newTestLoader(t, "")
	_, err := l.Load(context.Background(), Stdin)
	if output.GetExitCode(err) != output.ExitUserError {
		t.Errorf("Load() error = %v, want user error", err)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.toml")
	if err := os.WriteFile(path, []byte("title = \"From TOML\"\nauthor_name = \"T\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	l := newTestLoader(t, "")
	s, err := l.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Title != "From TOML" {
		t.Errorf("Title = %q", s.Title)
	}

	if _, err := l.Load(context.Background(), filepath.Join(t.TempDir(), "missing.json")); output.GetExitCode(err) != output.ExitUserError {
		t.Errorf("missing file error = %v, want user error", err)
	}
}

func TestLoad_Remote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/story.json":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"title": "Remote", "author_name": "R", "content": {"blocks": [{"type": "paragraph", "text": "hi"}]}}`))
		case "/feed":
			w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
			_, _ = w.Write([]byte("title: Remote YAML\nauthor_name: Y\n"))
		case "/broken.json":
			_, _ = w.Write([]byte(`{"title": `))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	l := newTestLoader(t, "")

	s, err := l.Load(context.Background(), srv.URL+"/story.json")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Title != "Remote" || len(s.Blocks()) != 1 {
		t.Errorf("Load() = %+v", s)
	}

	s, err = l.Load(context.Background(), srv.URL+"/feed")
	if err != nil {
		t.Fatalf("Load(yaml) error = %v", err)
	}
	if s.Title != "Remote YAML" {
		t.Errorf("Title = %q", s.Title)
	}

	for _, p := range []string{"/missing.json", "/broken.json"} {
		_, err := l.Load(context.Background(), srv.URL+p)
		if output.GetExitCode(err) != output.ExitUserError {
			t.Errorf("Load(%s) error = %v, want user error", p, err)
		}
	}
}

func TestRemoteFormat(t *testing.T) {
	tests := []struct {
		url         string
		contentType string
		want        story.Format
	}{
		{"https://x/s.toml", "text/plain", story.FormatTOML},
		{"https://x/s.yml?v=1", "", story.FormatYAML},
		{"https://x/s", "application/x-yaml", story.FormatYAML},
		{"https://x/s", "application/toml", story.FormatTOML},
		{"https://x/s", "application/json; charset=utf-8", story.FormatJSON},
		{"https://x/s", "", story.FormatJSON},
	}
	for _, tt := range tests {
		if got := remoteFormat(tt.url, tt.contentType); got != tt.want {
			t.Errorf("remoteFormat(%q, %q) = %q, want %q", tt.url, tt.contentType, got, tt.want)
		}
	}
}
