// Package source resolves story references: local files, "-" for stdin,
// and http(s) URLs fetched with retries.
package source

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"resty.dev/v3"

	"github.com/gorewood/folio/internal/logger"
	"github.com/gorewood/folio/internal/output"
	"github.com/gorewood/folio/internal/story"
)

// Stdin is the reference that reads a JSON story from standard input.
const Stdin = "-"

// maxBodySize caps remote story documents.
const maxBodySize = 16 << 20

// Options configure a Loader.
type Options struct {
	Retries   int
	RetryWait time.Duration
	Timeout   time.Duration
	UserAgent string
	Stdin     io.Reader
	Log       *logger.Logger
}

// DefaultOptions returns the settings used when the config file is silent.
func DefaultOptions() Options {
	return Options{
		Retries:   2,
		RetryWait: 500 * time.Millisecond,
		Timeout:   15 * time.Second,
		UserAgent: "folio",
		Stdin:     os.Stdin,
	}
}

// Loader reads stories from any supported reference.
type Loader struct {
	client *resty.Client
	stdin  io.Reader
	log    *logger.Logger
}

// NewLoader builds a Loader with its own HTTP client. Call Close when done.
func NewLoader(opts Options) *Loader {
	client := resty.New().
		SetRetryCount(opts.Retries).
		SetRetryWaitTime(opts.RetryWait).
		SetRetryMaxWaitTime(4 * opts.RetryWait).
		SetTimeout(opts.Timeout).
		SetHeader("User-Agent", opts.UserAgent).
		SetHeader("Accept", "application/json, application/yaml, application/toml;q=0.9, */*;q=0.1")

	stdin := opts.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}

	return &Loader{client: client, stdin: stdin, log: logger.OrNop(opts.Log)}
}

// Close releases the HTTP client.
func (l *Loader) Close() error {
	return l.client.Close()
}

// IsRemote reports whether ref is an http or https URL.
func IsRemote(ref string) bool {
	u, err := url.Parse(ref)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Load resolves ref to a story. Unreadable or undecodable input is a user
// error.
func (l *Loader) Load(ctx context.Context, ref string) (*story.Story, error) {
	switch {
	case ref == Stdin:
		s, err := story.Read(l.stdin, story.FormatJSON)
		if err != nil {
			return nil, output.NewUserErrorWithCause("failed to read story from stdin", err)
		}
		return s, nil
	case IsRemote(ref):
		return l.fetch(ctx, ref)
	default:
		s, err := story.ReadFile(ref)
		if err != nil {
			return nil, output.NewUserErrorWithCause("failed to read story "+ref, err)
		}
		return s, nil
	}
}

func (l *Loader) fetch(ctx context.Context, rawURL string) (*story.Story, error) {
	start := time.Now()
	resp, err := l.client.R().SetContext(ctx).Get(rawURL)
	if err != nil {
		return nil, output.NewUserErrorWithCause("failed to fetch "+rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode() != http.StatusOK {
		return nil, output.NewUserError(fmt.Sprintf("failed to fetch %s: %s", rawURL, resp.Status()))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, output.NewUserErrorWithCause("failed to read response from "+rawURL, err)
	}

	format := remoteFormat(rawURL, resp.Header().Get("Content-Type"))
	l.log.Debug("story fetched", "url", rawURL, "status", resp.StatusCode(),
		"bytes", len(data), "format", format, "elapsed", time.Since(start))

	s, err := story.Decode(data, format)
	if err != nil {
		return nil, output.NewUserErrorWithCause("failed to decode story from "+rawURL, err)
	}
	return s, nil
}

// remoteFormat picks a decoder from the URL extension, then the media type,
// and falls back to JSON.
func remoteFormat(rawURL, contentType string) story.Format {
	if u, err := url.Parse(rawURL); err == nil {
		if f, ok := story.FormatFromPath(path.Base(u.Path)); ok {
			return f
		}
	}

	mediaType, _, _ := mime.ParseMediaType(contentType)
	switch {
	case strings.Contains(mediaType, "yaml"):
		return story.FormatYAML
	case strings.Contains(mediaType, "toml"):
		return story.FormatTOML
	default:
		return story.FormatJSON
	}
}
