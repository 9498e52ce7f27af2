package server

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gorewood/folio/internal/emit"
	"github.com/gorewood/folio/internal/export"
	"github.com/gorewood/folio/internal/logger"
	"github.com/gorewood/folio/internal/output"
	"github.com/gorewood/folio/internal/slug"
	"github.com/gorewood/folio/internal/story"
)

// HealthHandler answers liveness checks.
type HealthHandler struct{}

// NewHealthHandler returns a HealthHandler.
func NewHealthHandler() *HealthHandler { return &HealthHandler{} }

// HealthCheck responds 200 with "ok".
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// ExportHandler renders stories posted in the request body, or read from
// the story directory, and returns them as downloads.
type ExportHandler struct {
	store   *story.Store
	pdfOpts export.Options
	log     *logger.Logger
}

// NewExportHandler builds the handler. store may be nil, which disables
// the /api/stories routes.
func NewExportHandler(store *story.Store, pdfOpts export.Options, log *logger.Logger) *ExportHandler {
	return &ExportHandler{store: store, pdfOpts: pdfOpts, log: logger.OrNop(log)}
}

// POST /api/export/:format
func (h *ExportHandler) Export(c *gin.Context) {
	format, err := emit.ParseFormat(c.Param("format"))
	if err != nil {
		respondErr(c, err)
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respondErr(c, err)
		return
	}
	s, err := story.FromJSON(body)
	if err != nil {
		respondErr(c, output.NewUserErrorWithCause("invalid story document", err))
		return
	}

	h.render(c, s, format)
}

type storySummary struct {
	Slug       string `json:"slug"`
	Title      string `json:"title"`
	AuthorName string `json:"author_name"`
	Blocks     int    `json:"blocks"`
}

// GET /api/stories
func (h *ExportHandler) ListStories(c *gin.Context) {
	entries, stats, err := h.store.List()
	if err != nil {
		respondErr(c, err)
		return
	}

	stories := make([]storySummary, 0, len(entries))
	for _, e := range entries {
		stories = append(stories, storySummary{
			Slug:       e.Slug,
			Title:      e.Story.Title,
			AuthorName: e.Story.AuthorName,
			Blocks:     len(e.Story.Blocks()),
		})
	}
	RespondOK(c, gin.H{"stories": stories, "stats": stats})
}

// GET /api/stories/:slug/:format
func (h *ExportHandler) ExportStored(c *gin.Context) {
	format, err := emit.ParseFormat(c.Param("format"))
	if err != nil {
		respondErr(c, err)
		return
	}

	entry, err := h.store.Find(c.Param("slug"))
	if err != nil {
		respondErr(c, err)
		return
	}

	h.render(c, entry.Story, format)
}

func (h *ExportHandler) render(c *gin.Context, s *story.Story, format emit.Format) {
	if err := s.MalformedBlocks(); err != nil {
		h.log.Warn("malformed blocks dropped", "slug", slug.Make(s.Title), "error", err)
	}

	artifact, err := emit.Render(c.Request.Context(), s, format, h.pdfOpts)
	if err != nil {
		h.log.Error("export failed", "format", format, "slug", slug.Make(s.Title), "error", err)
		_ = c.Error(err)
		respondErr(c, err)
		return
	}

	h.log.Info("story exported",
		"format", format,
		"name", artifact.Name,
		"blocks", len(s.Blocks()),
		"bytes", len(artifact.Data),
	)
	emit.Attach(c, artifact)
}

type slugRequest struct {
	Title string `json:"title"`
}

type slugResponse struct {
	Slug      string            `json:"slug"`
	Filenames map[string]string `json:"filenames"`
}

// POST /api/slug
func (h *ExportHandler) Slug(c *gin.Context) {
	var req slugRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, output.NewUserErrorWithCause("invalid slug request", err))
		return
	}

	filenames := make(map[string]string, len(emit.Formats))
	for _, f := range emit.Formats {
		filenames[string(f)] = slug.Filename(req.Title, string(f))
	}
	RespondOK(c, slugResponse{Slug: slug.Make(req.Title), Filenames: filenames})
}

// NoRoute answers unknown paths with the JSON error envelope.
func NoRoute(c *gin.Context) {
	RespondError(c, http.StatusNotFound, "not_found",
		fmt.Errorf("no route for %s %s", c.Request.Method, strings.TrimSpace(c.Request.URL.Path)))
}
