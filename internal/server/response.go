package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gorewood/folio/internal/output"
	"github.com/gorewood/folio/internal/story"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.AbortWithStatusJSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// respondErr classifies err by its exit code. Missing stories and
// oversized bodies get their own statuses.
func respondErr(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		RespondError(c, http.StatusRequestEntityTooLarge, "payload_too_large", err)
	case errors.Is(err, story.ErrNotFound):
		RespondError(c, http.StatusNotFound, "story_not_found", err)
	default:
		RespondError(c, output.HTTPStatus(err), output.ErrorCode(err), err)
	}
}
