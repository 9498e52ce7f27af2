package emit

import (
	"bytes"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// Attach sends the artifact as a file download.
func Attach(c *gin.Context, a Artifact) {
	headers := map[string]string{
		"Content-Disposition":    ContentDisposition(a.Name, true),
		"X-Content-Type-Options": "nosniff",
	}
	c.DataFromReader(http.StatusOK, int64(len(a.Data)), a.MIMEType, bytes.NewReader(a.Data), headers)
}

// ContentDisposition builds the header value for a download or an inline
// view of filename.
func ContentDisposition(filename string, download bool) string {
	disposition := "inline"
	if download {
		disposition = "attachment"
	}
	name := sanitizeFilename(filename)
	if name == "" {
		return disposition
	}
	return fmt.Sprintf("%s; filename=\"%s\"", disposition, name)
}

// sanitizeFilename drops any directory part and characters that would
// break a quoted header value.
func sanitizeFilename(name string) string {
	base := filepath.Base(strings.TrimSpace(name))
	if base == "." || base == "/" || base == ".." {
		return ""
	}
	base = strings.ReplaceAll(base, "\"", "")
	base = strings.ReplaceAll(base, "\\", "")
	return strings.TrimSpace(base)
}
