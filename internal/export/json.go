package export

import (
	"github.com/gorewood/folio/internal/output"
	"github.com/gorewood/folio/internal/story"
)

// FormatJSON outputs the list entries as a JSON array to the printer.
func FormatJSON(printer *output.Printer, entries []*story.Entry) error {
	return printer.WriteJSON(entries)
}

// RenderJSON returns the normalized, indented JSON form of a story.
// Unknown blocks keep their original payload.
func RenderJSON(s *story.Story) ([]byte, error) {
	data, err := s.ToJSON()
	if err != nil {
		return nil, output.NewSystemErrorWithCause("failed to marshal story "+s.Title, err)
	}
	return data, nil
}
