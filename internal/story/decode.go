package story

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is a serialization format for story documents.
type Format string

// Supported input formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the format from a file extension.
// Returns false for extensions that are not story documents.
func FormatFromPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".toml":
		return FormatTOML, true
	default:
		return "", false
	}
}

// Decode parses a story in the given format.
// YAML and TOML documents use the same keys as JSON and are normalized
// through the JSON decoder so every format yields identical blocks.
func Decode(data []byte, format Format) (*Story, error) {
	switch format {
	case FormatJSON, "":
		return FromJSON(data)
	case FormatYAML:
		var doc map[string]any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing story YAML: %w", err)
		}
		return fromDocument(doc)
	case FormatTOML:
		var doc map[string]any
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing story TOML: %w", err)
		}
		return fromDocument(doc)
	default:
		return nil, fmt.Errorf("unsupported story format %q", format)
	}
}

// Read decodes a story from r.
func Read(r io.Reader, format Format) (*Story, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading story: %w", err)
	}
	return Decode(data, format)
}

// ReadFile loads a story from disk, choosing the format by extension.
// Unknown extensions are read as JSON.
func ReadFile(path string) (*Story, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading story file %s: %w", path, err)
	}
	format, ok := FormatFromPath(path)
	if !ok {
		format = FormatJSON
	}
	return Decode(data, format)
}

func fromDocument(doc map[string]any) (*Story, error) {
	if doc == nil {
		return nil, fmt.Errorf("empty story document")
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("normalizing story document: %w", err)
	}
	return FromJSON(data)
}
