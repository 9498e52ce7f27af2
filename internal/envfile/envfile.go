// Package envfile loads dotenv files into the process environment.
// Variables already set in the environment take precedence, and so do
// files loaded earlier.
package envfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// LoadFiles loads each path in order and returns the ones that existed.
func LoadFiles(paths ...string) ([]string, error) {
	var loaded []string
	for _, path := range paths {
		ok, err := load(path)
		if err != nil {
			return loaded, err
		}
		if ok {
			loaded = append(loaded, path)
		}
	}
	return loaded, nil
}

// Load sets the variables from one file that are not already set.
// A missing file is not an error.
func Load(path string) error {
	_, err := load(path)
	return err
}

func load(path string) (bool, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("opening env file %s: %w", path, err)
	}
	defer file.Close() //nolint:errcheck // read-only

	vars, err := Parse(file)
	if err != nil {
		return false, fmt.Errorf("reading env file %s: %w", path, err)
	}
	for key, value := range vars {
		if os.Getenv(key) == "" {
			_ = os.Setenv(key, value)
		}
	}
	return true, nil
}

// Parse reads KEY=VALUE lines. Blank lines, # comments and lines without
// '=' are skipped. Later duplicates win.
func Parse(r io.Reader) (map[string]string, error) {
	vars := map[string]string{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if key, value, ok := parseEnvLine(line); ok {
			vars[key] = value
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return vars, nil
}

// parseEnvLine splits KEY=VALUE. An optional "export " prefix is dropped.
// Quoted values keep their contents verbatim; unquoted values lose a
// trailing " # comment".
func parseEnvLine(line string) (key, value string, ok bool) {
	key, value, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}

	key = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(key), "export "))
	if key == "" {
		return "", "", false
	}

	value = strings.TrimSpace(value)
	if len(value) >= 2 && (value[0] == '"' || value[0] == '\'') && value[len(value)-1] == value[0] {
		return key, value[1 : len(value)-1], true
	}
	if i := strings.Index(value, " #"); i >= 0 {
		value = strings.TrimSpace(value[:i])
	}
	return key, value, true
}
