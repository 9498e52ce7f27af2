// Package config resolves where folio keeps its settings and loads them.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// appName names the per-user configuration directory.
const appName = "folio"

// Dir returns the folio configuration directory.
//
// Resolution:
//   - $FOLIO_CONFIG_HOME if set
//   - $XDG_CONFIG_HOME/folio if set, on any platform
//   - %AppData%/folio on Windows
//   - ~/.config/folio elsewhere
//
// Returns "" when no home directory can be determined.
func Dir() string {
	if dir := os.Getenv(EnvConfigHome); dir != "" {
		return dir
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, appName)
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}

// FilePath returns the config file location inside Dir, or "" when Dir is
// unknown.
func FilePath() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// EnvFiles lists the dotenv files loaded at startup, highest priority
// first: the working directory's .env.local and .env, then Dir()/env.
func EnvFiles() []string {
	files := []string{".env.local", ".env"}
	if dir := Dir(); dir != "" {
		files = append(files, filepath.Join(dir, "env"))
	}
	return files
}
