package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/afero"
)

// projectConfigNames are checked in order in the working directory.
var projectConfigNames = []string{"orgagenda.toml", ".orgagenda.toml", "orgagenda.yaml"}

// findProjectConfigFile looks for a config file in the current directory.
func findProjectConfigFile(fsys afero.Fs) string {
	for _, name := range projectConfigNames {
		if isFile(fsys, name) {
			return name
		}
	}
	return ""
}

// findUserConfigFile looks for a user-level config file.
// Checks ~/.orgagenda/orgagenda.toml first, then falls back to OS-specific
// config directories.
func findUserConfigFile(fsys afero.Fs) string {
	if home, err := os.UserHomeDir(); err == nil {
		p := filepath.Join(home, ".orgagenda", "orgagenda.toml")
		if isFile(fsys, p) {
			return p
		}
	}
	if cfgDir := osUserConfigDir(); cfgDir != "" {
		p := filepath.Join(cfgDir, "orgagenda", "orgagenda.toml")
		if isFile(fsys, p) {
			return p
		}
	}
	return ""
}

func isFile(fsys afero.Fs, path string) bool {
	fi, err := fsys.Stat(path)
	return err == nil && !fi.IsDir()
}

// osUserConfigDir returns the OS-specific user config directory.
// Returns empty string if the directory cannot be determined.
func osUserConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		return os.Getenv("APPDATA")
	case "darwin":
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, "Library", "Application Support")
		}
	case "linux", "openbsd", "freebsd", "netbsd":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return xdg
		}
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, ".config")
		}
	}
	return ""
}
