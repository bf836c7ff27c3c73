package utils

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ExpandHome replaces a leading "~" or "~/" with the user's home directory.
// Paths naming another user ("~bob/x") are returned unchanged.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}

// ExpandPath expands "~" and environment variables in path. On Windows
// %VAR% references are expanded as well.
func ExpandPath(path string) string {
	expanded := os.ExpandEnv(strings.TrimSpace(path))
	if runtime.GOOS == "windows" {
		expanded = expandWindowsEnv(expanded)
	}
	return ExpandHome(expanded)
}

// expandWindowsEnv replaces %VAR% with its value. Unknown variables and a
// lone '%' are kept verbatim.
func expandWindowsEnv(p string) string {
	if !strings.Contains(p, "%") {
		return p
	}
	var b strings.Builder
	for i := 0; i < len(p); {
		if p[i] == '%' {
			if end := strings.IndexByte(p[i+1:], '%'); end > 0 {
				key := p[i+1 : i+1+end]
				if val, ok := os.LookupEnv(key); ok {
					b.WriteString(val)
				} else {
					b.WriteString(p[i : i+end+2])
				}
				i += end + 2
				continue
			}
		}
		b.WriteByte(p[i])
		i++
	}
	return b.String()
}

// HasGlobMeta reports whether path contains glob metacharacters.
func HasGlobMeta(path string) bool {
	return strings.ContainsAny(path, `*?[`)
}
