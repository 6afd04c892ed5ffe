package registry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// expandHome resolves a leading "~" against the current user's home
// directory so model paths like ~/models/t2m work from config and flags.
func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
}

// pathExists reports whether path exists. Stat errors other than
// not-exist count as existing.
func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !errors.Is(err, os.ErrNotExist)
}
