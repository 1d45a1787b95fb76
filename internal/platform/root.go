package platform

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/stock/pkg/core"
)

// FindInventory looks upwards from startDir for a file called name.
// If found, returns its absolute path. An empty name means core.DefaultPath.
func FindInventory(startDir, name string) (string, error) {
	if name == "" {
		name = core.DefaultPath
	}
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if isFile(filepath.Join(dir, name)) {
			return filepath.Join(dir, name), nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("%s above %s: %w", name, abs, core.ErrNoInventory)
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
