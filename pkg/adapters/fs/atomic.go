package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TempFilePrefix marks the scratch file an inventory save is staged in.
// Watchers skip names carrying it.
const TempFilePrefix = ".stock-tmp-"

// writeFileAtomic stages data next to filename and renames it into place,
// so readers see either the old inventory or the new one.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	staged, err := stage(filepath.Dir(filename), data, perm)
	if err != nil {
		return err
	}
	if err := os.Rename(staged, filename); err != nil {
		_ = os.Remove(staged)
		return fmt.Errorf("failed to replace %s: %w", filename, err)
	}
	return nil
}

// stage writes data to a durable scratch file in dir and returns its name.
// Nothing is left behind on failure.
func stage(dir string, data []byte, perm os.FileMode) (name string, err error) {
	f, err := os.CreateTemp(dir, TempFilePrefix+"*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	name = f.Name()
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(name)
		}
	}()

	steps := []struct {
		what string
		run  func() error
	}{
		{"write", func() error { _, err := f.Write(data); return err }},
		{"sync", f.Sync},
		{"chmod", func() error { return f.Chmod(perm) }},
		{"close", f.Close},
	}
	for _, step := range steps {
		if err = step.run(); err != nil {
			return "", fmt.Errorf("failed to %s temp file: %w", step.what, err)
		}
	}
	return name, nil
}

func isTempFile(name string) bool {
	return strings.HasPrefix(filepath.Base(name), TempFilePrefix)
}
