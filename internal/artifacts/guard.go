package artifacts

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"artifex/internal/services"
)

// EnsureWritable fails with ErrOverwriteRefused naming the first path that
// already exists, unless overwrite is set.
func EnsureWritable(command string, paths []string, overwrite bool) error {
	if overwrite {
		return nil
	}
	for _, path := range paths {
		if path == "" {
			continue
		}
		_, err := os.Lstat(path)
		if err == nil {
			return services.Wrap(services.ErrOverwriteRefused, command, "check outputs", fmt.Sprintf("existing file %s (pass --overwrite to replace it)", path), nil)
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return services.Wrap(services.ErrExternalTool, command, "check outputs", path, err)
		}
	}
	return nil
}

// Existing returns the subset of paths that are present on disk.
func Existing(paths []string) []string {
	var found []string
	for _, path := range paths {
		if path == "" {
			continue
		}
		if _, err := os.Lstat(path); err == nil {
			found = append(found, path)
		}
	}
	return found
}
