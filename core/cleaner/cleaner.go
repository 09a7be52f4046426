package cleaner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tristendillon/relocate/core/logger"
)

// CleanDirs removes empty directories below dir, deepest first, then dir
// itself if it ended up empty. It returns the removed directories in removal
// order. A dir that no longer exists is not an error.
func CleanDirs(dir string) ([]string, error) {
	if _, err := os.Lstat(dir); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	var removed []string
	if _, err := clean(dir, &removed); err != nil {
		return removed, err
	}
	return removed, nil
}

// clean reports whether dir was removed.
func clean(dir string, removed *[]string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	remaining := len(entries)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		gone, err := clean(filepath.Join(dir, entry.Name()), removed)
		if err != nil {
			return false, err
		}
		if gone {
			remaining--
		}
	}

	if remaining > 0 {
		logger.Debug("Keeping non-empty directory %s", dir)
		return false, nil
	}

	if err := os.Remove(dir); err != nil {
		return false, fmt.Errorf("failed to remove directory %s: %w", dir, err)
	}
	logger.Progress("Removed empty directory %s", dir)
	*removed = append(*removed, dir)
	return true, nil
}
