package walker

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/gobwas/glob"
	"github.com/tristendillon/relocate/core/config"
	"github.com/tristendillon/relocate/core/logger"
	"github.com/tristendillon/relocate/core/models"
)

type Walker interface {
	Walk(root string) ([]string, error)
}

// SourceWalker lists source files below a root. Exclude patterns are matched
// against slash-separated absolute paths; directories are matched with a
// trailing slash so "**/node_modules/**" prunes the whole tree.
type SourceWalker struct {
	Pattern *regexp.Regexp
	Exclude []glob.Glob
}

func NewSourceWalker(pattern string, exclude []string) (*SourceWalker, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid source pattern %q: %w", pattern, err)
	}

	globs := make([]glob.Glob, 0, len(exclude))
	for _, ex := range exclude {
		g, err := glob.Compile(ex, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", ex, err)
		}
		globs = append(globs, g)
	}

	return &SourceWalker{Pattern: re, Exclude: globs}, nil
}

func NewSourceWalkerFromConfig(cfg *config.Config) (*SourceWalker, error) {
	return NewSourceWalker(cfg.Pattern, cfg.Exclude)
}

func (w *SourceWalker) Walk(root string) ([]string, error) {
	if _, err := os.Stat(root); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", models.ErrSourceRootNotFound, root)
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != root && w.excluded(filepath.ToSlash(path)+"/") {
				logger.Debug("Excluding directory: %s", path)
				return filepath.SkipDir
			}
			return nil
		}

		if !w.Pattern.MatchString(d.Name()) || w.excluded(filepath.ToSlash(path)) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	sort.Strings(files)
	logger.Debug("Found %d source files under %s", len(files), root)
	return files, nil
}

func (w *SourceWalker) excluded(slashPath string) bool {
	for _, g := range w.Exclude {
		if g.Match(slashPath) {
			return true
		}
	}
	return false
}
