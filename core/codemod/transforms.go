package codemod

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tristendillon/relocate/core/config"
	"github.com/tristendillon/relocate/core/logger"
	"github.com/tristendillon/relocate/core/models"
)

// TransformsSubdir is where refactoring-codemods ships its transformers.
var TransformsSubdir = filepath.Join("node_modules", "refactoring-codemods", "lib", "transformers")

type Transforms struct {
	Declaration string
	Relative    string
}

// FindTransforms resolves the two transform scripts. Absolute names are used
// as-is, names relative to codemod.transforms_dir when it is set, otherwise
// the first of wd and the executable's directory that has them installed.
func FindTransforms(cfg config.Codemod, wd string) (*Transforms, error) {
	var dirs []string
	if cfg.TransformsDir != "" {
		dir := cfg.TransformsDir
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(wd, dir)
		}
		dirs = append(dirs, dir)
	} else {
		dirs = append(dirs, filepath.Join(wd, TransformsSubdir))
		if exe, err := os.Executable(); err == nil {
			dirs = append(dirs, filepath.Join(filepath.Dir(exe), TransformsSubdir))
		}
	}

	decl, err := findTransform(cfg.DeclarationTransform, dirs)
	if err != nil {
		return nil, err
	}
	rel, err := findTransform(cfg.RelativeTransform, dirs)
	if err != nil {
		return nil, err
	}
	return &Transforms{Declaration: decl, Relative: rel}, nil
}

func findTransform(name string, dirs []string) (string, error) {
	if filepath.IsAbs(name) {
		if fileExists(name) {
			return name, nil
		}
		return "", fmt.Errorf("%w: %s", models.ErrTransformNotFound, name)
	}

	for _, dir := range dirs {
		candidate := filepath.Join(dir, name)
		if fileExists(candidate) {
			logger.Debug("Using transform %s", candidate)
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: %s (searched %v)", models.ErrTransformNotFound, name, dirs)
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
