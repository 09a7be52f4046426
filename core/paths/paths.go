package paths

import (
	"path/filepath"
	"strings"
)

// Resolve turns each path into an absolute, cleaned path relative to wd.
func Resolve(wd string, paths ...string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		if filepath.IsAbs(p) {
			out[i] = filepath.Clean(p)
		} else {
			out[i] = filepath.Join(wd, p)
		}
	}
	return out
}

// Within reports whether p is root or lies below it.
func Within(root, p string) bool {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// Rebase maps file from below fromRoot to the same place below toRoot.
// Files outside fromRoot are returned unchanged.
func Rebase(file, fromRoot, toRoot string) string {
	rel, err := filepath.Rel(fromRoot, file)
	if err != nil || !Within(fromRoot, file) {
		return file
	}
	return filepath.Join(toRoot, rel)
}

// MissingAncestors lists the directories that must be created, outermost
// first, for dir to exist.
func MissingAncestors(dir string, exists func(string) bool) []string {
	var missing []string
	for d := filepath.Clean(dir); !exists(d); d = filepath.Dir(d) {
		missing = append(missing, d)
		if parent := filepath.Dir(d); parent == d {
			break
		}
	}
	for i, j := 0, len(missing)-1; i < j; i, j = i+1, j-1 {
		missing[i], missing[j] = missing[j], missing[i]
	}
	return missing
}
