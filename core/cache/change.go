package cache

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/tristendillon/relocate/core/logger"
)

type ChangeKind int

const (
	Modified ChangeKind = iota
	Added
	Removed
)

func (k ChangeKind) String() string {
	switch k {
	case Modified:
		return "modified"
	case Added:
		return "added"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

type Change struct {
	Path   string
	Kind   ChangeKind
	Before []byte
	After  []byte
}

// Diff renders the removed and inserted lines of the change, prefixed with
// "-" and "+". It is empty when content was not kept.
func (c Change) Diff(color bool) string {
	if c.Before == nil && c.After == nil {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(string(c.Before), string(c.After))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		var prefix, ansi string
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix, ansi = "-", logger.ColorRed
		case diffmatchpatch.DiffInsert:
			prefix, ansi = "+", logger.ColorGreen
		default:
			continue
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			line = prefix + strings.TrimSuffix(line, "\n")
			if color {
				line = logger.Colorize(ansi, line)
			}
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// Paths returns the paths of changes, in order.
func Paths(changes []Change) []string {
	out := make([]string, len(changes))
	for i, c := range changes {
		out[i] = c.Path
	}
	return out
}

// Summary is a one-line count per kind, e.g. "2 modified, 1 added".
func Summary(changes []Change) string {
	counts := map[ChangeKind]int{}
	for _, c := range changes {
		counts[c.Kind]++
	}
	var parts []string
	for _, k := range []ChangeKind{Modified, Added, Removed} {
		if counts[k] > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", counts[k], k))
		}
	}
	if len(parts) == 0 {
		return "no changes"
	}
	return strings.Join(parts, ", ")
}
