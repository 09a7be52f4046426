package report

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tristendillon/relocate/core/models"
)

func TestWritePlan(t *testing.T) {
	wd := filepath.FromSlash("/repo")
	plan := &models.Plan{Pairs: []models.MovePair{
		{From: filepath.FromSlash("/repo/src/a.js"), To: filepath.FromSlash("/repo/src/lib/a.js")},
		{From: filepath.FromSlash("/repo/src/b.js"), To: filepath.FromSlash("/repo/src/lib/b.js")},
	}}

	var buf bytes.Buffer
	WritePlan(&buf, plan, wd)
	out := buf.String()

	for _, want := range []string{filepath.FromSlash("src/a.js"), filepath.FromSlash("src/lib/b.js"), "2 file(s)"} {
		if !strings.Contains(out, want) {
			t.Errorf("plan output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteSummary(t *testing.T) {
	wd := filepath.FromSlash("/repo")
	r := &models.Report{
		Files: []models.FileResult{
			{
				Pair:           models.MovePair{From: filepath.FromSlash("/repo/src/a.js"), To: filepath.FromSlash("/repo/lib/a.js")},
				ImportsUpdated: []string{"x", "y"},
				Duration:       1500 * time.Millisecond,
			},
		},
		RemovedDirs: []string{filepath.FromSlash("/repo/src/old")},
	}

	var buf bytes.Buffer
	WriteSummary(&buf, r, wd)
	out := buf.String()

	for _, want := range []string{filepath.FromSlash("lib/a.js"), "1.5s", "Removed 1 empty directory: " + filepath.FromSlash("src/old") + "\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary output missing %q:\n%s", want, out)
		}
	}
}
