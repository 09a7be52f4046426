package cache

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestChangesDetectsEachKind(t *testing.T) {
	dir := t.TempDir()
	same := filepath.Join(dir, "same.js")
	edited := filepath.Join(dir, "edited.js")
	gone := filepath.Join(dir, "gone.js")
	added := filepath.Join(dir, "added.js")
	write(t, same, "export const a = 1;\n")
	write(t, edited, "import a from './a';\n")
	write(t, gone, "export default 2;\n")

	fc := NewFileCache(&CacheConfig{KeepContent: true})
	if err := fc.Snapshot([]string{same, edited, gone}); err != nil {
		t.Fatal(err)
	}

	write(t, edited, "import a from '../lib/a';\n")
	write(t, added, "export {};\n")
	if err := os.Remove(gone); err != nil {
		t.Fatal(err)
	}

	changes, err := fc.Changes([]string{same, edited, added})
	if err != nil {
		t.Fatal(err)
	}

	got := map[string]ChangeKind{}
	for _, c := range changes {
		got[c.Path] = c.Kind
	}
	want := map[string]ChangeKind{edited: Modified, added: Added, gone: Removed}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("changes mismatch (-want +got):\n%s", diff)
	}
	if got := Summary(changes); got != "1 modified, 1 added, 1 removed" {
		t.Fatalf("Summary = %q", got)
	}

	m := fc.GetMetrics()
	if m.Snapshots != 1 || m.Changed != 3 || m.Unchanged != 1 {
		t.Fatalf("unexpected metrics %+v", m)
	}
}

func TestSnapshotSkipsMissingFiles(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "a.js")
	write(t, present, "x")

	fc := NewFileCache(nil)
	if err := fc.Snapshot([]string{present, filepath.Join(dir, "missing.js")}); err != nil {
		t.Fatal(err)
	}
	if _, ok := fc.Get(present); !ok {
		t.Fatal("present file not cached")
	}
	if entry, _ := fc.Get(present); entry.Content != nil {
		t.Fatal("content kept without KeepContent")
	}
}

func TestChangeDiff(t *testing.T) {
	c := Change{
		Path:   "a.js",
		Kind:   Modified,
		Before: []byte("import a from './a';\nconsole.log(a);\n"),
		After:  []byte("import a from '../a';\nconsole.log(a);\n"),
	}

	if got, want := c.Diff(false), "-import a from './a';\n+import a from '../a';\n"; got != want {
		t.Fatalf("Diff = %q, want %q", got, want)
	}
	if colored := c.Diff(true); !strings.Contains(colored, "\033[") {
		t.Fatalf("expected ANSI colors, got %q", colored)
	}

	if got := (Change{Path: "b.js"}).Diff(false); got != "" {
		t.Fatalf("expected empty diff without content, got %q", got)
	}
}

func TestPathsKeepsOrder(t *testing.T) {
	got := Paths([]Change{{Path: "b"}, {Path: "a"}})
	if diff := cmp.Diff([]string{"b", "a"}, got); diff != "" {
		t.Fatal(diff)
	}
	if Summary(nil) != "no changes" {
		t.Fatal("unexpected summary for no changes")
	}
}
