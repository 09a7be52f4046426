package paths

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestResolve(t *testing.T) {
	wd := filepath.FromSlash("/repo")
	got := Resolve(wd, "src/a.js", "./src/../lib/b.js", filepath.FromSlash("/abs/c.js/"))
	want := []string{
		filepath.FromSlash("/repo/src/a.js"),
		filepath.FromSlash("/repo/lib/b.js"),
		filepath.FromSlash("/abs/c.js"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Resolve mismatch (-want +got):\n%s", diff)
	}
}

func TestWithin(t *testing.T) {
	tests := []struct {
		root, p string
		want    bool
	}{
		{"/repo/src", "/repo/src", true},
		{"/repo/src", "/repo/src/a/b.js", true},
		{"/repo/src", "/repo/srcs/b.js", false},
		{"/repo/src", "/repo/lib", false},
		{"/repo/src", "/repo/src/..a.js", true},
	}
	for _, tt := range tests {
		got := Within(filepath.FromSlash(tt.root), filepath.FromSlash(tt.p))
		if got != tt.want {
			t.Errorf("Within(%q, %q) = %v, want %v", tt.root, tt.p, got, tt.want)
		}
	}
}

func TestRebase(t *testing.T) {
	tests := []struct {
		file, from, to, want string
	}{
		{"/repo/src/old/a.js", "/repo/src/old", "/repo/src/new", "/repo/src/new/a.js"},
		{"/repo/src/old/x/y.js", "/repo/src/old", "/repo/lib", "/repo/lib/x/y.js"},
		{"/repo/src/older/a.js", "/repo/src/old", "/repo/src/new", "/repo/src/older/a.js"},
	}
	for _, tt := range tests {
		got := Rebase(filepath.FromSlash(tt.file), filepath.FromSlash(tt.from), filepath.FromSlash(tt.to))
		if want := filepath.FromSlash(tt.want); got != want {
			t.Errorf("Rebase(%q) = %q, want %q", tt.file, got, want)
		}
	}
}

func TestMissingAncestors(t *testing.T) {
	existing := map[string]bool{"/": true, "/repo": true, "/repo/src": true}
	exists := func(p string) bool { return existing[filepath.ToSlash(p)] }

	got := MissingAncestors(filepath.FromSlash("/repo/src/a/b"), exists)
	want := []string{filepath.FromSlash("/repo/src/a"), filepath.FromSlash("/repo/src/a/b")}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("MissingAncestors mismatch (-want +got):\n%s", diff)
	}

	if got := MissingAncestors(filepath.FromSlash("/repo/src"), exists); len(got) != 0 {
		t.Fatalf("expected nothing missing, got %v", got)
	}
}
