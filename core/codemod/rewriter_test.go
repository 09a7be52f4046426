package codemod

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tristendillon/relocate/core/config"
	"github.com/tristendillon/relocate/core/models"
)

type recordingRunner struct {
	calls []Invocation
	err   error
}

func (r *recordingRunner) Run(_ context.Context, inv Invocation) error {
	r.calls = append(r.calls, inv)
	return r.err
}

func TestRewriterUpdateOtherImportsBatches(t *testing.T) {
	runner := &recordingRunner{}
	rw := &Rewriter{
		Runner:     runner,
		Transforms: Transforms{Declaration: "decl.js", Relative: "rel.js"},
		BatchSize:  2,
	}
	pair := models.MovePair{From: "/src/a.js", To: "/src/lib/a.js"}

	if err := rw.UpdateOtherImports(context.Background(), pair, []string{"1.js", "2.js", "3.js"}); err != nil {
		t.Fatal(err)
	}

	want := []Invocation{
		{Transform: "decl.js", Files: []string{"1.js", "2.js"}, PrevFilePath: pair.From, NextFilePath: pair.To},
		{Transform: "decl.js", Files: []string{"3.js"}, PrevFilePath: pair.From, NextFilePath: pair.To},
	}
	if diff := cmp.Diff(want, runner.calls); diff != "" {
		t.Fatalf("invocations mismatch (-want +got):\n%s", diff)
	}
}

func TestRewriterUpdateSelfImports(t *testing.T) {
	runner := &recordingRunner{}
	rw := &Rewriter{
		Runner:       runner,
		Transforms:   Transforms{Declaration: "decl.js", Relative: "rel.js"},
		PrintOptions: map[string]any{"quote": "single"},
	}
	pair := models.MovePair{From: "/src/a.js", To: "/src/lib/a.js"}

	if err := rw.UpdateSelfImports(context.Background(), pair); err != nil {
		t.Fatal(err)
	}

	want := []Invocation{{
		Transform:    "rel.js",
		Files:        []string{"/src/lib/a.js"},
		PrevFilePath: "/src/a.js",
		NextFilePath: "/src/lib/a.js",
		PrintOptions: map[string]any{"quote": "single"},
	}}
	if diff := cmp.Diff(want, runner.calls); diff != "" {
		t.Fatalf("invocations mismatch (-want +got):\n%s", diff)
	}
}

func TestRewriterStopsOnFirstBatchError(t *testing.T) {
	boom := errors.New("boom")
	runner := &recordingRunner{err: boom}
	rw := &Rewriter{Runner: runner, BatchSize: 1}

	err := rw.UpdateOtherImports(context.Background(), models.MovePair{}, []string{"a.js", "b.js"})
	if !errors.Is(err, boom) {
		t.Fatalf("got %v", err)
	}
	if len(runner.calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(runner.calls))
	}
}

func TestFindTransforms(t *testing.T) {
	wd := t.TempDir()
	dir := filepath.Join(wd, TransformsSubdir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	cfg := config.Default().Codemod
	for _, name := range []string{cfg.DeclarationTransform, cfg.RelativeTransform} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("module.exports = () => {};\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	got, err := FindTransforms(cfg, wd)
	if err != nil {
		t.Fatal(err)
	}
	want := &Transforms{
		Declaration: filepath.Join(dir, cfg.DeclarationTransform),
		Relative:    filepath.Join(dir, cfg.RelativeTransform),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("transforms mismatch (-want +got):\n%s", diff)
	}
}

func TestFindTransformsCustomDir(t *testing.T) {
	wd := t.TempDir()
	if err := os.MkdirAll(filepath.Join(wd, "codemods"), 0755); err != nil {
		t.Fatal(err)
	}
	abs := filepath.Join(wd, "codemods", "rel.js")
	for _, p := range []string{filepath.Join(wd, "codemods", "decl.js"), abs} {
		if err := os.WriteFile(p, nil, 0644); err != nil {
			t.Fatal(err)
		}
	}

	cfg := config.Codemod{TransformsDir: "codemods", DeclarationTransform: "decl.js", RelativeTransform: abs}
	got, err := FindTransforms(cfg, wd)
	if err != nil {
		t.Fatal(err)
	}
	if got.Declaration != filepath.Join(wd, "codemods", "decl.js") || got.Relative != abs {
		t.Fatalf("got %+v", got)
	}
}

func TestFindTransformsMissing(t *testing.T) {
	cfg := config.Default().Codemod
	cfg.TransformsDir = t.TempDir()
	if _, err := FindTransforms(cfg, t.TempDir()); !errors.Is(err, models.ErrTransformNotFound) {
		t.Fatalf("got %v, want ErrTransformNotFound", err)
	}
}
