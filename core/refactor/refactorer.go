package refactor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/tristendillon/relocate/core/cache"
	"github.com/tristendillon/relocate/core/cleaner"
	"github.com/tristendillon/relocate/core/logger"
	"github.com/tristendillon/relocate/core/models"
	"github.com/tristendillon/relocate/core/paths"
	"github.com/tristendillon/relocate/core/walker"
)

type Mover interface {
	MakeDirs(pair models.MovePair) ([]string, error)
	MoveFile(pair models.MovePair) (models.Digest, error)
}

type ImportRewriter interface {
	UpdateOtherImports(ctx context.Context, pair models.MovePair, files []string) error
	UpdateSelfImports(ctx context.Context, pair models.MovePair) error
}

// Refactorer moves files one at a time, running every step for a file
// before starting the next one.
type Refactorer struct {
	wd         string
	sourceRoot string

	Walker   walker.Walker
	Mover    Mover
	Rewriter ImportRewriter
	Cache    *cache.FileCache

	// DiffOut receives the diff of every file a codemod changed. Nil disables it.
	DiffOut   io.Writer
	DiffColor bool
}

func NewRefactorer(wd, sourceRoot string, w walker.Walker, m Mover, rw ImportRewriter) *Refactorer {
	return &Refactorer{
		wd:         wd,
		sourceRoot: sourceRoot,
		Walker:     w,
		Mover:      m,
		Rewriter:   rw,
		Cache:      cache.NewFileCache(cache.DefaultCacheConfig()),
	}
}

// Plan resolves from and to against the working directory and lists the file
// moves they imply. Nothing on disk is changed.
func (r *Refactorer) Plan(from, to string) (*models.Plan, error) {
	resolved := paths.Resolve(r.wd, from, to)
	from, to = resolved[0], resolved[1]

	if _, err := os.Stat(r.sourceRoot); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", models.ErrSourceRootNotFound, r.sourceRoot)
	}

	info, err := os.Stat(from)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", models.ErrSourceMissing, from)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", from, err)
	}

	plan := &models.Plan{From: from, To: to, IsDir: info.IsDir()}

	if plan.IsDir {
		if from == to {
			return nil, fmt.Errorf("%w: %s", models.ErrSamePath, from)
		}
		if paths.Within(from, to) {
			return nil, fmt.Errorf("%w: %s -> %s", models.ErrMoveIntoSelf, from, to)
		}
		files, err := r.Walker.Walk(from)
		if err != nil {
			return nil, fmt.Errorf("failed to list files in %s: %w", from, err)
		}
		for _, file := range files {
			plan.Pairs = append(plan.Pairs, models.MovePair{From: file, To: paths.Rebase(file, from, to)})
		}
	} else {
		if toInfo, err := os.Stat(to); err == nil && toInfo.IsDir() {
			to = filepath.Join(to, filepath.Base(from))
		}
		if from == to {
			return nil, fmt.Errorf("%w: %s", models.ErrSamePath, from)
		}
		plan.Pairs = []models.MovePair{{From: from, To: to}}
	}

	for _, pair := range plan.Pairs {
		if _, err := os.Lstat(pair.To); err == nil {
			return nil, fmt.Errorf("%w: %s", models.ErrDestinationExists, pair.To)
		}
	}

	if len(plan.Pairs) == 0 {
		return nil, fmt.Errorf("%w: %s", models.ErrNoSourceFiles, from)
	}
	return plan, nil
}

// Run executes plan. The first failing step stops the run; files already
// moved stay moved.
func (r *Refactorer) Run(ctx context.Context, plan *models.Plan) (*models.Report, error) {
	report := &models.Report{Plan: plan}

	if plan.IsDir {
		logger.Info("Moving directory at")
	} else {
		logger.Info("Moving file at")
	}
	logger.InfoColor(logger.ColorYellow, "%s", plan.From)
	logger.Info("to")
	logger.InfoColor(logger.ColorBold+logger.ColorGreen, "%s", plan.To)
	logger.Info("")

	for idx, pair := range plan.Pairs {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		logger.InfoColor(logger.ColorBlue, "Refactoring file %d/%d", idx+1, len(plan.Pairs))

		result, err := r.refactorFile(ctx, pair)
		if err != nil {
			return report, fmt.Errorf("failed to refactor %s: %w", pair.From, err)
		}
		report.Files = append(report.Files, *result)

		logger.Success("Success!")
		logger.Info("")
	}

	if plan.IsDir {
		removed, err := cleaner.CleanDirs(plan.From)
		report.RemovedDirs = removed
		if err != nil {
			return report, fmt.Errorf("failed to clean up %s: %w", plan.From, err)
		}
		if _, err := os.Stat(plan.From); err == nil {
			logger.Warn("%s still contains non-source files and was left in place", plan.From)
		}
	}

	r.Cache.LogStats()
	return report, nil
}

func (r *Refactorer) refactorFile(ctx context.Context, pair models.MovePair) (*models.FileResult, error) {
	start := time.Now()
	logger.Progress("Refactoring file %s...", pair.From)

	created, err := r.Mover.MakeDirs(pair)
	if err != nil {
		return nil, err
	}

	digest, err := r.Mover.MoveFile(pair)
	if err != nil {
		return nil, err
	}

	files, err := r.Walker.Walk(r.sourceRoot)
	if err != nil {
		return nil, err
	}

	others, err := r.track(files, func() error {
		return r.Rewriter.UpdateOtherImports(ctx, pair, files)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update imports of %s: %w", pair.From, err)
	}

	self, err := r.track([]string{pair.To}, func() error {
		return r.Rewriter.UpdateSelfImports(ctx, pair)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update relative imports in %s: %w", pair.To, err)
	}

	updated := mergePaths(cache.Paths(others), cache.Paths(self))
	logger.Debug("Codemods changed %d file(s) for %s", len(updated), pair.To)

	return &models.FileResult{
		Pair:           pair,
		CreatedDirs:    created,
		Digest:         digest,
		ImportsUpdated: updated,
		Duration:       time.Since(start),
	}, nil
}

// track snapshots files, runs step, and returns what step changed in them.
func (r *Refactorer) track(files []string, step func() error) ([]cache.Change, error) {
	if err := r.Cache.Snapshot(files); err != nil {
		return nil, err
	}
	if err := step(); err != nil {
		return nil, err
	}
	changes, err := r.Cache.Changes(files)
	if err != nil {
		return nil, err
	}
	logger.Debug("%s", cache.Summary(changes))
	r.writeDiffs(changes)
	return changes, nil
}

// EnableDiff makes every later run write codemod diffs to w.
func (r *Refactorer) EnableDiff(w io.Writer, color bool) {
	r.DiffOut = w
	r.DiffColor = color
	r.Cache = cache.NewFileCache(&cache.CacheConfig{KeepContent: true})
}

func (r *Refactorer) writeDiffs(changes []cache.Change) {
	if r.DiffOut == nil {
		return
	}
	for _, c := range changes {
		rel, err := filepath.Rel(r.wd, c.Path)
		if err != nil {
			rel = c.Path
		}
		fmt.Fprintf(r.DiffOut, "--- %s (%s)\n%s", rel, c.Kind, c.Diff(r.DiffColor))
	}
}

func mergePaths(lists ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, list := range lists {
		for _, p := range list {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	return out
}
