package codemod

import (
	"context"

	"github.com/tristendillon/relocate/core/logger"
	"github.com/tristendillon/relocate/core/models"
)

// Rewriter runs the two import transforms for a moved file.
type Rewriter struct {
	Runner       Runner
	Transforms   Transforms
	PrintOptions map[string]any
	BatchSize    int
}

// UpdateOtherImports retargets imports of pair.From to pair.To in files.
func (rw *Rewriter) UpdateOtherImports(ctx context.Context, pair models.MovePair, files []string) error {
	logger.Progress("Updating %d js files that import file %s...", len(files), pair.From)
	for _, batch := range Batches(files, rw.BatchSize) {
		if err := rw.Runner.Run(ctx, rw.invocation(rw.Transforms.Declaration, batch, pair)); err != nil {
			return err
		}
	}
	return nil
}

// UpdateSelfImports fixes the relative imports inside the moved file.
func (rw *Rewriter) UpdateSelfImports(ctx context.Context, pair models.MovePair) error {
	logger.Progress("Updating relative imports in file %s...", pair.To)
	return rw.Runner.Run(ctx, rw.invocation(rw.Transforms.Relative, []string{pair.To}, pair))
}

func (rw *Rewriter) invocation(transform string, files []string, pair models.MovePair) Invocation {
	return Invocation{
		Transform:    transform,
		Files:        files,
		PrevFilePath: pair.From,
		NextFilePath: pair.To,
		PrintOptions: rw.PrintOptions,
	}
}

// Batches splits files into chunks of at most size. A size <= 0 means one
// chunk. No files means no chunks.
func Batches(files []string, size int) [][]string {
	if len(files) == 0 {
		return nil
	}
	if size <= 0 || len(files) <= size {
		return [][]string{files}
	}
	var out [][]string
	for start := 0; start < len(files); start += size {
		end := min(start+size, len(files))
		out = append(out, files[start:end])
	}
	return out
}
