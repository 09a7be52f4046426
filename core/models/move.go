package models

import (
	"path/filepath"
	"time"
)

// MovePair is the unit every pipeline stage works on.
type MovePair struct {
	From string
	To   string
}

func (p MovePair) String() string {
	return p.From + " -> " + p.To
}

// Rel returns the pair with both paths relative to wd, for display.
func (p MovePair) Rel(wd string) MovePair {
	return MovePair{From: relOrAbs(wd, p.From), To: relOrAbs(wd, p.To)}
}

// Plan is the ordered list of file moves derived from one CLI invocation.
type Plan struct {
	From  string // Resolved source argument
	To    string // Resolved destination argument
	IsDir bool
	Pairs []MovePair
}

// RelPairs returns the pairs relative to wd, for display.
func (p *Plan) RelPairs(wd string) []MovePair {
	out := make([]MovePair, 0, len(p.Pairs))
	for _, pair := range p.Pairs {
		out = append(out, pair.Rel(wd))
	}
	return out
}

type FileResult struct {
	Pair           MovePair
	CreatedDirs    []string
	Digest         Digest
	ImportsUpdated []string // Files the codemods changed, the moved file included
	Duration       time.Duration
}

type Report struct {
	Plan        *Plan
	Files       []FileResult
	RemovedDirs []string
}

func (r *Report) TotalImportsUpdated() int {
	total := 0
	for _, f := range r.Files {
		total += len(f.ImportsUpdated)
	}
	return total
}

func relOrAbs(wd, p string) string {
	rel, err := filepath.Rel(wd, p)
	if err != nil {
		return p
	}
	return rel
}
