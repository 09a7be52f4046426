package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/tristendillon/relocate/core/models"
)

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	return table
}

// WritePlan prints the moves a plan would perform, paths relative to wd.
func WritePlan(w io.Writer, plan *models.Plan, wd string) {
	table := newTable(w, "#", "From", "To")
	for i, pair := range plan.RelPairs(wd) {
		table.Append([]string{strconv.Itoa(i + 1), pair.From, pair.To})
	}
	table.SetFooter([]string{"", "", fmt.Sprintf("%d file(s)", len(plan.Pairs))})
	table.Render()
}

// WriteSummary prints one row per moved file with the number of files the
// codemods rewrote for it.
func WriteSummary(w io.Writer, r *models.Report, wd string) {
	table := newTable(w, "#", "From", "To", "Imports updated", "Time")
	var total time.Duration
	for i, res := range r.Files {
		rel := res.Pair.Rel(wd)
		table.Append([]string{
			strconv.Itoa(i + 1),
			rel.From,
			rel.To,
			strconv.Itoa(len(res.ImportsUpdated)),
			res.Duration.Round(time.Millisecond).String(),
		})
		total += res.Duration
	}
	table.SetFooter([]string{
		"", "", fmt.Sprintf("%d file(s)", len(r.Files)),
		strconv.Itoa(r.TotalImportsUpdated()),
		total.Round(time.Millisecond).String(),
	})
	table.Render()

	if len(r.RemovedDirs) > 0 {
		dirs := make([]string, len(r.RemovedDirs))
		for i, dir := range r.RemovedDirs {
			dirs[i] = relPath(wd, dir)
		}
		fmt.Fprintf(w, "Removed %d empty director%s: %s\n", len(dirs), plural(len(dirs)), strings.Join(dirs, ", "))
	}
}

func relPath(wd, p string) string {
	rel, err := filepath.Rel(wd, p)
	if err != nil {
		return p
	}
	return rel
}

func plural(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
