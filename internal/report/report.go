// Package report renders the per-run planner statistics page: how many
// candidates each decision step sampled, how long each step took and
// how the cost range evolved. This is the batch replacement for the
// interactive display the pipeline deliberately does not have.
package report

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/trajectory.report/internal/fsutil"
	"github.com/banshee-data/trajectory.report/internal/trajectory"
)

// Path returns the report target for one run:
// <root>/reports/<method>/<scenario>.html.
func Path(resultRoot, method, scenarioID string) string {
	return filepath.Join(resultRoot, "reports", method, scenarioID+".html")
}

// Write renders the planner statistics page for one run to path.
func Write(fs fsutil.FileSystem, path, scenarioID, method string, sets []trajectory.CandidateSet) error {
	if len(sets) == 0 {
		return fmt.Errorf("report: no candidate sets for %s", scenarioID)
	}

	steps := make([]int, len(sets))
	counts := make([]opts.LineData, len(sets))
	times := make([]opts.LineData, len(sets))
	costLo := make([]opts.BarData, len(sets))
	costHi := make([]opts.BarData, len(sets))
	for i, cs := range sets {
		steps[i] = cs.Step
		counts[i] = opts.LineData{Value: len(cs.Candidates)}
		times[i] = opts.LineData{Value: cs.Elapsed}
		lo, hi, ok := cs.CostRange()
		if ok {
			costLo[i] = opts.BarData{Value: lo}
			costHi[i] = opts.BarData{Value: hi}
		}
	}

	samples := charts.NewLine()
	samples.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("%s — sampled candidates per step", method),
			Subtitle: fmt.Sprintf("scenario=%s", scenarioID),
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "step"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "candidates"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	samples.SetXAxis(steps).AddSeries("candidates", counts)

	timing := charts.NewLine()
	timing.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "decision time per step"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "step"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "seconds"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	timing.SetXAxis(steps).AddSeries("seconds", times)

	costs := charts.NewBar()
	costs.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "candidate cost range per step"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "step"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "cost"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	costs.SetXAxis(steps).
		AddSeries("min cost", costLo).
		AddSeries("max cost", costHi)

	page := components.NewPage()
	page.SetPageTitle(fmt.Sprintf("%s %s", method, scenarioID))
	page.AddCharts(samples, timing, costs)

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return fmt.Errorf("report: render: %w", err)
	}
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("report: create dir: %w", err)
	}
	if err := fs.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("report: write %s: %w", path, err)
	}
	return nil
}
