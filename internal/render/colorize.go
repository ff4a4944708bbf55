package render

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/trajectory.report/internal/geom"
)

// Colorize overlays one polyline per path on p, coloured by its cost
// under scale. Paths need not share a length. The overlay is additive:
// nothing already on p is cleared, and axis limits are left to the
// caller's viewport.
func Colorize(p *plot.Plot, paths [][]geom.Point, costs []float64, scale *CostMap) error {
	if len(paths) != len(costs) {
		return fmt.Errorf("render: %d paths but %d costs", len(paths), len(costs))
	}
	if len(paths) == 0 {
		return fmt.Errorf("render: no paths to colorize")
	}
	for i, c := range costs {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return fmt.Errorf("render: non-finite cost %g at index %d", c, i)
		}
	}

	for i, path := range paths {
		if len(path) < 2 {
			return fmt.Errorf("render: path %d has %d points, need at least 2", i, len(path))
		}
		line, err := plotter.NewLine(xys(path))
		if err != nil {
			return fmt.Errorf("render: path %d: %w", i, err)
		}
		col, err := scale.At(costs[i])
		if err != nil {
			return fmt.Errorf("render: cost %g outside scale [%g, %g]: %w",
				costs[i], scale.Min(), scale.Max(), err)
		}
		line.Color = col
		line.Width = vg.Points(1.5)
		p.Add(line)
	}
	return nil
}

func xys(pts []geom.Point) plotter.XYs {
	out := make(plotter.XYs, len(pts))
	for i, pt := range pts {
		out[i] = plotter.XY{X: pt.X, Y: pt.Y}
	}
	return out
}
