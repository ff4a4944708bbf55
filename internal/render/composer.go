package render

import (
	"fmt"
	"image"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/trajectory.report/internal/geom"
	"github.com/banshee-data/trajectory.report/internal/scenario"
	"github.com/banshee-data/trajectory.report/internal/trajectory"
)

// Frame is one rendered still plus its ordinal index. Never mutated
// after composition.
type Frame struct {
	Index int
	Image image.Image
}

// Styling shared by all frames of an export.
var (
	laneletColor     = color.RGBA{R: 120, G: 120, B: 120, A: 255}
	staticObstacle   = color.RGBA{R: 70, G: 70, B: 70, A: 255}
	dynamicObstacle  = color.RGBA{R: 0, G: 160, B: 0, A: 255} // ego and obstacle bodies draw green
	egoPastColor     = color.RGBA{R: 0x94, G: 0x00, B: 0xD3, A: 255}
	egoFutureColor   = color.RGBA{R: 0xAF, G: 0xEE, B: 0xEE, A: 255}
	obsPastColor     = color.RGBA{R: 0xBA, G: 0x55, B: 0xD3, A: 255}
	obsFutureColor   = color.RGBA{R: 0x1D, G: 0x7E, B: 0xEA, A: 255}
	overviewEgoColor = color.RGBA{R: 0, G: 128, B: 0, A: 255}
)

// DefaultViewportMargin pads the ego trajectory bounds (metres).
const DefaultViewportMargin = 8.0

// DefaultMarkerStride places a direction marker every Nth sample.
const DefaultMarkerStride = 5

// Composer renders the per-step frames of one export. All fields are
// fixed at construction: the viewport is computed once from the full
// ego trajectory, so the camera never moves between frames, and
// Compose is a pure function of the time step and candidate set.
type Composer struct {
	RC           *RenderContext
	Scenario     *scenario.Scenario
	Ego          *trajectory.Trajectory
	Method       string
	MarkerStride int
	Viewport     geom.AABB

	norm     Normalization
	globalLo float64
	globalHi float64
}

// NewComposer fixes the export-wide state. For NormalizeGlobal, sets
// must hold every candidate set the export will render, so the shared
// cost range can be computed up front.
func NewComposer(rc *RenderContext, scn *scenario.Scenario, ego *trajectory.Trajectory, method string, margin float64, stride int, norm Normalization, sets []trajectory.CandidateSet) *Composer {
	if rc == nil {
		rc = DefaultContext()
	}
	if margin <= 0 {
		margin = DefaultViewportMargin
	}
	if stride <= 0 {
		stride = DefaultMarkerStride
	}
	c := &Composer{
		RC:           rc,
		Scenario:     scn,
		Ego:          ego,
		Method:       method,
		MarkerStride: stride,
		Viewport:     geom.SquareViewport(ego.Positions(), margin),
		norm:         norm,
	}
	if norm == NormalizeGlobal {
		first := true
		for _, cs := range sets {
			lo, hi, ok := cs.CostRange()
			if !ok {
				continue
			}
			if first {
				c.globalLo, c.globalHi = lo, hi
				first = false
				continue
			}
			if lo < c.globalLo {
				c.globalLo = lo
			}
			if hi > c.globalHi {
				c.globalHi = hi
			}
		}
	}
	return c
}

// Compose renders the frame for decision step t. It reads only
// immutable inputs, so composing the same step twice yields identical
// pixels and steps can be rendered in any order.
func (c *Composer) Compose(t int, cs trajectory.CandidateSet) (Frame, error) {
	if len(cs.Candidates) == 0 {
		return Frame{}, fmt.Errorf("render: no candidates at step %d", t)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s: %d Samples  %.3fs", c.Method, len(cs.Candidates), cs.Elapsed)
	p.X.Label.Text = fmt.Sprintf("Scenario ID: %s", c.Scenario.ID)

	snap := c.Scenario.SnapshotAt(t)
	if err := drawSnapshot(p, snap); err != nil {
		return Frame{}, err
	}
	if err := c.drawObstacleTrails(p, t); err != nil {
		return Frame{}, err
	}
	if err := c.drawEgo(p, t); err != nil {
		return Frame{}, err
	}

	scale := c.frameScale(cs)
	paths := make([][]geom.Point, len(cs.Candidates))
	costs := make([]float64, len(cs.Candidates))
	for i, cand := range cs.Candidates {
		paths[i] = cand.Points
		costs[i] = cand.Cost
	}
	if err := Colorize(p, paths, costs, scale); err != nil {
		return Frame{}, err
	}

	applyViewport(p, c.Viewport)
	bar := colorbarPlot(scale)
	return Frame{Index: t, Image: c.RC.Render(p, bar)}, nil
}

// frameScale picks the colour range for one frame under the
// configured normalization mode.
func (c *Composer) frameScale(cs trajectory.CandidateSet) *CostMap {
	lo, hi := c.globalLo, c.globalHi
	if c.norm != NormalizeGlobal {
		lo, hi, _ = cs.CostRange()
	}
	return NewCostMap(lo, hi)
}

// drawEgo draws the ego trajectory split at t plus direction markers
// along the future part.
func (c *Composer) drawEgo(p *plot.Plot, t int) error {
	past, future := c.Ego.Split(t)
	if err := addPolyline(p, past, egoPastColor, vg.Points(1)); err != nil {
		return err
	}
	if err := addPolyline(p, future, egoFutureColor, vg.Points(1)); err != nil {
		return err
	}
	return addMarkers(p, future, c.MarkerStride, egoFutureColor)
}

// drawObstacleTrails draws each dynamic obstacle's recorded path split
// at t, with direction markers on both halves.
func (c *Composer) drawObstacleTrails(p *plot.Plot, t int) error {
	for i := range c.Scenario.DynamicObstacles {
		o := &c.Scenario.DynamicObstacles[i]
		path := o.Path()
		if len(path) == 0 {
			continue
		}
		split := t - o.States[0].TimeStep
		if split < 0 {
			split = 0
		}
		if split > len(path) {
			split = len(path)
		}
		past, future := path[:split], path[split:]
		if err := addPolyline(p, past, obsPastColor, vg.Points(0.6)); err != nil {
			return err
		}
		if err := addPolyline(p, future, obsFutureColor, vg.Points(0.6)); err != nil {
			return err
		}
		if err := addMarkers(p, past, c.MarkerStride, obsPastColor); err != nil {
			return err
		}
		if err := addMarkers(p, future, c.MarkerStride, obsFutureColor); err != nil {
			return err
		}
	}
	return nil
}

// Overview renders the one-shot static figure: the scene at the first
// step with the full ego path drawn on top, same viewport rule.
func (c *Composer) Overview() (image.Image, error) {
	p := plot.New()
	p.Title.Text = c.Method
	p.X.Label.Text = fmt.Sprintf("Scenario ID: %s", c.Scenario.ID)

	if err := drawSnapshot(p, c.Scenario.SnapshotAt(c.Ego.InitialStep())); err != nil {
		return nil, err
	}
	for i := range c.Scenario.DynamicObstacles {
		o := &c.Scenario.DynamicObstacles[i]
		path := o.Path()
		if err := addPolyline(p, path, obsFutureColor, vg.Points(1)); err != nil {
			return nil, err
		}
		if err := addMarkers(p, path, c.MarkerStride, obsFutureColor); err != nil {
			return nil, err
		}
	}
	if err := addPolyline(p, c.Ego.Positions(), overviewEgoColor, vg.Points(4)); err != nil {
		return nil, err
	}

	applyViewport(p, c.Viewport)
	return c.RC.Render(p, nil), nil
}

func drawSnapshot(p *plot.Plot, snap scenario.Snapshot) error {
	for _, ll := range snap.Lanelets {
		if err := addPolyline(p, ll.Left, laneletColor, vg.Points(0.5)); err != nil {
			return err
		}
		if err := addPolyline(p, ll.Right, laneletColor, vg.Points(0.5)); err != nil {
			return err
		}
	}
	for _, so := range snap.Static {
		if err := addPolygon(p, so.Polygon, staticObstacle); err != nil {
			return err
		}
	}
	for _, d := range snap.Dynamic {
		corners := d.Shape.Corners(d.Position, d.Heading)
		if err := addPolygon(p, corners, dynamicObstacle); err != nil {
			return err
		}
	}
	return nil
}

func addPolyline(p *plot.Plot, pts []geom.Point, col color.Color, w vg.Length) error {
	if len(pts) < 2 {
		return nil
	}
	line, err := plotter.NewLine(xys(pts))
	if err != nil {
		return err
	}
	line.Color = col
	line.Width = w
	p.Add(line)
	return nil
}

// addMarkers draws a short segment along every strideth sample of the
// polyline, indicating travel direction and spacing (speed).
func addMarkers(p *plot.Plot, pts []geom.Point, stride int, col color.Color) error {
	diffs := geom.Diffs(pts)
	for i := 0; i < len(diffs); i += stride {
		seg, err := plotter.NewLine(plotter.XYs{
			{X: pts[i].X, Y: pts[i].Y},
			{X: pts[i].X + diffs[i].X, Y: pts[i].Y + diffs[i].Y},
		})
		if err != nil {
			return err
		}
		seg.Color = col
		seg.Width = vg.Points(2.5)
		p.Add(seg)
	}
	return nil
}

func addPolygon(p *plot.Plot, pts []geom.Point, fill color.Color) error {
	if len(pts) < 3 {
		return nil
	}
	poly, err := plotter.NewPolygon(xys(pts))
	if err != nil {
		return err
	}
	poly.Color = fill
	poly.LineStyle.Color = fill
	p.Add(poly)
	return nil
}

func applyViewport(p *plot.Plot, vp geom.AABB) {
	p.X.Min, p.X.Max = vp.XMin, vp.XMax
	p.Y.Min, p.Y.Max = vp.YMin, vp.YMax
}

// colorbarPlot builds the narrow side plot holding the cost colorbar.
func colorbarPlot(scale *CostMap) *plot.Plot {
	cm := NewCostMap(scale.Min(), scale.Max())
	if cm.Max() <= cm.Min() {
		// Degenerate range: a single cost value still needs a
		// drawable bar.
		cm.SetMax(cm.Min() + 1)
	}
	bar := plot.New()
	cb := &plotter.ColorBar{ColorMap: cm}
	cb.Vertical = true
	bar.Add(cb)
	bar.HideX()
	bar.Y.Label.Text = "cost"
	return bar
}
