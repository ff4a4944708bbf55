package render

import (
	"image"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// RenderContext owns the raster target a frame is drawn onto. Every
// drawing call receives it explicitly; there is no implicit current
// canvas anywhere in the pipeline.
type RenderContext struct {
	Width  vg.Length
	Height vg.Length
	DPI    int
}

// DefaultContext matches the export figure size used across runs.
func DefaultContext() *RenderContext {
	return &RenderContext{Width: 10 * vg.Inch, Height: 8 * vg.Inch, DPI: 96}
}

// barFraction is the share of canvas width given to the colorbar.
const barFraction = 0.14

// Render draws the main plot, and the colorbar plot when non-nil, onto
// a fresh canvas and returns the raster. Each call uses its own
// canvas, so rendering one frame cannot leak into the next.
func (rc *RenderContext) Render(main, bar *plot.Plot) image.Image {
	c := vgimg.NewWith(
		vgimg.UseWH(rc.Width, rc.Height),
		vgimg.UseDPI(rc.DPI),
	)
	dc := draw.New(c)

	if bar == nil {
		main.Draw(dc)
		return c.Image()
	}

	split := vg.Length(1-barFraction) * rc.Width
	mainArea := draw.Crop(dc, 0, split-rc.Width, 0, 0)
	barArea := draw.Crop(dc, split, 0, 0, 0)
	main.Draw(mainArea)
	bar.Draw(barArea)
	return c.Image()
}
