package render

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot/palette"
)

// Normalization selects how candidate costs are mapped onto the
// colour scale across an export.
type Normalization string

const (
	// NormalizePerFrame rescales the colour range to the min/max cost
	// of each frame. Maximises contrast within a frame; identical
	// costs in different frames may render as different colours.
	NormalizePerFrame Normalization = "per-frame"

	// NormalizeGlobal uses one cost range across all frames of an
	// export so colours are comparable frame to frame.
	NormalizeGlobal Normalization = "global"
)

// ParseNormalization validates a configured normalization mode.
func ParseNormalization(s string) (Normalization, error) {
	switch Normalization(s) {
	case NormalizePerFrame, NormalizeGlobal:
		return Normalization(s), nil
	}
	return "", fmt.Errorf("render: unknown color normalization %q", s)
}

// CostMap is a continuous green-to-red colour map over a cost range:
// the cheapest candidate renders green, the most expensive red, with
// hue falling monotonically in between. Implements palette.ColorMap
// so it can back a colorbar.
type CostMap struct {
	min float64
	max float64
}

var _ palette.ColorMap = (*CostMap)(nil)

// NewCostMap builds a cost colour map over [min, max].
func NewCostMap(min, max float64) *CostMap {
	return &CostMap{min: min, max: max}
}

// At returns the colour for cost v.
func (m *CostMap) At(v float64) (color.Color, error) {
	if v < m.min || v > m.max {
		return nil, palette.ErrOverflow
	}
	span := m.max - m.min
	frac := 0.0
	if span > 0 {
		frac = (v - m.min) / span
	}
	// Hue runs from green (1/3) down to red (0) as cost rises.
	hue := (1 - frac) / 3
	r, g, b := hslToRGB(hue, 0.9, 0.45)
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// Min returns the lower end of the mapped range.
func (m *CostMap) Min() float64 { return m.min }

// Max returns the upper end of the mapped range.
func (m *CostMap) Max() float64 { return m.max }

// SetMin sets the lower end of the mapped range.
func (m *CostMap) SetMin(v float64) { m.min = v }

// SetMax sets the upper end of the mapped range.
func (m *CostMap) SetMax(v float64) { m.max = v }

// Alpha returns the map's opacity. Frames are always fully opaque.
func (m *CostMap) Alpha() float64 { return 1 }

// SetAlpha is a no-op; the map is always fully opaque.
func (m *CostMap) SetAlpha(float64) {}

// Palette returns n colours sampled evenly across the range.
func (m *CostMap) Palette(n int) palette.Palette {
	colors := make([]color.Color, n)
	for i := 0; i < n; i++ {
		frac := 0.0
		if n > 1 {
			frac = float64(i) / float64(n-1)
		}
		c, _ := m.At(m.min + frac*(m.max-m.min))
		colors[i] = c
	}
	return costPalette(colors)
}

type costPalette []color.Color

func (p costPalette) Colors() []color.Color { return p }

// hslToRGB converts HSL to RGB (0-255 range)
func hslToRGB(h, s, l float64) (r, g, b uint8) {
	var rf, gf, bf float64

	if s == 0 {
		rf, gf, bf = l, l, l
	} else {
		var q float64
		if l < 0.5 {
			q = l * (1 + s)
		} else {
			q = l + s - l*s
		}
		p := 2*l - q
		rf = hueToRGB(p, q, h+1.0/3.0)
		gf = hueToRGB(p, q, h)
		bf = hueToRGB(p, q, h-1.0/3.0)
	}

	return uint8(rf * 255), uint8(gf * 255), uint8(bf * 255)
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t += 1
	}
	if t > 1 {
		t -= 1
	}
	if t < 1.0/6.0 {
		return p + (q-p)*6*t
	}
	if t < 1.0/2.0 {
		return q
	}
	if t < 2.0/3.0 {
		return p + (q-p)*(2.0/3.0-t)*6
	}
	return p
}
