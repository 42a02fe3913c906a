// Package render implements the stateful HPGL rendering engine: coordinate
// transforms, pen state, stroke-font text layout, and the PNG/PDF backends
// that serialize a recorded plot.
package render

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("hpgl.render")
}

// HPGLUnit is the plotter unit: 1/40 mm.
const HPGLUnit = 0.025

// Default character box, in mm, before conversion to plotter units.
const (
	defaultCharWidthMM  = 2.85
	defaultCharHeightMM = 3.75
)

// Character advance, in units of char_w / char_h.
const (
	charStepX = 1.5
	charStepY = 2.0
)

// ImageFormat selects the output serialization backend.
type ImageFormat int

const (
	FormatPNG ImageFormat = iota
	FormatPDF
)

func (f ImageFormat) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatPDF:
		return "pdf"
	default:
		return "unknown"
	}
}

// ParseImageFormat maps a config string ("png"/"PNG" or "pdf"/"PDF") to an
// ImageFormat; mixed-case spellings are rejected.
func ParseImageFormat(s string) (ImageFormat, error) {
	switch s {
	case "png", "PNG":
		return FormatPNG, nil
	case "pdf", "PDF":
		return FormatPDF, nil
	default:
		return 0, fmt.Errorf("render: unknown image format %q", s)
	}
}

// Color is a normalized RGBA color, each channel in [0,1].
type Color struct {
	R, G, B, A float64
}

// PenConfig describes one pen: its stroke color and line width in mm. Pen 0
// is the reserved "no pen" sentinel (fully transparent, zero width):
// Config.Pen falls back to it for any pen number missing from the table.
// LoadRenderConfig seeds it into the table, and a configured pen "0"
// replaces it.
type PenConfig struct {
	Color     Color
	LineWidth float64 // mm
}

var noPen = PenConfig{Color: Color{0, 0, 0, 0}, LineWidth: 0}

// TextOptions configures how LB labels are stroked.
type TextOptions struct {
	Font      StrokeFont
	LineWidth *float64 // mm, optional override
	Color     *Color   // optional override
}

// StrokeFont is the glyph-lookup contract the render/font package's fonts
// implement — kept as a narrow interface here so render does not need to
// import render/font's concrete types.
type StrokeFont interface {
	GetPaths(c rune) ([]Stroke, bool)
}

// Stroke is one point of a glyph polyline in the normalized [0,1]x[0,1]
// character box. PenDown false means "lift and move here", true means "draw
// here from the previous point".
type Stroke struct {
	PenDown bool
	X, Y    float64
}

// Config is the immutable-after-construction set of parameters a plot is
// rendered against: paper geometry, crop margins, DPI, background, pen
// table, and text defaults.
type Config struct {
	PaperW, PaperH         float64 // mm
	CropT, CropL, CropB, CropR float64 // mm
	DPI                    float64
	Background             Color
	Pens                   map[int]PenConfig
	Text                   TextOptions
}

// Pen looks up a pen by number, falling back to the "no pen" sentinel (pen 0)
// for anything not present in the table — this mirrors how an HPGL plotter
// silently ignores a select-pen for hardware it doesn't have loaded.
func (c *Config) Pen(n int) PenConfig {
	if p, ok := c.Pens[n]; ok {
		return p
	}
	if p, ok := c.Pens[0]; ok {
		return p
	}
	return noPen
}

// drawExtent returns the croppped drawing rectangle, in mm, within the paper.
func (c *Config) drawExtent() (x, y, w, h float64) {
	return c.CropL, c.CropT, c.PaperW - c.CropL - c.CropR, c.PaperH - c.CropT - c.CropB
}
