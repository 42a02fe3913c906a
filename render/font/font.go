// Package font implements the stroke-font lookups used by the render
// package's LB label stroking: a small built-in stick font and a loader for
// Hershey vector fonts embedded from data/hershey.
package font

import (
	"fmt"
	"strings"

	"github.com/shiplog/hpglcap/render"
)

// CoverageReporter is implemented by fonts that can report how much of
// their addressable range is actually backed by glyph data, for use as a
// capture driver startup diagnostic. A font with a fixed, always-complete
// repertoire (like the built-in stick font) need not implement it.
type CoverageReporter interface {
	Coverage() float64
}

// GetByName resolves a font name as used in a render.yaml config's
// text.font field: "stick_font" for the built-in font, or
// "hershey:<variant>" for an embedded Hershey font.
func GetByName(name string) (render.StrokeFont, error) {
	name = strings.TrimSpace(name)
	if name == "stick_font" {
		return NewStickFont(), nil
	}
	if strings.HasPrefix(name, "hershey") {
		toks := strings.SplitN(name, ":", 2)
		if len(toks) < 2 || toks[1] == "" {
			return nil, fmt.Errorf("font: invalid hershey font name %q", name)
		}
		return NewHersheyFont(toks[1])
	}
	return nil, fmt.Errorf("font: unknown font %q", name)
}
