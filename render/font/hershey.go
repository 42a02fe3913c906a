package font

import (
	"embed"
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"
	"github.com/shiplog/hpglcap/render"
)

//go:embed data/hershey/*.jhf
var hersheyData embed.FS

// hersheyRefCode is the ASCII origin for a Hershey coordinate character: a
// coordinate value v is stored as the byte 'R'+v.
const hersheyRefCode = 'R'

// Empirical normalization box for an ASCII-mapped Hershey font: Y is
// inverted (cap height is negative), and the font is treated as monospace
// even though Hershey glyphs are natively variable-width.
const (
	hersheyCap    = -12.0
	hersheyBottom = 9.0
	hersheyLeft   = -6.0
	hersheyRight  = 7.0
)

// HersheyFont loads and normalizes a classic Hershey vector font (.jhf),
// mapping its glyph slots onto ASCII starting at the space character.
type HersheyFont struct {
	glyphs  map[rune][]render.Stroke
	defined *bitset.BitSet
}

// NewHersheyFont loads the embedded font named variant (e.g. "rowmans").
func NewHersheyFont(variant string) (*HersheyFont, error) {
	path := fmt.Sprintf("data/hershey/%s.jhf", strings.TrimSpace(variant))
	raw, err := hersheyData.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("font: unknown hershey variant %q: %w", variant, err)
	}

	ky := 1 / (hersheyCap - hersheyBottom)
	by := -ky * hersheyBottom
	kx := 1 / (hersheyRight - hersheyLeft)
	bx := -kx * hersheyLeft

	f := &HersheyFont{
		glyphs:  make(map[rune][]render.Stroke),
		defined: bitset.New(256),
	}

	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	for i, line := range lines {
		if len(line) < 10 {
			return nil, fmt.Errorf("font: %s: malformed line %d", path, i)
		}
		c := rune(32 + i)
		vert := line[10:]
		var strokes []render.Stroke
		for _, segment := range strings.Split(vert, " R") {
			for j := 0; j+1 < len(segment); j += 2 {
				x := float64(int(segment[j])-hersheyRefCode)*kx + bx
				y := float64(int(segment[j+1])-hersheyRefCode)*ky + by
				strokes = append(strokes, render.Stroke{PenDown: j != 0, X: x, Y: y})
			}
		}
		f.glyphs[c] = strokes
		if c >= 0 && c < 256 {
			f.defined.Set(uint(c))
		}
	}
	return f, nil
}

// GetPaths implements render.StrokeFont.
func (f *HersheyFont) GetPaths(c rune) ([]render.Stroke, bool) {
	if c < 0 || c >= 256 || !f.defined.Test(uint(c)) {
		return nil, false
	}
	return f.glyphs[c], true
}

// Coverage reports the fraction of the printable 7-bit ASCII range (32..126)
// this font has a defined glyph line for, for use as a startup diagnostic:
// a hand-authored or partial .jhf file can legitimately cover only part of
// that range.
func (f *HersheyFont) Coverage() float64 {
	const first, last = 32, 126
	defined := 0
	for c := first; c <= last; c++ {
		if f.defined.Test(uint(c)) {
			defined++
		}
	}
	return float64(defined) / float64(last-first+1)
}
