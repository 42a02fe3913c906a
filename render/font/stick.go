package font

import "github.com/shiplog/hpglcap/render"

// stickPaths lays out each glyph on a 4x8 grid (x: 0..4, y: 0..8, origin
// top-left) as one or more polylines. Within a polyline the first point is a
// pen-up move and the rest are pen-down draws. GetPaths flips y so that the
// strokes it returns have their origin at the glyph's lower-left.
var stickPaths = map[rune][][][2]int8{
	'0': {{{0, 0}, {4, 0}, {4, 8}, {0, 8}, {0, 0}}},
	'1': {{{2, 0}, {2, 8}}, {{1, 1}, {2, 0}}},
	'2': {{{0, 0}, {4, 0}, {4, 4}, {0, 4}, {0, 8}, {4, 8}}},
	'3': {{{0, 0}, {4, 0}, {4, 8}, {0, 8}}, {{0, 4}, {4, 4}}},
	'4': {{{0, 0}, {0, 4}, {4, 4}}, {{4, 0}, {4, 8}}},
	'5': {{{4, 0}, {0, 0}, {0, 4}, {4, 4}, {4, 8}, {0, 8}}},
	'6': {{{4, 0}, {0, 0}, {0, 8}, {4, 8}, {4, 4}, {0, 4}}},
	'7': {{{0, 0}, {4, 0}, {2, 8}}},
	'8': {{{0, 0}, {4, 0}, {4, 8}, {0, 8}, {0, 0}}, {{0, 4}, {4, 4}}},
	'9': {{{4, 4}, {0, 4}, {0, 0}, {4, 0}, {4, 8}, {0, 8}}},
	'A': {{{0, 8}, {2, 0}, {4, 8}}, {{1, 4}, {3, 4}}},
	'B': {{{0, 0}, {0, 8}}, {{0, 0}, {3, 0}, {4, 2}, {3, 4}, {0, 4}}, {{3, 4}, {4, 6}, {3, 8}, {0, 8}}},
	'C': {{{4, 1}, {3, 0}, {1, 0}, {0, 2}, {0, 6}, {1, 8}, {3, 8}, {4, 7}}},
	'D': {{{0, 0}, {0, 8}}, {{0, 0}, {3, 0}, {4, 4}, {3, 8}, {0, 8}}},
	'E': {{{4, 0}, {0, 0}, {0, 8}, {4, 8}}, {{0, 4}, {3, 4}}},
	'F': {{{4, 0}, {0, 0}, {0, 8}}, {{0, 4}, {3, 4}}},
	'G': {{{4, 1}, {3, 0}, {1, 0}, {0, 2}, {0, 6}, {1, 8}, {3, 8}, {4, 6}, {4, 4}, {2, 4}}},
	'H': {{{0, 0}, {0, 8}}, {{4, 0}, {4, 8}}, {{0, 4}, {4, 4}}},
	'I': {{{1, 0}, {3, 0}}, {{2, 0}, {2, 8}}, {{1, 8}, {3, 8}}},
	'J': {{{4, 0}, {4, 6}, {3, 8}, {1, 8}, {0, 6}}},
	'K': {{{0, 0}, {0, 8}}, {{4, 0}, {0, 4}, {4, 8}}},
	'L': {{{0, 0}, {0, 8}, {4, 8}}},
	'M': {{{0, 8}, {0, 0}, {2, 4}, {4, 0}, {4, 8}}},
	'N': {{{0, 8}, {0, 0}, {4, 8}, {4, 0}}},
	'O': {{{1, 0}, {3, 0}, {4, 2}, {4, 6}, {3, 8}, {1, 8}, {0, 6}, {0, 2}, {1, 0}}},
	'P': {{{0, 8}, {0, 0}, {3, 0}, {4, 2}, {3, 4}, {0, 4}}},
	'Q': {{{1, 0}, {3, 0}, {4, 2}, {4, 6}, {3, 8}, {1, 8}, {0, 6}, {0, 2}, {1, 0}}, {{2, 5}, {4, 8}}},
	'R': {{{0, 8}, {0, 0}, {3, 0}, {4, 2}, {3, 4}, {0, 4}}, {{2, 4}, {4, 8}}},
	'S': {{{4, 1}, {3, 0}, {1, 0}, {0, 2}, {1, 4}, {3, 4}, {4, 6}, {3, 8}, {1, 8}, {0, 7}}},
	'T': {{{0, 0}, {4, 0}}, {{2, 0}, {2, 8}}},
	'U': {{{0, 0}, {0, 6}, {1, 8}, {3, 8}, {4, 6}, {4, 0}}},
	'V': {{{0, 0}, {2, 8}, {4, 0}}},
	'W': {{{0, 0}, {1, 8}, {2, 4}, {3, 8}, {4, 0}}},
	'X': {{{0, 0}, {4, 8}}, {{4, 0}, {0, 8}}},
	'Y': {{{0, 0}, {2, 4}, {4, 0}}, {{2, 4}, {2, 8}}},
	'Z': {{{0, 0}, {4, 0}, {0, 8}, {4, 8}}},
	' ': {},
	'.': {{{2, 7}, {2, 8}}},
	',': {{{2, 7}, {1, 9}}},
	'-': {{{0, 4}, {4, 4}}},
	':': {{{2, 2}, {2, 3}}, {{2, 6}, {2, 7}}},
	'\'': {{{2, 0}, {2, 2}}},
}

// StickFont is the built-in 4x8-grid vector font.
type StickFont struct{}

// NewStickFont returns the built-in stick font.
func NewStickFont() *StickFont { return &StickFont{} }

// GetPaths implements render.StrokeFont.
func (f *StickFont) GetPaths(c rune) ([]render.Stroke, bool) {
	paths, ok := stickPaths[c]
	if !ok {
		return nil, false
	}
	var strokes []render.Stroke
	for _, path := range paths {
		for i, pt := range path {
			strokes = append(strokes, render.Stroke{
				PenDown: i != 0,
				X:       float64(pt[0]) / 4,
				Y:       float64(8-int(pt[1])) / 8,
			})
		}
	}
	return strokes, true
}
