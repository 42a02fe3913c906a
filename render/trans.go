package render

import "math"

// A small affine matrix type plus a handful of constructors, rather than a
// general-purpose matrix stack. The matrices model the three transforms an
// HPGL plotter needs instead of a PDF content stream's `cm` operator.

// Matrix is a 2D affine transform [A B; C D] with translation (E, F):
//
//	x' = A*x + C*y + E
//	y' = B*x + D*y + F
type Matrix struct {
	A, B, C, D, E, F float64
}

// Identity is the neutral transform.
var Identity = Matrix{A: 1, D: 1}

// Apply transforms a point.
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.E, m.B*x + m.D*y + m.F
}

// ApplyDistance transforms a vector, ignoring translation.
func (m Matrix) ApplyDistance(dx, dy float64) (float64, float64) {
	return m.A*dx + m.C*dy, m.B*dx + m.D*dy
}

// Mul composes two matrices: the result applies m first, then n.
func (m Matrix) Mul(n Matrix) Matrix {
	return Matrix{
		A: m.A*n.A + m.B*n.C,
		B: m.A*n.B + m.B*n.D,
		C: m.C*n.A + m.D*n.C,
		D: m.C*n.B + m.D*n.D,
		E: m.E*n.A + m.F*n.C + n.E,
		F: m.E*n.B + m.F*n.D + n.F,
	}
}

func translate(tx, ty float64) Matrix {
	return Matrix{A: 1, D: 1, E: tx, F: ty}
}

func scale(sx, sy float64) Matrix {
	return Matrix{A: sx, D: sy}
}

func rotate(theta float64) Matrix {
	s, c := math.Sin(theta), math.Cos(theta)
	return Matrix{A: c, B: s, C: -s, D: c}
}

// deviceTransform builds the absolute-plotter-unit -> surface-mm transform
// for the given rotation and paper size.
//
// A sequence of context-mutation calls (successive translate/scale/rotate
// calls building up a single CTM) composes with the most recently applied
// call closest to the incoming point — so the chain below is built in the
// reverse of the order a reader would narrate it: the plotter-unit scale
// always applies first, the outermost translate (if any) last.
func deviceTransform(rot int, paperW, paperH float64) Matrix {
	m := scale(HPGLUnit, HPGLUnit)
	switch rot {
	case 1: // 90 deg
		m = m.Mul(rotate(math.Pi / 2))
		m = m.Mul(scale(1, -1))
		m = m.Mul(translate(paperW, paperH))
	case 2: // 180 deg
		m = m.Mul(rotate(math.Pi))
		m = m.Mul(scale(1, -1))
		m = m.Mul(translate(paperW, 0))
	case 3: // 270 deg
		m = m.Mul(rotate(3 * math.Pi / 2))
		m = m.Mul(scale(1, -1))
	default: // 0 deg
		m = m.Mul(scale(1, -1))
		m = m.Mul(translate(0, paperH))
	}
	return m
}

// userToHPGL computes the diagonal-only affine mapping user coordinates
// (p1usr, p2usr) onto absolute plotter coordinates (p1abs, p2abs). It fails
// with ErrInvalidCoords if either axis's user extent is zero.
func userToHPGL(p1abs, p2abs, p1usr, p2usr [2]float64) (Matrix, error) {
	duxX := p2usr[0] - p1usr[0]
	duxY := p2usr[1] - p1usr[1]
	if duxX == 0 || duxY == 0 {
		return Identity, errInvalidCoords("SC", "zero user-coordinate extent")
	}
	kx := (p2abs[0] - p1abs[0]) / duxX
	ky := (p2abs[1] - p1abs[1]) / duxY
	bx := p1abs[0] - kx*p1usr[0]
	by := p1abs[1] - ky*p1usr[1]
	return Matrix{A: kx, D: ky, E: bx, F: by}, nil
}

// charToHPGL scales a normalized character box by (charW, charH) and then
// shears in X by tiltTangent, producing the character-to-HPGL transform.
func charToHPGL(charW, charH, tiltTangent float64) Matrix {
	shear := Matrix{A: 1, B: 0, C: tiltTangent, D: 1}
	sc := scale(charW, charH)
	return sc.Mul(shear)
}
