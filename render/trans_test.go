package render_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shiplog/hpglcap/render"
)

func TestDeviceTransformZeroRotationMapsOriginToBottomLeft(t *testing.T) {
	// At rot=0, plotter (0,0) is the bottom-left of the paper, which maps to
	// mm (0, paperH) since mm space has Y increasing downward from the top.
	m := render.ExportDeviceTransform(0, 297, 210)
	x, y := m.Apply(0, 0)
	require.InDelta(t, 0.0, x, 1e-9)
	require.InDelta(t, 210.0, y, 1e-9)

	x, y = m.Apply(297/render.HPGLUnit, 210/render.HPGLUnit)
	require.InDelta(t, 297.0, x, 1e-9)
	require.InDelta(t, 0.0, y, 1e-9)
}

func TestDeviceTransform90DegreesRotatesPlot(t *testing.T) {
	m := render.ExportDeviceTransform(1, 297, 210)
	// Plotter origin should land at a paper corner after rotation.
	x, y := m.Apply(0, 0)
	require.True(t, x >= -1e-6 && x <= 297+1e-6)
	require.True(t, y >= -1e-6 && y <= 210+1e-6)
	require.False(t, math.IsNaN(x))
	require.False(t, math.IsNaN(y))
}

func TestUserToHPGLRejectsZeroExtent(t *testing.T) {
	_, err := render.ExportUserToHPGL([2]float64{0, 0}, [2]float64{100, 100}, [2]float64{0, 0}, [2]float64{0, 50})
	require.Error(t, err)
}

func TestUserToHPGLLinearMapping(t *testing.T) {
	m, err := render.ExportUserToHPGL([2]float64{0, 0}, [2]float64{1000, 2000}, [2]float64{0, 0}, [2]float64{10, 20})
	require.NoError(t, err)
	x, y := m.Apply(5, 10)
	require.InDelta(t, 500.0, x, 1e-9)
	require.InDelta(t, 1000.0, y, 1e-9)
}

func TestCharToHPGLScalesAndShears(t *testing.T) {
	m := render.ExportCharToHPGL(100, 200, 0.5)
	x, y := m.Apply(1, 1)
	// scale first (100,200) then shear x by tiltTangent*y.
	require.InDelta(t, 100+0.5*200, x, 1e-9)
	require.InDelta(t, 200.0, y, 1e-9)
}
