package font_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shiplog/hpglcap/render/font"
)

func TestGetByNameResolvesStickFont(t *testing.T) {
	f, err := font.GetByName("stick_font")
	require.NoError(t, err)
	require.NotNil(t, f)

	strokes, ok := f.GetPaths('A')
	require.True(t, ok)
	require.NotEmpty(t, strokes)

	_, ok = f.GetPaths('é') // not in the table
	require.False(t, ok)
}

func TestGetByNameResolvesHersheyVariant(t *testing.T) {
	f, err := font.GetByName("hershey:rowmans")
	require.NoError(t, err)
	require.NotNil(t, f)

	strokes, ok := f.GetPaths('A')
	require.True(t, ok)
	require.NotEmpty(t, strokes)

	// All normalized coordinates should land in a sane box around [0,1].
	for _, s := range strokes {
		require.True(t, s.X > -1 && s.X < 2)
		require.True(t, s.Y > -1 && s.Y < 2)
	}
}

func TestGetByNameRejectsUnknownFont(t *testing.T) {
	_, err := font.GetByName("comic_sans")
	require.Error(t, err)
}

func TestGetByNameRejectsMissingHersheyVariant(t *testing.T) {
	_, err := font.GetByName("hershey:")
	require.Error(t, err)
}

func TestGetByNameRejectsUnknownHersheyVariant(t *testing.T) {
	_, err := font.GetByName("hershey:nonexistent")
	require.Error(t, err)
}

func TestHersheyFontReportsCoverage(t *testing.T) {
	f, err := font.GetByName("hershey:rowmans")
	require.NoError(t, err)

	cr, ok := f.(font.CoverageReporter)
	require.True(t, ok, "HersheyFont must implement font.CoverageReporter")

	cov := cr.Coverage()
	require.Greater(t, cov, 0.0)
	require.LessOrEqual(t, cov, 1.0)
}

func TestStickFontDoesNotImplementCoverageReporter(t *testing.T) {
	f, err := font.GetByName("stick_font")
	require.NoError(t, err)

	_, ok := f.(font.CoverageReporter)
	require.False(t, ok)
}
