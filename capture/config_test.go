package capture_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shiplog/hpglcap/capture"
	"github.com/shiplog/hpglcap/render"
)

type stubFont struct{}

func (stubFont) GetPaths(c rune) ([]render.Stroke, bool) { return nil, false }

func stubResolveFont(name string) (render.StrokeFont, error) { return stubFont{}, nil }

func writeTemp(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadCaptureConfigDecodesImgAndPort(t *testing.T) {
	path := writeTemp(t, `
img:
  format: png
  filename: "plot-%Y%m%d.png"
dump_filename: "plot-%Y%m%d.hpgl"
port:
  name: /dev/ttyUSB0
  baud: 9600
  parity: none
  rtscts: true
`)
	cfg, err := capture.LoadCaptureConfig(path)
	require.NoError(t, err)
	require.Equal(t, render.FormatPNG, cfg.ImgFormat)
	require.Equal(t, "plot-%Y%m%d.png", cfg.ImgFilename)
	require.Equal(t, "plot-%Y%m%d.hpgl", cfg.DumpFilename)
	require.Equal(t, "/dev/ttyUSB0", cfg.Port.Name)
	require.Equal(t, 9600, cfg.Port.Baud)
	require.True(t, cfg.Port.RTSCTS)
}

func TestLoadCaptureConfigRequiresImgFilename(t *testing.T) {
	path := writeTemp(t, `
img:
  format: png
`)
	_, err := capture.LoadCaptureConfig(path)
	require.Error(t, err)
	var cfgErr *capture.ErrConfig
	require.ErrorAs(t, err, &cfgErr)
}

func TestLoadCaptureConfigRejectsUnknownFormat(t *testing.T) {
	path := writeTemp(t, `
img:
  format: tiff
  filename: out.tiff
`)
	_, err := capture.LoadCaptureConfig(path)
	require.Error(t, err)
}

func TestLoadCaptureConfigRejectsMissingFile(t *testing.T) {
	_, err := capture.LoadCaptureConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoadRenderConfigDecodesPensAndBackground(t *testing.T) {
	path := writeTemp(t, `
paper: [297, 210]
crop: [5, 5, 5, 5]
dpi: 300
background_color: "#ffffff"
pens:
  "1":
    color: "#ff0000"
    line_width: 0.35
  "2":
    color: "0000ff"
    line_width: 0.5
  notanumber:
    color: "#00ff00"
text:
  font: stick_font
`)
	cfg, err := capture.LoadRenderConfig(path, stubResolveFont)
	require.NoError(t, err)
	require.Equal(t, 297.0, cfg.PaperW)
	require.Equal(t, 210.0, cfg.PaperH)
	require.Equal(t, render.Color{R: 1, G: 1, B: 1, A: 1}, cfg.Background)

	pen1 := cfg.Pen(1)
	require.Equal(t, 0.35, pen1.LineWidth)
	require.Equal(t, render.Color{R: 1, A: 1}, pen1.Color)

	pen2 := cfg.Pen(2)
	require.Equal(t, render.Color{B: 1, A: 1}, pen2.Color)

	// Non-numeric pen keys are ignored, not an error.
	unknown := cfg.Pen(99)
	require.Equal(t, render.PenConfig{}, unknown)
}

func TestLoadRenderConfigRejectsBadPenColor(t *testing.T) {
	path := writeTemp(t, `
paper: [297, 210]
dpi: 300
background_color: "#ffffff"
pens:
  "1":
    color: "not-a-hex-color"
text:
  font: stick_font
`)
	_, err := capture.LoadRenderConfig(path, stubResolveFont)
	require.Error(t, err)
}

func TestLoadRenderConfigPropagatesFontResolutionError(t *testing.T) {
	path := writeTemp(t, `
paper: [297, 210]
dpi: 300
background_color: "#000000"
text:
  font: nonexistent
`)
	_, err := capture.LoadRenderConfig(path, func(name string) (render.StrokeFont, error) {
		return nil, errUnknownFont(name)
	})
	require.Error(t, err)
}

type errUnknownFont string

func (e errUnknownFont) Error() string { return "unknown font: " + string(e) }
