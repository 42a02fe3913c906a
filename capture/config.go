// Package capture implements the ambient capture driver: adaptive byte
// reading from a plotter-like byte source, YAML configuration loading, and
// the plot-framing loop that wires hpgl.Parser to the filesystem.
package capture

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"gopkg.in/yaml.v3"

	"github.com/shiplog/hpglcap/render"
)

func tracer() tracing.Trace {
	return tracing.Select("hpgl.capture")
}

// ErrConfig wraps any configuration-loading failure; the CLI entry point
// treats it as fatal.
type ErrConfig struct {
	Path string
	Err  error
}

func (e *ErrConfig) Error() string {
	return fmt.Sprintf("capture: config %s: %s", e.Path, e.Err)
}

func (e *ErrConfig) Unwrap() error { return e.Err }

// PortConfig describes the serial transport as plain data; this package
// does not implement a serial driver, only parses and carries the settings.
type PortConfig struct {
	Name    string `yaml:"name"`
	Baud    int    `yaml:"baud"`
	Parity  string `yaml:"parity"` // "none", "even", "odd"
	RTSCTS  bool   `yaml:"rtscts"`
	DSRDTR  bool   `yaml:"dsrdtr"`
	XonXoff bool   `yaml:"xonxoff"`
}

type imgConfigYAML struct {
	Format   string `yaml:"format"`
	Filename string `yaml:"filename"`
}

type captureConfigYAML struct {
	Img          imgConfigYAML `yaml:"img"`
	DumpFilename string        `yaml:"dump_filename"`
	Port         PortConfig    `yaml:"port"`
}

// CaptureConfig is the decoded capture configuration: output image pattern,
// optional raw-command dump pattern, and the (unused-by-us) serial port
// settings.
type CaptureConfig struct {
	ImgFormat       render.ImageFormat
	ImgFilename     string // directory plus a time.Time.Format-style layout for the base name
	DumpFilename    string // same shape as ImgFilename, optional
	Port            PortConfig
}

// LoadCaptureConfig decodes a capture configuration YAML file.
func LoadCaptureConfig(path string) (*CaptureConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &ErrConfig{Path: path, Err: err}
	}
	var y captureConfigYAML
	if err := yaml.Unmarshal(raw, &y); err != nil {
		return nil, &ErrConfig{Path: path, Err: err}
	}
	if y.Img.Filename == "" {
		return nil, &ErrConfig{Path: path, Err: fmt.Errorf("img.filename is required")}
	}
	format, err := render.ParseImageFormat(y.Img.Format)
	if err != nil {
		return nil, &ErrConfig{Path: path, Err: err}
	}
	return &CaptureConfig{
		ImgFormat:    format,
		ImgFilename:  y.Img.Filename,
		DumpFilename: y.DumpFilename,
		Port:         y.Port,
	}, nil
}

type renderConfigYAML struct {
	Paper           [2]float64              `yaml:"paper"`
	Crop            [4]float64              `yaml:"crop"`
	DPI             float64                 `yaml:"dpi"`
	BackgroundColor string                  `yaml:"background_color"`
	Pens            map[string]penConfigYAML `yaml:"pens"`
	Text            textConfigYAML          `yaml:"text"`
}

type penConfigYAML struct {
	Color     string  `yaml:"color"`
	LineWidth float64 `yaml:"line_width"`
}

type textConfigYAML struct {
	Font      string   `yaml:"font"`
	LineWidth *float64 `yaml:"line_width"`
	Color     *string  `yaml:"color"`
}

var penKeyRe = regexp.MustCompile(`^[0-9]+$`)

// LoadRenderConfig decodes a render configuration YAML file into a
// render.Config. font is whatever the "text.font" field resolves to via
// render/font.GetByName, supplied by the caller so this package stays
// independent of the font package's concrete types.
func LoadRenderConfig(path string, resolveFont func(name string) (render.StrokeFont, error)) (*render.Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &ErrConfig{Path: path, Err: err}
	}
	var y renderConfigYAML
	if err := yaml.Unmarshal(raw, &y); err != nil {
		return nil, &ErrConfig{Path: path, Err: err}
	}

	bg, err := parseColor(y.BackgroundColor)
	if err != nil {
		return nil, &ErrConfig{Path: path, Err: fmt.Errorf("background_color: %w", err)}
	}

	pens := map[int]render.PenConfig{0: {}}
	for k, v := range y.Pens {
		k = strings.TrimSpace(k)
		if !penKeyRe.MatchString(k) {
			continue
		}
		n, _ := strconv.Atoi(k)
		c, err := parseColor(v.Color)
		if err != nil {
			return nil, &ErrConfig{Path: path, Err: fmt.Errorf("pens.%s.color: %w", k, err)}
		}
		pens[n] = render.PenConfig{Color: c, LineWidth: v.LineWidth}
	}

	font, err := resolveFont(y.Text.Font)
	if err != nil {
		return nil, &ErrConfig{Path: path, Err: fmt.Errorf("text.font: %w", err)}
	}
	text := render.TextOptions{Font: font, LineWidth: y.Text.LineWidth}
	if y.Text.Color != nil {
		c, err := parseColor(*y.Text.Color)
		if err != nil {
			return nil, &ErrConfig{Path: path, Err: fmt.Errorf("text.color: %w", err)}
		}
		text.Color = &c
	}

	return &render.Config{
		PaperW:     y.Paper[0],
		PaperH:     y.Paper[1],
		CropT:      y.Crop[0],
		CropL:      y.Crop[1],
		CropB:      y.Crop[2],
		CropR:      y.Crop[3],
		DPI:        y.DPI,
		Background: bg,
		Pens:       pens,
		Text:       text,
	}, nil
}

// parseColor mirrors the original tool's parse_color: a leading '#' is
// stripped, the remainder parsed as a hex RRGGBB integer, fully opaque.
func parseColor(spec string) (render.Color, error) {
	spec = strings.TrimSpace(spec)
	spec = strings.TrimPrefix(spec, "#")
	if spec == "" {
		return render.Color{}, fmt.Errorf("empty color")
	}
	v, err := strconv.ParseInt(spec, 16, 64)
	if err != nil {
		return render.Color{}, fmt.Errorf("invalid color %q: %w", spec, err)
	}
	r := float64((v>>16)&0xFF) / 255
	g := float64((v>>8)&0xFF) / 255
	b := float64(v&0xFF) / 255
	return render.Color{R: r, G: g, B: b, A: 1}, nil
}
