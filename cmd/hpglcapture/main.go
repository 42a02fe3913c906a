// Command hpglcapture reads an HPGL byte stream and renders each plot to a
// PNG or PDF file, following the two YAML configuration files given on the
// command line.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"

	"github.com/shiplog/hpglcap/capture"
	"github.com/shiplog/hpglcap/render"
	"github.com/shiplog/hpglcap/render/font"
)

func tracer() tracing.Trace {
	return tracing.Select("hpgl.capture")
}

var traceNamespaces = []string{"hpgl.parser", "hpgl.render", "hpgl.capture"}

func main() {
	initDisplay()

	portName := flag.String("port", "", "Serial port to read from (unused: no serial driver in this build, reads stdin)")
	dir := flag.String("dir", ".", "Directory output filename patterns are resolved against")
	verbose := flag.Bool("verbose", false, "Raise all trace namespaces to Debug level")
	flag.Parse()

	// Flags may also follow the two positional config paths.
	args := flag.Args()
	if len(args) >= 2 {
		_ = flag.CommandLine.Parse(args[2:])
	}
	if len(args) < 2 || flag.NArg() != 0 {
		pterm.Error.Println("usage: hpglcapture capture_config_path render_config_path [--port NAME] [--dir PATH] [--verbose]")
		os.Exit(1)
	}
	captureConfigPath := args[0]
	renderConfigPath := args[1]

	if err := setupTracing(*verbose); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}

	capCfg, err := capture.LoadCaptureConfig(captureConfigPath)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
	if !filepath.IsAbs(capCfg.ImgFilename) {
		capCfg.ImgFilename = filepath.Join(*dir, capCfg.ImgFilename)
	}
	if capCfg.DumpFilename != "" && !filepath.IsAbs(capCfg.DumpFilename) {
		capCfg.DumpFilename = filepath.Join(*dir, capCfg.DumpFilename)
	}

	renderCfg, err := capture.LoadRenderConfig(renderConfigPath, font.GetByName)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
	if cr, ok := renderCfg.Text.Font.(font.CoverageReporter); ok {
		tracer().Infof("label font coverage: %.1f%%", cr.Coverage()*100)
	}

	if *portName != "" {
		tracer().Infof("port %s requested but no serial driver is built in; reading stdin instead", *portName)
	}

	driver := capture.NewDriver(capCfg, renderCfg, stdinSource{})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pterm.Info.Println("Capturing HPGL. Interrupt with <ctrl>C.")
	if err := driver.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
}

func setupTracing(verbose bool) error {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	level := "Info"
	if verbose {
		level = "Debug"
	}
	conf := testconfig.Conf{"tracing.adapter": "go"}
	for _, ns := range traceNamespaces {
		conf["trace."+ns] = level
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return fmt.Errorf("configuring tracing: %w", err)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	return nil
}

func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// stdinSource adapts os.Stdin to capture.ByteSource. Stdin does not support
// read deadlines, so AdaptiveReader degrades to indefinite single-byte reads
// — correct for piped or redirected input, where a real serial driver would
// otherwise plug in behind the same interface.
type stdinSource struct{}

func (stdinSource) Read(p []byte) (int, error) { return os.Stdin.Read(p) }

func (stdinSource) SetReadDeadline(t time.Time) error {
	return errors.New("stdin does not support read deadlines")
}

func (stdinSource) Close() error { return os.Stdin.Close() }
