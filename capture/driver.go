package capture

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/shiplog/hpglcap/hpgl"
	"github.com/shiplog/hpglcap/render"
)

// Driver is the capture loop: it owns the byte source, the hpgl.Parser, and
// the plot-framing logic triggered off IN/DF.
type Driver struct {
	capture *CaptureConfig
	render  *render.Config
	parser  *hpgl.Parser
	src     ByteSource
	reader  *AdaptiveReader
	now     func() time.Time

	plotStarted time.Time // timestamp resolved at the most recent IN
}

// NewDriver builds a Driver over the given configs and byte source. now
// defaults to time.Now but can be overridden for deterministic tests.
func NewDriver(cap *CaptureConfig, rc *render.Config, src ByteSource) *Driver {
	d := &Driver{capture: cap, render: rc, src: src, reader: NewAdaptiveReader(src), now: time.Now}
	d.parser = hpgl.NewParser(d.onCommand)
	return d
}

// onCommand is the parser's command hook: it watches for the IN/DF framing
// opcodes and starts/finishes the plot accordingly.
func (d *Driver) onCommand(cmd string) {
	if len(cmd) < 2 {
		return
	}
	switch strings.ToUpper(cmd[:2]) {
	case "IN":
		d.plotStarted = d.now()
		d.parser.StartPlot(d.render)
	case "DF":
		imgFile := resolveFilename(d.capture.ImgFilename, d.plotStarted)
		dumpFile := ""
		if d.capture.DumpFilename != "" {
			dumpFile = resolveFilename(d.capture.DumpFilename, d.plotStarted)
		}
		if err := d.parser.FinishPlot(imgFile, d.capture.ImgFormat, dumpFile); err != nil {
			tracer().Errorf("finishing plot: %s", err)
		}
	}
}

// Run drives the read-feed loop until ctx is cancelled, then performs one
// final FinishPlot (a no-op if no plot is active) and returns nil. Read
// errors on the byte source are fatal and returned to the caller. The byte
// source is released on every exit path, including a panic unwinding
// through this call.
func (d *Driver) Run(ctx context.Context) error {
	defer func() {
		if err := d.src.Close(); err != nil {
			tracer().Errorf("closing byte source: %s", err)
		}
	}()
	defer d.finalFlush()

	buf := make([]byte, blockReadSize)
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		n, err := d.reader.ReadNext(buf)
		if err != nil {
			return err
		}
		if n > 0 {
			d.parser.Feed(buf[:n])
		}
	}
}

func (d *Driver) finalFlush() {
	if !d.parser.Active() {
		return
	}
	imgFile := resolveFilename(d.capture.ImgFilename, d.plotStarted)
	dumpFile := ""
	if d.capture.DumpFilename != "" {
		dumpFile = resolveFilename(d.capture.DumpFilename, d.plotStarted)
	}
	if err := d.parser.FinishPlot(imgFile, d.capture.ImgFormat, dumpFile); err != nil {
		tracer().Errorf("final flush: %s", err)
	}
}

// resolveFilename formats the base name of pattern as a time.Time.Format
// layout against t; the directory part is kept as-is.
func resolveFilename(pattern string, t time.Time) string {
	dir, base := filepath.Split(pattern)
	return dir + t.Format(base)
}
