package capture_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shiplog/hpglcap/capture"
	"github.com/shiplog/hpglcap/render"
)

// queueSource streams a fixed byte string through a real bytes.Reader, so
// AdaptiveReader sees realistic partial-read behavior instead of the
// whole-chunk-per-call shape of fakeSource.
type queueSource struct {
	r      *bytes.Reader
	closed bool
}

func (q *queueSource) Read(p []byte) (int, error) { return q.r.Read(p) }

func (q *queueSource) SetReadDeadline(t time.Time) error { return nil }

func (q *queueSource) Close() error {
	q.closed = true
	return nil
}

func driverTestRenderConfig() *render.Config {
	return &render.Config{
		PaperW: 297, PaperH: 210, DPI: 72,
		Pens: map[int]render.PenConfig{1: {Color: render.Color{R: 1, A: 1}, LineWidth: 0.3}},
	}
}

func TestDriverRunFramesOnePlotAndWritesImage(t *testing.T) {
	dir := t.TempDir()
	imgPath := filepath.Join(dir, "out.png")
	cfg := &capture.CaptureConfig{ImgFormat: render.FormatPNG, ImgFilename: imgPath}

	src := &queueSource{r: bytes.NewReader([]byte("IN;SP1;PU0,0;PD100,100;DF;"))}
	d := capture.NewDriver(cfg, driverTestRenderConfig(), src)

	err := d.Run(context.Background())
	require.ErrorIs(t, err, io.EOF)

	_, statErr := os.Stat(imgPath)
	require.NoError(t, statErr)
	require.True(t, src.closed)
}

func TestDriverFinalFlushCompletesUnterminatedPlot(t *testing.T) {
	dir := t.TempDir()
	imgPath := filepath.Join(dir, "partial.png")
	cfg := &capture.CaptureConfig{ImgFormat: render.FormatPNG, ImgFilename: imgPath}

	// No trailing DF: the plot must still be flushed by Run's deferred
	// finalFlush once the byte source is exhausted.
	src := &queueSource{r: bytes.NewReader([]byte("IN;SP1;PU0,0;PD100,100;"))}
	d := capture.NewDriver(cfg, driverTestRenderConfig(), src)

	err := d.Run(context.Background())
	require.ErrorIs(t, err, io.EOF)

	_, statErr := os.Stat(imgPath)
	require.NoError(t, statErr)
}

func TestDriverRunStopsOnContextCancellation(t *testing.T) {
	dir := t.TempDir()
	cfg := &capture.CaptureConfig{ImgFormat: render.FormatPNG, ImgFilename: filepath.Join(dir, "never.png")}

	// Context is already cancelled before Run starts, so this only exercises
	// the top-of-loop ctx.Done() check; blockingSource never has to actually
	// unblock. See TestDriverRunStopsWhileIdleMidRead for cancellation
	// observed mid-read.
	src := &blockingSource{}
	d := capture.NewDriver(cfg, driverTestRenderConfig(), src)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := d.Run(ctx)
	require.NoError(t, err)
}

// TestDriverRunStopsWhileIdleMidRead exercises cancellation observed while
// Run is already blocked inside an idle read, rather than caught by the
// top-of-loop check before any read happens: deadlineSource blocks until its
// deadline like a real connection would, so Run must come back around and
// notice ctx.Done() on the very next idle-read tick.
func TestDriverRunStopsWhileIdleMidRead(t *testing.T) {
	dir := t.TempDir()
	cfg := &capture.CaptureConfig{ImgFormat: render.FormatPNG, ImgFilename: filepath.Join(dir, "never.png")}

	src := &deadlineSource{}
	d := capture.NewDriver(cfg, driverTestRenderConfig(), src)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	time.Sleep(20 * time.Millisecond) // let Run enter its first idle read
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after context cancellation while idle")
	}
}

type blockingSource struct{}

func (blockingSource) Read(p []byte) (int, error) {
	select {}
}

func (blockingSource) SetReadDeadline(t time.Time) error { return nil }

func (blockingSource) Close() error { return nil }

// deadlineSource honors SetReadDeadline the way a real net.Conn or serial
// port would: Read blocks until the deadline elapses, then returns a timeout
// error, instead of blocking forever regardless of the deadline.
type deadlineSource struct {
	deadline time.Time
}

func (s *deadlineSource) SetReadDeadline(t time.Time) error {
	s.deadline = t
	return nil
}

func (s *deadlineSource) Read(p []byte) (int, error) {
	if s.deadline.IsZero() {
		select {}
	}
	wait := time.Until(s.deadline)
	if wait > 0 {
		time.Sleep(wait)
	}
	return 0, timeoutErr{}
}

func (s *deadlineSource) Close() error { return nil }
