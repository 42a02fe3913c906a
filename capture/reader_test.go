package capture_test

import (
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shiplog/hpglcap/capture"
)

type timeoutErr struct{}

func (timeoutErr) Error() string { return "i/o timeout" }
func (timeoutErr) Timeout() bool { return true }

type readResult struct {
	data []byte
	err  error
}

// fakeSource replays a scripted sequence of Read results and optionally
// rejects SetReadDeadline to simulate a source with no deadline support.
type fakeSource struct {
	results       []readResult
	pos           int
	rejectDeadline bool
	deadlines     []time.Time
}

func (f *fakeSource) Read(p []byte) (int, error) {
	if f.pos >= len(f.results) {
		return 0, io.EOF
	}
	r := f.results[f.pos]
	f.pos++
	n := copy(p, r.data)
	return n, r.err
}

func (f *fakeSource) Close() error { return nil }

func (f *fakeSource) SetReadDeadline(t time.Time) error {
	f.deadlines = append(f.deadlines, t)
	if f.rejectDeadline {
		return errUnsupportedDeadline{}
	}
	return nil
}

type errUnsupportedDeadline struct{}

func (errUnsupportedDeadline) Error() string { return "deadlines not supported" }

func TestAdaptiveReaderStartsIdleThenSwitchesToBlockMode(t *testing.T) {
	src := &fakeSource{results: []readResult{
		{data: []byte("A")},
		{data: []byte("BCDE")},
	}}
	r := capture.NewAdaptiveReader(src)

	buf := make([]byte, 64)
	n, err := r.ReadNext(buf)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, "A", string(buf[:n]))

	n, err = r.ReadNext(buf)
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.Equal(t, "BCDE", string(buf[:n]))
}

func TestAdaptiveReaderFallsBackToIdleOnBlockTimeout(t *testing.T) {
	src := &fakeSource{results: []readResult{
		{data: []byte("A")},         // idle single-byte read, enters block mode
		{data: nil, err: timeoutErr{}}, // block read times out with nothing
		{data: []byte("Z")},         // falls back to an idle read
	}}
	r := capture.NewAdaptiveReader(src)

	buf := make([]byte, 64)
	n, err := r.ReadNext(buf)
	require.NoError(t, err)
	require.Equal(t, "A", string(buf[:n]))

	n, err = r.ReadNext(buf)
	require.NoError(t, err)
	require.Equal(t, "Z", string(buf[:n]))
}

func TestAdaptiveReaderDegradesWhenDeadlinesUnsupported(t *testing.T) {
	src := &fakeSource{
		rejectDeadline: true,
		results: []readResult{
			{data: []byte("A")},
			{data: []byte("B")},
			{data: []byte("C")},
		},
	}
	r := capture.NewAdaptiveReader(src)

	buf := make([]byte, 64)
	for _, want := range []string{"A", "B", "C"} {
		n, err := r.ReadNext(buf)
		require.NoError(t, err)
		require.Equal(t, want, string(buf[:n]))
	}
}
