package capture

import (
	"errors"
	"io"
	"time"
)

// ByteSource is the minimal shape an AdaptiveReader needs from a serial
// connection: a reader plus an optional read deadline, mirroring the part of
// net.Conn this package actually uses so a real serial driver slots in
// without changing this file. Close lets the caller release the underlying
// connection deterministically on every exit path, including a panic.
type ByteSource interface {
	io.Reader
	io.Closer
	SetReadDeadline(t time.Time) error
}

const (
	blockReadTimeout = 100 * time.Millisecond
	idleReadTimeout  = 250 * time.Millisecond
	blockReadSize    = 64
)

// AdaptiveReader implements a two-mode read strategy: a short-timeout
// single-byte read while idle, switching to short-timeout block-sized reads
// once bytes are flowing, and falling back to idle mode the moment a block
// read times out short.
type AdaptiveReader struct {
	src              ByteSource
	supportsDeadline bool
	loggedNoDeadline bool
	blockMode        bool
}

// NewAdaptiveReader wraps src. If src's SetReadDeadline always errors (no
// deadline support), the reader degrades to always-indefinite single-byte
// reads; a caller driving this mode cannot observe cancellation between
// reads and should close src to unblock a pending Read.
func NewAdaptiveReader(src ByteSource) *AdaptiveReader {
	return &AdaptiveReader{src: src, supportsDeadline: true}
}

// ReadNext reads into buf and returns how many bytes were read. While idle
// and deadline support is available it may return (0, nil) on a read
// timeout — the caller should treat that as "no data yet", check for its
// own cancellation, and call ReadNext again.
func (r *AdaptiveReader) ReadNext(buf []byte) (int, error) {
	if !r.supportsDeadline {
		return r.readIndefinite(buf)
	}
	if r.blockMode {
		n, err := r.readBlock(buf)
		if err != nil {
			if isTimeout(err) {
				r.blockMode = false
				if n > 0 {
					return n, nil
				}
				return r.readIdle(buf)
			}
			return n, err
		}
		if n == 0 {
			r.blockMode = false
			return r.readIdle(buf)
		}
		return n, nil
	}
	n, err := r.readIdle(buf)
	if err != nil || n == 0 {
		return n, err
	}
	r.blockMode = true
	return n, nil
}

// readIdle waits for a single byte with a bounded deadline, so a caller
// looping on ReadNext can re-check its own cancellation condition between
// calls instead of blocking forever on an idle connection.
func (r *AdaptiveReader) readIdle(buf []byte) (int, error) {
	if err := r.src.SetReadDeadline(time.Now().Add(idleReadTimeout)); err != nil {
		r.degradeToIndefinite()
		return r.readIndefinite(buf)
	}
	if len(buf) == 0 {
		return 0, nil
	}
	n, err := r.src.Read(buf[:1])
	if err != nil && isTimeout(err) {
		return 0, nil
	}
	return n, err
}

// readIndefinite blocks for a single byte with no deadline, for byte
// sources that do not support SetReadDeadline.
func (r *AdaptiveReader) readIndefinite(buf []byte) (int, error) {
	_ = r.src.SetReadDeadline(time.Time{})
	if len(buf) == 0 {
		return 0, nil
	}
	return r.src.Read(buf[:1])
}

func (r *AdaptiveReader) degradeToIndefinite() {
	if !r.supportsDeadline {
		return
	}
	r.supportsDeadline = false
	if !r.loggedNoDeadline {
		tracer().Debugf("byte source does not support read deadlines, degrading to indefinite single-byte reads")
		r.loggedNoDeadline = true
	}
}

func (r *AdaptiveReader) readBlock(buf []byte) (int, error) {
	_ = r.src.SetReadDeadline(time.Now().Add(blockReadTimeout))
	n := len(buf)
	if n > blockReadSize {
		n = blockReadSize
	}
	return r.src.Read(buf[:n])
}

func isTimeout(err error) bool {
	var te interface{ Timeout() bool }
	if errors.As(err, &te) {
		return te.Timeout()
	}
	return false
}
