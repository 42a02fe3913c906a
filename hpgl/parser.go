// Package hpgl implements the resynchronizing HPGL stream parser: a small
// byte-oriented state machine that extracts complete commands from a
// possibly-chunked byte stream and forwards them to a render.Renderer.
package hpgl

import (
	"strings"

	"github.com/npillmayer/schuko/tracing"

	"github.com/shiplog/hpglcap/render"
)

func tracer() tracing.Trace {
	return tracing.Select("hpgl.parser")
}

// parserState is the resynchronizing extractor's state.
type parserState int

const (
	stateWaitCmd parserState = iota
	stateWaitSemicolon
	stateWaitTerm
	stateResync
)

const defaultTerminator = 0x03 // ETX

// CommandHook is invoked once per complete, extracted command (opcode plus
// arguments, including its terminator byte) before it is dispatched to the
// renderer. A capture.Driver uses it to detect plot framing (IN/DF).
type CommandHook func(cmd string)

// Parser is the resynchronizing HPGL command extractor and plot session
// owner. It is not safe for concurrent use.
type Parser struct {
	buffer strings.Builder
	pos    int // unread bytes start at buffer.String()[pos:]
	state  parserState
	term   byte

	hook CommandHook

	canvas  *render.Renderer
	active  bool
	dump    strings.Builder
	dumping bool
}

// NewParser creates a Parser. hook may be nil.
func NewParser(hook CommandHook) *Parser {
	return &Parser{term: defaultTerminator, hook: hook}
}

// Feed appends a chunk of incoming bytes (stripping any NUL bytes, which
// some plotter firmwares pad frames with) and drives extraction to
// exhaustion.
func (p *Parser) Feed(b []byte) {
	for _, c := range b {
		if c == 0x00 {
			continue
		}
		p.buffer.WriteByte(c)
	}
	p.extractCmd()
}

// pending returns the unread tail of the buffer. consume compacts the
// builder once the read cursor has drifted past half its length.
func (p *Parser) pending() string {
	s := p.buffer.String()
	return s[p.pos:]
}

func (p *Parser) consume(n int) {
	p.pos += n
	if p.pos > 0 && p.pos*2 >= p.buffer.Len() {
		rest := p.buffer.String()[p.pos:]
		p.buffer.Reset()
		p.buffer.WriteString(rest)
		p.pos = 0
	}
}

func (p *Parser) extractCmd() {
	for {
		switch p.state {
		case stateWaitCmd:
			buf := p.pending()
			if len(buf) < 2 {
				return
			}
			op := strings.ToUpper(buf[:2])
			if !isOpcode(op) {
				tracer().Errorf("invalid command opcode %q", op)
				p.state = stateResync
				continue
			}
			if op == "LB" || op == "BL" {
				p.state = stateWaitTerm
			} else {
				p.state = stateWaitSemicolon
			}

		case stateResync:
			buf := p.pending()
			idx := strings.IndexByte(buf, ';')
			if idx < 0 {
				p.consume(len(buf))
				return
			}
			p.consume(idx + 1)
			p.state = stateWaitCmd

		case stateWaitSemicolon, stateWaitTerm:
			term := byte(';')
			if p.state == stateWaitTerm {
				term = p.term
			}
			buf := p.pending()
			idx := strings.IndexByte(buf, term)
			if idx < 0 {
				return
			}
			cmd := buf[:idx+1]
			p.consume(idx + 1)
			p.state = stateWaitCmd
			p.handleCommand(cmd)

		default:
			panic("hpgl: invalid parser state")
		}
	}
}

func isOpcode(op string) bool {
	if len(op) != 2 {
		return false
	}
	for _, c := range op {
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}

// handleCommand dispatches one complete command (including its terminator)
// to the command hook, the dump sink, and the render canvas, then performs
// parser-level opcode handling (terminator changes on IN/DT).
func (p *Parser) handleCommand(cmd string) {
	tracer().Debugf("cmd %q", cmd)
	opcode := strings.ToUpper(cmd[:2])
	args := cmd[2 : len(cmd)-1]

	if p.hook != nil {
		p.hook(cmd)
	}
	if p.dumping {
		p.dump.WriteString(cmd)
	}
	if p.canvas != nil {
		if err := p.canvas.ProcessCommand(opcode, splitArgs(opcode, args)); err != nil {
			tracer().Errorf("command %q failed: %s", cmd, err)
		}
	}

	switch opcode {
	case "IN":
		p.term = defaultTerminator
	case "DT":
		switch len(args) {
		case 0:
			p.term = defaultTerminator
		case 1:
			p.term = args[0]
		default:
			tracer().Errorf("bad DT command %q", cmd)
		}
	}
}

// splitArgs splits a raw argument substring the way each opcode expects:
// LB's argument is the literal, unsplit label text, everything else is
// comma-separated.
func splitArgs(opcode, args string) []string {
	if opcode == "LB" {
		return []string{args}
	}
	if args == "" {
		return nil
	}
	parts := strings.Split(args, ",")
	for i, a := range parts {
		parts[i] = strings.TrimSpace(a)
	}
	return parts
}

// StartPlot creates a fresh render canvas and dump sink if the parser is not
// already mid-plot; re-entrant calls while active are no-ops.
func (p *Parser) StartPlot(cfg *render.Config) {
	if p.active {
		return
	}
	tracer().Infof("starting plot")
	p.active = true
	p.canvas = render.NewRenderer(cfg)
	p.dump.Reset()
	p.dumping = true
}

// FinishPlot flushes the dump (if dumpFile is non-empty) and saves the
// recorded plot to imgFile, then clears the plot session. It is a no-op if
// no plot is active.
func (p *Parser) FinishPlot(imgFile string, format render.ImageFormat, dumpFile string) error {
	if !p.active {
		return nil
	}
	tracer().Infof("finishing plot")
	p.active = false
	p.dumping = false

	var dumpErr error
	if dumpFile != "" {
		dumpErr = writeDump(dumpFile, p.dump.String())
	}
	var saveErr error
	if imgFile != "" {
		saveErr = p.canvas.Save(imgFile, format)
	}
	p.canvas = nil
	p.dump.Reset()

	if saveErr != nil {
		return saveErr
	}
	return dumpErr
}

// Active reports whether a plot session is currently open.
func (p *Parser) Active() bool {
	return p.active
}
