package jsonrpcfx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"go.lsp.dev/jsonrpc2"
	"go.uber.org/multierr"
)

const _traceTimeFormat = "15:04:05.000"

// StdioPipe joins a child process's stdout and stdin into a single stream.
type StdioPipe struct {
	io.ReadCloser
	io.WriteCloser
}

// Close closes both directions of the pipe.
func (p StdioPipe) Close() error {
	return multierr.Append(p.WriteCloser.Close(), p.ReadCloser.Close())
}

// NewStreamConn wraps rwc in an LSP framed connection. When trace is non-nil every message
// in both directions is written to it.
func NewStreamConn(rwc io.ReadWriteCloser, trace io.Writer) jsonrpc2.Conn {
	stream := jsonrpc2.NewStream(rwc)
	if trace != nil {
		stream = NewTraceStream(stream, trace)
	}
	return jsonrpc2.NewConn(stream)
}

// pendingKey identifies an outstanding call. Both peers number their own calls, so the
// direction is part of the key.
type pendingKey struct {
	received bool
	id       string
}

type pendingCall struct {
	method string
	start  time.Time
}

type traceStream struct {
	jsonrpc2.Stream

	out io.Writer
	now func() time.Time

	mu      sync.Mutex
	pending map[pendingKey]pendingCall
}

// NewTraceStream returns a Stream that writes a readable record of every message written to
// stream, and of every message successfully read from it, to out. Failed writes to out are
// ignored.
func NewTraceStream(stream jsonrpc2.Stream, out io.Writer) jsonrpc2.Stream {
	return &traceStream{
		Stream:  stream,
		out:     out,
		now:     time.Now,
		pending: make(map[pendingKey]pendingCall),
	}
}

func (s *traceStream) Read(ctx context.Context) (jsonrpc2.Message, int64, error) {
	msg, n, err := s.Stream.Read(ctx)
	if err == nil {
		s.trace(msg, true)
	}
	return msg, n, err
}

func (s *traceStream) Write(ctx context.Context, msg jsonrpc2.Message) (int64, error) {
	// A call must be pending before its response can be read.
	s.trace(msg, false)
	return s.Stream.Write(ctx, msg)
}

func (s *traceStream) trace(msg jsonrpc2.Message, received bool) {
	if msg == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	direction := "Sending"
	if received {
		direction = "Received"
	}
	now := s.now()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "[Trace - %s] ", now.Format(_traceTimeFormat))

	switch m := msg.(type) {
	case *jsonrpc2.Call:
		id := fmt.Sprint(m.ID())
		s.pending[pendingKey{received: received, id: id}] = pendingCall{method: m.Method(), start: now}
		fmt.Fprintf(&buf, "%s request '%s - (%s)'.\nParams: %s\n\n", direction, m.Method(), id, m.Params())

	case *jsonrpc2.Notification:
		fmt.Fprintf(&buf, "%s notification '%s'.\nParams: %s\n\n", direction, m.Method(), m.Params())

	case *jsonrpc2.Response:
		id := fmt.Sprint(m.ID())
		// A received response answers a call that was sent, and the other way around.
		key := pendingKey{received: !received, id: id}
		call, ok := s.pending[key]
		delete(s.pending, key)

		fmt.Fprintf(&buf, "%s response", direction)
		if ok {
			fmt.Fprintf(&buf, " '%s - (%s)' in %dms", call.method, id, now.Sub(call.start).Milliseconds())
		} else {
			fmt.Fprintf(&buf, " '(%s)'", id)
		}
		if err := m.Err(); err != nil {
			fmt.Fprintf(&buf, ".\nError: %v\n\n", err)
		} else {
			fmt.Fprintf(&buf, ".\nResult: %s\n\n", m.Result())
		}

	default:
		fmt.Fprintf(&buf, "%s message %T.\n\n", direction, msg)
	}

	_, _ = s.out.Write(buf.Bytes())
}
