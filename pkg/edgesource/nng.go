package edgesource

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.nanomsg.org/mangos/v3"
	"go.nanomsg.org/mangos/v3/protocol/pull"
	"go.nanomsg.org/mangos/v3/protocol/push"

	// Register all transports
	_ "go.nanomsg.org/mangos/v3/transport/all"
)

const recvPoll = 200 * time.Millisecond

// PullSource receives edge lines over an nng pull socket. Each message holds
// one or more text lines; an empty message ends the stream.
type PullSource struct {
	sock    mangos.Socket
	pending *TextSource
	skipped int
	done    bool
}

// ListenPull binds a pull socket at addr (tcp://, ipc:// or inproc://).
func ListenPull(addr string) (*PullSource, error) {
	sock, err := pull.NewSocket()
	if err != nil {
		return nil, fmt.Errorf("create pull socket: %w", err)
	}
	if err := sock.SetOption(mangos.OptionRecvDeadline, recvPoll); err != nil {
		sock.Close()
		return nil, fmt.Errorf("set recv deadline: %w", err)
	}
	if err := sock.Listen(addr); err != nil {
		sock.Close()
		return nil, fmt.Errorf("listen %s: %w", addr, err)
	}
	return &PullSource{sock: sock}, nil
}

func (s *PullSource) Next(ctx context.Context) (Edge, error) {
	for {
		if s.pending != nil {
			e, err := s.pending.Next(ctx)
			if err == nil {
				return e, nil
			}
			s.skipped += s.pending.Skipped()
			s.pending = nil
			if !errors.Is(err, io.EOF) {
				return Edge{}, err
			}
		}
		if s.done {
			return Edge{}, io.EOF
		}
		if err := ctx.Err(); err != nil {
			return Edge{}, err
		}

		msg, err := s.sock.Recv()
		if errors.Is(err, mangos.ErrRecvTimeout) {
			continue
		}
		if err != nil {
			return Edge{}, fmt.Errorf("receive edges: %w", err)
		}
		if len(msg) == 0 {
			s.done = true
			continue
		}
		s.pending = NewTextSource(bytes.NewReader(msg))
	}
}

// Skipped counts malformed lines across all received messages.
func (s *PullSource) Skipped() int {
	if s.pending != nil {
		return s.skipped + s.pending.Skipped()
	}
	return s.skipped
}

func (s *PullSource) Close() error {
	return s.sock.Close()
}

// PushSink is the producer side of a PullSource.
type PushSink struct {
	sock mangos.Socket
}

// DialPush connects a push socket to addr.
func DialPush(addr string) (*PushSink, error) {
	sock, err := push.NewSocket()
	if err != nil {
		return nil, fmt.Errorf("create push socket: %w", err)
	}
	if err := sock.Dial(addr); err != nil {
		sock.Close()
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	return &PushSink{sock: sock}, nil
}

// Send ships a batch of edges as one message.
func (p *PushSink) Send(edges []Edge) error {
	if len(edges) == 0 {
		return nil
	}
	var buf bytes.Buffer
	if err := WriteEdges(&buf, edges); err != nil {
		return err
	}
	return p.sock.Send(buf.Bytes())
}

// Finish tells the receiver the stream is over.
func (p *PushSink) Finish() error {
	return p.sock.Send([]byte{})
}

func (p *PushSink) Close() error {
	return p.sock.Close()
}
