// Package edgesource turns edge lists from files, object storage, databases
// and sockets into a stream of edges for the estimator.
package edgesource

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dd0wney/cluso-streamtri/pkg/triangles"
)

// Edge is the vertex pair type every source yields.
type Edge = triangles.Edge[uint64]

// Source yields edges in arrival order. Next returns io.EOF once the stream
// is exhausted. Sources are not safe for concurrent use.
type Source interface {
	Next(ctx context.Context) (Edge, error)
	Close() error
}

// SkipCounter is implemented by sources that drop malformed lines.
type SkipCounter interface {
	Skipped() int
}

// ErrNegativeVertex is returned when a row holds a vertex ID below zero.
var ErrNegativeVertex = errors.New("vertex id is negative")

// ParseError reports a line that has two fields but is not a vertex pair.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Collect drains src into a slice. It does not close src.
func Collect(ctx context.Context, src Source) ([]Edge, error) {
	var edges []Edge
	for {
		e, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			return edges, nil
		}
		if err != nil {
			return edges, err
		}
		edges = append(edges, e)
	}
}
