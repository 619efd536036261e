package edgesource

import (
	"context"
	"fmt"
	"io"

	"github.com/jackc/pgx/v5"
)

// DefaultQuery selects an edge list from a two-column table.
const DefaultQuery = "SELECT src, dst FROM edges"

// Querier is satisfied by *pgx.Conn and *pgxpool.Pool.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// RowSource yields one edge per result row of a (bigint, bigint) query.
type RowSource struct {
	rows    pgx.Rows
	release func(context.Context) error
}

// OpenPostgres runs query against q and streams its rows.
func OpenPostgres(ctx context.Context, q Querier, query string) (*RowSource, error) {
	if query == "" {
		query = DefaultQuery
	}
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query edges: %w", err)
	}
	return &RowSource{rows: rows}, nil
}

// ConnectPostgres dials connString and streams query. Closing the source
// also closes the connection.
func ConnectPostgres(ctx context.Context, connString, query string) (*RowSource, error) {
	conn, err := pgx.Connect(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	src, err := OpenPostgres(ctx, conn, query)
	if err != nil {
		conn.Close(ctx)
		return nil, err
	}
	src.release = conn.Close
	return src, nil
}

func (s *RowSource) Next(ctx context.Context) (Edge, error) {
	if err := ctx.Err(); err != nil {
		return Edge{}, err
	}
	if !s.rows.Next() {
		if err := s.rows.Err(); err != nil {
			return Edge{}, fmt.Errorf("read edge rows: %w", err)
		}
		return Edge{}, io.EOF
	}

	var u, v int64
	if err := s.rows.Scan(&u, &v); err != nil {
		return Edge{}, fmt.Errorf("scan edge row: %w", err)
	}
	if u < 0 || v < 0 {
		return Edge{}, fmt.Errorf("edge row (%d, %d): %w", u, v, ErrNegativeVertex)
	}
	return Edge{U: uint64(u), V: uint64(v)}, nil
}

func (s *RowSource) Close() error {
	s.rows.Close()
	if s.release != nil {
		return s.release(context.Background())
	}
	return nil
}
