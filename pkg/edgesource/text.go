package edgesource

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const maxLineBytes = 1 << 20

// TextSource reads whitespace-separated "u v" lines. Lines starting with '#'
// or '%' and blank lines are ignored. Lines with any other number of fields,
// and pairs holding a negative vertex ID, are skipped and counted.
type TextSource struct {
	scanner *bufio.Scanner
	closer  io.Closer
	line    int
	skipped int
}

// NewTextSource reads edges from r. Close is a no-op unless r is owned by a
// constructor in this package.
func NewTextSource(r io.Reader) *TextSource {
	return newTextSource(r, nil)
}

func newTextSource(r io.Reader, closer io.Closer) *TextSource {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return &TextSource{scanner: scanner, closer: closer}
}

func (s *TextSource) Next(ctx context.Context) (Edge, error) {
	for s.scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return Edge{}, err
		}
		s.line++
		e, ok, err := parseLine(s.scanner.Text(), s.line)
		if err != nil {
			return Edge{}, err
		}
		if ok {
			return e, nil
		}
		if !isIgnorable(s.scanner.Text()) {
			s.skipped++
		}
	}
	if err := s.scanner.Err(); err != nil {
		return Edge{}, fmt.Errorf("read edge list at line %d: %w", s.line+1, err)
	}
	return Edge{}, io.EOF
}

// Skipped returns the number of lines dropped for their arity or a negative
// vertex ID.
func (s *TextSource) Skipped() int { return s.skipped }

// Lines returns the number of lines consumed.
func (s *TextSource) Lines() int { return s.line }

func (s *TextSource) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

func isIgnorable(line string) bool {
	line = strings.TrimSpace(line)
	return line == "" || line[0] == '#' || line[0] == '%'
}

// parseLine returns ok=false for lines that carry no edge.
func parseLine(line string, lineNo int) (Edge, bool, error) {
	if isIgnorable(line) {
		return Edge{}, false, nil
	}
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return Edge{}, false, nil
	}
	u, uNeg, err := parseVertex(fields[0])
	if err != nil {
		return Edge{}, false, &ParseError{Line: lineNo, Text: line, Err: err}
	}
	v, vNeg, err := parseVertex(fields[1])
	if err != nil {
		return Edge{}, false, &ParseError{Line: lineNo, Text: line, Err: err}
	}
	if uNeg || vNeg {
		return Edge{}, false, nil
	}
	return Edge{U: u, V: v}, true, nil
}

// parseVertex accepts any decimal integer. Negative IDs are reported rather
// than rejected so the caller can skip the line.
func parseVertex(field string) (id uint64, negative bool, err error) {
	if strings.HasPrefix(field, "-") {
		if _, err := strconv.ParseInt(field, 10, 64); err != nil {
			return 0, false, err
		}
		return 0, true, nil
	}
	id, err = strconv.ParseUint(field, 10, 64)
	return id, false, err
}

// WriteEdges writes edges in the format TextSource reads.
func WriteEdges(w io.Writer, edges []Edge) error {
	bw := bufio.NewWriter(w)
	for _, e := range edges {
		if _, err := fmt.Fprintf(bw, "%d %d\n", e.U, e.V); err != nil {
			return err
		}
	}
	return bw.Flush()
}
