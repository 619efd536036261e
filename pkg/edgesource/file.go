package edgesource

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/snappy"
	"golang.org/x/exp/mmap"
)

// IsSnappy reports whether name carries a snappy framing extension.
func IsSnappy(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".snappy", ".sz":
		return true
	}
	return false
}

// OpenFile opens a local edge list. Snappy-framed files (.snappy, .sz) are
// decompressed while streaming; plain files are memory-mapped.
func OpenFile(path string) (*TextSource, error) {
	if IsSnappy(path) {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open edge file: %w", err)
		}
		return newTextSource(snappy.NewReader(f), f), nil
	}

	ra, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("map edge file: %w", err)
	}
	return newTextSource(io.NewSectionReader(ra, 0, int64(ra.Len())), ra), nil
}

// WriteSnappyFile writes edges to path as a snappy-framed edge list.
func WriteSnappyFile(path string, edges []Edge) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := snappy.NewBufferedWriter(f)
	if err := WriteEdges(w, edges); err != nil {
		f.Close()
		return err
	}
	if err := w.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
