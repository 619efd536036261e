package edgesource

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Options carries per-scheme settings for Open.
type Options struct {
	S3    S3Options
	Query string
}

// Open picks a source by URI scheme: s3://, postgres:// or postgresql://,
// tcp:// ipc:// or inproc:// (nng pull), file:// or a bare path. "-" reads
// standard input.
func Open(ctx context.Context, uri string, opts Options) (Source, error) {
	if uri == "" {
		return nil, fmt.Errorf("open edge source: empty input")
	}
	if uri == "-" {
		return NewTextSource(os.Stdin), nil
	}

	scheme, _, found := strings.Cut(uri, "://")
	if !found {
		return OpenFile(uri)
	}

	switch strings.ToLower(scheme) {
	case "s3":
		bucket, key, err := ParseS3URL(uri)
		if err != nil {
			return nil, err
		}
		client, err := NewS3Client(ctx, opts.S3)
		if err != nil {
			return nil, err
		}
		return OpenS3(ctx, client, bucket, key)
	case "postgres", "postgresql":
		return ConnectPostgres(ctx, uri, opts.Query)
	case "tcp", "ipc", "inproc":
		return ListenPull(uri)
	case "file":
		return OpenFile(strings.TrimPrefix(uri, scheme+"://"))
	default:
		return nil, fmt.Errorf("open edge source: unsupported scheme %q", scheme)
	}
}
