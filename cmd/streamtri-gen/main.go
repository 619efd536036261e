package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"time"

	"github.com/dd0wney/cluso-streamtri/pkg/edgesource"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("streamtri-gen: %v", err)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("streamtri-gen", flag.ContinueOnError)
	kind := fs.String("graph", "er", "Graph family: er, complete, cycle, path, star, triangles")
	n := fs.Int("n", 1000, "Vertices (or triangles for -graph triangles)")
	p := fs.Float64("p", 0.01, "Edge probability for -graph er")
	seed := fs.Uint64("seed", 1, "Random seed for -graph er")
	out := fs.String("out", "-", "Output file (.snappy/.sz compressed) or - for stdout")
	push := fs.String("push", "", "Send edges to an nng pull socket instead of writing a file")
	batch := fs.Int("batch", 1000, "Edges per message with -push")
	linger := fs.Duration("linger", 250*time.Millisecond, "Time to let queued messages drain before closing the push socket")
	if err := fs.Parse(args); err != nil {
		return err
	}

	edges, err := generate(*kind, *n, *p, *seed)
	if err != nil {
		return err
	}

	if *push != "" {
		start := time.Now()
		if err := pushEdges(*push, edges, *batch, *linger); err != nil {
			return err
		}
		log.Printf("pushed %d edges to %s in %v", len(edges), *push, time.Since(start))
		return nil
	}

	if *out == "-" {
		return edgesource.WriteEdges(stdout, edges)
	}
	if edgesource.IsSnappy(*out) {
		return edgesource.WriteSnappyFile(*out, edges)
	}
	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	if err := edgesource.WriteEdges(f, edges); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func generate(kind string, n int, p float64, seed uint64) ([]edgesource.Edge, error) {
	switch kind {
	case "er":
		if p < 0 || p > 1 {
			return nil, fmt.Errorf("-p %g is outside [0, 1]", p)
		}
		return edgesource.ErdosRenyi(n, p, rand.New(rand.NewPCG(seed, seed^0x5bd1e995))), nil
	case "complete":
		return edgesource.Complete(n), nil
	case "cycle":
		return edgesource.Cycle(n), nil
	case "path":
		return edgesource.Path(n), nil
	case "star":
		return edgesource.Star(n), nil
	case "triangles":
		return edgesource.DisjointTriangles(n), nil
	default:
		return nil, fmt.Errorf("unknown graph family %q", kind)
	}
}

func pushEdges(addr string, edges []edgesource.Edge, batch int, linger time.Duration) error {
	if batch <= 0 {
		batch = 1
	}
	sink, err := edgesource.DialPush(addr)
	if err != nil {
		return err
	}
	defer sink.Close()

	for start := 0; start < len(edges); start += batch {
		end := min(start+batch, len(edges))
		if err := sink.Send(edges[start:end]); err != nil {
			return fmt.Errorf("send batch at edge %d: %w", start, err)
		}
	}
	if err := sink.Finish(); err != nil {
		return err
	}
	// mangos drops queued messages on close
	time.Sleep(linger)
	return nil
}
