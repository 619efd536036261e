package logging

import "time"

func String(key, value string) Field          { return Field{Key: key, Value: value} }
func Int(key string, value int) Field         { return Field{Key: key, Value: value} }
func Uint64(key string, value uint64) Field   { return Field{Key: key, Value: value} }
func Float64(key string, value float64) Field { return Field{Key: key, Value: value} }
func Bool(key string, value bool) Field       { return Field{Key: key, Value: value} }
func Any(key string, value any) Field         { return Field{Key: key, Value: value} }

// Duration renders d with time.Duration.String.
func Duration(key string, d time.Duration) Field {
	return Field{Key: key, Value: d.String()}
}

// Error stores err's message under "error"; a nil error is stored as null.
func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Component(name string) Field   { return String("component", name) }
func Latency(d time.Duration) Field { return Duration("latency", d) }
func RunID(id string) Field         { return String("run_id", id) }
func Source(uri string) Field       { return String("source", uri) }
func Edges(n uint64) Field          { return Uint64("edges", n) }
func Wedges(n uint64) Field         { return Uint64("wedges", n) }
func Transitivity(v float64) Field  { return Float64("transitivity", v) }
func Triangles(v float64) Field     { return Float64("triangles", v) }

// Capacity names a reservoir capacity, e.g. Capacity("edge", 1000) is
// stored as "edge_capacity".
func Capacity(kind string, n int) Field {
	return Int(kind+"_capacity", n)
}
