package validation

import (
	"strings"
	"testing"
)

type sample struct {
	Capacity int    `validate:"gt=0"`
	Level    string `validate:"omitempty,oneof=debug info warn error"`
	Input    string `validate:"required,source_uri"`
	Addr     string `validate:"omitempty,hostname_port"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		value   sample
		wantErr string
	}{
		{"valid file", sample{Capacity: 1, Input: "edges.txt"}, ""},
		{"valid s3", sample{Capacity: 1, Input: "s3://bucket/key", Level: "debug"}, ""},
		{"valid metrics addr", sample{Capacity: 1, Input: "x", Addr: "localhost:9090"}, ""},
		{"zero capacity", sample{Input: "x"}, "must be greater than 0"},
		{"bad level", sample{Capacity: 1, Input: "x", Level: "loud"}, "must be one of"},
		{"missing input", sample{Capacity: 1}, "field is required"},
		{"bad scheme", sample{Capacity: 1, Input: "ftp://host/edges"}, "unsupported scheme"},
		{"bad addr", sample{Capacity: 1, Input: "x", Addr: "nope"}, "host:port"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.value)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ValidateStruct() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateStruct_Nil(t *testing.T) {
	if err := ValidateStruct(nil); err == nil {
		t.Error("Expected error for nil value")
	}
}

func TestValidateSourceURI(t *testing.T) {
	for _, ok := range []string{"data.txt", "/tmp/g.snappy", "postgres://u@h/db", "tcp://127.0.0.1:5555", "inproc://edges"} {
		if err := ValidateSourceURI(ok); err != nil {
			t.Errorf("ValidateSourceURI(%q) = %v", ok, err)
		}
	}
	for _, bad := range []string{"", "http://example.com/edges"} {
		if err := ValidateSourceURI(bad); err == nil {
			t.Errorf("ValidateSourceURI(%q) should fail", bad)
		}
	}
}
