package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

// ApplyEnv overrides fields from STREAMTRI_* environment variables. Empty
// variables are ignored; malformed numbers are reported together.
func (c *RunConfig) ApplyEnv() error {
	var errs []error

	setString(&c.Input, "INPUT")
	setString(&c.Query, "QUERY")
	setString(&c.MetricsAddr, "METRICS_ADDR")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.AWS.Region, "AWS_REGION")
	setString(&c.AWS.AccessKeyID, "AWS_ACCESS_KEY_ID")
	setString(&c.AWS.SecretAccessKey, "AWS_SECRET_ACCESS_KEY")
	setString(&c.AWS.Endpoint, "S3_ENDPOINT")

	errs = append(errs,
		setInt(&c.Estimator.EdgeCapacity, "EDGE_CAPACITY"),
		setInt(&c.Estimator.WedgeCapacity, "WEDGE_CAPACITY"),
		setUint(&c.Estimator.Seed, "SEED"),
		setInt(&c.Trials, "TRIALS"),
		setInt(&c.Workers, "WORKERS"),
		setUint(&c.ProgressEvery, "PROGRESS_EVERY"),
		setInt(&c.MaxVertices, "MAX_VERTICES"),
		setBool(&c.Exact, "EXACT"),
		setBool(&c.Dashboard, "DASHBOARD"),
	)
	return errors.Join(errs...)
}

func lookup(key string) (string, bool) {
	v := os.Getenv(EnvPrefix + key)
	return v, v != ""
}

func setString(dst *string, key string) {
	if v, ok := lookup(key); ok {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
	}
	*dst = n
	return nil
}

func setUint(dst *uint64, key string) error {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
	}
	*dst = n
	return nil
}

func setBool(dst *bool, key string) error {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
	}
	*dst = b
	return nil
}
