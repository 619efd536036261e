// Package config loads the run configuration of the streamtri driver from
// defaults, a YAML file and STREAMTRI_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dd0wney/cluso-streamtri/pkg/edgesource"
	"github.com/dd0wney/cluso-streamtri/pkg/logging"
	"github.com/dd0wney/cluso-streamtri/pkg/triangles"
	"github.com/dd0wney/cluso-streamtri/pkg/validation"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "STREAMTRI_"

// Default configuration values
const (
	DefaultProgressEvery = 100_000
	DefaultLogLevel      = "info"
	MaxTrials            = 10_000
)

var logLevels = []string{"debug", "info", "warn", "warning", "error"}

// RunConfig is everything one invocation of the driver needs.
type RunConfig struct {
	Estimator     triangles.Config `yaml:"estimator"`
	Input         string           `yaml:"input" validate:"required,source_uri"`
	Query         string           `yaml:"query"`
	Exact         bool             `yaml:"exact"`
	Trials        int              `yaml:"trials" validate:"gte=0"`
	Workers       int              `yaml:"workers" validate:"gte=0"`
	ProgressEvery uint64           `yaml:"progress_every"`
	MetricsAddr   string           `yaml:"metrics_addr" validate:"omitempty,hostname_port"`
	MaxVertices   int              `yaml:"max_vertices" validate:"gte=0"`
	Dashboard     bool             `yaml:"dashboard"`
	LogLevel      string           `yaml:"log_level"`
	AWS           AWSConfig        `yaml:"aws"`
}

// AWSConfig overrides the default AWS credential chain for s3:// inputs.
type AWSConfig struct {
	Region          string `yaml:"region"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key" validate:"required_with=AccessKeyID"`
	Endpoint        string `yaml:"endpoint" validate:"omitempty,url"`
}

// Default returns the configuration used when nothing is overridden.
func Default() RunConfig {
	return RunConfig{
		Estimator:     triangles.DefaultConfig(),
		ProgressEvery: DefaultProgressEvery,
		LogLevel:      DefaultLogLevel,
	}
}

// Load reads a YAML file on top of Default. Unknown keys are an error.
func Load(path string) (RunConfig, error) {
	cfg := Default()

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks struct tags first, then cross-field rules.
func (c RunConfig) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}
	if err := c.Estimator.Validate(); err != nil {
		return err
	}
	return validation.NewConfigValidator("RunConfig").
		MaxInt("Trials", c.Trials, MaxTrials).
		OneOf("LogLevel", strings.ToLower(c.LogLevel), logLevels).
		When(c.Query != "", func(cv *validation.ConfigValidator) {
			cv.Custom("Query", func() error {
				if !isPostgres(c.Input) {
					return fmt.Errorf("only applies to postgres inputs, got %q", c.Input)
				}
				return nil
			})
		}).
		When(c.Dashboard, func(cv *validation.ConfigValidator) {
			cv.Custom("Dashboard", func() error {
				if c.Input == "-" {
					return errors.New("reads keys from stdin, which already carries the edge stream")
				}
				return nil
			})
		}).
		Validate()
}

// Level returns the parsed log level.
func (c RunConfig) Level() logging.Level {
	return logging.ParseLevel(c.LogLevel)
}

// SourceOptions returns the per-scheme settings for edgesource.Open.
func (c RunConfig) SourceOptions() edgesource.Options {
	return edgesource.Options{
		Query: c.Query,
		S3: edgesource.S3Options{
			Region:          c.AWS.Region,
			AccessKeyID:     c.AWS.AccessKeyID,
			SecretAccessKey: c.AWS.SecretAccessKey,
			Endpoint:        c.AWS.Endpoint,
		},
	}
}

func isPostgres(input string) bool {
	return strings.HasPrefix(input, "postgres://") || strings.HasPrefix(input, "postgresql://")
}
