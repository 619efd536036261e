package triangles

import (
	"fmt"

	"github.com/dd0wney/cluso-streamtri/pkg/validation"
)

// Default reservoir capacities.
const (
	DefaultEdgeCapacity  = 1000
	DefaultWedgeCapacity = 1000
)

// Config holds the construction parameters of an Estimator. Capacities are
// fixed for the life of the estimator.
type Config struct {
	EdgeCapacity  int    `yaml:"edge_capacity" validate:"gt=0"`
	WedgeCapacity int    `yaml:"wedge_capacity" validate:"gt=0"`
	Seed          uint64 `yaml:"seed"`
}

// DefaultConfig returns a config with the default capacities and seed 0.
func DefaultConfig() Config {
	return Config{
		EdgeCapacity:  DefaultEdgeCapacity,
		WedgeCapacity: DefaultWedgeCapacity,
	}
}

// Validate rejects non-positive capacities.
func (c Config) Validate() error {
	err := validation.NewConfigValidator("triangles.Config").
		Positive("EdgeCapacity", c.EdgeCapacity).
		Positive("WedgeCapacity", c.WedgeCapacity).
		Validate()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCapacity, err)
	}
	return nil
}
