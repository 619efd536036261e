package triangles

import (
	"math/rand/v2"

	"github.com/dd0wney/cluso-streamtri/pkg/logging"
)

// Option configures an Estimator.
type Option func(*options)

type options struct {
	rng      *rand.Rand
	logger   logging.Logger
	recorder Recorder
}

// WithRand supplies the generator used for every sampling decision. It takes
// precedence over Config.Seed. The estimator assumes exclusive use of rng.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) { o.rng = rng }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger logging.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithRecorder registers an observer called after every update.
func WithRecorder(r Recorder) Option {
	return func(o *options) { o.recorder = r }
}
