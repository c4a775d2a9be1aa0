package types

import "errors"

// DefaultCapacity is the bounded inventory size used when none is configured.
const DefaultCapacity = 100

// Config holds the session parameters read from config.yaml, the
// environment and command-line flags.
type Config struct {
	Backend     string `json:"backend" yaml:"backend"`
	Capacity    int    `json:"capacity" yaml:"capacity"`
	DataDir     string `json:"data_dir" yaml:"data_dir,omitempty"`
	Journal     bool   `json:"journal" yaml:"journal"`
	MetricsFile string `json:"metrics_file" yaml:"metrics_file,omitempty"`
	SeedFile    string `json:"seed_file" yaml:"seed_file,omitempty"`
}

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	KindBounded: true,
	KindLinked:  true,
}

// Validate checks that the Config is well-formed. Capacity is only checked
// for the bounded backend.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.Backend == KindBounded && c.Capacity <= 0 {
		return ErrCapacityInvalid
	}
	return nil
}
