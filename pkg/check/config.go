package check

import (
	"fmt"
	"runtime"

	"github.com/wildfunctions/exprequiv/pkg/numeric"
	"github.com/wildfunctions/exprequiv/pkg/pool"
)

// Config holds all parameters for a check or fuzz run.
type Config struct {
	Workers  int     `json:"workers"`
	Epsilon  float64 `json:"epsilon"`
	MaxDepth int     `json:"max_depth"`
	Samples  int     `json:"samples"`
	Seed     int64   `json:"seed"`
	Pool     string  `json:"pool"`
	Format   string  `json:"format"` // "text", "json" or "latex"
	Verbose  bool    `json:"verbose"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Workers:  runtime.NumCPU(),
		Epsilon:  numeric.DefaultEpsilon,
		MaxDepth: 4,
		Samples:  500,
		Seed:     0, // 0 = random
		Pool:     "digits",
		Format:   "text",
		Verbose:  false,
	}
}

var formats = map[string]bool{"text": true, "json": true, "latex": true}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case c.Workers < 1:
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	case c.Epsilon < 0:
		return fmt.Errorf("epsilon must not be negative, got %g", c.Epsilon)
	case c.MaxDepth < 1:
		return fmt.Errorf("max depth must be at least 1, got %d", c.MaxDepth)
	case c.Samples < 0:
		return fmt.Errorf("samples must not be negative, got %d", c.Samples)
	case !formats[c.Format]:
		return fmt.Errorf("unknown format %q (text, json, latex)", c.Format)
	}
	if _, err := pool.Get(c.Pool); err != nil {
		return err
	}
	return nil
}
