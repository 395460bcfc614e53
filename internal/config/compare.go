package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
)

const (
	EnvCompareWorkers              = "FORMATDIFF_COMPARE_WORKERS"
	EnvCompareConcurrencyThreshold = "FORMATDIFF_COMPARE_CONCURRENCY_THRESHOLD"
)

// CompareConfig tunes document comparison. Documents whose longer side has
// more paragraphs than ConcurrencyThreshold are compared across Workers
// goroutines.
type CompareConfig struct {
	Workers              int `toml:"workers"`
	ConcurrencyThreshold int `toml:"concurrency_threshold"`
}

// Concurrent reports whether an alignment of the given length should be
// compared concurrently.
func (c *CompareConfig) Concurrent(positions int) bool {
	return c.Workers > 1 && positions > c.ConcurrencyThreshold
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *CompareConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *CompareConfig) Merge(overlay *CompareConfig) {
	if overlay.Workers != 0 {
		c.Workers = overlay.Workers
	}
	if overlay.ConcurrencyThreshold != 0 {
		c.ConcurrencyThreshold = overlay.ConcurrencyThreshold
	}
}

func (c *CompareConfig) loadDefaults() {
	if c.Workers == 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.ConcurrencyThreshold == 0 {
		c.ConcurrencyThreshold = 2000
	}
}

func (c *CompareConfig) loadEnv() {
	if v := os.Getenv(EnvCompareWorkers); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Workers = n
		}
	}
	if v := os.Getenv(EnvCompareConcurrencyThreshold); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.ConcurrencyThreshold = n
		}
	}
}

func (c *CompareConfig) validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("invalid workers: %d", c.Workers)
	}
	if c.ConcurrencyThreshold < 0 {
		return fmt.Errorf("invalid concurrency_threshold: %d", c.ConcurrencyThreshold)
	}
	return nil
}
