package renderer

import "fmt"

// Config contains the execution settings of a render
type Config struct {
	TileSize       int   // Size of each square tile in pixels
	NumWorkers     int   // Number of parallel workers (0 = use CPU count)
	Seed           int64 // Base seed for the per-tile random generators
	InitialSamples int   // Samples for the first pass when rendering in several passes
	MaxPasses      int   // Number of progressive passes; 1 renders all samples at once
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		TileSize:       32,
		NumWorkers:     0,
		Seed:           42,
		InitialSamples: 1,
		MaxPasses:      1,
	}
}

// Validate rejects settings the renderer cannot run with
func (c Config) Validate() error {
	if c.TileSize <= 0 {
		return fmt.Errorf("tile size must be positive, got %d", c.TileSize)
	}
	if c.NumWorkers < 0 {
		return fmt.Errorf("worker count must not be negative, got %d", c.NumWorkers)
	}
	if c.MaxPasses <= 0 {
		return fmt.Errorf("pass count must be positive, got %d", c.MaxPasses)
	}
	if c.MaxPasses > 1 && c.InitialSamples <= 0 {
		return fmt.Errorf("initial samples must be positive, got %d", c.InitialSamples)
	}
	return nil
}

// samplesForPass returns the target total samples per pixel after the given pass (1-based)
func (c Config) samplesForPass(passNumber, maxSamples int) int {
	if c.MaxPasses == 1 || passNumber >= c.MaxPasses {
		return maxSamples
	}

	// First pass is a quick preview
	initial := min(c.InitialSamples, maxSamples)
	if passNumber == 1 {
		return initial
	}

	// Divide remaining samples evenly across remaining passes
	samplesPerPass := (maxSamples - initial) / (c.MaxPasses - 1)
	return initial + (passNumber-1)*samplesPerPass
}
