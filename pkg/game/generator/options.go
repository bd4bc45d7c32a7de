package generator

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Default generation parameters for the localization exercise field
const (
	DefaultMapSize           = 8
	DefaultMinRacks          = 5
	DefaultMaxRacks          = 7
	DefaultMinComponents     = 3
	DefaultMinWalls          = 35
	DefaultMaxWalls          = 45
	DefaultStartPoints       = 30
	DefaultCyclicProbability = 0.3
	DefaultMaxAttempts       = 20000
	DefaultRetries           = 200
)

// Options configures field generation behavior.
type Options struct {
	MapSize           int     `yaml:"map_size"`           // Cells per side
	MinRacks          int     `yaml:"min_racks"`          // Lower bound for the rack count
	MaxRacks          int     `yaml:"max_racks"`          // Upper bound for the rack count
	MinComponents     int     `yaml:"min_components"`     // Lower bound for the component target; the upper bound is the rack count
	MinWalls          int     `yaml:"min_walls"`          // Lower bound for internal walls
	MaxWalls          int     `yaml:"max_walls"`          // Upper bound for internal walls
	StartPoints       int     `yaml:"start_points"`       // Number of distinct start poses
	CyclicProbability float64 `yaml:"cyclic_probability"` // Chance an independent component is closed
	Seed              int64   `yaml:"seed"`               // Seed for reproducible fields (0 = random)

	// MaxAttempts bounds consecutive rejected draws in any sampling loop
	MaxAttempts int `yaml:"max_attempts"`
	// Retries is how many times an infeasible run is restarted from scratch
	Retries int `yaml:"retries"`

	// Logger receives stage diagnostics. nil discards them.
	Logger logrus.FieldLogger `yaml:"-"`
}

// DefaultOptions returns standard generator options.
func DefaultOptions() *Options {
	return &Options{
		MapSize:           DefaultMapSize,
		MinRacks:          DefaultMinRacks,
		MaxRacks:          DefaultMaxRacks,
		MinComponents:     DefaultMinComponents,
		MinWalls:          DefaultMinWalls,
		MaxWalls:          DefaultMaxWalls,
		StartPoints:       DefaultStartPoints,
		CyclicProbability: DefaultCyclicProbability,
		Seed:              0,
		MaxAttempts:       DefaultMaxAttempts,
		Retries:           DefaultRetries,
	}
}

// LoadOptions reads a YAML options file. Keys missing from the file keep their defaults.
func LoadOptions(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read options: %w", err)
	}

	opts := DefaultOptions()
	if err := yaml.Unmarshal(data, opts); err != nil {
		return nil, fmt.Errorf("failed to parse options %s: %w", path, err)
	}
	return opts, nil
}

// InternalSegments returns the number of unit segments strictly inside a grid of the given size
func InternalSegments(size int) int {
	return 2 * size * (size - 1)
}

// spareSegments is the number of internal segments left once a spanning tree joins every cell
func spareSegments(size int) int {
	return InternalSegments(size) - (size*size - 1)
}

// Resize changes the map size and rescales the ranges that depend on it.
// Rack and start point counts follow the grid area. Wall counts follow the
// spare segments, so the share of walls a connected field can still take stays the same.
func (o *Options) Resize(size int) {
	old := o.MapSize
	o.MapSize = size
	if old < 2 || size < 2 || old == size {
		return
	}

	byArea := func(v int) int {
		return int(math.Round(float64(v*size*size) / float64(old*old)))
	}
	bySpare := func(v int) int {
		return int(math.Round(float64(v*spareSegments(size)) / float64(spareSegments(old))))
	}

	o.MinRacks = max(1, byArea(o.MinRacks))
	o.MaxRacks = min(max(o.MinRacks, byArea(o.MaxRacks)), size*size-1)
	o.MinRacks = min(o.MinRacks, o.MaxRacks)
	o.MinWalls = bySpare(o.MinWalls)
	o.MaxWalls = min(max(o.MinWalls, bySpare(o.MaxWalls)), InternalSegments(size))
	o.MinWalls = min(o.MinWalls, o.MaxWalls)
	o.StartPoints = byArea(o.StartPoints)
}

// Validate checks that the options describe a field that can exist at all.
func (o *Options) Validate() error {
	switch {
	case o.MapSize < 2:
		return fmt.Errorf("%w: map size %d must be at least 2", ErrInvalidOptions, o.MapSize)
	case o.MinRacks < 1 || o.MinRacks > o.MaxRacks:
		return fmt.Errorf("%w: rack range %d:%d", ErrInvalidOptions, o.MinRacks, o.MaxRacks)
	case o.MaxRacks >= o.MapSize*o.MapSize:
		return fmt.Errorf("%w: %d racks leave no free cell on a %dx%d grid", ErrInvalidOptions, o.MaxRacks, o.MapSize, o.MapSize)
	case o.MinComponents < 1:
		return fmt.Errorf("%w: min components %d must be positive", ErrInvalidOptions, o.MinComponents)
	case o.MinWalls < 0 || o.MinWalls > o.MaxWalls:
		return fmt.Errorf("%w: wall range %d:%d", ErrInvalidOptions, o.MinWalls, o.MaxWalls)
	case o.MaxWalls > InternalSegments(o.MapSize):
		return fmt.Errorf("%w: %d walls exceed the %d internal segments", ErrInvalidOptions, o.MaxWalls, InternalSegments(o.MapSize))
	case o.StartPoints < 0:
		return fmt.Errorf("%w: start points %d must not be negative", ErrInvalidOptions, o.StartPoints)
	case o.CyclicProbability < 0 || o.CyclicProbability > 1:
		return fmt.Errorf("%w: cyclic probability %v outside [0,1]", ErrInvalidOptions, o.CyclicProbability)
	case o.MaxAttempts < 1:
		return fmt.Errorf("%w: max attempts %d must be positive", ErrInvalidOptions, o.MaxAttempts)
	case o.Retries < 0:
		return fmt.Errorf("%w: retries %d must not be negative", ErrInvalidOptions, o.Retries)
	}
	return nil
}

// logger returns the configured logger or one that discards everything
func (o *Options) logger() logrus.FieldLogger {
	if o.Logger != nil {
		return o.Logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
