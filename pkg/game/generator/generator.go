// Package generator builds randomized localization fields: a square grid with
// rack obstacles, random internal walls that never cut the free area apart,
// a border, and a set of robot start poses that avoid the racks.
package generator

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"

	"fieldgen/pkg/engine/world"
)

var (
	ErrInvalidOptions       = errors.New("generator: invalid options")
	ErrGenerationInfeasible = errors.New("generator: field generation infeasible")
)

// Plan fixes the random sizes of one generation run
type Plan struct {
	Racks      int // number of racks placed
	Components int // component count the merger reduces to
	Walls      int // internal wall segments in the finished field, rack walls included
}

// Generator creates localization fields.
type Generator struct {
	options *Options
	seed    int64
	rng     *rand.Rand
	log     logrus.FieldLogger
}

// New creates a field generator with the given options.
func New(options *Options) *Generator {
	if options == nil {
		options = DefaultOptions()
	}

	seed := options.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Generator{
		options: options,
		seed:    seed,
		rng:     rand.New(rand.NewSource(seed)),
		log:     options.logger().WithField("seed", seed),
	}
}

// Seed returns the seed the generator's random stream started from
func (g *Generator) Seed() int64 {
	return g.seed
}

// Generate creates a new field with rack, component and wall counts drawn from the options.
// Runs that hit an infeasible layout are restarted on the same random stream.
func (g *Generator) Generate() (*Field, error) {
	if err := g.options.Validate(); err != nil {
		return nil, err
	}
	return g.generate(g.drawPlan)
}

// GenerateWith creates a new field with fixed rack, component and wall counts.
func (g *Generator) GenerateWith(plan Plan) (*Field, error) {
	if err := g.options.Validate(); err != nil {
		return nil, err
	}
	if err := g.checkPlan(plan); err != nil {
		return nil, err
	}
	return g.generate(func() Plan { return plan })
}

func (g *Generator) generate(nextPlan func() Plan) (*Field, error) {
	var lastErr error
	for attempt := 0; attempt <= g.options.Retries; attempt++ {
		plan := nextPlan()

		field, err := g.build(plan)
		if err == nil {
			return field, nil
		}
		if !errors.Is(err, ErrGenerationInfeasible) {
			return nil, err
		}

		lastErr = err
		g.log.WithFields(logrus.Fields{
			"attempt": attempt,
			"racks":   plan.Racks,
			"walls":   plan.Walls,
		}).Debugf("run abandoned: %v", err)
	}

	return nil, fmt.Errorf("gave up after %d runs: %w", g.options.Retries+1, lastErr)
}

// drawPlan picks the sizes of the next run
func (g *Generator) drawPlan() Plan {
	o := g.options

	racks := o.MinRacks + g.rng.Intn(o.MaxRacks-o.MinRacks+1)
	minComponents := min(o.MinComponents, racks)
	components := minComponents + g.rng.Intn(racks-minComponents+1)
	walls := o.MinWalls + g.rng.Intn(o.MaxWalls-o.MinWalls+1)

	return Plan{Racks: racks, Components: components, Walls: walls}
}

func (g *Generator) checkPlan(p Plan) error {
	size := g.options.MapSize
	switch {
	case p.Racks < 1 || p.Racks >= size*size:
		return fmt.Errorf("%w: %d racks on a %dx%d grid", ErrInvalidOptions, p.Racks, size, size)
	case p.Components < 1 || p.Components > p.Racks:
		return fmt.Errorf("%w: component target %d outside 1:%d", ErrInvalidOptions, p.Components, p.Racks)
	case p.Walls < 0 || p.Walls > InternalSegments(size):
		return fmt.Errorf("%w: %d walls exceed the %d internal segments", ErrInvalidOptions, p.Walls, InternalSegments(size))
	}
	return nil
}

// run carries the mutable state of one generation pass
type run struct {
	rng  *rand.Rand
	opts *Options
	log  logrus.FieldLogger
	plan Plan

	grid     *world.Grid
	registry *Registry

	racks      []world.Cell
	prohibited mapset.Set[world.Cell] // rack cells; start poses and flood fills skip them
	poses      []world.Pose
}

// build runs the whole pipeline once and freezes the result
func (g *Generator) build(plan Plan) (*Field, error) {
	r := &run{
		rng:  g.rng,
		opts: g.options,
		log:  g.log,
		plan: plan,
		grid: world.NewGrid(g.options.MapSize),
	}

	if err := r.placeRacks(); err != nil {
		return nil, err
	}
	if err := r.mergeComponents(); err != nil {
		return nil, err
	}
	if err := r.paint(); err != nil {
		return nil, err
	}
	r.closeComponents()
	if err := r.buildWalls(); err != nil {
		return nil, err
	}
	if err := r.pickStartPoints(); err != nil {
		return nil, err
	}

	field := r.freeze(g.seed)

	// Validate the generated field
	if err := field.Validate(); err != nil {
		panic("Generated invalid field: " + err.Error())
	}

	return field, nil
}

// infeasible wraps ErrGenerationInfeasible with a stage description
func infeasible(format string, a ...any) error {
	return fmt.Errorf("%w: %s", ErrGenerationInfeasible, fmt.Sprintf(format, a...))
}

// GenerateWithSeed is a convenience function to generate a default field from a fixed seed.
func GenerateWithSeed(seed int64) (*Field, error) {
	opts := DefaultOptions()
	opts.Seed = seed
	return New(opts).Generate()
}
