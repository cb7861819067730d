// Package river carves downhill-flowing rivers into a generated map. Sources
// are selected by weighted roulette over a fitness-scored pool, traced along
// strictly descending neighbors, and committed to the grid only as whole runs
// meeting the minimum length.
package river

import (
	"math"

	"github.com/hexforge/mapgen/config"
	"github.com/hexforge/mapgen/hexgrid"
)

const (
	// sourceSeedOffset and flowSeedOffset derive the two river RNG streams
	// from the world seed, keeping river placement uncorrelated with the
	// terrain and moisture noise.
	sourceSeedOffset = 104729
	flowSeedOffset   = 104947

	// maxTraceSteps caps a single trace against pathological configurations.
	maxTraceSteps = 100

	// MinRiverLength is the shortest run of cells a trace may commit.
	MinRiverLength = 3
)

// Tracer carves rivers into a map.
type Tracer struct {
	cfg       config.Generation
	sourceRng RandomGeneratorInterface
	flowRng   RandomGeneratorInterface
	logger    LoggerInterface
}

// NewTracer creates a new river tracer with dependency injection.
func NewTracer(sourceRng, flowRng RandomGeneratorInterface, cfg config.Generation, logger LoggerInterface) *Tracer {
	if logger == nil {
		logger = NewDefaultLoggerWrapper()
	}
	componentLogger := logger.With("component", "river-tracer")
	componentLogger.Debug("Creating new river tracer")
	return &Tracer{
		cfg:       cfg,
		sourceRng: sourceRng,
		flowRng:   flowRng,
		logger:    componentLogger,
	}
}

// NewTracerForSeed creates a tracer with production RNG streams derived from
// the world seed.
func NewTracerForSeed(seed int64, cfg config.Generation, logger LoggerInterface) *Tracer {
	return NewTracer(
		NewRandomGenerator(seed+sourceSeedOffset),
		NewRandomGenerator(seed+flowSeedOffset),
		cfg, logger)
}

// candidate is one scored river source.
type candidate struct {
	cell  *hexgrid.Cell
	score float64
}

// step is one scratch segment of a trace before commit. A step without an
// outgoing direction is a pooled dead end.
type step struct {
	cell   *hexgrid.Cell
	out    hexgrid.Direction
	hasOut bool
}

// Trace carves rivers into the map and returns the number of committed river
// cells. The budget is the configured fraction of land cells, rounded up;
// tracing stops when the budget is met, the source pool empties, or the
// attempt cap is reached. Traces shorter than MinRiverLength are discarded
// without touching the map.
func (t *Tracer) Trace(m *hexgrid.Map) int {
	pool := t.findSources(m)
	landCells := countLand(m)
	budget := int(math.Ceil(float64(landCells) * t.cfg.RiverPercentage))
	attemptCap := 2 * len(pool)

	t.logger.Debug("Starting river tracing",
		"sources", len(pool), "land_cells", landCells, "budget", budget)

	committed := 0
	attempts := 0
	for committed < budget && len(pool) > 0 && attempts < attemptCap {
		attempts++

		idx := t.pickSource(pool)
		source := pool[idx].cell
		pool = append(pool[:idx], pool[idx+1:]...)

		path, ok := t.traceFrom(m, source)
		if !ok || len(path) < MinRiverLength {
			continue
		}

		t.commit(m, path)
		committed += len(path)
	}

	t.logger.Info("River tracing complete",
		"river_cells", committed, "budget", budget, "attempts", attempts)
	return committed
}

// findSources scans land cells for eligible river sources: cells with no
// river, not adjacent to water or an existing river, whose fitness score
// meets the configured floor.
func (t *Tracer) findSources(m *hexgrid.Map) []candidate {
	var pool []candidate
	for _, c := range m.Cells() {
		if c.IsUnderwater() || c.HasRiver() {
			continue
		}
		if t.nearWaterOrRiver(m, c) {
			continue
		}
		score := sourceScore(c)
		if score < t.cfg.SourceFitnessFloor {
			continue
		}
		pool = append(pool, candidate{cell: c, score: score})
	}
	return pool
}

func (t *Tracer) nearWaterOrRiver(m *hexgrid.Map, c *hexgrid.Cell) bool {
	for d := hexgrid.DirEast; d <= hexgrid.DirSoutheast; d++ {
		n := m.Neighbor(c, d)
		if n == nil {
			continue
		}
		if n.IsUnderwater() || n.HasRiver() {
			return true
		}
	}
	return false
}

// sourceScore rates a source by moisture scaled with relative height above
// sea level.
func sourceScore(c *hexgrid.Cell) float64 {
	return c.Moisture * float64(c.Elevation-hexgrid.SeaLevel) / float64(hexgrid.MaxElevation-hexgrid.SeaLevel)
}

// sourceWeight buckets a fitness score into a roulette weight.
func (t *Tracer) sourceWeight(score float64) int {
	switch {
	case score >= t.cfg.SourceScoreHigh:
		return t.cfg.SourceWeightHigh
	case score >= t.cfg.SourceScoreMid:
		return t.cfg.SourceWeightMid
	default:
		return t.cfg.SourceWeightLow
	}
}

// pickSource selects a pool index by cumulative-weight roulette. The pool
// must be non-empty.
func (t *Tracer) pickSource(pool []candidate) int {
	total := 0
	for _, cand := range pool {
		total += t.sourceWeight(cand.score)
	}

	roll := t.sourceRng.Intn(total)
	for i, cand := range pool {
		roll -= t.sourceWeight(cand.score)
		if roll < 0 {
			return i
		}
	}
	return len(pool) - 1
}

// traceFrom follows strictly downhill neighbors from the source and returns
// the scratch path. ok is false when the trace aborts; the map is never
// modified here. Termination cases: reaching water or an existing river ends
// the path successfully, a cell with no downhill neighbor pools as a dead
// end, and revisiting a cell or exhausting the step cap aborts.
func (t *Tracer) traceFrom(m *hexgrid.Map, source *hexgrid.Cell) ([]step, bool) {
	if source.HasRiver() {
		// An earlier trace may have merged into this cell after the
		// pool was built.
		return nil, false
	}

	visited := map[hexgrid.Coord]bool{source.Coord: true}
	var path []step
	current := source

	for i := 0; i < maxTraceSteps; i++ {
		dir, ok := t.pickDescent(m, current)
		if !ok {
			// Pooled dead end.
			path = append(path, step{cell: current})
			return path, true
		}

		next := m.Neighbor(current, dir)
		if visited[next.Coord] {
			// Cycle guard.
			return nil, false
		}
		visited[next.Coord] = true

		path = append(path, step{cell: current, out: dir, hasOut: true})

		if next.IsUnderwater() {
			return path, true
		}
		if next.HasRiver() {
			// Merge into the existing run without re-marking it.
			return path, true
		}
		current = next
	}

	return nil, false
}

// pickDescent chooses a strictly downhill neighbor by roulette, weighting
// steeper drops more heavily. ok is false when no neighbor is strictly
// lower; flat edges never carry a river.
func (t *Tracer) pickDescent(m *hexgrid.Map, c *hexgrid.Cell) (hexgrid.Direction, bool) {
	var dirs [6]hexgrid.Direction
	var weights [6]int
	count := 0
	total := 0

	for d := hexgrid.DirEast; d <= hexgrid.DirSoutheast; d++ {
		n := m.Neighbor(c, d)
		if n == nil || n.Elevation >= c.Elevation {
			continue
		}
		drop := c.Elevation - n.Elevation
		dirs[count] = d
		weights[count] = drop
		total += drop
		count++
	}

	if count == 0 {
		return 0, false
	}

	roll := t.flowRng.Intn(total)
	for i := 0; i < count; i++ {
		roll -= weights[i]
		if roll < 0 {
			return dirs[i], true
		}
	}
	return dirs[count-1], true
}

// commit writes a finished path onto the grid. Every step with an outgoing
// direction marks its own out edge and the matching incoming edge on the
// downhill land neighbor. Water terminals stay unmarked, and a merge target
// gains only the incoming edge.
func (t *Tracer) commit(m *hexgrid.Map, path []step) {
	for _, seg := range path {
		if !seg.hasOut {
			continue
		}
		seg.cell.SetRiverOut(seg.out)

		next := m.Neighbor(seg.cell, seg.out)
		if next != nil && !next.IsUnderwater() {
			next.AddRiverIn(seg.out.Opposite())
		}
	}
}

func countLand(m *hexgrid.Map) int {
	count := 0
	for _, c := range m.Cells() {
		if !c.IsUnderwater() {
			count++
		}
	}
	return count
}
