package river

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexforge/mapgen/config"
	"github.com/hexforge/mapgen/hexgrid"
	"github.com/hexforge/mapgen/internal/testutil"
	"github.com/hexforge/mapgen/services/terrain"
)

// mockRandom returns scripted values so tests can steer roulette picks.
// Values past the end of the script come back as zero.
type mockRandom struct {
	values []int
	calls  int
}

func (r *mockRandom) Intn(n int) int {
	v := 0
	if r.calls < len(r.values) {
		v = r.values[r.calls] % n
	}
	r.calls++
	return v
}

func newTestTracer(sourceValues, flowValues []int, cfg config.Generation) *Tracer {
	return NewTracer(
		&mockRandom{values: sourceValues},
		&mockRandom{values: flowValues},
		cfg, NewDefaultLoggerWrapper())
}

// buildTerrainMap populates a fresh map from the production terrain pipeline.
func buildTerrainMap(t *testing.T, seed int64, cfg config.Generation, width, height int) *hexgrid.Map {
	t.Helper()

	svc := terrain.NewServiceForSeed(seed, cfg, terrain.NewDefaultLoggerWrapper())
	m := hexgrid.NewMap(width, height)
	for _, c := range m.Cells() {
		c.Elevation, c.Moisture, c.Biome = svc.Sample(c.Coord)
	}
	return m
}

func TestTraceFrom_DescendsToWater(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	// A single row only connects east-west, so the descent is forced.
	m := testutil.MapFromElevations(t, [][]int{{6, 5, 4, 3, 2, -2}}, 0.8)
	tracer := newTestTracer(nil, nil, config.Default())

	path, ok := tracer.traceFrom(m, m.CellAt(0, 0))

	require.True(t, ok, "descent to water should succeed")
	require.Len(t, path, 5, "path should cover every land cell down to the shore")

	for i, seg := range path {
		assert.True(t, seg.hasOut, "segment %d should carry an outgoing direction", i)
		assert.Equal(t, hexgrid.DirEast, seg.out, "segment %d should flow east", i)
	}
	assert.Equal(t, 0, testutil.CountRiverCells(m), "tracing alone must not modify the map")
}

func TestTraceFrom_PoolsAtDeadEnd(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	// The final pair of cells is flat, so the descent has nowhere to go.
	m := testutil.MapFromElevations(t, [][]int{{5, 4, 3, 2, 2}}, 0.8)
	tracer := newTestTracer(nil, nil, config.Default())

	path, ok := tracer.traceFrom(m, m.CellAt(0, 0))

	require.True(t, ok, "a pooled dead end is a successful trace")
	require.Len(t, path, 4)

	last := path[len(path)-1]
	assert.False(t, last.hasOut, "the pooled cell should have no outgoing direction")
	assert.Equal(t, 2, last.cell.Elevation)

	for _, seg := range path[:len(path)-1] {
		assert.True(t, seg.hasOut, "every upstream segment should flow onward")
	}
}

func TestTraceFrom_SkipsSourceWithRiver(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	m := testutil.MapFromElevations(t, [][]int{{6, 5, 4, 3, 2, -2}}, 0.8)
	source := m.CellAt(0, 0)
	source.AddRiverIn(hexgrid.DirWest)

	tracer := newTestTracer(nil, nil, config.Default())
	path, ok := tracer.traceFrom(m, source)

	assert.False(t, ok, "a source that gained a river while pooled should be skipped")
	assert.Nil(t, path)
}

func TestFindSources(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	tests := []struct {
		name       string
		elevations [][]int
		moisture   float64
		prepare    func(m *hexgrid.Map)
		expected   int
	}{
		{
			name:       "high cells away from water qualify",
			elevations: [][]int{{5, 5, 5, 5, -2}},
			moisture:   0.9,
			expected:   3, // shore-adjacent cell is excluded
		},
		{
			name:       "low moisture starves the pool",
			elevations: [][]int{{5, 5, 5, 5, -2}},
			moisture:   0.3,
			expected:   0, // score 0.15 sits below the fitness floor
		},
		{
			name:       "low elevation starves the pool",
			elevations: [][]int{{1, 1, 1, 1, 1}},
			moisture:   0.9,
			expected:   0, // score 0.09 sits below the fitness floor
		},
		{
			name:       "existing river excludes itself and neighbors",
			elevations: [][]int{{5, 5, 5, 5, 5, -2}},
			moisture:   0.9,
			prepare: func(m *hexgrid.Map) {
				m.CellAt(1, 0).AddRiverIn(hexgrid.DirWest)
			},
			expected: 1, // only the cell two steps from both river and shore remains
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := testutil.MapFromElevations(t, tt.elevations, tt.moisture)
			if tt.prepare != nil {
				tt.prepare(m)
			}

			tracer := newTestTracer(nil, nil, config.Default())
			pool := tracer.findSources(m)

			assert.Len(t, pool, tt.expected)
			for _, cand := range pool {
				assert.GreaterOrEqual(t, cand.score, config.Default().SourceFitnessFloor)
			}
		})
	}
}

func TestSourceWeightBuckets(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	tracer := newTestTracer(nil, nil, config.Default())

	tests := []struct {
		name     string
		score    float64
		expected int
	}{
		{name: "low score", score: 0.30, expected: 1},
		{name: "just below mid boundary", score: 0.49, expected: 1},
		{name: "mid boundary", score: 0.50, expected: 2},
		{name: "just below high boundary", score: 0.74, expected: 2},
		{name: "high boundary", score: 0.75, expected: 4},
		{name: "maximum score", score: 1.0, expected: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tracer.sourceWeight(tt.score))
		})
	}
}

func TestTrace_CommitsDescentChain(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	m := testutil.MapFromElevations(t, [][]int{{6, 5, 4, 3, 2, -2}}, 1.0)

	// Budget of one cell stops the loop after the first committed trace;
	// a zero source roll picks the westmost candidate.
	tracer := newTestTracer([]int{0}, nil, config.Default())
	committed := tracer.Trace(m)

	assert.Equal(t, 5, committed, "the full descent chain should commit")
	assert.Equal(t, 5, testutil.CountRiverCells(m))
	testutil.AssertRiverInvariants(t, m)

	head := m.CellAt(0, 0)
	assert.True(t, head.HasRiverOut)
	assert.Equal(t, hexgrid.DirEast, head.RiverOut)
	assert.Equal(t, 1, head.RiverEdges.Count(), "the head carries only its outgoing edge")

	for col := 1; col < 5; col++ {
		c := m.CellAt(col, 0)
		assert.True(t, c.HasRiverOut, "cell %d should flow onward", col)
		assert.Equal(t, hexgrid.DirEast, c.RiverOut)
		assert.True(t, c.RiverEdges.Has(hexgrid.DirWest), "cell %d should record the incoming edge", col)
		assert.Equal(t, 2, c.RiverEdges.Count())
	}

	shore := m.CellAt(5, 0)
	assert.False(t, shore.HasRiver(), "the water terminal stays unmarked")
}

func TestTrace_ShortPathsLeaveMapUntouched(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	// Every possible trace here dead-ends after at most two cells, below
	// the minimum commit length.
	m := testutil.MapFromElevations(t, [][]int{{5, 4, 4, 4}}, 0.9)

	tracer := newTestTracer(nil, nil, config.Default())
	committed := tracer.Trace(m)

	assert.Zero(t, committed, "no short trace may commit")
	assert.Zero(t, testutil.CountRiverCells(m))
	for _, c := range m.Cells() {
		assert.Zero(t, c.RiverEdges, "cell (%d, %d) must be untouched", c.Coord.Q, c.Coord.R)
		assert.False(t, c.HasRiverOut, "cell (%d, %d) must have no flow", c.Coord.Q, c.Coord.R)
	}
}

func TestTrace_FlatWorldTerminates(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	// All land, all flat, high moisture: a large pool where every trace
	// immediately dead-ends. The attempt cap has to end the loop.
	m := testutil.MapFromElevations(t, [][]int{
		{5, 5, 5, 5, 5},
		{5, 5, 5, 5, 5},
		{5, 5, 5, 5, 5},
	}, 1.0)

	tracer := newTestTracer(nil, nil, config.Default())
	committed := tracer.Trace(m)

	assert.Zero(t, committed)
	assert.Zero(t, testutil.CountRiverCells(m))
}

func TestCommit_MergeGainsIncomingEdgeOnly(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	// Row 0 carries the first river east into the water. Row 1 descends
	// east and then northeast into the middle of that river.
	m := testutil.MapFromElevations(t, [][]int{
		{6, 5, 4, 3, 2, -2},
		{9, 8, 7, 9, 9, 9},
	}, 1.0)

	tracer := newTestTracer(nil, nil, config.Default())

	first, ok := tracer.traceFrom(m, m.CellAt(0, 0))
	require.True(t, ok)
	require.Len(t, first, 5)
	tracer.commit(m, first)

	second, ok := tracer.traceFrom(m, m.Cell(hexgrid.CoordFromOffset(0, 1)))
	require.True(t, ok, "the tributary should merge into the existing river")
	require.Len(t, second, 3)
	tracer.commit(m, second)

	tributaryMouth := second[len(second)-1]
	assert.True(t, tributaryMouth.hasOut)
	assert.Equal(t, hexgrid.DirNortheast, tributaryMouth.out)

	junction := m.CellAt(3, 0)
	assert.True(t, junction.HasRiverOut, "the junction keeps its original flow")
	assert.Equal(t, hexgrid.DirEast, junction.RiverOut)
	assert.True(t, junction.RiverEdges.Has(hexgrid.DirWest), "incoming from upstream")
	assert.True(t, junction.RiverEdges.Has(hexgrid.DirSouthwest), "incoming from the tributary")
	assert.Equal(t, 3, junction.RiverEdges.Count())

	testutil.AssertRiverInvariants(t, m)
}

func TestTrace_Determinism(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	cfg := config.Default()
	seed := int64(42)

	first := buildTerrainMap(t, seed, cfg, 24, 24)
	second := buildTerrainMap(t, seed, cfg, 24, 24)

	NewTracerForSeed(seed, cfg, NewDefaultLoggerWrapper()).Trace(first)
	NewTracerForSeed(seed, cfg, NewDefaultLoggerWrapper()).Trace(second)

	for i, c := range first.Cells() {
		o := second.Cells()[i]
		assert.Equal(t, c.RiverEdges, o.RiverEdges,
			"river edges should be deterministic at (%d, %d)", c.Coord.Q, c.Coord.R)
		assert.Equal(t, c.HasRiverOut, o.HasRiverOut)
		if c.HasRiverOut {
			assert.Equal(t, c.RiverOut, o.RiverOut)
		}
	}
}

func TestTrace_BudgetAndInvariantsOnGeneratedTerrain(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	cfg := config.Default()
	seeds := []int64{1, 42, 1337, 90210}

	for _, seed := range seeds {
		m := buildTerrainMap(t, seed, cfg, 32, 32)

		land := 0
		for _, c := range m.Cells() {
			if !c.IsUnderwater() {
				land++
			}
		}

		committed := NewTracerForSeed(seed, cfg, NewDefaultLoggerWrapper()).Trace(m)

		assert.Equal(t, committed, testutil.CountRiverCells(m),
			"seed %d: committed count should match marked cells", seed)
		testutil.AssertRiverInvariants(t, m)
		testutil.AssertCubeInvariant(t, m)

		// Whole-trace commits may overshoot the budget by at most one
		// run; a run cannot exceed the elevation band count.
		budget := (land*10 + 99) / 100 // ceil(land * 0.1) with default config
		maxRun := hexgrid.MaxElevation - hexgrid.SeaLevel + 1
		assert.LessOrEqual(t, committed, budget+maxRun,
			"seed %d: committed %d exceeds budget %d plus one run", seed, committed, budget)

		// Every river head must start a run of at least the minimum
		// length.
		for _, c := range m.Cells() {
			if !c.HasRiverOut || c.RiverEdges.Count() != 1 {
				continue
			}
			assert.GreaterOrEqual(t, chainLength(m, c), MinRiverLength,
				"seed %d: river starting at (%d, %d) is too short", seed, c.Coord.Q, c.Coord.R)
		}
	}
}

// chainLength follows outgoing edges from a head cell and counts the cells
// in the run, including any river it merges into.
func chainLength(m *hexgrid.Map, head *hexgrid.Cell) int {
	count := 0
	current := head
	for current != nil && !current.IsUnderwater() && current.HasRiver() {
		count++
		if !current.HasRiverOut {
			break
		}
		current = m.Neighbor(current, current.RiverOut)
	}
	return count
}

func BenchmarkTrace(b *testing.B) {
	cfg := config.Default()
	svc := terrain.NewServiceForSeed(12345, cfg, terrain.NewDefaultLoggerWrapper())

	base := hexgrid.NewMap(32, 32)
	for _, c := range base.Cells() {
		c.Elevation, c.Moisture, c.Biome = svc.Sample(c.Coord)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		m := hexgrid.NewMap(32, 32)
		for j, c := range base.Cells() {
			target := m.Cells()[j]
			target.Elevation = c.Elevation
			target.Moisture = c.Moisture
			target.Biome = c.Biome
		}
		tracer := NewTracerForSeed(int64(i), cfg, NewDefaultLoggerWrapper())
		b.StartTimer()

		tracer.Trace(m)
	}
}
