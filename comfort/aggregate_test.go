package comfort

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func randomCells(rnd *rand.Rand, n int) ([]Cell, []CellResult) {
	cells := make([]Cell, n)
	results := make([]CellResult, n)
	for i := range cells {
		cells[i] = Cell{
			Index:  i,
			Volume: 0.001 + rnd.Float64(),
			T:      290 + rnd.Float64()*8,
			U:      r3.Vec{X: rnd.Float64() * 0.3, Y: rnd.Float64() * 0.1},
		}
		results[i] = CellResult{
			RH:        30 + rnd.Float64()*30,
			PA:        1000 + rnd.Float64()*500,
			Tu:        rnd.Float64() * 20,
			DR:        rnd.Float64() * 100,
			PMV:       rnd.Float64()*4 - 2,
			PPD:       5 + rnd.Float64()*60,
			TOp:       290 + rnd.Float64()*8,
			Converged: rnd.Intn(10) > 0,
		}
	}
	return cells, results
}

func assertAggregateEqual(t *testing.T, want, got Aggregate) {
	t.Helper()
	assert.InDelta(t, want.PMV, got.PMV, 1e-9)
	assert.InDelta(t, want.PPD, got.PPD, 1e-9)
	assert.InDelta(t, want.DR, got.DR, 1e-9)
	assert.InDelta(t, want.TOp, got.TOp, 1e-9)
	assert.InDelta(t, want.RH, got.RH, 1e-9)
	assert.InDelta(t, want.Turbulence, got.Turbulence, 1e-9)
	assert.InDelta(t, want.VapourPressure, got.VapourPressure, 1e-9)
	assert.InDelta(t, want.Volume, got.Volume, 1e-9)
	assert.Equal(t, want.Cells, got.Cells)
	assert.Equal(t, want.NonConverged, got.NonConverged)
}

func TestAccumulator_OrderInvariant(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	cells, results := randomCells(rnd, 500)

	var inOrder Accumulator
	for i := range cells {
		inOrder.Add(cells[i], results[i])
	}
	want, err := inOrder.Aggregate()
	require.NoError(t, err)

	var shuffled Accumulator
	for _, i := range rnd.Perm(len(cells)) {
		shuffled.Add(cells[i], results[i])
	}
	got, err := shuffled.Aggregate()
	require.NoError(t, err)

	assertAggregateEqual(t, want, got)
}

func TestAccumulator_PartitionInvariant(t *testing.T) {
	rnd := rand.New(rand.NewSource(2))
	cells, results := randomCells(rnd, 777)

	var whole Accumulator
	for i := range cells {
		whole.Add(cells[i], results[i])
	}
	want, err := whole.Aggregate()
	require.NoError(t, err)

	for _, workers := range []int{2, 3, 8, 777} {
		parts := partition(len(cells), workers)
		accs := make([]Accumulator, len(parts))
		for p, part := range parts {
			for j := part.start; j < part.end; j++ {
				accs[p].Add(cells[j], results[j])
			}
		}

		// merge in reverse to show the reduction order does not matter
		var merged Accumulator
		for p := len(accs) - 1; p >= 0; p-- {
			merged.Merge(&accs[p])
		}
		got, err := merged.Aggregate()
		require.NoError(t, err)
		assertAggregateEqual(t, want, got)
	}
}

func TestAccumulator_WeightedMean(t *testing.T) {
	var a Accumulator
	a.Add(Cell{Volume: 1}, CellResult{PMV: 1, DR: 10, Converged: true})
	a.Add(Cell{Volume: 3}, CellResult{PMV: -1, DR: 30, Converged: false})

	agg, err := a.Aggregate()
	require.NoError(t, err)
	assert.InDelta(t, -0.5, agg.PMV, 1e-12)
	assert.InDelta(t, 25.0, agg.DR, 1e-12)
	assert.Equal(t, 4.0, agg.Volume)
	assert.Equal(t, 2, agg.Cells)
	assert.Equal(t, 1, agg.NonConverged)
}

func TestAccumulator_ZeroVolume(t *testing.T) {
	var a Accumulator
	_, err := a.Aggregate()
	assert.ErrorIs(t, err, ErrZeroVolume)
}

func TestMeanVelocityAndTemperature(t *testing.T) {
	cells := []Cell{
		{Volume: 1, T: 290, U: r3.Vec{X: 0.4}},
		{Volume: 3, T: 294, U: r3.Vec{Y: 0.4}},
	}

	u, err := MeanVelocity(cells)
	require.NoError(t, err)
	assert.InDelta(t, 0.1, u.X, 1e-12)
	assert.InDelta(t, 0.3, u.Y, 1e-12)

	temp, err := MeanTemperature(cells)
	require.NoError(t, err)
	assert.InDelta(t, 293.0, temp, 1e-12)

	_, err = MeanVelocity(nil)
	assert.ErrorIs(t, err, ErrZeroVolume)
	_, err = MeanTemperature(nil)
	assert.ErrorIs(t, err, ErrZeroVolume)
}

func TestPartition(t *testing.T) {
	assert.Equal(t, []cellRange{{0, 4}, {4, 7}, {7, 10}}, partition(10, 3))
	assert.Equal(t, []cellRange{{0, 1}, {1, 2}}, partition(2, 8))
	assert.Equal(t, []cellRange{{0, 5}}, partition(5, 0))
	assert.Empty(t, partition(0, 4))
}
