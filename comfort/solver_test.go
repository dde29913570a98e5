package comfort

import (
	"context"
	"math/rand"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func roomWalls(t float64) []BoundaryPatch {
	return []BoundaryPatch{
		{Name: "walls", Type: PatchWall, Faces: []Face{{Area: 2, T: t}, {Area: 2, T: t}}},
		{Name: "inlet", Type: PatchOther, Faces: []Face{{Area: 0.1, T: 288}}},
	}
}

func roomSnapshot(rnd *rand.Rand, n int) *Snapshot {
	cells := make([]Cell, n)
	for i := range cells {
		cells[i] = Cell{
			Index:  i,
			Volume: 0.01 + rnd.Float64()*0.02,
			T:      292 + rnd.Float64()*4,
			U:      r3.Vec{X: rnd.Float64() * 0.3, Y: rnd.Float64() * 0.1, Z: rnd.Float64() * 0.05},
			PRgh:   rnd.Float64() * 10,
			W:      0.006 + rnd.Float64()*0.002,
		}
	}
	return &Snapshot{Time: "100", Cells: cells, Patches: roomWalls(293.15)}
}

func newTestSolver(t *testing.T, p Parameters, opts Options) *Solver {
	t.Helper()
	log, _ := test.NewNullLogger()
	s, err := NewSolver(p, opts, log)
	require.NoError(t, err)
	return s
}

func TestNewSolver_InvalidParameters(t *testing.T) {
	_, err := NewSolver(Parameters{Clo: 1, Met: 0, RH: 50}, Options{}, nil)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestSolver_SingleCellMatchesCellSolver(t *testing.T) {
	s := newTestSolver(t, office, Options{})
	snap := &Snapshot{
		Time:    "0",
		Cells:   []Cell{{Index: 0, Volume: 2, T: 293.15, U: r3.Vec{X: 0.1}}},
		Patches: roomWalls(293.15),
	}

	res, err := s.Solve(context.Background(), snap)
	require.NoError(t, err)
	require.Len(t, res.Cells, 1)

	want := SolveCell(CellInput{T: 293.15, U: r3.Vec{X: 0.1}, STemp: 20, RH: 50}, office, FormulationLegacy)
	assert.InDelta(t, want.PMV, res.Cells[0].PMV, 1e-12)

	agg := res.Aggregate
	assert.Equal(t, "0", res.Time)
	assert.InDelta(t, 20.0, agg.Radiant.STemp, 1e-9)
	assert.InDelta(t, want.PMV, agg.PMV, 1e-12)
	assert.InDelta(t, want.PPD, agg.PPD, 1e-12)
	assert.InDelta(t, want.DR, agg.DR, 1e-12)
	assert.InDelta(t, want.TOp, agg.TOp, 1e-12)
	assert.InDelta(t, 50.0, agg.RH, 1e-12)
	assert.InDelta(t, 0.1, agg.Velocity, 1e-12)
	assert.InDelta(t, 293.15, agg.Temperature, 1e-12)
	assert.Equal(t, 2.0, agg.Volume)
	assert.Equal(t, 0, agg.NonConverged)
	// PMV -0.35, PPD 7.5, DR 7.3
	assert.Equal(t, CategoryB, agg.Category)
}

func TestSolver_WorkersGiveSameResult(t *testing.T) {
	snap := roomSnapshot(rand.New(rand.NewSource(3)), 2000)
	snap.HasHumidity = true

	serial, err := newTestSolver(t, office, Options{Workers: 1}).Solve(context.Background(), snap)
	require.NoError(t, err)

	for _, workers := range []int{2, 7, 16} {
		parallel, err := newTestSolver(t, office, Options{Workers: workers}).Solve(context.Background(), snap)
		require.NoError(t, err)

		assert.Equal(t, serial.Cells, parallel.Cells)
		assertAggregateEqual(t, serial.Aggregate, parallel.Aggregate)
		assert.Equal(t, serial.Aggregate.Category, parallel.Aggregate.Category)
	}
}

func TestSolver_HumidityField(t *testing.T) {
	snap := roomSnapshot(rand.New(rand.NewSource(4)), 10)
	s := newTestSolver(t, office, Options{})

	constant, err := s.Solve(context.Background(), snap)
	require.NoError(t, err)
	for _, r := range constant.Cells {
		assert.Equal(t, 50.0, r.RH)
	}

	snap.HasHumidity = true
	field, err := s.Solve(context.Background(), snap)
	require.NoError(t, err)
	for i, r := range field.Cells {
		c := snap.Cells[i]
		want := VapourPressureFromRatio(c.PRgh, c.W) / SaturationPressure(c.T) * 100
		assert.InDelta(t, want, r.RH, 1e-9)
	}
}

func TestSolver_HeatFluxKeepsDefaultRadiantTemperature(t *testing.T) {
	snap := roomSnapshot(rand.New(rand.NewSource(5)), 10)
	snap.HasHeatFlux = true
	snap.Patches = []BoundaryPatch{{Name: "walls", Type: PatchWall, Faces: []Face{{Area: 1, Qr: 300}}}}

	res, err := newTestSolver(t, office, Options{}).Solve(context.Background(), snap)
	require.NoError(t, err)
	assert.True(t, res.Aggregate.Radiant.FromHeatFlux)
	assert.Equal(t, DefaultRadiantTemperature, res.Aggregate.Radiant.STemp)
	assert.InDelta(t, 300-273.15, res.Aggregate.Radiant.HeatFlowSum, 1e-9)
}

func TestSolver_DegenerateSnapshots(t *testing.T) {
	s := newTestSolver(t, office, Options{})
	ctx := context.Background()

	_, err := s.Solve(ctx, &Snapshot{Time: "1", Patches: roomWalls(293)})
	assert.ErrorIs(t, err, ErrZeroVolume)

	_, err = s.Solve(ctx, &Snapshot{Time: "1", Cells: []Cell{{Volume: 0, T: 293}}, Patches: roomWalls(293)})
	assert.ErrorIs(t, err, ErrInvalidCell)

	_, err = s.Solve(ctx, &Snapshot{Time: "1", Cells: []Cell{{Volume: 1, T: 293}}})
	assert.ErrorIs(t, err, ErrNoWallArea)
}

func TestSolver_NonConvergedIsCountedAndLogged(t *testing.T) {
	log, hook := test.NewNullLogger()
	s, err := NewSolver(Parameters{Clo: 10, Met: 8, RH: 50}, Options{}, log)
	require.NoError(t, err)

	snap := &Snapshot{
		Time:    "5",
		Cells:   []Cell{{Index: 0, Volume: 1, T: 293.15}, {Index: 1, Volume: 1, T: 293.15}},
		Patches: roomWalls(293.15),
	}
	res, err := s.Solve(context.Background(), snap)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Aggregate.NonConverged)
	for _, r := range res.Cells {
		assert.False(t, r.Converged)
		assert.Equal(t, MaxIterations, r.Iterations)
	}
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, 2, hook.LastEntry().Data["nonConverged"])
	assert.Equal(t, "5", hook.LastEntry().Data["snapshot"])
	assert.NotContains(t, hook.LastEntry().Data, "time")
}

func TestSolver_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestSolver(t, office, Options{Workers: 2}).Solve(ctx, roomSnapshot(rand.New(rand.NewSource(6)), 10))
	assert.ErrorIs(t, err, context.Canceled)
}
