package comfort

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r3"
)

// Options tune a Solver.
type Options struct {
	Workers     int         // concurrent cell partitions, values < 1 mean 1
	Formulation Formulation // empty means FormulationLegacy
	PMVBand     PMVBand     // empty means PMVBandLiteral
}

// SnapshotResult is the outcome of one snapshot. Cells is parallel to Snapshot.Cells.
type SnapshotResult struct {
	Time      string
	Cells     []CellResult
	Aggregate Aggregate
}

// Solver computes comfort indices for snapshots with fixed parameters.
type Solver struct {
	params Parameters
	opts   Options
	log    logrus.FieldLogger
}

func NewSolver(params Parameters, opts Options, log logrus.FieldLogger) (*Solver, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}

	var err error
	if opts.Formulation == "" {
		opts.Formulation = FormulationLegacy
	}
	if opts.Formulation, err = FormulationFromString(string(opts.Formulation)); err != nil {
		return nil, err
	}
	if opts.PMVBand == "" {
		opts.PMVBand = PMVBandLiteral
	}
	if opts.PMVBand, err = PMVBandFromString(string(opts.PMVBand)); err != nil {
		return nil, err
	}

	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Solver{params: params, opts: opts, log: log}, nil
}

/*
Solve one snapshot.

	Args:
		ctx: cancels the cell partitions
		snap: field solution of one time step

	Returns:
		per cell results and the classified aggregate

	Notes:
		Radiant temperature, humidity mode and the mean velocity/temperature passes run once.
		Cells are split into Workers contiguous partitions, each folded into its own
		Accumulator; the partial sums are merged after all partitions finished.
*/
func (s *Solver) Solve(ctx context.Context, snap *Snapshot) (*SnapshotResult, error) {
	if err := snap.Validate(); err != nil {
		return nil, err
	}

	radiant, err := EstimateRadiantTemperature(snap.Patches, snap.HasHeatFlux)
	if err != nil {
		return nil, fmt.Errorf("time %s: %w", snap.Time, err)
	}

	meanU, err := MeanVelocity(snap.Cells)
	if err != nil {
		return nil, fmt.Errorf("time %s: %w", snap.Time, err)
	}
	meanT, err := MeanTemperature(snap.Cells)
	if err != nil {
		return nil, fmt.Errorf("time %s: %w", snap.Time, err)
	}

	humidity := NewHumidityResolver(snap.HasHumidity, s.params.RH)

	s.log.WithFields(logrus.Fields{
		"snapshot": snap.Time,
		"cells":    len(snap.Cells),
		"STemp":    radiant.STemp,
		"humidity": humidity.Mode(),
		"workers":  s.opts.Workers,
	}).Debug("solving snapshot")

	results := make([]CellResult, len(snap.Cells))
	parts := partition(len(snap.Cells), s.opts.Workers)
	accs := make([]Accumulator, len(parts))

	g, gctx := errgroup.WithContext(ctx)
	for i, part := range parts {
		i, part := i, part
		g.Go(func() error {
			acc := &accs[i]
			for j := part.start; j < part.end; j++ {
				if (j-part.start)%1024 == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}

				c := snap.Cells[j]
				r := SolveCell(CellInput{
					T:     c.T,
					U:     c.U,
					STemp: radiant.STemp,
					RH:    humidity.RelativeHumidity(c),
				}, s.params, s.opts.Formulation)

				results[j] = r
				acc.Add(c, r)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("time %s: %w", snap.Time, err)
	}

	var total Accumulator
	for i := range accs {
		total.Merge(&accs[i])
	}

	agg, err := total.Aggregate()
	if err != nil {
		return nil, fmt.Errorf("time %s: %w", snap.Time, err)
	}
	agg.Velocity = r3.Norm(meanU)
	agg.Temperature = meanT
	agg.Radiant = radiant
	agg.Category = Classify(agg.PMV, agg.DR, agg.PPD, s.opts.PMVBand)

	if agg.NonConverged > 0 {
		s.log.WithFields(logrus.Fields{
			"snapshot":     snap.Time,
			"nonConverged": agg.NonConverged,
			"cells":        agg.Cells,
		}).Warn("clothing temperature reached the iteration cap, results are best-effort")
	}

	return &SnapshotResult{
		Time:      snap.Time,
		Cells:     results,
		Aggregate: agg,
	}, nil
}

// cellRange is a half open cell index range [start, end).
type cellRange struct {
	start int
	end   int
}

// partition splits n cells into at most workers contiguous ranges, spreading the remainder
// over the first ranges.
func partition(n, workers int) []cellRange {
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	if workers == 0 {
		return nil
	}

	size, remainder := n/workers, n%workers
	parts := make([]cellRange, 0, workers)
	start := 0
	for i := 0; i < workers; i++ {
		end := start + size
		if i < remainder {
			end++
		}
		parts = append(parts, cellRange{start: start, end: end})
		start = end
	}
	return parts
}
