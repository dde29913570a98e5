package comfort

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"
)

// Aggregate is the volume weighted summary of a snapshot.
type Aggregate struct {
	PMV            float64
	PPD            float64 // %
	DR             float64 // %
	TOp            float64 // K
	RH             float64 // %
	Turbulence     float64 // %
	VapourPressure float64 // Pa

	Velocity    float64 // magnitude of the mean velocity vector, m/s
	Temperature float64 // mean air temperature, K

	Radiant RadiantEstimate

	Volume       float64 // m3
	Cells        int
	NonConverged int

	Category Category
}

// Accumulator folds cell results into volume weighted sums. Partial accumulators built over
// disjoint cell sets can be merged in any order.
type Accumulator struct {
	volume       float64
	cells        int
	nonConverged int

	pmv float64
	ppd float64
	dr  float64
	top float64
	rh  float64
	tu  float64
	pa  float64
}

// Add folds one cell result weighted by the cell volume.
func (a *Accumulator) Add(c Cell, r CellResult) {
	v := c.Volume
	a.volume += v
	a.cells++
	if !r.Converged {
		a.nonConverged++
	}

	a.pmv += r.PMV * v
	a.ppd += r.PPD * v
	a.dr += r.DR * v
	a.top += r.TOp * v
	a.rh += r.RH * v
	a.tu += r.Tu * v
	a.pa += r.PA * v
}

// Merge adds the sums of b.
func (a *Accumulator) Merge(b *Accumulator) {
	a.volume += b.volume
	a.cells += b.cells
	a.nonConverged += b.nonConverged

	a.pmv += b.pmv
	a.ppd += b.ppd
	a.dr += b.dr
	a.top += b.top
	a.rh += b.rh
	a.tu += b.tu
	a.pa += b.pa
}

/*
Volume weighted means of the accumulated results.

	Returns:
		aggregate with the weighted means, volume and cell counts set

	Notes:
		Fails with ErrZeroVolume instead of dividing by zero.
*/
func (a *Accumulator) Aggregate() (Aggregate, error) {
	if !(a.volume > 0) {
		return Aggregate{}, fmt.Errorf("aggregate: %w", ErrZeroVolume)
	}
	return Aggregate{
		PMV:            a.pmv / a.volume,
		PPD:            a.ppd / a.volume,
		DR:             a.dr / a.volume,
		TOp:            a.top / a.volume,
		RH:             a.rh / a.volume,
		Turbulence:     a.tu / a.volume,
		VapourPressure: a.pa / a.volume,
		Volume:         a.volume,
		Cells:          a.cells,
		NonConverged:   a.nonConverged,
	}, nil
}

//---------------------------------------------------------------------------------------------------//

/*
Volume weighted mean velocity vector.

	Args:
		cells: cells of the snapshot

	Returns:
		mean velocity, m/s
*/
func MeanVelocity(cells []Cell) (r3.Vec, error) {
	var sum r3.Vec
	var volume float64
	for _, c := range cells {
		sum = r3.Add(sum, r3.Scale(c.Volume, c.U))
		volume += c.Volume
	}
	if !(volume > 0) {
		return r3.Vec{}, fmt.Errorf("mean velocity: %w", ErrZeroVolume)
	}
	return r3.Scale(1/volume, sum), nil
}

/*
Volume weighted mean air temperature.

	Args:
		cells: cells of the snapshot

	Returns:
		mean air temperature, K
*/
func MeanTemperature(cells []Cell) (float64, error) {
	t := make([]float64, len(cells))
	vol := make([]float64, len(cells))
	var volume float64
	for i, c := range cells {
		t[i] = c.T
		vol[i] = c.Volume
		volume += c.Volume
	}
	if !(volume > 0) {
		return 0, fmt.Errorf("mean temperature: %w", ErrZeroVolume)
	}
	return stat.Mean(t, vol), nil
}
