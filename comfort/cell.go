package comfort

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Cell is one volume cell of the flow field solution.
type Cell struct {
	Index  int
	Volume float64 // m3
	T      float64 // air temperature, K
	U      r3.Vec  // air velocity, m/s
	PRgh   float64 // pressure deviation from the hydrostatic state, Pa
	W      float64 // humidity ratio, kg/kg(DA); read only when the snapshot has a humidity field
}

// checkFinite rejects NaN and Inf in the field values of a cell.
func (c Cell) checkFinite() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"T", c.T},
		{"Ux", c.U.X},
		{"Uy", c.U.Y},
		{"Uz", c.U.Z},
		{"p_rgh", c.PRgh},
		{"w", c.W},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: cell %d has %s = %g", ErrInvalidCell, c.Index, f.name, f.value)
		}
	}
	return nil
}

// PatchType is the classification of a boundary patch.
type PatchType string

const (
	PatchWall  PatchType = "wall"
	PatchOther PatchType = "patch"
)

// Face is one boundary face of a patch.
type Face struct {
	Area float64 // m2
	T    float64 // surface temperature, K
	Qr   float64 // radiative heat flux, W/m2; read only when the snapshot has a heat-flux field
}

// BoundaryPatch is a named group of boundary faces.
type BoundaryPatch struct {
	Name  string
	Type  PatchType
	Faces []Face
}

// IsWall reports whether the patch takes part in the radiant temperature estimate.
func (p BoundaryPatch) IsWall() bool {
	return p.Type == PatchWall
}

// Snapshot is the field solution of one time step.
type Snapshot struct {
	Time        string
	Cells       []Cell
	Patches     []BoundaryPatch
	HasHumidity bool // a humidity ratio field w is present
	HasHeatFlux bool // a radiative heat flux field Qr is present
}

// Validate checks the cell invariants and that there is a volume to average over.
func (s *Snapshot) Validate() error {
	var total float64
	for _, c := range s.Cells {
		if !(c.Volume > 0) || math.IsInf(c.Volume, 1) {
			return fmt.Errorf("%w: cell %d has volume %g", ErrInvalidCell, c.Index, c.Volume)
		}
		if err := c.checkFinite(); err != nil {
			return err
		}
		total += c.Volume
	}
	if total <= 0 {
		return fmt.Errorf("time %s: %w", s.Time, ErrZeroVolume)
	}
	return nil
}

// CellResult holds the comfort indices of one cell. It is not modified after Solve returns.
type CellResult struct {
	RH         float64 // relative humidity, %
	PA         float64 // water vapour pressure, Pa
	Tu         float64 // turbulence intensity, %
	DR         float64 // draught rate, %, 0..100
	PMV        float64 // predicted mean vote
	PPD        float64 // predicted percentage of dissatisfied, %
	TOp        float64 // operative temperature, K
	TCL        float64 // clothing surface temperature, degree C
	Iterations int     // iterations spent in the clothing temperature loop
	Converged  bool    // false when the loop stopped at the iteration cap
}
