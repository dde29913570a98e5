package comfort

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// RadiantEstimate is the radiant temperature summary of a snapshot.
type RadiantEstimate struct {
	// STemp is the mean radiant temperature used by every cell, degree C.
	STemp float64

	// HeatFlowSum is the area weighted sum of Qr over wall faces minus 273.15.
	// It is a diagnostic only and is set when FromHeatFlux is true.
	HeatFlowSum  float64
	FromHeatFlux bool

	// WallPatches is the number of wall patches with nonzero area that were averaged.
	WallPatches int
}

/*
Estimate the radiant temperature of a snapshot.

	Args:
		patches: boundary patches of the snapshot
		hasHeatFlux: a Qr field is present

	Returns:
		radiant temperature summary

	Notes:
		With a Qr field the summed heat flow is reported and STemp keeps DefaultRadiantTemperature.
		Without one, STemp is the mean over wall patches of their area weighted surface temperature.
*/
func EstimateRadiantTemperature(patches []BoundaryPatch, hasHeatFlux bool) (RadiantEstimate, error) {
	if hasHeatFlux {
		return RadiantEstimate{
			STemp:        DefaultRadiantTemperature,
			HeatFlowSum:  HeatFlowSum(patches),
			FromHeatFlux: true,
		}, nil
	}

	t, n, err := WallTemperature(patches)
	if err != nil {
		return RadiantEstimate{}, err
	}
	return RadiantEstimate{STemp: t, WallPatches: n}, nil
}

/*
Mean wall surface temperature.

	Args:
		patches: boundary patches

	Returns:
		(1) mean of the area weighted wall patch temperatures, degree C
		(2) number of wall patches with nonzero area

	Notes:
		Zero area patches are left out of both the sum and the count.
*/
func WallTemperature(patches []BoundaryPatch) (float64, int, error) {
	var sum float64
	n := 0
	for _, p := range patches {
		if !p.IsWall() {
			continue
		}

		area, t := faceColumns(p.Faces, func(f Face) float64 { return f.T })
		a := floats.Sum(area)
		if a == 0 {
			continue
		}

		sum += floats.Dot(area, t) / a
		n++
	}

	if n == 0 {
		return 0, 0, fmt.Errorf("radiant temperature: %w", ErrNoWallArea)
	}

	return sum/float64(n) - kelvin, n, nil
}

/*
Area weighted sum of the radiative heat flux over wall faces.

	Args:
		patches: boundary patches

	Returns:
		sum(area * Qr) - 273.15
*/
func HeatFlowSum(patches []BoundaryPatch) float64 {
	var sum float64
	for _, p := range patches {
		if !p.IsWall() {
			continue
		}
		area, qr := faceColumns(p.Faces, func(f Face) float64 { return f.Qr })
		sum += floats.Dot(area, qr)
	}
	return sum - kelvin
}

func faceColumns(faces []Face, get func(f Face) float64) ([]float64, []float64) {
	area := make([]float64, len(faces))
	value := make([]float64, len(faces))
	for i, f := range faces {
		area[i] = f.Area
		value[i] = get(f)
	}
	return area, value
}
