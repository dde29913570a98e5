package comfort

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

/*
Turbulence intensity of a cell.

	Args:
		u: air velocity, m/s

	Returns:
		turbulence intensity, %

	Notes:
		Tu = sqrt(1/3 * (Ux^2 + Uy^2 + Uz^2)) * 100, without normalising by the mean flow.
*/
func TurbulenceIntensity(u r3.Vec) float64 {
	if r3.Norm(u) == 0 {
		return 0
	}
	return math.Sqrt(1.0/3.0*(u.X*u.X+u.Y*u.Y+u.Z*u.Z)) * 100
}

/*
Draught rate of a cell.

	Args:
		t: air temperature, K
		v: air speed, m/s
		tu: turbulence intensity, %
		f: formulation

	Returns:
		draught rate, %, clamped to 0..100

	Notes:
		The legacy formula for v < 0.05 m/s subtracts 273.15 from (34 - T) instead of from T
		and uses the exponent 0.6223. ISO 7730 clamps v to 0.05 m/s and keeps one formula.
*/
func DraughtRate(t, v, tu float64, f Formulation) float64 {
	var dr float64
	switch f {
	case FormulationISO7730:
		if v < minDraughtVelocity {
			v = minDraughtVelocity
		}
		dr = (34 - (t - kelvin)) * math.Pow(v-minDraughtVelocity, 0.62) * (0.37*v*tu + 3.14)
	default:
		if v >= minDraughtVelocity {
			dr = (34 - (t - kelvin)) * math.Pow(v-minDraughtVelocity, 0.62) * (0.37*v*tu + 3.14)
		} else {
			dr = (34 - t - kelvin) * math.Pow(minDraughtVelocity, 0.6223) * (0.37*minDraughtVelocity*tu + 3.14)
		}
	}
	return clamp(dr, 0, 100)
}

// NaN (0 * Inf at extreme inputs) maps to lo.
func clamp(x, lo, hi float64) float64 {
	if math.IsNaN(x) {
		return lo
	}
	if x > hi {
		return hi
	}
	if x < lo {
		return lo
	}
	return x
}
