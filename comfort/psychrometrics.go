package comfort

import "math"

/*
Saturation water vapour pressure (ASHRAE / ISO correlation over liquid water).

	Args:
		t: air temperature, K

	Returns:
		saturation water vapour pressure, Pa
*/
func SaturationPressure(t float64) float64 {
	const c1 = -0.58002206e4
	const c2 = 0.13914993e1
	const c3 = -0.48640239e-1
	const c4 = 0.41764768e-4
	const c5 = -0.14452093e-7
	const c6 = 0.65459673e1

	return math.Exp(c1/t + c2 + c3*t + c4*t*t + c5*t*t*t + c6*math.Log(t))
}

/*
Partial water vapour pressure from the humidity ratio.

	Args:
		p_rgh: pressure deviation from the hydrostatic state, Pa
		w: humidity ratio, kg/kg(DA)

	Returns:
		partial water vapour pressure, Pa
*/
func VapourPressureFromRatio(p_rgh, w float64) float64 {
	return ((atmosphericPressure + p_rgh) * w) / (molarRatio + (1-molarRatio)*w)
}

/*
Humidity ratio from the partial water vapour pressure, inverse of VapourPressureFromRatio.

	Args:
		p_rgh: pressure deviation from the hydrostatic state, Pa
		p_w: partial water vapour pressure, Pa

	Returns:
		humidity ratio, kg/kg(DA)
*/
func ratioFromVapourPressure(p_rgh, p_w float64) float64 {
	return molarRatio * p_w / (atmosphericPressure + p_rgh - (1-molarRatio)*p_w)
}

/*
Water vapour pressure used in the heat balance of the occupant.

	Args:
		rh: relative humidity, %
		t: air temperature, K

	Returns:
		water vapour pressure, Pa
*/
func WaterVapourPressure(rh, t float64) float64 {
	return rh * 10 * math.Exp(16.6563-4030.183/(t-kelvin+235))
}

//---------------------------------------------------------------------------------------------------//

// HumidityMode tells where the relative humidity of a cell comes from.
type HumidityMode string

const (
	HumidityConstant HumidityMode = "constant" // constant RH of the parameters
	HumidityField    HumidityMode = "field"    // derived from p_rgh, w and T
)

// HumidityResolver computes the relative humidity of each cell of a snapshot.
type HumidityResolver struct {
	mode HumidityMode
	rh   float64
}

// NewHumidityResolver picks the field mode when the snapshot carries a humidity ratio field.
func NewHumidityResolver(hasField bool, rh float64) HumidityResolver {
	if hasField {
		return HumidityResolver{mode: HumidityField, rh: rh}
	}
	return HumidityResolver{mode: HumidityConstant, rh: rh}
}

func (h HumidityResolver) Mode() HumidityMode {
	return h.mode
}

/*
Relative humidity of a cell.

	Args:
		c: cell with T, p_rgh and w

	Returns:
		relative humidity, %
*/
func (h HumidityResolver) RelativeHumidity(c Cell) float64 {
	if h.mode == HumidityConstant {
		return h.rh
	}
	p_w := VapourPressureFromRatio(c.PRgh, c.W)
	p_ws := SaturationPressure(c.T)
	return p_w / p_ws * 100
}
