package comfort

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// CellInput is everything the cell solver needs for one cell.
type CellInput struct {
	T     float64 // air temperature, K
	U     r3.Vec  // air velocity, m/s
	STemp float64 // mean radiant temperature, degree C
	RH    float64 // relative humidity, %
}

/*
Solve the comfort indices of one cell.

	Args:
		in: cell state
		p: occupant parameters
		f: formulation

	Returns:
		comfort indices of the cell

	Notes:
		DIN EN ISO 7730, Fanger. A result with Converged == false stopped at MaxIterations
		and is a best-effort value.
*/
func SolveCell(in CellInput, p Parameters, f Formulation) CellResult {
	v := r3.Norm(in.U)
	theta_r := in.T - kelvin

	pa := WaterVapourPressure(in.RH, in.T)
	tu := TurbulenceIntensity(in.U)
	dr := DraughtRate(in.T, v, tu, f)

	i_cl := get_i_cl(p.Clo)
	f_cl := get_f_cl(i_cl)

	cs := solveClothingTemperature(clothingState{
		t:     in.T,
		v:     v,
		stemp: in.STemp,
		i_cl:  i_cl,
		f_cl:  f_cl,
		m_w:   p.internalHeat(),
	})

	// surface temperature of clothing, degree C
	t_cl := 100*cs.xn - 273

	hl := heatLoss{
		skin:          3.05e-3 * (5733 - 6.99*p.internalHeat() - pa),
		sweat:         get_sweat_loss(p.internalHeat()),
		latentRespire: 1.7e-5 * p.metabolicRate() * (5867 - pa),
		dryRespire:    0.0014 * p.metabolicRate() * (34 - theta_r),
		radiation:     3.96 * f_cl * (math.Pow(cs.xn, 4) - math.Pow((in.STemp+273)/100, 4)),
		convection:    f_cl * cs.hc * (t_cl - theta_r),
	}

	pmv := get_ts(p.metabolicRate()) * (p.internalHeat() - hl.total())

	a := OperativeWeight(v, f)

	return CellResult{
		RH:         in.RH,
		PA:         pa,
		Tu:         tu,
		DR:         dr,
		PMV:        pmv,
		PPD:        PPD(pmv),
		TOp:        OperativeTemperature(in.T, in.STemp, a),
		TCL:        t_cl,
		Iterations: cs.iterations,
		Converged:  cs.converged,
	}
}

/*
PPD from PMV.

	Args:
		pmv: predicted mean vote

	Returns:
		predicted percentage of dissatisfied, %
*/
func PPD(pmv float64) float64 {
	pmv2 := pmv * pmv
	pmv4 := pmv2 * pmv2
	return 100.0 - 95.0*math.Exp(-0.03353*pmv4-0.2179*pmv2)
}

//---------------------------------------------------------------------------------------------------//

// clothingState is the fixed input of the clothing surface temperature loop.
type clothingState struct {
	t     float64 // air temperature, K
	v     float64 // air speed, m/s
	stemp float64 // mean radiant temperature, degree C
	i_cl  float64 // clothing insulation, m2K/W
	f_cl  float64 // clothing area factor
	m_w   float64 // M - W, W/m2
}

// clothingSolution is the state of the loop when it stopped.
type clothingSolution struct {
	xn         float64 // clothing surface temperature / 100, K
	xf         float64 // previous estimate
	hc         float64 // convective heat transfer coefficient, W/m2K
	iterations int
	converged  bool
}

/*
Fixed-point iteration of the clothing surface temperature.

	Args:
		s: fixed input

	Returns:
		state at convergence or at the iteration cap

	Notes:
		XF is averaged with XN before each step. The loop stops when |XN - XF| <= 0.0015
		or after MaxIterations steps; hitting the cap is not an error.
*/
func solveClothingTemperature(s clothingState) clothingSolution {
	p1 := s.i_cl * s.f_cl
	p2 := p1 * 3.96
	p3 := p1 * 100
	p4 := p1 * s.t
	p5 := 308.7 - 0.028*s.m_w + p2*math.Pow((s.stemp+273.0)/100, 4)

	// heat transfer coefficient by forced convection
	hcf := 12.1 * math.Sqrt(s.v)

	tcla := s.t + (35.5-(s.t-kelvin))/(3.5*6.45*(s.i_cl+0.1))

	st := clothingSolution{
		xn: tcla / 100,
		xf: tcla / 50,
	}

	for st.iterations < MaxIterations {
		st.iterations++
		st.xf = (st.xf + st.xn) / 2

		// heat transfer coefficient by natural convection
		hcn := 2.38 * math.Pow(math.Abs(100*st.xf-s.t), 0.25)
		st.hc = math.Max(hcf, hcn)

		st.xn = (p5 + p4*st.hc - p2*math.Pow(st.xf, 4)) / (100 + p3*st.hc)

		if math.Abs(st.xn-st.xf) <= ConvergenceTolerance {
			st.converged = true
			break
		}
	}

	return st
}

//---------------------------------------------------------------------------------------------------//

// heatLoss are the heat loss terms of the occupant, W/m2.
type heatLoss struct {
	skin          float64 // diffusion through skin
	sweat         float64 // sweating
	latentRespire float64 // latent respiration
	dryRespire    float64 // dry respiration
	radiation     float64
	convection    float64
}

func (h heatLoss) total() float64 {
	return h.skin + h.sweat + h.latentRespire + h.dryRespire + h.radiation + h.convection
}

/*
Heat loss by sweating.

	Args:
		m_w: M - W, W/m2

	Returns:
		heat loss, W/m2

	Notes:
		Zero up to the 58.15 W/m2 baseline.
*/
func get_sweat_loss(m_w float64) float64 {
	if m_w > metUnit {
		return 0.42 * (m_w - metUnit)
	}
	return 0
}

/*
Thermal sensation transfer coefficient.

	Args:
		m: metabolic rate, W/m2
*/
func get_ts(m float64) float64 {
	return 0.303*math.Exp(-0.036*m) + 0.028
}

/*
Clothing insulation from the clo value.

	Notes:
		1 clo = 0.155 m2K/W
*/
func get_i_cl(clo float64) float64 {
	return clo * cloUnit
}

/*
Clothing area factor.

	Args:
		i_cl: clothing insulation, m2K/W
*/
func get_f_cl(i_cl float64) float64 {
	if i_cl < 0.078 {
		return 1.00 + 1.290*i_cl
	}
	return 1.05 + 0.645*i_cl
}
