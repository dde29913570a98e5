package comfort

import (
	"fmt"
	"math"
)

// Parameters are the occupant and room constants of a run.
type Parameters struct {
	Clo float64 // clothing insulation, clo
	Met float64 // metabolic rate, met (1 met = 58.15 W/m2)
	Wme float64 // external work, met
	RH  float64 // relative humidity used when no humidity field is supplied, %
}

// Validate checks the physical range of every parameter.
func (p Parameters) Validate() error {
	for _, v := range []struct {
		name  string
		value float64
	}{
		{"clo", p.Clo},
		{"met", p.Met},
		{"wme", p.Wme},
		{"RH", p.RH},
	} {
		if math.IsNaN(v.value) || math.IsInf(v.value, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidParameter, v.name)
		}
	}
	if p.Clo < 0 {
		return fmt.Errorf("%w: clo must be >= 0, got %g", ErrInvalidParameter, p.Clo)
	}
	if p.Met <= 0 {
		return fmt.Errorf("%w: met must be > 0, got %g", ErrInvalidParameter, p.Met)
	}
	if p.Wme < 0 {
		return fmt.Errorf("%w: wme must be >= 0, got %g", ErrInvalidParameter, p.Wme)
	}
	if p.RH < 0 || p.RH > 100 {
		return fmt.Errorf("%w: RH must be within 0..100, got %g", ErrInvalidParameter, p.RH)
	}
	return nil
}

/*
Metabolic rate of the occupant.

	Returns:
		metabolic rate, W/m2
*/
func (p Parameters) metabolicRate() float64 {
	return p.Met * metUnit
}

/*
Internal heat production, metabolic rate minus external work.

	Returns:
		M - W, W/m2
*/
func (p Parameters) internalHeat() float64 {
	return p.Met*metUnit - p.Wme*metUnit
}

//---------------------------------------------------------------------------------------------------//

// Formulation selects between the inherited formulas and the ISO 7730 ones.
type Formulation string

const (
	FormulationLegacy  Formulation = "legacy"  // formulas reproduced as inherited
	FormulationISO7730 Formulation = "iso7730" // single DR formula, ordered a_korr bands
)

func (f Formulation) String() string {
	return string(f)
}

func FormulationFromString(s string) (Formulation, error) {
	switch f := Formulation(s); f {
	case FormulationLegacy, FormulationISO7730:
		return f, nil
	default:
		return FormulationLegacy, fmt.Errorf("%w: unknown formulation %q", ErrInvalidParameter, s)
	}
}

//---------------------------------------------------------------------------------------------------//

// PMVBand selects how the category PMV band is tested.
type PMVBand string

const (
	PMVBandLiteral   PMVBand = "literal"   // (PMV > -x || PMV < x), always true
	PMVBandSymmetric PMVBand = "symmetric" // (PMV > -x && PMV < x)
)

func (b PMVBand) String() string {
	return string(b)
}

func PMVBandFromString(s string) (PMVBand, error) {
	switch b := PMVBand(s); b {
	case PMVBandLiteral, PMVBandSymmetric:
		return b, nil
	default:
		return PMVBandLiteral, fmt.Errorf("%w: unknown pmv band %q", ErrInvalidParameter, s)
	}
}
