package comfort

// velocityRule assigns the operative temperature weight a_korr to an air speed.
type velocityRule struct {
	match  func(v float64) bool
	weight float64
}

// Evaluated top to bottom, the last matching rule wins. The second guard is an OR of both
// bounds and matches every speed, so 0.5 is always overwritten.
var legacyOperativeRules = []velocityRule{
	{match: func(v float64) bool { return v < 0.2 }, weight: 0.5},
	{match: func(v float64) bool { return v >= 0.2 || v <= 0.6 }, weight: 0.6},
	{match: func(v float64) bool { return v > 0.6 }, weight: 0.7},
}

// Evaluated top to bottom, the first matching rule wins.
var isoOperativeRules = []velocityRule{
	{match: func(v float64) bool { return v < 0.2 }, weight: 0.5},
	{match: func(v float64) bool { return v <= 0.6 }, weight: 0.6},
	{match: func(v float64) bool { return true }, weight: 0.7},
}

/*
Weight of the air temperature in the operative temperature (a_korr, DIN EN ISO 7730).

	Args:
		v: air speed, m/s
		f: formulation

	Returns:
		a_korr
*/
func OperativeWeight(v float64, f Formulation) float64 {
	if f == FormulationISO7730 {
		for _, r := range isoOperativeRules {
			if r.match(v) {
				return r.weight
			}
		}
		return 0
	}

	a := 0.0
	for _, r := range legacyOperativeRules {
		if r.match(v) {
			a = r.weight
		}
	}
	return a
}

/*
Operative temperature.

	Args:
		t: air temperature, K
		stemp: mean radiant temperature, degree C
		a: a_korr

	Returns:
		operative temperature, K
*/
func OperativeTemperature(t, stemp, a float64) float64 {
	return a*t + (1-a)*(stemp+kelvin)
}
