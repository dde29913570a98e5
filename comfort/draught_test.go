package comfort

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestTurbulenceIntensity(t *testing.T) {
	assert.Equal(t, 0.0, TurbulenceIntensity(r3.Vec{}))
	assert.InDelta(t, 100*math.Sqrt(1.0/3.0), TurbulenceIntensity(r3.Vec{X: 1}), 1e-12)
	assert.InDelta(t, 100.0, TurbulenceIntensity(r3.Vec{X: 1, Y: -1, Z: 1}), 1e-12)
}

func TestDraughtRate_Legacy(t *testing.T) {
	tests := []struct {
		name string
		t    float64
		v    float64
		tu   float64
		want float64
	}{
		{"moving air", 293.15, 0.1, 5.773502691896258, 7.328299960772887},
		{"at threshold", 293.15, 0.05, 10, 0},
		// the low speed branch subtracts 273.15 from (34 - T), which is always negative
		{"still air", 293.15, 0.01, 10, 0},
		{"fast cold air", 283.15, 2, 40, 100},
		{"hot air", 310.15, 0.5, 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, DraughtRate(tt.t, tt.v, tt.tu, FormulationLegacy), 1e-6)
		})
	}
}

func TestDraughtRate_ISO7730(t *testing.T) {
	// below 0.05 m/s the speed is clamped and the formula yields 0
	assert.Equal(t, 0.0, DraughtRate(293.15, 0.01, 10, FormulationISO7730))

	want := (34 - 20.0) * math.Pow(0.15, 0.62) * (0.37*0.2*20 + 3.14)
	assert.InDelta(t, want, DraughtRate(293.15, 0.2, 20, FormulationISO7730), 1e-9)
	assert.InDelta(t,
		DraughtRate(293.15, 0.2, 20, FormulationLegacy),
		DraughtRate(293.15, 0.2, 20, FormulationISO7730), 1e-12)
}

func TestDraughtRate_Bounded(t *testing.T) {
	rnd := rand.New(rand.NewSource(7730))
	for i := 0; i < 5000; i++ {
		temp := 200 + rnd.Float64()*200
		u := r3.Vec{X: rnd.NormFloat64() * 3, Y: rnd.NormFloat64() * 3, Z: rnd.NormFloat64() * 3}
		v := r3.Norm(u)
		tu := TurbulenceIntensity(u)
		for _, f := range []Formulation{FormulationLegacy, FormulationISO7730} {
			dr := DraughtRate(temp, v, tu, f)
			assert.GreaterOrEqual(t, dr, 0.0)
			assert.LessOrEqual(t, dr, 100.0)
		}
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, clamp(-1, 0, 100))
	assert.Equal(t, 100.0, clamp(1e300, 0, 100))
	assert.Equal(t, 42.0, clamp(42, 0, 100))
	assert.Equal(t, 0.0, clamp(math.NaN(), 0, 100))
}
