package comfort

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		pmv  float64
		dr   float64
		ppd  float64
		band PMVBand
		want Category
	}{
		{"A", 0.1, 5, 3, PMVBandLiteral, CategoryA},
		{"B when PPD fails A", 0.4, 15, 8, PMVBandLiteral, CategoryB},
		{"C any pmv", 2.5, 25, 12, PMVBandLiteral, CategoryC},
		{"C negative pmv", -2.5, 25, 12, PMVBandLiteral, CategoryC},
		{"none", 0, 35, 3, PMVBandLiteral, CategoryNone},
		{"literal ignores pmv", -1.5, 5, 3, PMVBandLiteral, CategoryA},
		{"symmetric A", 0.1, 5, 3, PMVBandSymmetric, CategoryA},
		{"symmetric falls to B", 0.3, 5, 3, PMVBandSymmetric, CategoryB},
		{"symmetric falls to C", -0.6, 5, 3, PMVBandSymmetric, CategoryC},
		{"symmetric none", -1.5, 5, 3, PMVBandSymmetric, CategoryNone},
		{"bounds are strict", 0.1, 10, 6, PMVBandLiteral, CategoryB},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.pmv, tt.dr, tt.ppd, tt.band))
		})
	}
}

func TestCategoryLabel(t *testing.T) {
	assert.Equal(t, "Category A", CategoryA.Label())
	assert.Equal(t, "Category C", CategoryC.Label())
	assert.Equal(t, "", CategoryNone.Label())
	assert.Equal(t, "none", CategoryNone.String())
	assert.Equal(t, "B", CategoryB.String())
}

func TestOperativeWeight(t *testing.T) {
	tests := []struct {
		v      float64
		legacy float64
		iso    float64
	}{
		{0, 0.6, 0.5},
		{0.19, 0.6, 0.5},
		{0.2, 0.6, 0.6},
		{0.6, 0.6, 0.6},
		{0.61, 0.7, 0.7},
		{3, 0.7, 0.7},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.legacy, OperativeWeight(tt.v, FormulationLegacy), "legacy v=%g", tt.v)
		assert.Equal(t, tt.iso, OperativeWeight(tt.v, FormulationISO7730), "iso v=%g", tt.v)
	}
}

func TestOperativeTemperature(t *testing.T) {
	assert.InDelta(t, 0.6*296.15+0.4*(20+273.15), OperativeTemperature(296.15, 20, 0.6), 1e-9)
	assert.InDelta(t, 293.15, OperativeTemperature(293.15, 20, 0.7), 1e-9)
}
