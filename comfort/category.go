package comfort

// Category is the ISO 7730 comfort category of a room.
type Category string

const (
	CategoryNone Category = ""
	CategoryA    Category = "A"
	CategoryB    Category = "B"
	CategoryC    Category = "C"
)

// Label is the text used in the report, empty when unclassified.
func (c Category) Label() string {
	if c == CategoryNone {
		return ""
	}
	return "Category " + string(c)
}

func (c Category) String() string {
	if c == CategoryNone {
		return "none"
	}
	return string(c)
}

// categoryRule is one ISO 7730 band. A mean result falls in the band when its PMV lies within
// +-pmv and DR and PPD are below their limits.
type categoryRule struct {
	category Category
	pmv      float64
	dr       float64 // %
	ppd      float64 // %
}

// Tested in order, the first match wins.
var categoryRules = []categoryRule{
	{category: CategoryA, pmv: 0.2, dr: 10, ppd: 6},
	{category: CategoryB, pmv: 0.5, dr: 20, ppd: 10},
	{category: CategoryC, pmv: 0.7, dr: 30, ppd: 15},
}

func (r categoryRule) matches(pmv, dr, ppd float64, band PMVBand) bool {
	var inBand bool
	switch band {
	case PMVBandSymmetric:
		inBand = pmv > -r.pmv && pmv < r.pmv
	default:
		inBand = pmv > -r.pmv || pmv < r.pmv
	}
	return inBand && dr < r.dr && ppd < r.ppd
}

/*
Classify mean comfort values.

	Args:
		pmv: mean PMV
		dr: mean draught rate, %
		ppd: mean PPD, %
		band: how the PMV band is tested

	Returns:
		first matching category, CategoryNone when no band matches
*/
func Classify(pmv, dr, ppd float64, band PMVBand) Category {
	for _, r := range categoryRules {
		if r.matches(pmv, dr, ppd, band) {
			return r.category
		}
	}
	return CategoryNone
}
