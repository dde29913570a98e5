package fields

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// timeRange is a closed interval of times; a single value has lo == hi.
type timeRange struct {
	lo float64
	hi float64
}

// Selection picks the times to process from those present in a case.
type Selection struct {
	ranges []timeRange
	latest bool
	noZero bool
}

/*
Parse a time selection.

	Args:
		expr: comma separated values and ranges, e.g. "0.5,100:200,:50,300:". Empty selects all.
		latest: select only the latest time
		noZero: exclude time 0

	Returns:
		selection
*/
func ParseSelection(expr string, latest, noZero bool) (Selection, error) {
	s := Selection{latest: latest, noZero: noZero}

	for _, part := range strings.Split(expr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		lo, hi, isRange := strings.Cut(part, ":")
		if !isRange {
			v, err := strconv.ParseFloat(part, 64)
			if err != nil {
				return Selection{}, fmt.Errorf("invalid time %q: %w", part, err)
			}
			s.ranges = append(s.ranges, timeRange{lo: v, hi: v})
			continue
		}

		r := timeRange{lo: math.Inf(-1), hi: math.Inf(1)}
		if lo = strings.TrimSpace(lo); lo != "" {
			v, err := strconv.ParseFloat(lo, 64)
			if err != nil {
				return Selection{}, fmt.Errorf("invalid time range %q: %w", part, err)
			}
			r.lo = v
		}
		if hi = strings.TrimSpace(hi); hi != "" {
			v, err := strconv.ParseFloat(hi, 64)
			if err != nil {
				return Selection{}, fmt.Errorf("invalid time range %q: %w", part, err)
			}
			r.hi = v
		}
		if r.lo > r.hi {
			return Selection{}, fmt.Errorf("invalid time range %q: start after end", part)
		}
		s.ranges = append(s.ranges, r)
	}

	return s, nil
}

/*
Apply the selection.

	Args:
		times: time names ascending by value, as returned by Case.Times

	Returns:
		selected time names, in the same order
*/
func (s Selection) Select(times []string) []string {
	var out []string
	for _, t := range times {
		v, err := strconv.ParseFloat(t, 64)
		if err != nil {
			continue
		}
		if s.noZero && v == 0 {
			continue
		}
		if len(s.ranges) > 0 && !s.contains(v) {
			continue
		}
		out = append(out, t)
	}

	if s.latest && len(out) > 1 {
		out = out[len(out)-1:]
	}
	return out
}

func (s Selection) contains(v float64) bool {
	for _, r := range s.ranges {
		if v >= r.lo && v <= r.hi {
			return true
		}
	}
	return false
}
