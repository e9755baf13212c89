// Package period classifies calendar years of the 30-year planning horizon
// into the three sourcing regimes: historical actuals, admin-overridden
// transition years, and fully formula-driven dynamic years.
package period

import "fmt"

// Horizon boundaries. The operating model is fixed to 2023-2052.
const (
	HorizonStart    = 2023
	TransitionStart = 2025
	DynamicStart    = 2028
	HorizonEnd      = 2052

	// HorizonYears is the total number of projected years.
	HorizonYears = HorizonEnd - HorizonStart + 1
)

// Period identifies the sourcing regime of a calendar year.
type Period int

const (
	Historical Period = iota // 2023-2024, uploaded actuals
	Transition               // 2025-2027, admin enrollment/staff overrides
	Dynamic                  // 2028-2052, formula-driven
)

func (p Period) String() string {
	switch p {
	case Historical:
		return "HISTORICAL"
	case Transition:
		return "TRANSITION"
	case Dynamic:
		return "DYNAMIC"
	}
	return fmt.Sprintf("Period(%d)", int(p))
}

// Classify maps a year inside the horizon to its period. Years before the
// transition boundary are historical; years before the dynamic boundary are
// transition; everything else is dynamic.
func Classify(year int) Period {
	switch {
	case year < TransitionStart:
		return Historical
	case year < DynamicStart:
		return Transition
	default:
		return Dynamic
	}
}

// InHorizon reports whether a year falls inside the modeled range.
func InHorizon(year int) bool {
	return year >= HorizonStart && year <= HorizonEnd
}
