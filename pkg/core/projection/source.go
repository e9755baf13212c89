package projection

import (
	"school_projection/pkg/core/period"

	"github.com/shopspring/decimal"
)

// Metric names the five per-year aggregates that can be sourced from
// uploaded actuals.
type Metric int

const (
	MetricRevenue Metric = iota
	MetricStaffCost
	MetricRent
	MetricOpex
	MetricCapex
)

// metricSource is the single point where the historical/transition/dynamic
// branch lives. Every calculator asks it for "the value of metric m in year
// y, with this formula as fallback" instead of re-implementing the
// three-way split.
type metricSource struct {
	actuals    map[int]ActualsRecord
	transition map[int]TransitionYearData
}

func newMetricSource(in *Input) *metricSource {
	src := &metricSource{
		actuals:    make(map[int]ActualsRecord, len(in.Actuals)),
		transition: make(map[int]TransitionYearData, len(in.Transition)),
	}
	for _, rec := range in.Actuals {
		src.actuals[rec.Year] = rec
	}
	for _, td := range in.Transition {
		src.transition[td.Year] = td
	}
	return src
}

func (s *metricSource) actual(year int) (ActualsRecord, bool) {
	rec, ok := s.actuals[year]
	return rec, ok
}

func (s *metricSource) transitionData(year int) (TransitionYearData, bool) {
	td, ok := s.transition[year]
	return td, ok
}

// resolve returns the uploaded actual for historical years when one exists,
// and the formula result otherwise. The formula closure is only evaluated
// when needed.
func (s *metricSource) resolve(m Metric, year int, formula func() decimal.Decimal) decimal.Decimal {
	if period.Classify(year) == period.Historical {
		if rec, ok := s.actuals[year]; ok {
			return metricFrom(rec, m)
		}
	}
	return formula()
}

func metricFrom(rec ActualsRecord, m Metric) decimal.Decimal {
	switch m {
	case MetricRevenue:
		return rec.Revenue
	case MetricStaffCost:
		return rec.StaffCost
	case MetricRent:
		return rec.Rent
	case MetricOpex:
		return rec.Opex
	case MetricCapex:
		return rec.Capex
	}
	return decimal.Zero
}
