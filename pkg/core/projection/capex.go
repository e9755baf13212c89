package projection

import "github.com/shopspring/decimal"

// ExpandCapexRules materializes recurring capex items from their rules.
// Generated items carry the owning rule's ID so they can be distinguished
// from (and regenerated without touching) manually entered items.
func ExpandCapexRules(rules []CapexRule) []CapexItem {
	var items []CapexItem
	for _, rule := range rules {
		if rule.IntervalYears <= 0 || rule.EndYear < rule.StartYear {
			continue
		}
		id := rule.ID
		for year := rule.StartYear; year <= rule.EndYear; year += rule.IntervalYears {
			items = append(items, CapexItem{Year: year, Amount: rule.Amount, RuleID: &id})
		}
	}
	return items
}

// CapexSeries sums capital expenditure per year from manual items plus
// rule-generated items, sourcing historical years from actuals when
// recorded.
func CapexSeries(in *Input, src *metricSource) []decimal.Decimal {
	byYear := make(map[int]decimal.Decimal)
	for _, item := range in.Capex {
		byYear[item.Year] = byYear[item.Year].Add(item.Amount)
	}
	for _, item := range ExpandCapexRules(in.CapexRules) {
		byYear[item.Year] = byYear[item.Year].Add(item.Amount)
	}

	series := make([]decimal.Decimal, in.EndYear-in.StartYear+1)
	for year := in.StartYear; year <= in.EndYear; year++ {
		y := year
		series[year-in.StartYear] = src.resolve(MetricCapex, year, func() decimal.Decimal {
			return byYear[y]
		})
	}
	return series
}
