package profile

import "github.com/solaradvisor/solaradvisor/pkg/types"

// Relative hourly consumption factors for each built-in pattern, hour 0 first.
// Only the shape matters; FromPattern normalises them onto a daily total.
var (
	residential = [types.HoursPerDay]float64{
		0.15, 0.12, 0.10, 0.10, 0.12, 0.20, // 00-05
		0.35, 0.45, 0.40, 0.30, 0.25, 0.30, // 06-11
		0.40, 0.35, 0.30, 0.35, 0.45, 0.55, // 12-17
		0.70, 0.75, 0.65, 0.50, 0.35, 0.25, // 18-23
	}
	commercial = [types.HoursPerDay]float64{
		0.10, 0.10, 0.10, 0.10, 0.15, 0.25,
		0.50, 0.75, 1.00, 0.95, 0.90, 0.85,
		0.80, 0.85, 0.90, 0.95, 0.90, 0.75,
		0.50, 0.30, 0.20, 0.15, 0.10, 0.10,
	}
	industrial = [types.HoursPerDay]float64{
		0.85, 0.85, 0.85, 0.85, 0.85, 0.90,
		0.95, 1.00, 1.00, 1.00, 1.00, 1.00,
		0.95, 1.00, 1.00, 1.00, 1.00, 0.95,
		0.90, 0.85, 0.85, 0.85, 0.85, 0.85,
	}
)

// Pattern returns the factor table for p. Arrays are returned by value so
// callers can't change the tables.
func Pattern(p types.ConsumptionPattern) ([types.HoursPerDay]float64, bool) {
	switch p {
	case types.PatternResidential:
		return residential, true
	case types.PatternCommercial:
		return commercial, true
	case types.PatternIndustrial:
		return industrial, true
	}
	return [types.HoursPerDay]float64{}, false
}

// Patterns returns every built-in factor table keyed by pattern name.
func Patterns() map[types.ConsumptionPattern][types.HoursPerDay]float64 {
	return map[types.ConsumptionPattern][types.HoursPerDay]float64{
		types.PatternResidential: residential,
		types.PatternCommercial:  commercial,
		types.PatternIndustrial:  industrial,
	}
}
