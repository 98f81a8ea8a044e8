// Package profile builds 24 hour consumption profiles, either from one of the
// built-in patterns or from caller supplied hourly values.
package profile

import (
	"fmt"
	"math"

	"github.com/solaradvisor/solaradvisor/pkg/types"
)

// FromPattern spreads dailyKWH over the day following the shape of pattern.
func FromPattern(pattern types.ConsumptionPattern, dailyKWH float64) (types.ConsumptionProfile, error) {
	factors, ok := Pattern(pattern)
	if !ok {
		return types.ConsumptionProfile{}, fmt.Errorf("%w: no built-in consumption pattern: %s", types.ErrValidation, pattern)
	}
	if math.IsNaN(dailyKWH) || math.IsInf(dailyKWH, 0) || dailyKWH < 0 {
		return types.ConsumptionProfile{}, fmt.Errorf("%w: daily consumption must be a non-negative number", types.ErrValidation)
	}

	var sum float64
	for _, f := range factors {
		sum += f
	}

	hourly := make([]types.HourlyConsumption, types.HoursPerDay)
	for h, f := range factors {
		hourly[h] = types.HourlyConsumption{
			Hour:        h,
			Consumption: f * dailyKWH / sum,
		}
	}
	return types.ConsumptionProfile{
		Pattern:    pattern,
		HourlyData: hourly,
	}.Summarize(), nil
}

// FromHourly builds a custom profile from 24 hourly values, hour 0 first.
func FromHourly(values []float64) (types.ConsumptionProfile, error) {
	hourly := make([]types.HourlyConsumption, len(values))
	for h, v := range values {
		hourly[h] = types.HourlyConsumption{Hour: h, Consumption: v}
	}
	p := types.ConsumptionProfile{
		Pattern:    types.PatternCustom,
		HourlyData: hourly,
	}
	if err := p.Validate(); err != nil {
		return types.ConsumptionProfile{}, err
	}
	return p.Summarize(), nil
}
