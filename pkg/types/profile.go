package types

import (
	"fmt"
	"math"
)

// HoursPerDay is the length of every hourly series in the model.
const HoursPerDay = 24

// ConsumptionPattern names the shape used to spread a daily total over the day.
type ConsumptionPattern string

const (
	PatternResidential ConsumptionPattern = "residential"
	PatternCommercial  ConsumptionPattern = "commercial"
	PatternIndustrial  ConsumptionPattern = "industrial"
	PatternCustom      ConsumptionPattern = "custom"
)

// Valid returns true if p is one of the known patterns.
func (p ConsumptionPattern) Valid() bool {
	switch p {
	case PatternResidential, PatternCommercial, PatternIndustrial, PatternCustom:
		return true
	}
	return false
}

// HourlyConsumption is the energy used in a single hour of the day.
type HourlyConsumption struct {
	Hour        int     `json:"hour"`
	Consumption float64 `json:"consumption"` // kWh
}

// ConsumptionProfile is a 24 hour consumption series along with its summary.
type ConsumptionProfile struct {
	Pattern         ConsumptionPattern  `json:"pattern"`
	HourlyData      []HourlyConsumption `json:"hourlyData"`
	TotalDaily      float64             `json:"totalDaily"` // kWh
	PeakHour        int                 `json:"peakHour"`
	PeakConsumption float64             `json:"peakConsumption"` // kWh
}

// Validate checks the shape of the hourly series. The summary fields are not
// checked, use Summarize to recompute them.
func (p ConsumptionProfile) Validate() error {
	if p.Pattern != "" && !p.Pattern.Valid() {
		return fmt.Errorf("%w: unknown consumption pattern: %s", ErrValidation, p.Pattern)
	}
	if len(p.HourlyData) != HoursPerDay {
		return fmt.Errorf("%w: hourlyData must have %d entries, got %d", ErrValidation, HoursPerDay, len(p.HourlyData))
	}
	for i, h := range p.HourlyData {
		if h.Hour != i {
			return fmt.Errorf("%w: hourlyData[%d] has hour %d", ErrValidation, i, h.Hour)
		}
		if math.IsNaN(h.Consumption) || math.IsInf(h.Consumption, 0) || h.Consumption < 0 {
			return fmt.Errorf("%w: hourlyData[%d] consumption must be a non-negative number", ErrValidation, i)
		}
	}
	return nil
}

// Summarize returns a copy of p with TotalDaily, PeakHour and PeakConsumption
// computed from HourlyData. Ties for the peak go to the earliest hour.
func (p ConsumptionProfile) Summarize() ConsumptionProfile {
	hourly := make([]HourlyConsumption, len(p.HourlyData))
	copy(hourly, p.HourlyData)

	out := ConsumptionProfile{
		Pattern:    p.Pattern,
		HourlyData: hourly,
	}
	for i, h := range hourly {
		out.TotalDaily += h.Consumption
		if i == 0 || h.Consumption > out.PeakConsumption {
			out.PeakHour = h.Hour
			out.PeakConsumption = h.Consumption
		}
	}
	return out
}
