// Package simulation turns a consumption profile and an installed array size
// into an hourly energy flow.
package simulation

import (
	"fmt"
	"math"

	"github.com/solaradvisor/solaradvisor/pkg/types"
)

// generationCurve is the normalized share of daily output produced in each
// hour, peaking at 1.0 at noon.
var generationCurve = [types.HoursPerDay]float64{
	0.00, 0.00, 0.00, 0.00, 0.00, 0.00, // 00-05
	0.05, 0.25, 0.50, 0.70, 0.85, 0.95, // 06-11
	1.00, 0.95, 0.85, 0.70, 0.50, 0.25, // 12-17
	0.05, 0.00, 0.00, 0.00, 0.00, 0.00, // 18-23
}

// GenerationCurve returns a copy of the normalized hourly generation curve.
func GenerationCurve() [types.HoursPerDay]float64 {
	return generationCurve
}

// EstimateGeneration scales the generation curve by the array size.
// The daily yield is systemPowerKW*peakSunHours; dividing it back by
// peakSunHours makes each hour's output curve[h]*systemPowerKW.
func EstimateGeneration(systemPowerKW, peakSunHours float64) ([types.HoursPerDay]float64, error) {
	var gen [types.HoursPerDay]float64
	if peakSunHours == 0 {
		return gen, fmt.Errorf("%w: peakSunHours is zero", types.ErrDomain)
	}
	if math.IsNaN(peakSunHours) || peakSunHours < 0 {
		return gen, fmt.Errorf("%w: peakSunHours must be positive", types.ErrValidation)
	}
	if math.IsNaN(systemPowerKW) || systemPowerKW <= 0 {
		return gen, fmt.Errorf("%w: systemPower must be positive", types.ErrValidation)
	}

	dailyGeneration := systemPowerKW * peakSunHours
	for h, factor := range generationCurve {
		gen[h] = factor * dailyGeneration / peakSunHours
	}
	return gen, nil
}
