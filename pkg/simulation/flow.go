package simulation

import (
	"fmt"
	"math"

	"github.com/solaradvisor/solaradvisor/pkg/types"
)

// SimulateFlow balances consumption against generation for every hour.
// Hours are independent of each other and the result is ordered by hour.
func SimulateFlow(profile types.ConsumptionProfile, generation [types.HoursPerDay]float64) ([]types.EnergyFlowRecord, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	flow := make([]types.EnergyFlowRecord, 0, types.HoursPerDay)
	for h, hc := range profile.HourlyData {
		solar := generation[h]
		if math.IsNaN(solar) || math.IsInf(solar, 0) || solar < 0 {
			return nil, fmt.Errorf("%w: generation for hour %d must be a non-negative number", types.ErrValidation, h)
		}
		flow = append(flow, balanceHour(hc.Hour, hc.Consumption, solar))
	}
	return flow, nil
}

// Simulate estimates generation for the array and runs SimulateFlow.
func Simulate(profile types.ConsumptionProfile, systemPowerKW, peakSunHours float64) ([]types.EnergyFlowRecord, error) {
	gen, err := EstimateGeneration(systemPowerKW, peakSunHours)
	if err != nil {
		return nil, err
	}
	return SimulateFlow(profile, gen)
}

func balanceHour(hour int, consumption, solar float64) types.EnergyFlowRecord {
	r := types.EnergyFlowRecord{
		Hour:            hour,
		Consumption:     consumption,
		SolarGeneration: solar,
		DirectUse:       math.Min(consumption, solar),
	}
	if solar > consumption {
		r.ExcessEnergy = solar - consumption
	} else {
		r.GridImport = consumption - solar
	}
	return r
}
