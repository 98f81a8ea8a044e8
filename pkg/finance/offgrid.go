package finance

import "github.com/solaradvisor/solaradvisor/pkg/types"

// BatteryOnly is an off-grid system. It assumes the battery always covers the
// whole load, so every kWh consumed counts as a saving whatever the battery
// size, and self-consumption is always 100% with no grid dependency.
type BatteryOnly struct{}

var _ Model = BatteryOnly{}

func (BatteryOnly) SystemType() types.SystemType {
	return types.SystemOffGrid
}

func (BatteryOnly) Analyze(flow []types.EnergyFlowRecord, costs Costs) (types.ROIAnalysis, error) {
	t := types.SumFlow(flow)

	monthlySavings := t.Consumption * DaysPerMonth * costs.ElectricityRate
	investment := costs.SystemCost + costs.BatteryCost
	totalCost := investment + float64(batteryReplacements())*costs.BatteryCost

	a := types.ROIAnalysis{
		SystemType:          types.SystemOffGrid,
		InitialInvestment:   investment,
		MonthlySavings:      monthlySavings,
		PaybackPeriod:       paybackYears(investment, monthlySavings),
		ROI25Years:          roiPercent(monthlySavings, totalCost),
		NPV:                 npv(investment, batteryCashFlow(monthlySavings*12, costs.BatteryCost)),
		SelfConsumptionRate: 100,
		GridDependency:      0,
	}
	return a, a.Finite()
}
