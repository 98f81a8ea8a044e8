package finance

import (
	"math"

	"github.com/solaradvisor/solaradvisor/pkg/types"
)

// Hybrid is a grid connected system with a battery. The battery stores the
// day's excess up to its capacity and discharges it in place of grid imports.
// Whatever doesn't fit is exported.
type Hybrid struct{}

var _ Model = Hybrid{}

func (Hybrid) SystemType() types.SystemType {
	return types.SystemHybrid
}

// BatteryCapacityKWH is the usable capacity a battery budget buys.
func BatteryCapacityKWH(batteryCost float64) float64 {
	return batteryCost / BatteryCostPerKWH
}

func (Hybrid) Analyze(flow []types.EnergyFlowRecord, costs Costs) (types.ROIAnalysis, error) {
	t := types.SumFlow(flow)

	stored := math.Min(t.Excess, BatteryCapacityKWH(costs.BatteryCost))
	excessToGrid := t.Excess - stored
	gridImportReduced := math.Max(0, t.GridImport-stored)

	savingsFromSolar := t.DirectUse * DaysPerMonth * costs.ElectricityRate
	savingsFromBattery := stored * DaysPerMonth * costs.ElectricityRate
	incomeFromExcess := excessToGrid * DaysPerMonth * costs.FeedInTariff
	monthlySavings := savingsFromSolar + savingsFromBattery + incomeFromExcess

	investment := costs.SystemCost + costs.BatteryCost
	totalCost := investment + float64(batteryReplacements())*costs.BatteryCost

	a := types.ROIAnalysis{
		SystemType:          types.SystemHybrid,
		InitialInvestment:   investment,
		MonthlySavings:      monthlySavings,
		PaybackPeriod:       paybackYears(investment, monthlySavings),
		ROI25Years:          roiPercent(monthlySavings, totalCost),
		NPV:                 npv(investment, batteryCashFlow(monthlySavings*12, costs.BatteryCost)),
		SelfConsumptionRate: Percent(t.DirectUse+stored, t.DirectUse+t.Excess),
		GridDependency:      Percent(gridImportReduced, t.Consumption),
	}
	return a, a.Finite()
}
