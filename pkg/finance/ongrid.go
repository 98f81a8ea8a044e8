package finance

import "github.com/solaradvisor/solaradvisor/pkg/types"

// GridTied is a grid connected system without storage. Solar used directly
// offsets purchases and the excess is sold at the feed-in tariff.
type GridTied struct{}

var _ Model = GridTied{}

func (GridTied) SystemType() types.SystemType {
	return types.SystemOnGrid
}

func (GridTied) Analyze(flow []types.EnergyFlowRecord, costs Costs) (types.ROIAnalysis, error) {
	t := types.SumFlow(flow)

	savingsFromSolar := t.DirectUse * DaysPerMonth * costs.ElectricityRate
	incomeFromExcess := t.Excess * DaysPerMonth * costs.FeedInTariff
	monthlySavings := savingsFromSolar + incomeFromExcess
	annualSavings := monthlySavings * 12

	a := types.ROIAnalysis{
		SystemType:        types.SystemOnGrid,
		InitialInvestment: costs.SystemCost,
		MonthlySavings:    monthlySavings,
		PaybackPeriod:     paybackYears(costs.SystemCost, monthlySavings),
		ROI25Years:        roiPercent(monthlySavings, costs.SystemCost),
		NPV: npv(costs.SystemCost, func(int) float64 {
			return annualSavings
		}),
		SelfConsumptionRate: Percent(t.DirectUse, t.DirectUse+t.Excess),
		GridDependency:      Percent(t.GridImport, t.Consumption),
	}
	return a, a.Finite()
}
