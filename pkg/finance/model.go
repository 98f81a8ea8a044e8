// Package finance scores an energy flow for each installation architecture.
package finance

import (
	"math"

	"github.com/solaradvisor/solaradvisor/pkg/types"
)

const (
	// DaysPerMonth scales daily energy to a month. Flat, not calendar based.
	DaysPerMonth = 30
	// HorizonYears is how long every projection runs.
	HorizonYears = 25
	// DiscountRate is the annual rate used for NPV.
	DiscountRate = 0.05
	// BatteryLifeYears is how often the battery has to be bought again.
	BatteryLifeYears = 10
	// BatteryCostPerKWH sizes the battery from its budget.
	BatteryCostPerKWH = 500.0
)

// Costs are the prices and tariffs shared by every model.
type Costs struct {
	// SystemCost is panels, inverter and installation.
	SystemCost      float64
	BatteryCost     float64
	ElectricityRate float64
	FeedInTariff    float64
}

// CostsFor pulls the costs out of an analysis request.
func CostsFor(req types.AnalysisRequest) Costs {
	return Costs{
		SystemCost:      req.SystemCost(),
		BatteryCost:     req.BatteryBudget,
		ElectricityRate: req.ElectricityRate,
		FeedInTariff:    req.FeedInTariff,
	}
}

// Model turns an energy flow into the scorecard of one architecture. Analyze
// returns an error wrapping types.ErrInternal if any field of the scorecard is
// not finite.
type Model interface {
	SystemType() types.SystemType
	Analyze(flow []types.EnergyFlowRecord, costs Costs) (types.ROIAnalysis, error)
}

// Models returns one model per architecture in ranking tie-break order.
func Models() []Model {
	return []Model{GridTied{}, BatteryOnly{}, Hybrid{}}
}

// SafeRatio returns num/den, or fallback when den is zero or the result is
// not finite.
func SafeRatio(num, den, fallback float64) float64 {
	if den == 0 {
		return fallback
	}
	r := num / den
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return fallback
	}
	return r
}

// Percent is SafeRatio scaled to a percentage with a fallback of 0.
func Percent(num, den float64) float64 {
	return SafeRatio(num, den, 0) * 100
}

// paybackYears is nil when the system never recovers its cost.
func paybackYears(investment, monthlySavings float64) *float64 {
	annual := monthlySavings * 12
	if annual <= 0 {
		return nil
	}
	years := investment / annual
	return &years
}

// roiPercent is the nominal return over the horizon against totalCost.
func roiPercent(monthlySavings, totalCost float64) float64 {
	totalSavings := monthlySavings * 12 * HorizonYears
	return Percent(totalSavings-totalCost, totalCost)
}

// batteryReplacement reports whether the battery is bought again in year.
// A replacement in the final year is skipped since it would provide no value.
func batteryReplacement(year int) bool {
	return year%BatteryLifeYears == 0 && year < HorizonYears
}

// batteryReplacements is how many times the battery is bought after install.
func batteryReplacements() int {
	return HorizonYears / BatteryLifeYears
}

// npv discounts annualCashFlow(year) for every year of the horizon and
// subtracts the initial outlay.
func npv(initialOutlay float64, annualCashFlow func(year int) float64) float64 {
	v := -initialOutlay
	for year := 1; year <= HorizonYears; year++ {
		v += annualCashFlow(year) / math.Pow(1+DiscountRate, float64(year))
	}
	return v
}

// batteryCashFlow is annualSavings less a battery purchase in replacement years.
func batteryCashFlow(annualSavings, batteryCost float64) func(year int) float64 {
	return func(year int) float64 {
		cf := annualSavings
		if batteryReplacement(year) {
			cf -= batteryCost
		}
		return cf
	}
}
