package types

import (
	"fmt"
	"math"
)

// DefaultBatteryBudget is the battery cost used when a request omits one.
const DefaultBatteryBudget = 5000.0

// SystemType is one of the installation architectures that get scored.
type SystemType string

const (
	SystemOnGrid  SystemType = "on-grid"
	SystemOffGrid SystemType = "off-grid"
	SystemHybrid  SystemType = "hybrid"
)

// SystemTypes lists every architecture in ranking tie-break order.
var SystemTypes = [...]SystemType{SystemOnGrid, SystemOffGrid, SystemHybrid}

// ROIAnalysis is the financial scorecard of one architecture.
type ROIAnalysis struct {
	SystemType        SystemType `json:"systemType"`
	InitialInvestment float64    `json:"initialInvestment"`
	MonthlySavings    float64    `json:"monthlySavings"`
	// PaybackPeriod is in years and is nil when the system never pays back.
	PaybackPeriod       *float64 `json:"paybackPeriod"`
	ROI25Years          float64  `json:"roi25Years"` // percent
	NPV                 float64  `json:"npv"`
	SelfConsumptionRate float64  `json:"selfConsumptionRate"` // percent
	GridDependency      float64  `json:"gridDependency"`      // percent
}

// Finite returns an error naming the first field of a that is NaN or infinite.
func (a ROIAnalysis) Finite() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"initialInvestment", a.InitialInvestment},
		{"monthlySavings", a.MonthlySavings},
		{"roi25Years", a.ROI25Years},
		{"npv", a.NPV},
		{"selfConsumptionRate", a.SelfConsumptionRate},
		{"gridDependency", a.GridDependency},
	}
	if a.PaybackPeriod != nil {
		fields = append(fields, struct {
			name string
			v    float64
		}{"paybackPeriod", *a.PaybackPeriod})
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s %s is not finite", ErrInternal, a.SystemType, f.name)
		}
	}
	return nil
}

// RankEntry is one row of the recommendation ranking. Score is the NPV.
type RankEntry struct {
	Type  SystemType `json:"type"`
	Score float64    `json:"score"`
	ROI   float64    `json:"roi"`
}

// Configurations holds the scorecard of every architecture.
type Configurations struct {
	OnGrid  ROIAnalysis `json:"onGrid"`
	OffGrid ROIAnalysis `json:"offGrid"`
	Hybrid  ROIAnalysis `json:"hybrid"`
}

// Get returns the scorecard for t.
func (c Configurations) Get(t SystemType) (ROIAnalysis, bool) {
	switch t {
	case SystemOnGrid:
		return c.OnGrid, true
	case SystemOffGrid:
		return c.OffGrid, true
	case SystemHybrid:
		return c.Hybrid, true
	}
	return ROIAnalysis{}, false
}

// Set stores a under its SystemType.
func (c *Configurations) Set(a ROIAnalysis) {
	switch a.SystemType {
	case SystemOnGrid:
		c.OnGrid = a
	case SystemOffGrid:
		c.OffGrid = a
	case SystemHybrid:
		c.Hybrid = a
	}
}

// SystemRecommendation is the outcome of scoring every architecture.
type SystemRecommendation struct {
	Recommended    SystemType     `json:"recommended"`
	Configurations Configurations `json:"configurations"`
	Ranking        []RankEntry    `json:"ranking"`
}

// AnalysisRequest is everything the engine needs for one recommendation.
type AnalysisRequest struct {
	ConsumptionProfile ConsumptionProfile `json:"consumptionProfile"`
	SystemPower        float64            `json:"systemPower"`  // kW
	PeakSunHours       float64            `json:"peakSunHours"` // hours
	PanelCost          float64            `json:"panelCost"`
	InverterCost       float64            `json:"inverterCost"`
	InstallationCost   float64            `json:"installationCost"`
	ElectricityRate    float64            `json:"electricityRate"` // per kWh
	FeedInTariff       float64            `json:"feedInTariff"`    // per kWh
	BatteryBudget      float64            `json:"batteryBudget"`
}

// SystemCost is the cost of everything but the battery.
func (r AnalysisRequest) SystemCost() float64 {
	return r.PanelCost + r.InverterCost + r.InstallationCost
}

// Validate rejects requests the engine cannot score. A PeakSunHours of zero
// passes here and is reported by the generation estimator as ErrDomain.
func (r AnalysisRequest) Validate() error {
	if err := r.ConsumptionProfile.Validate(); err != nil {
		return fmt.Errorf("consumptionProfile: %w", err)
	}
	if !(r.SystemPower > 0) || math.IsInf(r.SystemPower, 0) {
		return fmt.Errorf("%w: systemPower must be positive", ErrValidation)
	}
	if math.IsNaN(r.PeakSunHours) || math.IsInf(r.PeakSunHours, 0) || r.PeakSunHours < 0 {
		return fmt.Errorf("%w: peakSunHours must be positive", ErrValidation)
	}
	if !(r.ElectricityRate > 0) || math.IsInf(r.ElectricityRate, 0) {
		return fmt.Errorf("%w: electricityRate must be positive", ErrValidation)
	}
	nonNegative := []struct {
		name string
		v    float64
	}{
		{"panelCost", r.PanelCost},
		{"inverterCost", r.InverterCost},
		{"installationCost", r.InstallationCost},
		{"feedInTariff", r.FeedInTariff},
		{"batteryBudget", r.BatteryBudget},
	}
	for _, f := range nonNegative {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) || f.v < 0 {
			return fmt.Errorf("%w: %s must be a non-negative number", ErrValidation, f.name)
		}
	}
	return nil
}
