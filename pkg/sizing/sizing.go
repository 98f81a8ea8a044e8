// Package sizing estimates how large an array has to be to cover a set of
// appliance loads, and what it costs with a chosen panel and inverter.
package sizing

import (
	"fmt"
	"math"

	"github.com/solaradvisor/solaradvisor/pkg/types"
)

const (
	DefaultSystemEfficiency = 0.85
	DefaultSafetyFactor     = 1.25
	DefaultInstallationCost = 2000.0

	// inverterOverload is how far the array may exceed the inverter rating.
	inverterOverload = 1.2
	// MaxPanels bounds the array a request may size.
	MaxPanels = 1_000_000
)

// Request describes the loads to cover and the equipment to cover them with.
type Request struct {
	Loads            []types.Load
	PeakSunHours     float64
	SystemEfficiency float64
	SafetyFactor     float64
	InstallationCost float64
	Panel            types.SolarPanel
	Inverter         types.Inverter
}

// WithDefaults fills in efficiency and safety factor when they are zero.
func (r Request) WithDefaults() Request {
	if r.SystemEfficiency == 0 {
		r.SystemEfficiency = DefaultSystemEfficiency
	}
	if r.SafetyFactor == 0 {
		r.SafetyFactor = DefaultSafetyFactor
	}
	return r
}

// Validate rejects requests that can't be sized.
func (r Request) Validate() error {
	if len(r.Loads) == 0 {
		return fmt.Errorf("%w: at least one load is required", types.ErrValidation)
	}
	for i, l := range r.Loads {
		if l.Quantity < 0 || l.Power < 0 || l.HoursPerDay < 0 || l.HoursPerDay > 24 {
			return fmt.Errorf("%w: load %d (%s) has an out of range value", types.ErrValidation, i, l.Name)
		}
	}
	if math.IsNaN(r.PeakSunHours) || r.PeakSunHours < 0 {
		return fmt.Errorf("%w: peakSunHours must be positive", types.ErrValidation)
	}
	if !(r.SystemEfficiency > 0 && r.SystemEfficiency <= 1) {
		return fmt.Errorf("%w: systemEfficiency must be in (0, 1]", types.ErrValidation)
	}
	if !(r.SafetyFactor >= 1) {
		return fmt.Errorf("%w: safetyFactor must be at least 1", types.ErrValidation)
	}
	if r.InstallationCost < 0 {
		return fmt.Errorf("%w: installationCost must not be negative", types.ErrValidation)
	}
	if err := r.Panel.Validate(); err != nil {
		return fmt.Errorf("panel: %w", err)
	}
	if err := r.Inverter.Validate(); err != nil {
		return fmt.Errorf("inverter: %w", err)
	}
	return nil
}

// Result is the sized system.
type Result struct {
	DailyConsumption   float64 `json:"dailyConsumption"`   // kWh
	MonthlyConsumption float64 `json:"monthlyConsumption"` // kWh
	PeakPower          float64 `json:"peakPower"`          // W
	RequiredPanelPower float64 `json:"requiredPanelPower"` // W
	NumberOfPanels     int     `json:"numberOfPanels"`
	SystemPower        float64 `json:"systemPower"`  // kW
	InverterSize       float64 `json:"inverterSize"` // W
	PanelCost          float64 `json:"panelCost"`
	InverterCost       float64 `json:"inverterCost"`
	InstallationCost   float64 `json:"installationCost"`
	EstimatedCost      float64 `json:"estimatedCost"`
	// InverterUndersized is set when the array exceeds what the inverter can
	// take even with the allowed overload.
	InverterUndersized bool `json:"inverterUndersized"`
}

// Size works out the panel count and cost for req. The request is expected
// to already have defaults applied.
func Size(req Request) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}
	if req.PeakSunHours == 0 {
		return Result{}, fmt.Errorf("%w: peakSunHours is zero", types.ErrDomain)
	}

	var res Result
	for _, l := range req.Loads {
		res.DailyConsumption += l.DailyKWH()
		res.PeakPower += l.Power * float64(l.Quantity)
	}
	res.MonthlyConsumption = res.DailyConsumption * 30

	res.RequiredPanelPower = res.DailyConsumption * 1000 / (req.PeakSunHours * req.SystemEfficiency) * req.SafetyFactor
	panels := math.Ceil(res.RequiredPanelPower / req.Panel.Power)
	if math.IsNaN(panels) || panels > MaxPanels {
		return Result{}, fmt.Errorf("%w: loads need more than %d panels", types.ErrDomain, MaxPanels)
	}
	res.NumberOfPanels = int(panels)
	arrayWatts := float64(res.NumberOfPanels) * req.Panel.Power
	res.SystemPower = arrayWatts / 1000

	res.InverterSize = req.Inverter.Power
	res.InverterUndersized = arrayWatts > req.Inverter.Power*inverterOverload

	res.PanelCost = float64(res.NumberOfPanels) * req.Panel.Price
	res.InverterCost = req.Inverter.Price
	res.InstallationCost = req.InstallationCost
	res.EstimatedCost = res.PanelCost + res.InverterCost + res.InstallationCost
	if math.IsInf(res.EstimatedCost, 0) || math.IsNaN(res.EstimatedCost) {
		return Result{}, fmt.Errorf("%w: estimated cost is not finite", types.ErrValidation)
	}
	return res, nil
}
