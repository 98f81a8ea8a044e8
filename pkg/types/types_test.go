package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatProfile(v float64) ConsumptionProfile {
	hourly := make([]HourlyConsumption, HoursPerDay)
	for h := range hourly {
		hourly[h] = HourlyConsumption{Hour: h, Consumption: v}
	}
	return ConsumptionProfile{Pattern: PatternCustom, HourlyData: hourly}
}

func TestConsumptionProfileValidate(t *testing.T) {
	assert.NoError(t, flatProfile(1).Validate())

	p := flatProfile(1)
	p.Pattern = ""
	assert.NoError(t, p.Validate())

	tests := map[string]func(p *ConsumptionProfile){
		"Unknown Pattern": func(p *ConsumptionProfile) { p.Pattern = "agricultural" },
		"Too Short":       func(p *ConsumptionProfile) { p.HourlyData = p.HourlyData[:23] },
		"Too Long":        func(p *ConsumptionProfile) { p.HourlyData = append(p.HourlyData, HourlyConsumption{Hour: 24}) },
		"Out Of Order":    func(p *ConsumptionProfile) { p.HourlyData[3].Hour = 4 },
		"Negative":        func(p *ConsumptionProfile) { p.HourlyData[5].Consumption = -0.1 },
		"NaN":             func(p *ConsumptionProfile) { p.HourlyData[5].Consumption = math.NaN() },
		"Inf":             func(p *ConsumptionProfile) { p.HourlyData[5].Consumption = math.Inf(1) },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			p := flatProfile(1)
			mutate(&p)
			assert.ErrorIs(t, p.Validate(), ErrValidation)
		})
	}
}

func TestConsumptionProfileSummarize(t *testing.T) {
	p := flatProfile(0.5)
	p.HourlyData[18].Consumption = 2
	p.HourlyData[19].Consumption = 2
	// stale summary values are ignored
	p.TotalDaily = 999
	p.PeakHour = 3

	s := p.Summarize()
	assert.InDelta(t, 22*0.5+4, s.TotalDaily, 1e-9)
	assert.Equal(t, 18, s.PeakHour)
	assert.Equal(t, 2.0, s.PeakConsumption)

	// the copy doesn't share its hourly data
	s.HourlyData[0].Consumption = 7
	assert.Equal(t, 0.5, p.HourlyData[0].Consumption)

	zero := flatProfile(0).Summarize()
	assert.Equal(t, 0, zero.PeakHour)
	assert.Equal(t, 0.0, zero.TotalDaily)
}

func TestROIAnalysisFinite(t *testing.T) {
	payback := 5.0
	a := ROIAnalysis{SystemType: SystemHybrid, InitialInvestment: 1, PaybackPeriod: &payback}
	assert.NoError(t, a.Finite())

	a.PaybackPeriod = nil
	assert.NoError(t, a.Finite())

	bad := math.Inf(1)
	a.PaybackPeriod = &bad
	err := a.Finite()
	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorContains(t, err, "paybackPeriod")

	a.PaybackPeriod = nil
	a.NPV = math.NaN()
	err = a.Finite()
	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorContains(t, err, "hybrid npv")
}

func TestConfigurations(t *testing.T) {
	var c Configurations
	for i, st := range SystemTypes {
		c.Set(ROIAnalysis{SystemType: st, NPV: float64(i)})
	}
	for i, st := range SystemTypes {
		a, ok := c.Get(st)
		require.True(t, ok)
		assert.Equal(t, float64(i), a.NPV)
	}
	_, ok := c.Get("diesel")
	assert.False(t, ok)

	// unknown types are dropped
	c.Set(ROIAnalysis{SystemType: "diesel", NPV: 100})
	assert.Equal(t, 0.0, c.OnGrid.NPV)
}

func TestAnalysisRequestValidate(t *testing.T) {
	valid := func() AnalysisRequest {
		return AnalysisRequest{
			ConsumptionProfile: flatProfile(1),
			SystemPower:        5,
			PeakSunHours:       5,
			PanelCost:          1200,
			InverterCost:       650,
			InstallationCost:   2000,
			ElectricityRate:    0.15,
			FeedInTariff:       0.08,
			BatteryBudget:      DefaultBatteryBudget,
		}
	}
	assert.NoError(t, valid().Validate())
	assert.Equal(t, 3850.0, valid().SystemCost())

	zeroPSH := valid()
	zeroPSH.PeakSunHours = 0
	assert.NoError(t, zeroPSH.Validate())

	tests := map[string]func(r *AnalysisRequest){
		"Bad Profile":          func(r *AnalysisRequest) { r.ConsumptionProfile.HourlyData = nil },
		"Zero System Power":    func(r *AnalysisRequest) { r.SystemPower = 0 },
		"NaN System Power":     func(r *AnalysisRequest) { r.SystemPower = math.NaN() },
		"Negative PSH":         func(r *AnalysisRequest) { r.PeakSunHours = -1 },
		"Negative Panel Cost":  func(r *AnalysisRequest) { r.PanelCost = -1 },
		"Negative Rate":        func(r *AnalysisRequest) { r.ElectricityRate = -0.1 },
		"Zero Rate":            func(r *AnalysisRequest) { r.ElectricityRate = 0 },
		"Inf Rate":             func(r *AnalysisRequest) { r.ElectricityRate = math.Inf(1) },
		"Inf Feed In":          func(r *AnalysisRequest) { r.FeedInTariff = math.Inf(1) },
		"Negative Battery":     func(r *AnalysisRequest) { r.BatteryBudget = -1 },
		"NaN Installation":     func(r *AnalysisRequest) { r.InstallationCost = math.NaN() },
		"Negative Inverter":    func(r *AnalysisRequest) { r.InverterCost = -650 },
		"Inf Peak Sun Hours":   func(r *AnalysisRequest) { r.PeakSunHours = math.Inf(1) },
		"Inf System Power":     func(r *AnalysisRequest) { r.SystemPower = math.Inf(1) },
		"Unknown Pattern Name": func(r *AnalysisRequest) { r.ConsumptionProfile.Pattern = "x" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			r := valid()
			mutate(&r)
			assert.ErrorIs(t, r.Validate(), ErrValidation)
		})
	}
}

func TestSumFlow(t *testing.T) {
	flow := []EnergyFlowRecord{
		{Hour: 0, Consumption: 1, GridImport: 1},
		{Hour: 12, Consumption: 2, SolarGeneration: 5, DirectUse: 2, ExcessEnergy: 3},
	}
	assert.Equal(t, FlowTotals{DirectUse: 2, Excess: 3, GridImport: 1, Consumption: 3, Generation: 5}, SumFlow(flow))
	assert.Equal(t, FlowTotals{}, SumFlow(nil))
}

func TestEquipmentFilter(t *testing.T) {
	panel := SolarPanel{Brand: "Jinko Solar", Model: "JKM420N", Power: 420, Price: 125, Technology: TechnologyMonocrystalline, IsActive: true}
	inverter := Inverter{Brand: "Enphase", Model: "IQ7+", Power: 290, Price: 180, Type: InverterMicro, IsActive: true}

	assert.True(t, EquipmentFilter{}.MatchPanel(panel))
	assert.True(t, EquipmentFilter{Brand: "JINKO"}.MatchPanel(panel))
	assert.False(t, EquipmentFilter{Brand: "trina"}.MatchPanel(panel))
	assert.True(t, EquipmentFilter{MinPower: 420, MaxPower: 420}.MatchPanel(panel))
	assert.False(t, EquipmentFilter{MinPower: 421}.MatchPanel(panel))
	assert.False(t, EquipmentFilter{MaxPrice: 124}.MatchPanel(panel))
	assert.False(t, EquipmentFilter{Kind: string(TechnologyThinFilm)}.MatchPanel(panel))

	assert.True(t, EquipmentFilter{Kind: "micro", MinPrice: 100}.MatchInverter(inverter))
	assert.False(t, EquipmentFilter{Kind: "string"}.MatchInverter(inverter))

	inverter.IsActive = false
	assert.False(t, EquipmentFilter{}.MatchInverter(inverter))
	assert.True(t, EquipmentFilter{IncludeInactive: true}.MatchInverter(inverter))
}

func TestEquipmentValidate(t *testing.T) {
	assert.NoError(t, SolarPanel{Brand: "A", Model: "B", Power: 1}.Validate())
	assert.ErrorIs(t, SolarPanel{Brand: " ", Model: "B", Power: 1}.Validate(), ErrValidation)
	assert.ErrorIs(t, SolarPanel{Brand: "A", Model: "B", Power: 1, Price: -1}.Validate(), ErrValidation)

	assert.NoError(t, Inverter{Brand: "A", Model: "B", Power: 1, Type: InverterPower}.Validate())
	assert.ErrorIs(t, Inverter{Brand: "A", Model: "B", Power: 1, Type: "central"}.Validate(), ErrValidation)
	assert.ErrorIs(t, Inverter{Brand: "A", Model: "B", Power: 0}.Validate(), ErrValidation)
}

func TestLoadDailyKWH(t *testing.T) {
	assert.InDelta(t, 1.2, Load{Quantity: 2, Power: 100, HoursPerDay: 6}.DailyKWH(), 1e-9)
	assert.Equal(t, 0.0, Load{Quantity: 0, Power: 100, HoursPerDay: 6}.DailyKWH())
}
