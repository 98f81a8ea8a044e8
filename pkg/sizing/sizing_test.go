package sizing

import (
	"math"
	"testing"

	"github.com/solaradvisor/solaradvisor/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRequest() Request {
	return Request{
		Loads: []types.Load{
			{Name: "Refrigerator", Quantity: 1, Power: 150, HoursPerDay: 24},
			{Name: "TV", Quantity: 2, Power: 100, HoursPerDay: 6},
			{Name: "Computer", Quantity: 1, Power: 200, HoursPerDay: 8},
			{Name: "LED", Quantity: 10, Power: 10, HoursPerDay: 6},
			{Name: "Washer", Quantity: 1, Power: 500, HoursPerDay: 2},
		},
		PeakSunHours:     5,
		InstallationCost: DefaultInstallationCost,
		Panel:            types.SolarPanel{Brand: "Canadian Solar", Model: "CS3W-400P", Power: 400, Price: 120, IsActive: true},
		Inverter:         types.Inverter{Brand: "Fronius", Model: "Primo 5.0-1", Power: 5000, Price: 650, Type: types.InverterString},
	}.WithDefaults()
}

func TestSize(t *testing.T) {
	res, err := Size(testRequest())
	require.NoError(t, err)

	// 3.6 + 1.2 + 1.6 + 0.6 + 1.0
	assert.InDelta(t, 8.0, res.DailyConsumption, 1e-9)
	assert.InDelta(t, 240.0, res.MonthlyConsumption, 1e-9)
	assert.InDelta(t, 1150.0, res.PeakPower, 1e-9)
	assert.InDelta(t, 8000/(5*0.85)*1.25, res.RequiredPanelPower, 1e-9)
	assert.Equal(t, 6, res.NumberOfPanels)
	assert.InDelta(t, 2.4, res.SystemPower, 1e-9)
	assert.Equal(t, 5000.0, res.InverterSize)
	assert.False(t, res.InverterUndersized)
	assert.InDelta(t, 720.0, res.PanelCost, 1e-9)
	assert.InDelta(t, 720.0+650+2000, res.EstimatedCost, 1e-9)
}

func TestSizeInverterUndersized(t *testing.T) {
	req := testRequest()
	req.Inverter.Power = 1500
	res, err := Size(req)
	require.NoError(t, err)
	assert.True(t, res.InverterUndersized)
}

func TestSizeErrors(t *testing.T) {
	t.Run("Zero Peak Sun Hours", func(t *testing.T) {
		req := testRequest()
		req.PeakSunHours = 0
		_, err := Size(req)
		assert.ErrorIs(t, err, types.ErrDomain)
	})

	t.Run("Too Many Panels", func(t *testing.T) {
		req := testRequest()
		req.Loads = []types.Load{{Name: "Refrigerator", Quantity: 1, Power: 150, HoursPerDay: 24}}
		req.PeakSunHours = 1e-300
		res, err := Size(req)
		assert.ErrorIs(t, err, types.ErrDomain)
		assert.Zero(t, res.NumberOfPanels)

		req = testRequest()
		req.Panel.Power = 1e-9
		_, err = Size(req)
		assert.ErrorIs(t, err, types.ErrDomain)
	})

	t.Run("Large Array", func(t *testing.T) {
		req := testRequest()
		// 8 kWh over 8 sun hours needs 1 kW of one watt panels
		req.Loads = []types.Load{{Name: "Heater", Quantity: 1, Power: 1000, HoursPerDay: 8}}
		req.Panel.Power = 1
		req.Panel.Price = 0
		req.SafetyFactor = 1
		req.SystemEfficiency = 1
		req.PeakSunHours = 8
		res, err := Size(req)
		require.NoError(t, err)
		assert.Equal(t, 1000, res.NumberOfPanels)
	})

	t.Run("Infinite Cost", func(t *testing.T) {
		req := testRequest()
		req.Panel.Price = math.MaxFloat64
		_, err := Size(req)
		assert.ErrorIs(t, err, types.ErrValidation)
	})

	cases := map[string]func(r *Request){
		"No Loads":           func(r *Request) { r.Loads = nil },
		"Negative Hours":     func(r *Request) { r.Loads = []types.Load{{Quantity: 1, Power: 10, HoursPerDay: -1}} },
		"Efficiency Above 1": func(r *Request) { r.SystemEfficiency = 1.5 },
		"Safety Below 1":     func(r *Request) { r.SafetyFactor = 0.5 },
		"Zero Panel Power":   func(r *Request) { r.Panel.Power = 0 },
		"Missing Inverter":   func(r *Request) { r.Inverter = types.Inverter{} },
		"Negative Install":   func(r *Request) { r.InstallationCost = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := testRequest()
			mutate(&req)
			_, err := Size(req)
			assert.ErrorIs(t, err, types.ErrValidation)
		})
	}
}

func TestWithDefaults(t *testing.T) {
	r := Request{}.WithDefaults()
	assert.Equal(t, DefaultSystemEfficiency, r.SystemEfficiency)
	assert.Equal(t, DefaultSafetyFactor, r.SafetyFactor)

	r = Request{SystemEfficiency: 0.9, SafetyFactor: 1.1}.WithDefaults()
	assert.Equal(t, 0.9, r.SystemEfficiency)
	assert.Equal(t, 1.1, r.SafetyFactor)
}
