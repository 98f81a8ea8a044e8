package recommend

import (
	"context"
	"math"
	"sync"
	"testing"

	"github.com/solaradvisor/solaradvisor/pkg/finance"
	"github.com/solaradvisor/solaradvisor/pkg/profile"
	"github.com/solaradvisor/solaradvisor/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func residentialRequest(t *testing.T) types.AnalysisRequest {
	t.Helper()
	p, err := profile.FromPattern(types.PatternResidential, 10)
	require.NoError(t, err)
	return types.AnalysisRequest{
		ConsumptionProfile: p,
		SystemPower:        3,
		PeakSunHours:       5,
		PanelCost:          1500,
		InverterCost:       650,
		InstallationCost:   2000,
		ElectricityRate:    0.15,
		FeedInTariff:       0.08,
		BatteryBudget:      5000,
	}
}

type fixedModel struct {
	systemType types.SystemType
	npv        float64
	err        error
}

func (m fixedModel) SystemType() types.SystemType {
	return m.systemType
}

func (m fixedModel) Analyze([]types.EnergyFlowRecord, finance.Costs) (types.ROIAnalysis, error) {
	a := types.ROIAnalysis{SystemType: m.systemType, NPV: m.npv}
	if m.err != nil {
		return a, m.err
	}
	return a, a.Finite()
}

func TestRecommendResidentialScenario(t *testing.T) {
	ctx := context.Background()
	req := residentialRequest(t)
	assert.Equal(t, 4150.0, req.SystemCost())

	res, err := NewEngine().Recommend(ctx, req)
	require.NoError(t, err)

	require.Len(t, res.EnergyFlow, 24)
	var sum float64
	for _, r := range res.EnergyFlow {
		assert.InDelta(t, r.Consumption, r.DirectUse+r.GridImport, 1e-9)
		sum += r.Consumption
	}
	assert.InDelta(t, req.ConsumptionProfile.TotalDaily, sum, 1e-9)

	rec := res.Recommendation
	onGrid := rec.Configurations.OnGrid
	offGrid := rec.Configurations.OffGrid
	hybrid := rec.Configurations.Hybrid

	assert.Equal(t, types.SystemOnGrid, onGrid.SystemType)
	assert.Equal(t, types.SystemOffGrid, offGrid.SystemType)
	assert.Equal(t, types.SystemHybrid, hybrid.SystemType)

	assert.Equal(t, 4150.0, onGrid.InitialInvestment)
	assert.Equal(t, 9150.0, offGrid.InitialInvestment)
	assert.Equal(t, 9150.0, hybrid.InitialInvestment)

	assert.Greater(t, onGrid.GridDependency, 0.0)
	assert.Less(t, onGrid.GridDependency, 100.0)
	assert.GreaterOrEqual(t, hybrid.SelfConsumptionRate, onGrid.SelfConsumptionRate)
	assert.LessOrEqual(t, hybrid.GridDependency, onGrid.GridDependency)

	assert.Equal(t, 100.0, offGrid.SelfConsumptionRate)
	assert.Equal(t, 0.0, offGrid.GridDependency)
	assert.InDelta(t, 10*30*0.15, offGrid.MonthlySavings, 1e-9)

	require.Len(t, rec.Ranking, 3)
	for i := 1; i < len(rec.Ranking); i++ {
		assert.GreaterOrEqual(t, rec.Ranking[i-1].Score, rec.Ranking[i].Score)
	}
	assert.Equal(t, rec.Ranking[0].Type, rec.Recommended)
	for _, entry := range rec.Ranking {
		a, ok := rec.Configurations.Get(entry.Type)
		require.True(t, ok)
		assert.Equal(t, a.NPV, entry.Score)
		assert.Equal(t, a.ROI25Years, entry.ROI)
	}
}

func TestRecommendIsIdempotent(t *testing.T) {
	ctx := context.Background()
	e := NewEngine()
	req := residentialRequest(t)

	first, err := e.Recommend(ctx, req)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]Result, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := e.Recommend(ctx, req)
			assert.NoError(t, err)
			results[i] = res
		}()
	}
	wg.Wait()

	for _, res := range results {
		assert.Equal(t, first, res)
	}
}

func TestRecommendBoundaries(t *testing.T) {
	ctx := context.Background()
	e := NewEngine()

	t.Run("Zero Peak Sun Hours", func(t *testing.T) {
		req := residentialRequest(t)
		req.PeakSunHours = 0
		_, err := e.Recommend(ctx, req)
		assert.ErrorIs(t, err, types.ErrDomain)
	})

	t.Run("Zero Consumption", func(t *testing.T) {
		req := residentialRequest(t)
		p, err := profile.FromPattern(types.PatternResidential, 0)
		require.NoError(t, err)
		req.ConsumptionProfile = p

		res, err := e.Recommend(ctx, req)
		require.NoError(t, err)
		for _, st := range types.SystemTypes {
			a, _ := res.Recommendation.Configurations.Get(st)
			assert.Equal(t, 0.0, a.GridDependency, "%s", st)
			assert.False(t, math.IsNaN(a.SelfConsumptionRate), "%s", st)
			assert.NoError(t, a.Finite())
		}
		assert.Nil(t, res.Recommendation.Configurations.OffGrid.PaybackPeriod)
		// everything generated is exported
		assert.Equal(t, 0.0, res.Recommendation.Configurations.OnGrid.SelfConsumptionRate)
	})

	t.Run("Profile Summary Is Recomputed", func(t *testing.T) {
		req := residentialRequest(t)
		req.ConsumptionProfile.TotalDaily = 1234
		req.ConsumptionProfile.PeakHour = 2
		res, err := e.Recommend(ctx, req)
		require.NoError(t, err)
		var sum float64
		for _, r := range res.EnergyFlow {
			sum += r.Consumption
		}
		assert.InDelta(t, 10.0, sum, 1e-9)
	})

	validationCases := map[string]func(r *types.AnalysisRequest){
		"Short Profile":          func(r *types.AnalysisRequest) { r.ConsumptionProfile.HourlyData = r.ConsumptionProfile.HourlyData[:23] },
		"Zero System Power":      func(r *types.AnalysisRequest) { r.SystemPower = 0 },
		"Negative Peak Sun":      func(r *types.AnalysisRequest) { r.PeakSunHours = -2 },
		"Negative Panel Cost":    func(r *types.AnalysisRequest) { r.PanelCost = -1 },
		"NaN Electricity Rate":   func(r *types.AnalysisRequest) { r.ElectricityRate = math.NaN() },
		"Zero Electricity Rate":  func(r *types.AnalysisRequest) { r.ElectricityRate = 0 },
		"Negative Electricity":   func(r *types.AnalysisRequest) { r.ElectricityRate = -0.15 },
		"Negative Battery":       func(r *types.AnalysisRequest) { r.BatteryBudget = -5 },
		"Hours Out Of Order":     func(r *types.AnalysisRequest) { r.ConsumptionProfile.HourlyData[3].Hour = 4 },
		"Negative Consumption":   func(r *types.AnalysisRequest) { r.ConsumptionProfile.HourlyData[7].Consumption = -1 },
		"Unknown Pattern":        func(r *types.AnalysisRequest) { r.ConsumptionProfile.Pattern = "weekly" },
		"Infinite Feed In Tarif": func(r *types.AnalysisRequest) { r.FeedInTariff = math.Inf(1) },
	}
	for name, mutate := range validationCases {
		t.Run(name, func(t *testing.T) {
			req := residentialRequest(t)
			hourly := make([]types.HourlyConsumption, len(req.ConsumptionProfile.HourlyData))
			copy(hourly, req.ConsumptionProfile.HourlyData)
			req.ConsumptionProfile.HourlyData = hourly
			mutate(&req)
			_, err := e.Recommend(ctx, req)
			assert.ErrorIs(t, err, types.ErrValidation)
		})
	}
}

func TestHybridMonotonicInBatteryBudget(t *testing.T) {
	ctx := context.Background()
	e := NewEngine()
	prev := -1.0
	for budget := 0.0; budget <= 20000; budget += 1000 {
		req := residentialRequest(t)
		req.BatteryBudget = budget
		res, err := e.Recommend(ctx, req)
		require.NoError(t, err)
		rate := res.Recommendation.Configurations.Hybrid.SelfConsumptionRate
		assert.GreaterOrEqual(t, rate, prev, "budget %v", budget)
		prev = rate
	}
}

func TestRank(t *testing.T) {
	t.Run("Descending By NPV", func(t *testing.T) {
		ranking := Rank([]types.ROIAnalysis{
			{SystemType: types.SystemOnGrid, NPV: 10, ROI25Years: 1},
			{SystemType: types.SystemOffGrid, NPV: -5, ROI25Years: 2},
			{SystemType: types.SystemHybrid, NPV: 20, ROI25Years: 3},
		})
		assert.Equal(t, []types.RankEntry{
			{Type: types.SystemHybrid, Score: 20, ROI: 3},
			{Type: types.SystemOnGrid, Score: 10, ROI: 1},
			{Type: types.SystemOffGrid, Score: -5, ROI: 2},
		}, ranking)
	})

	t.Run("Ties Keep Input Order", func(t *testing.T) {
		ranking := Rank([]types.ROIAnalysis{
			{SystemType: types.SystemOnGrid, NPV: 1},
			{SystemType: types.SystemOffGrid, NPV: 1},
			{SystemType: types.SystemHybrid, NPV: 1},
		})
		require.Len(t, ranking, 3)
		assert.Equal(t, types.SystemOnGrid, ranking[0].Type)
		assert.Equal(t, types.SystemOffGrid, ranking[1].Type)
		assert.Equal(t, types.SystemHybrid, ranking[2].Type)
	})
}

func TestRecommendWithModels(t *testing.T) {
	ctx := context.Background()

	t.Run("Tie Goes To First Model", func(t *testing.T) {
		e := NewEngine(
			fixedModel{systemType: types.SystemOnGrid, npv: 5},
			fixedModel{systemType: types.SystemOffGrid, npv: 5},
			fixedModel{systemType: types.SystemHybrid, npv: 5},
		)
		res, err := e.Recommend(ctx, residentialRequest(t))
		require.NoError(t, err)
		assert.Equal(t, types.SystemOnGrid, res.Recommendation.Recommended)
	})

	t.Run("Model Error Aborts", func(t *testing.T) {
		e := NewEngine(
			fixedModel{systemType: types.SystemOnGrid, npv: 5},
			fixedModel{systemType: types.SystemOffGrid, err: assert.AnError},
			fixedModel{systemType: types.SystemHybrid, npv: 5},
		)
		_, err := e.Recommend(ctx, residentialRequest(t))
		assert.ErrorIs(t, err, assert.AnError)
		assert.ErrorContains(t, err, "off-grid model")
	})

	t.Run("Non Finite Output Is Internal", func(t *testing.T) {
		e := NewEngine(
			fixedModel{systemType: types.SystemOnGrid, npv: math.NaN()},
			fixedModel{systemType: types.SystemOffGrid, npv: 1},
			fixedModel{systemType: types.SystemHybrid, npv: 1},
		)
		_, err := e.Recommend(ctx, residentialRequest(t))
		assert.ErrorIs(t, err, types.ErrInternal)
	})
}
