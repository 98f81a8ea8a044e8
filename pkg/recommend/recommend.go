// Package recommend runs the full analysis: it simulates the energy flow once,
// scores it with every financial model and ranks the architectures by NPV.
package recommend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/solaradvisor/solaradvisor/pkg/finance"
	"github.com/solaradvisor/solaradvisor/pkg/log"
	"github.com/solaradvisor/solaradvisor/pkg/simulation"
	"github.com/solaradvisor/solaradvisor/pkg/types"
	"golang.org/x/sync/errgroup"
)

// Result is the output of one analysis.
type Result struct {
	Recommendation types.SystemRecommendation `json:"data"`
	EnergyFlow     []types.EnergyFlowRecord   `json:"energyFlow"`
}

// Engine scores requests against a fixed set of financial models. It holds
// no mutable state and is safe for concurrent use.
type Engine struct {
	models []finance.Model
}

// NewEngine returns an Engine using the given models, or finance.Models() if
// none are given. Ties in the ranking are broken by the order of models.
func NewEngine(models ...finance.Model) *Engine {
	if len(models) == 0 {
		models = finance.Models()
	}
	return &Engine{models: models}
}

// Recommend validates req, simulates its energy flow and ranks every
// architecture. Any error aborts the whole analysis.
func (e *Engine) Recommend(ctx context.Context, req types.AnalysisRequest) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}
	req.ConsumptionProfile = req.ConsumptionProfile.Summarize()

	flow, err := simulation.Simulate(req.ConsumptionProfile, req.SystemPower, req.PeakSunHours)
	if err != nil {
		return Result{}, err
	}

	analyses, err := e.analyze(ctx, flow, finance.CostsFor(req))
	if err != nil {
		return Result{}, err
	}

	rec := types.SystemRecommendation{
		Ranking: Rank(analyses),
	}
	for _, a := range analyses {
		rec.Configurations.Set(a)
	}
	rec.Recommended = rec.Ranking[0].Type

	log.Ctx(ctx).DebugContext(
		ctx,
		"recommendation computed",
		slog.String("recommended", string(rec.Recommended)),
		slog.Float64("npv", rec.Ranking[0].Score),
		slog.Float64("dailyConsumption", req.ConsumptionProfile.TotalDaily),
	)

	return Result{
		Recommendation: rec,
		EnergyFlow:     flow,
	}, nil
}

// analyze runs every model against the same read-only flow. The result is in
// the order of e.models.
func (e *Engine) analyze(ctx context.Context, flow []types.EnergyFlowRecord, costs finance.Costs) ([]types.ROIAnalysis, error) {
	analyses := make([]types.ROIAnalysis, len(e.models))
	var g errgroup.Group
	for i, m := range e.models {
		g.Go(func() error {
			a, err := m.Analyze(flow, costs)
			if err != nil {
				if errors.Is(err, types.ErrInternal) {
					log.Ctx(ctx).ErrorContext(ctx, "model produced non-finite output", slog.String("systemType", string(m.SystemType())), slog.Any("error", err))
				}
				return fmt.Errorf("%s model: %w", m.SystemType(), err)
			}
			analyses[i] = a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return analyses, nil
}

// Rank orders the analyses by NPV, highest first. Equal NPVs keep their input
// order.
func Rank(analyses []types.ROIAnalysis) []types.RankEntry {
	ranking := make([]types.RankEntry, len(analyses))
	for i, a := range analyses {
		ranking[i] = types.RankEntry{
			Type:  a.SystemType,
			Score: a.NPV,
			ROI:   a.ROI25Years,
		}
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Score > ranking[j].Score
	})
	return ranking
}
