package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/solaradvisor/solaradvisor/pkg/log"
	"github.com/solaradvisor/solaradvisor/pkg/profile"
	"github.com/solaradvisor/solaradvisor/pkg/recommend"
	"github.com/solaradvisor/solaradvisor/pkg/sizing"
	"github.com/solaradvisor/solaradvisor/pkg/types"
)

// profileInput is either a full hourly profile or a built-in pattern with a
// daily total to spread over it.
type profileInput struct {
	Pattern    types.ConsumptionPattern  `json:"pattern"`
	HourlyData []types.HourlyConsumption `json:"hourlyData"`
	TotalDaily float64                   `json:"totalDaily"`
}

func (p profileInput) resolve() (types.ConsumptionProfile, error) {
	if len(p.HourlyData) == 0 {
		if _, ok := profile.Pattern(p.Pattern); ok {
			return profile.FromPattern(p.Pattern, p.TotalDaily)
		}
	}
	return types.ConsumptionProfile{
		Pattern:    p.Pattern,
		HourlyData: p.HourlyData,
	}, nil
}

type recommendRequest struct {
	ConsumptionProfile *profileInput `json:"consumptionProfile"`
	SystemPower        *float64      `json:"systemPower"`
	PeakSunHours       *float64      `json:"peakSunHours"`
	PanelCost          float64       `json:"panelCost"`
	InverterCost       float64       `json:"inverterCost"`
	InstallationCost   float64       `json:"installationCost"`
	ElectricityRate    *float64      `json:"electricityRate"`
	FeedInTariff       float64       `json:"feedInTariff"`
	BatteryBudget      *float64      `json:"batteryBudget"`
}

func (s *Server) analysisRequest(req recommendRequest) (types.AnalysisRequest, error) {
	if req.ConsumptionProfile == nil || req.SystemPower == nil || req.PeakSunHours == nil || req.ElectricityRate == nil {
		return types.AnalysisRequest{}, fmt.Errorf("%w: missing required parameters", types.ErrValidation)
	}
	consumption, err := req.ConsumptionProfile.resolve()
	if err != nil {
		return types.AnalysisRequest{}, err
	}
	ar := types.AnalysisRequest{
		ConsumptionProfile: consumption,
		SystemPower:        *req.SystemPower,
		PeakSunHours:       *req.PeakSunHours,
		PanelCost:          req.PanelCost,
		InverterCost:       req.InverterCost,
		InstallationCost:   req.InstallationCost,
		ElectricityRate:    *req.ElectricityRate,
		FeedInTariff:       req.FeedInTariff,
		BatteryBudget:      s.defaultBatteryBudget,
	}
	if req.BatteryBudget != nil {
		ar.BatteryBudget = *req.BatteryBudget
	}
	return ar, nil
}

func (s *Server) handleRecommendSystem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	ar, err := s.analysisRequest(req)
	if err != nil {
		analysisErrorsTotal.WithLabelValues(errorKind(err)).Inc()
		writeErrorKind(ctx, w, err, "recommend system")
		return
	}
	res, err := s.recommend(ctx, ar)
	if err != nil {
		analysisErrorsTotal.WithLabelValues(errorKind(err)).Inc()
		writeErrorKind(ctx, w, err, "recommend system")
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
		recommend.Result
	}{true, res})
}

func (s *Server) recommend(ctx context.Context, req types.AnalysisRequest) (recommend.Result, error) {
	start := time.Now()
	res, err := s.engine.Recommend(ctx, req)
	if err != nil {
		return recommend.Result{}, err
	}
	analysisDuration.Observe(time.Since(start).Seconds())
	recommendationsTotal.WithLabelValues(string(res.Recommendation.Recommended)).Inc()
	return res, nil
}

func (s *Server) handleConsumptionPatterns(w http.ResponseWriter, r *http.Request) {
	writeJSONData(w, profile.Patterns())
}

type sizeRequest struct {
	Loads            []types.Load      `json:"loads"`
	PeakSunHours     *float64          `json:"peakSunHours"`
	SystemEfficiency float64           `json:"systemEfficiency"`
	SafetyFactor     float64           `json:"safetyFactor"`
	InstallationCost *float64          `json:"installationCost"`
	PanelID          string            `json:"panelID"`
	InverterID       string            `json:"inverterID"`
	Panel            *types.SolarPanel `json:"panel"`
	Inverter         *types.Inverter   `json:"inverter"`
}

// sizingRequest resolves the equipment, either inline or by catalog ID.
func (s *Server) sizingRequest(ctx context.Context, req sizeRequest) (sizing.Request, error) {
	if req.PeakSunHours == nil {
		return sizing.Request{}, fmt.Errorf("%w: peakSunHours is required", types.ErrValidation)
	}
	sr := sizing.Request{
		Loads:            req.Loads,
		PeakSunHours:     *req.PeakSunHours,
		SystemEfficiency: req.SystemEfficiency,
		SafetyFactor:     req.SafetyFactor,
		InstallationCost: sizing.DefaultInstallationCost,
	}
	if req.InstallationCost != nil {
		sr.InstallationCost = *req.InstallationCost
	}

	switch {
	case req.Panel != nil:
		sr.Panel = *req.Panel
	case req.PanelID != "":
		panel, err := s.storage.GetPanel(ctx, req.PanelID)
		if err != nil {
			return sizing.Request{}, fmt.Errorf("failed to get panel: %w", err)
		}
		sr.Panel = panel
	default:
		return sizing.Request{}, fmt.Errorf("%w: panel or panelID is required", types.ErrValidation)
	}

	switch {
	case req.Inverter != nil:
		sr.Inverter = *req.Inverter
	case req.InverterID != "":
		inverter, err := s.storage.GetInverter(ctx, req.InverterID)
		if err != nil {
			return sizing.Request{}, fmt.Errorf("failed to get inverter: %w", err)
		}
		sr.Inverter = inverter
	default:
		return sizing.Request{}, fmt.Errorf("%w: inverter or inverterID is required", types.ErrValidation)
	}

	return sr.WithDefaults(), nil
}

func (s *Server) handleSizeSystem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req sizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	sr, err := s.sizingRequest(ctx, req)
	if err != nil {
		writeErrorKind(ctx, w, err, "size system")
		return
	}
	res, err := sizing.Size(sr)
	if err != nil {
		writeErrorKind(ctx, w, err, "size system")
		return
	}
	log.Ctx(ctx).DebugContext(
		ctx,
		"sized system",
		slog.Int("panels", res.NumberOfPanels),
		slog.Float64("systemPower", res.SystemPower),
		slog.Bool("inverterUndersized", res.InverterUndersized),
	)
	writeJSONData(w, res)
}
