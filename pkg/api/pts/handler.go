package pts

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"finnvesta/pkg/core/policy"
	"finnvesta/pkg/core/pts"
	"finnvesta/pkg/core/store"
	"finnvesta/pkg/core/valuation"
)

// Handler serves the investment-planning endpoints.
type Handler struct {
	Policy    policy.Policy
	Buildings *store.BuildingRepo
}

// NewHandler creates a pts handler.
func NewHandler(p policy.Policy, buildings *store.BuildingRepo) *Handler {
	return &Handler{Policy: p, Buildings: buildings}
}

// PlanRequest carries optional plan parameters; omitted fields fall back to
// the policy defaults. StartYear defaults to the current year.
type PlanRequest struct {
	OrgID                int      `json:"org_id,omitempty"`
	TriggerThreshold     *float64 `json:"trigger_threshold,omitempty"`
	TargetPercentage     *float64 `json:"target_percentage,omitempty"`
	PlanningHorizonYears *int     `json:"planning_horizon_years,omitempty"`
	StartYear            *int     `json:"start_year,omitempty"`
}

// HandleGeneratePlan builds the PTS plan for the organization's active
// portfolio. Parameter validation failures are a 400; bad building data is
// degraded to warnings inside the plan.
func (h *Handler) HandleGeneratePlan(w http.ResponseWriter, r *http.Request) {
	var req PlanRequest
	// An empty body means "all defaults".
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.OrgID == 0 {
		req.OrgID = 1
	}

	params := pts.DefaultParameters(time.Now().Year(), h.Policy)
	if req.TriggerThreshold != nil {
		params.TriggerThreshold = *req.TriggerThreshold
	}
	if req.TargetPercentage != nil {
		params.TargetPercentage = *req.TargetPercentage
	}
	if req.PlanningHorizonYears != nil {
		params.PlanningHorizonYears = *req.PlanningHorizonYears
	}
	if req.StartYear != nil {
		params.StartYear = *req.StartYear
	}

	records, err := h.Buildings.ListActive(r.Context(), req.OrgID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if len(records) == 0 {
		http.Error(w, "No buildings found", http.StatusNotFound)
		return
	}

	buildings := make([]pts.BuildingInput, 0, len(records))
	for _, b := range records {
		buildings = append(buildings, pts.BuildingInput{
			ID:               b.ID,
			Name:             b.Name,
			AreaM2:           b.AreaM2,
			CostPerM2:        b.CostPerM2,
			ConstructionYear: b.ConstructionYear,
			BuildingType:     b.BuildingType,
		})
	}

	start := time.Now()
	plan, err := pts.GeneratePlan(buildings, params, h.Policy)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	fmt.Printf("[PTS] Plan %s: %d/%d buildings scheduled, total %.0f, %d warnings (%v)\n",
		plan.PlanID, plan.BuildingsNeedingRenovation, plan.TotalBuildings,
		plan.TotalInvestment, len(plan.Warnings), time.Since(start))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(plan)
}

// ForecastResponse is the per-building condition trajectory.
type ForecastResponse struct {
	BuildingID       int                         `json:"building_id"`
	BuildingName     string                      `json:"building_name"`
	CurrentCondition float64                     `json:"current_condition"`
	Trajectory       []valuation.TrajectoryPoint `json:"trajectory"`
}

// HandleBuildingForecast shows how one building's condition degrades over
// the coming years, assuming no renovation.
func (h *Handler) HandleBuildingForecast(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid building id", http.StatusBadRequest)
		return
	}

	yearsAhead := h.Policy.DefaultHorizonYears
	if q := r.URL.Query().Get("years_ahead"); q != "" {
		yearsAhead, err = strconv.Atoi(q)
		if err != nil || yearsAhead < 1 {
			http.Error(w, "years_ahead must be a positive integer", http.StatusBadRequest)
			return
		}
	}

	b, err := h.Buildings.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, fmt.Sprintf("Building %d not found", id), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if b.CostPerM2 <= 0 || b.AreaM2 <= 0 {
		http.Error(w, fmt.Sprintf("Building %d has invalid area/cost data", id), http.StatusUnprocessableEntity)
		return
	}

	trajectory := valuation.ForecastTrajectory(valuation.Input{
		CostPerM2:        b.CostPerM2,
		AreaM2:           b.AreaM2,
		ConstructionYear: b.ConstructionYear,
	}, time.Now().Year(), yearsAhead, h.Policy)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ForecastResponse{
		BuildingID:       b.ID,
		BuildingName:     b.Name,
		CurrentCondition: trajectory[0].ConditionRatio,
		Trajectory:       trajectory,
	})
}
