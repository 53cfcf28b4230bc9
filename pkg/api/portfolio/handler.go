package portfolio

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"finnvesta/pkg/core/policy"
	"finnvesta/pkg/core/store"
	"finnvesta/pkg/core/valuation"
	"finnvesta/pkg/models"
)

// Handler serves the building registry endpoints.
type Handler struct {
	Policy    policy.Policy
	Buildings *store.BuildingRepo
}

// NewHandler creates a portfolio handler.
func NewHandler(p policy.Policy, buildings *store.BuildingRepo) *Handler {
	return &Handler{Policy: p, Buildings: buildings}
}

// BuildingRequest is the create/update payload.
type BuildingRequest struct {
	OrgID            int     `json:"org_id,omitempty"`
	Name             string  `json:"name"`
	Address          string  `json:"address,omitempty"`
	ConstructionYear int     `json:"construction_year"`
	AreaM2           float64 `json:"area_m2"`
	CostPerM2        float64 `json:"cost_per_m2"`
	BuildingType     string  `json:"building_type,omitempty"`
	Notes            string  `json:"notes,omitempty"`
}

func (req *BuildingRequest) validate() error {
	if req.Name == "" {
		return fmt.Errorf("name is required")
	}
	if req.AreaM2 <= 0 {
		return fmt.Errorf("area_m2 must be positive, got %v", req.AreaM2)
	}
	if req.CostPerM2 <= 0 {
		return fmt.Errorf("cost_per_m2 must be positive, got %v", req.CostPerM2)
	}
	if req.ConstructionYear < 1800 || req.ConstructionYear > time.Now().Year() {
		return fmt.Errorf("construction_year %d out of range", req.ConstructionYear)
	}
	return nil
}

// HandleCreate registers a new building.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req BuildingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.OrgID == 0 {
		req.OrgID = 1
	}

	b, err := h.Buildings.Create(r.Context(), &models.Building{
		OrgID:            req.OrgID,
		Name:             req.Name,
		Address:          req.Address,
		ConstructionYear: req.ConstructionYear,
		AreaM2:           req.AreaM2,
		CostPerM2:        req.CostPerM2,
		BuildingType:     req.BuildingType,
		Notes:            req.Notes,
	})
	if err != nil {
		fmt.Printf("[PORTFOLIO] Create failed: %v\n", err)
		http.Error(w, "Failed to create building", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(b)
}

// BuildingDetail pairs the record with its current computed valuation.
type BuildingDetail struct {
	Building  *models.Building     `json:"building"`
	Valuation *valuation.Valuation `json:"valuation,omitempty"`
	DataError string               `json:"data_error,omitempty"`
}

// HandleGet returns a building with its on-demand valuation.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid building id", http.StatusBadRequest)
		return
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

	detail := BuildingDetail{Building: b}
	v, verr := valuation.Compute(valuation.Input{
		CostPerM2:        b.CostPerM2,
		AreaM2:           b.AreaM2,
		ConstructionYear: b.ConstructionYear,
		EvaluationYear:   time.Now().Year(),
	}, h.Policy)
	if verr != nil {
		detail.DataError = verr.Error()
	} else {
		detail.Valuation = v
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(detail)
}

// HandleUpdate replaces the building's mutable fields.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid building id", http.StatusBadRequest)
		return
	}

	var req BuildingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	b, err := h.Buildings.Update(r.Context(), &models.Building{
		ID:               id,
		Name:             req.Name,
		Address:          req.Address,
		ConstructionYear: req.ConstructionYear,
		AreaM2:           req.AreaM2,
		CostPerM2:        req.CostPerM2,
		BuildingType:     req.BuildingType,
		Notes:            req.Notes,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, fmt.Sprintf("Building %d not found", id), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(b)
}

// HandleArchive soft-deletes a building. Valuation and assessment history
// stays in place.
func (h *Handler) HandleArchive(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid building id", http.StatusBadRequest)
		return
	}

	if err := h.Buildings.Archive(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, fmt.Sprintf("Building %d not found", id), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	fmt.Printf("[PORTFOLIO] Archived building %d\n", id)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"archived": true, "building_id": id})
}

// HandleRestore brings an archived building back.
func (h *Handler) HandleRestore(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid building id", http.StatusBadRequest)
		return
	}

	if err := h.Buildings.Restore(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, fmt.Sprintf("Building %d not found", id), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"restored": true, "building_id": id})
}

// Dashboard is the portfolio-level aggregate view.
type Dashboard struct {
	TotalBuildings        int     `json:"total_buildings"`
	TotalAreaM2           float64 `json:"total_area_m2"`
	TotalReplacementValue float64 `json:"total_replacement_value"`
	TotalTechnicalValue   float64 `json:"total_technical_value"`
	TotalRepairDebt       float64 `json:"total_repair_debt"`
	AverageCondition      float64 `json:"average_condition"`
	BuildingsWithBadData  int     `json:"buildings_with_bad_data"`
}

// HandleDashboard aggregates current valuations over the active portfolio.
func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	orgID := 1
	if q := r.URL.Query().Get("org_id"); q != "" {
		var err error
		orgID, err = strconv.Atoi(q)
		if err != nil {
			http.Error(w, "Invalid org_id", http.StatusBadRequest)
			return
		}
	}

	buildings, err := h.Buildings.ListActive(r.Context(), orgID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	year := time.Now().Year()
	dash := Dashboard{TotalBuildings: len(buildings)}
	conditionSum := 0.0
	valued := 0

	for _, b := range buildings {
		v, err := valuation.Compute(valuation.Input{
			CostPerM2:        b.CostPerM2,
			AreaM2:           b.AreaM2,
			ConstructionYear: b.ConstructionYear,
			EvaluationYear:   year,
		}, h.Policy)
		if err != nil {
			dash.BuildingsWithBadData++
			continue
		}
		dash.TotalAreaM2 += b.AreaM2
		dash.TotalReplacementValue += v.ReplacementValue
		dash.TotalTechnicalValue += v.TechnicalValue
		dash.TotalRepairDebt += v.RepairDebt
		conditionSum += v.ConditionRatio
		valued++
	}
	if valued > 0 {
		dash.AverageCondition = conditionSum / float64(valued)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dash)
}
