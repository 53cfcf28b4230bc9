package valuations

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
)

// Handler serves point-in-time valuation endpoints.
type Handler struct {
	Policy     policy.Policy
	Buildings  *store.BuildingRepo
	Valuations *store.ValuationRepo
}

// NewHandler creates a valuations handler.
func NewHandler(p policy.Policy, buildings *store.BuildingRepo, valuations *store.ValuationRepo) *Handler {
	return &Handler{Policy: p, Buildings: buildings, Valuations: valuations}
}

// CalculateRequest is a one-off valuation from raw inputs. EvaluationYear
// defaults to the current year.
type CalculateRequest struct {
	CostPerM2        float64 `json:"cost_per_m2"`
	AreaM2           float64 `json:"area_m2"`
	ConstructionYear int     `json:"construction_year"`
	EvaluationYear   int     `json:"evaluation_year,omitempty"`
}

// HandleCalculate computes a valuation without touching storage.
func (h *Handler) HandleCalculate(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.EvaluationYear == 0 {
		req.EvaluationYear = time.Now().Year()
	}

	result, err := valuation.Compute(valuation.Input{
		CostPerM2:        req.CostPerM2,
		AreaM2:           req.AreaM2,
		ConstructionYear: req.ConstructionYear,
		EvaluationYear:   req.EvaluationYear,
	}, h.Policy)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// BatchCalculateRequest values several buildings in one call.
type BatchCalculateRequest struct {
	Items          []CalculateRequest `json:"items"`
	EvaluationYear int                `json:"evaluation_year,omitempty"`
}

// BatchItemResult carries either a valuation or a per-item error; a bad item
// never fails the batch.
type BatchItemResult struct {
	Index     int                  `json:"index"`
	Valuation *valuation.Valuation `json:"valuation,omitempty"`
	Error     string               `json:"error,omitempty"`
}

// HandleBatchCalculate values each item independently.
func (h *Handler) HandleBatchCalculate(w http.ResponseWriter, r *http.Request) {
	var req BatchCalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	defaultYear := req.EvaluationYear
	if defaultYear == 0 {
		defaultYear = time.Now().Year()
	}

	results := make([]BatchItemResult, 0, len(req.Items))
	for i, item := range req.Items {
		year := item.EvaluationYear
		if year == 0 {
			year = defaultYear
		}
		v, err := valuation.Compute(valuation.Input{
			CostPerM2:        item.CostPerM2,
			AreaM2:           item.AreaM2,
			ConstructionYear: item.ConstructionYear,
			EvaluationYear:   year,
		}, h.Policy)
		if err != nil {
			results = append(results, BatchItemResult{Index: i, Error: err.Error()})
			continue
		}
		results = append(results, BatchItemResult{Index: i, Valuation: v})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"results": results})
}

// HandleBuildingValuation values a stored building at the current year.
func (h *Handler) HandleBuildingValuation(w http.ResponseWriter, r *http.Request) {
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

	result, err := valuation.Compute(valuation.Input{
		CostPerM2:        b.CostPerM2,
		AreaM2:           b.AreaM2,
		ConstructionYear: b.ConstructionYear,
		EvaluationYear:   time.Now().Year(),
	}, h.Policy)
	if err != nil {
		// Stored data failed the engine's validation, surface it as a data
		// problem rather than a server fault.
		http.Error(w, fmt.Sprintf("Building %d has invalid data: %v", id, err), http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// SaveRequest persists a valuation snapshot for a stored building.
type SaveRequest struct {
	BuildingID     int `json:"building_id"`
	EvaluationYear int `json:"evaluation_year,omitempty"`
}

// HandleSave computes and stores one snapshot in the value history.
func (h *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	var req SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.EvaluationYear == 0 {
		req.EvaluationYear = time.Now().Year()
	}

	b, err := h.Buildings.Get(r.Context(), req.BuildingID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, fmt.Sprintf("Building %d not found", req.BuildingID), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	result, err := valuation.Compute(valuation.Input{
		CostPerM2:        b.CostPerM2,
		AreaM2:           b.AreaM2,
		ConstructionYear: b.ConstructionYear,
		EvaluationYear:   req.EvaluationYear,
	}, h.Policy)
	if err != nil {
		http.Error(w, fmt.Sprintf("Building %d has invalid data: %v", req.BuildingID, err), http.StatusUnprocessableEntity)
		return
	}

	if err := h.Valuations.Save(r.Context(), req.BuildingID, result); err != nil {
		fmt.Printf("[VALUATION] Save failed for building %d: %v\n", req.BuildingID, err)
		http.Error(w, "Failed to save valuation", http.StatusInternalServerError)
		return
	}
	fmt.Printf("[VALUATION] Saved snapshot for building %d (FY%d)\n", req.BuildingID, req.EvaluationYear)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"saved": true, "valuation": result})
}

// HandleHistory returns the stored value history of a building.
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid building id", http.StatusBadRequest)
		return
	}

	history, err := h.Valuations.History(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"building_id": id, "history": history})
}
