package assessments

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"finnvesta/pkg/core/assessment"
	"finnvesta/pkg/core/store"
	"finnvesta/pkg/models"
)

// Handler serves the component assessment endpoints.
type Handler struct {
	Catalogue   *assessment.Catalogue
	Buildings   *store.BuildingRepo
	Assessments *store.AssessmentRepo
}

// NewHandler creates an assessments handler.
func NewHandler(cat *assessment.Catalogue, buildings *store.BuildingRepo, assessments *store.AssessmentRepo) *Handler {
	return &Handler{Catalogue: cat, Buildings: buildings, Assessments: assessments}
}

// CreateRequest records one inspection. Scores are partial: components not
// inspected are simply left out.
type CreateRequest struct {
	AssessmentDate string            `json:"assessment_date"` // YYYY-MM-DD, defaults to today
	InspectorName  string            `json:"inspector_name,omitempty"`
	Scores         map[string]int    `json:"scores"`
	ComponentNotes map[string]string `json:"component_notes,omitempty"`
	Notes          string            `json:"notes,omitempty"`
}

// HandleCreate stores a new immutable assessment, computing the PKA weighted
// score over the components actually present.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	buildingID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid building id", http.StatusBadRequest)
		return
	}

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	weights := h.Catalogue.Weights()
	if err := assessment.ValidateScores(req.Scores, weights); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	assessmentDate := time.Now()
	if req.AssessmentDate != "" {
		assessmentDate, err = time.Parse("2006-01-02", req.AssessmentDate)
		if err != nil {
			http.Error(w, "assessment_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
	}

	if _, err := h.Buildings.Get(r.Context(), buildingID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, fmt.Sprintf("Building %d not found", buildingID), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	a := &models.Assessment{
		ID:             uuid.New().String(),
		BuildingID:     buildingID,
		AssessmentDate: assessmentDate,
		InspectorName:  req.InspectorName,
		Scores:         req.Scores,
		ComponentNotes: req.ComponentNotes,
		Notes:          req.Notes,
		CreatedAt:      time.Now(),
	}

	// Nil stays nil when nothing was scored: "not assessed" is a real state,
	// not a zero.
	if pka, ok := assessment.WeightedScore(req.Scores, weights); ok {
		a.WeightedScore = &pka
	}

	if err := h.Assessments.Save(r.Context(), a); err != nil {
		fmt.Printf("[ASSESSMENT] Save failed for building %d: %v\n", buildingID, err)
		http.Error(w, "Failed to save assessment", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(a)
}

// HandleList returns a building's assessments, newest first.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	buildingID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid building id", http.StatusBadRequest)
		return
	}

	assessments, err := h.Assessments.ListForBuilding(r.Context(), buildingID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"building_id": buildingID,
		"assessments": assessments,
	})
}

// HandleComponents exposes the catalogue metadata for inspection forms.
func (h *Handler) HandleComponents(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.Catalogue)
}
