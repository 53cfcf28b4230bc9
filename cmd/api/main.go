package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	apiassessments "finnvesta/pkg/api/assessments"
	apiportfolio "finnvesta/pkg/api/portfolio"
	apipts "finnvesta/pkg/api/pts"
	apivaluations "finnvesta/pkg/api/valuations"
	"finnvesta/pkg/core/assessment"
	"finnvesta/pkg/core/policy"
	"finnvesta/pkg/core/store"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Valuation policy (falls back to Finnish methodology defaults)
	pol, err := policy.Load("config/policy.yaml")
	if err != nil {
		fmt.Printf("[WARNING] Failed to load policy config: %v\n", err)
		fmt.Println("  Falling back to default policy")
		pol = policy.Default()
	}
	fmt.Printf("[POLICY] Depreciation %.2f%%/yr, tiers %.0f%%/%.0f%%, splits at %.0f/%.0f m²\n",
		pol.AnnualDepreciationRate*100, pol.ImprovementThreshold*100, pol.MaintenanceThreshold*100,
		pol.SplitTwoYearAreaM2, pol.SplitThreeYearAreaM2)

	// Component catalogue for PKA scoring
	catalogue, err := assessment.LoadCatalogue("resources/components.hjson")
	if err != nil {
		fmt.Printf("[WARNING] Failed to load component catalogue: %v\n", err)
		fmt.Println("  Falling back to built-in catalogue")
		catalogue = assessment.DefaultCatalogue()
	}
	fmt.Printf("[CATALOGUE] %d components loaded\n", len(catalogue.Components))

	// Database
	ctx := context.Background()
	if err := store.InitDB(ctx); err != nil {
		fmt.Printf("[FATAL] Database init failed: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	buildingRepo := store.NewBuildingRepo()
	valuationRepo := store.NewValuationRepo()
	assessmentRepo := store.NewAssessmentRepo()

	valuationsHandler := apivaluations.NewHandler(pol, buildingRepo, valuationRepo)
	ptsHandler := apipts.NewHandler(pol, buildingRepo)
	portfolioHandler := apiportfolio.NewHandler(pol, buildingRepo)
	assessmentsHandler := apiassessments.NewHandler(catalogue, buildingRepo, assessmentRepo)

	r := mux.NewRouter()

	// Valuation endpoints
	r.HandleFunc("/api/valuations/calculate", valuationsHandler.HandleCalculate).Methods("POST")
	r.HandleFunc("/api/valuations/batch-calculate", valuationsHandler.HandleBatchCalculate).Methods("POST")
	r.HandleFunc("/api/valuations/building/{id}", valuationsHandler.HandleBuildingValuation).Methods("GET")
	r.HandleFunc("/api/valuations/building/{id}/history", valuationsHandler.HandleHistory).Methods("GET")
	r.HandleFunc("/api/valuations/save", valuationsHandler.HandleSave).Methods("POST")

	// PTS planning endpoints
	r.HandleFunc("/api/pts/generate-plan", ptsHandler.HandleGeneratePlan).Methods("POST")
	r.HandleFunc("/api/pts/building-forecast/{id}", ptsHandler.HandleBuildingForecast).Methods("GET")

	// Building registry endpoints
	r.HandleFunc("/api/portfolio/buildings", portfolioHandler.HandleCreate).Methods("POST")
	r.HandleFunc("/api/portfolio/buildings/{id}", portfolioHandler.HandleGet).Methods("GET")
	r.HandleFunc("/api/portfolio/buildings/{id}", portfolioHandler.HandleUpdate).Methods("PUT")
	r.HandleFunc("/api/portfolio/buildings/{id}", portfolioHandler.HandleArchive).Methods("DELETE")
	r.HandleFunc("/api/portfolio/buildings/{id}/restore", portfolioHandler.HandleRestore).Methods("POST")
	r.HandleFunc("/api/portfolio/dashboard", portfolioHandler.HandleDashboard).Methods("GET")

	// Assessment endpoints
	r.HandleFunc("/api/buildings/{id}/assessments", assessmentsHandler.HandleCreate).Methods("POST")
	r.HandleFunc("/api/buildings/{id}/assessments", assessmentsHandler.HandleList).Methods("GET")
	r.HandleFunc("/api/assessments/components", assessmentsHandler.HandleComponents).Methods("GET")

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(r)

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}

	fmt.Printf("API server starting on %s...\n", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
