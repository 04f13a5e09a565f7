package service

import (
	"context"
	"errors"

	"agrow/entities"
	"agrow/pkg/advisory/repository"
	"agrow/pkg/catalog"
	"agrow/pkg/engine"
)

var (
	ErrNotFound     = repository.ErrNotFound
	ErrMissingField = errors.New("missing required field")
	ErrInvalidField = errors.New("invalid field")
)

// AnalysisFailed is the main disease name returned when no diagnosis could be made.
const AnalysisFailed = "Analysis Failed"

type CropRequest struct {
	SoilData *engine.SoilSample `json:"soilData"`
	Region   string             `json:"region,omitempty"`
}

// CropRecommendation is a ranked crop with the advice shown to the farmer.
type CropRecommendation struct {
	engine.ScoredCrop
	Tips      []string         `json:"tips"`
	Breakdown engine.Breakdown `json:"scoreBreakdown"`
}

type CropResponse struct {
	Crop         CropRecommendation   `json:"crop"`
	Alternatives []CropRecommendation `json:"alternatives"`
	Fallback     bool                 `json:"fallback"`
	LogID        string               `json:"logId,omitempty"`
}

type FinancialData struct {
	Budget        *float64           `json:"budget"`
	ExistingCrops []string           `json:"existingCrops"`
	MarketPrices  map[string]float64 `json:"marketPrices,omitempty"`
}

type BudgetRequest struct {
	FinancialData *FinancialData `json:"financialData"`
}

type BudgetResponse struct {
	BudgetPlan engine.BudgetPlan `json:"budgetPlan"`
	Fallback   bool              `json:"fallback"`
	LogID      string            `json:"logId,omitempty"`
}

type DiseaseRequest struct {
	ImageURL    string          `json:"imageUrl"`
	WeatherData *engine.Weather `json:"weatherData,omitempty"`
}

type DiseaseResponse struct {
	engine.DiagnosisResult
	LogID string `json:"logId,omitempty"`
}

type AdvisoryService interface {
	RecommendCrop(ctx context.Context, uid string, req CropRequest) (CropResponse, error)
	PlanBudget(ctx context.Context, uid string, req BudgetRequest) (BudgetResponse, error)
	// AnalyzeDisease only fails on missing input; analysis problems yield the AnalysisFailed payload.
	AnalyzeDisease(ctx context.Context, uid string, req DiseaseRequest) (DiseaseResponse, error)
	History(ctx context.Context, uid, kind string, limit int) ([]entities.RecommendationLog, error)
	// ExportBudget renders a stored budget plan as an xlsx workbook.
	ExportBudget(ctx context.Context, uid, logID string) ([]byte, error)
}

// Deps are the collaborators of the advisory service. Rand may be nil.
type Deps struct {
	Crops    catalog.Source
	Diseases catalog.DiseaseSource
	Logs     repository.LogRepository
	Rand     engine.Rand
}
