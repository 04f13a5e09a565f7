package serviceImp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"agrow/entities"
	"agrow/pkg/advisory/repository"
	"agrow/pkg/advisory/service"
	"agrow/pkg/catalog"
	"agrow/pkg/engine"
)

type memLogs struct {
	mu   sync.Mutex
	rows []entities.RecommendationLog
	err  error
}

func (m *memLogs) Create(_ context.Context, l *entities.RecommendationLog) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	l.ID = string(rune('a' + len(m.rows)))
	l.CreatedAt = time.Now()
	m.rows = append(m.rows, *l)
	return nil
}

func (m *memLogs) FindByID(_ context.Context, id, uid string) (*entities.RecommendationLog, error) {
	for _, r := range m.rows {
		if r.ID == id && r.UserID == uid {
			r := r
			return &r, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memLogs) List(_ context.Context, uid, kind string, _ int) ([]entities.RecommendationLog, error) {
	var out []entities.RecommendationLog
	for _, r := range m.rows {
		if r.UserID == uid && (kind == "" || r.Kind == kind) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memLogs) CountSince(context.Context, string, time.Time) (int64, error) {
	return int64(len(m.rows)), nil
}

func (m *memLogs) DeleteBefore(context.Context, time.Time) (int64, error) { return 0, nil }

type brokenCatalog struct{}

func (brokenCatalog) Profiles(context.Context) ([]catalog.CropProfile, error) {
	return nil, errors.New("backend unreachable")
}

func (brokenCatalog) Diseases(context.Context) ([]catalog.Disease, error) {
	return nil, errors.New("backend unreachable")
}

type fixedRand struct{ f float64 }

func (r fixedRand) Float64() float64 { return r.f }
func (fixedRand) IntN(int) int       { return 0 }

func f(v float64) *float64 { return &v }

func riceSoil() *engine.SoilSample {
	return &engine.SoilSample{Ph: 6.5, Nitrogen: 70, Phosphorus: 40, Potassium: 40, Temperature: f(27), Humidity: f(65), Rainfall: f(180)}
}

func TestRecommendCrop(t *testing.T) {
	logs := &memLogs{}
	svc := New(service.Deps{Logs: logs})

	out, err := svc.RecommendCrop(context.Background(), "u1", service.CropRequest{SoilData: riceSoil(), Region: "punjab"})
	require.NoError(t, err)
	assert.False(t, out.Fallback)
	assert.Equal(t, "Rice", out.Crop.Name)
	assert.InDelta(t, 98, out.Crop.SuitabilityScore, 1e-9)
	assert.Equal(t, 96, out.Crop.ConfidencePercentage)
	assert.Contains(t, out.Crop.Rationale, "highly suitable")
	assert.Contains(t, out.Crop.Tips, "Keep 5 cm of standing water during tillering.")
	assert.Contains(t, out.Crop.Tips[len(out.Crop.Tips)-1], "widely grown in punjab")
	assert.Len(t, out.Alternatives, 2)
	assert.GreaterOrEqual(t, out.Crop.SuitabilityScore, out.Alternatives[0].SuitabilityScore)

	require.Len(t, logs.rows, 1)
	assert.Equal(t, out.LogID, logs.rows[0].ID)
	assert.Equal(t, entities.KindCrop, logs.rows[0].Kind)
	assert.False(t, logs.rows[0].Fallback)
}

func TestRecommendCropViolationTips(t *testing.T) {
	svc := New(service.Deps{Crops: catalog.Static{catalog.Default()}})
	soil := &engine.SoilSample{Ph: 8.2, Nitrogen: 10, Phosphorus: 40, Potassium: 40}
	out, err := svc.RecommendCrop(context.Background(), "u1", service.CropRequest{SoilData: soil})
	require.NoError(t, err)
	assert.Empty(t, out.Alternatives)
	assert.Contains(t, out.Crop.Rationale, "Soil pH 8.2 is above")
	assert.Contains(t, out.Crop.Tips, "Apply urea (46% N) in two or three split doses.")
}

func TestRecommendCropFallsBack(t *testing.T) {
	for name, src := range map[string]catalog.Source{"error": brokenCatalog{}, "empty": catalog.Static{}} {
		logs := &memLogs{}
		svc := New(service.Deps{Crops: src, Logs: logs})
		out, err := svc.RecommendCrop(context.Background(), "u1", service.CropRequest{SoilData: riceSoil()})
		require.NoError(t, err, name)
		assert.True(t, out.Fallback, name)
		assert.Equal(t, catalog.DefaultCropName, out.Crop.Name)
		assert.Equal(t, 60.0, out.Crop.SuitabilityScore)
		assert.Equal(t, engine.Confidence(60), out.Crop.ConfidencePercentage)
		assert.Equal(t, "Maize is moderately suitable, may need amendments.", out.Crop.Rationale)
		assert.NotNil(t, out.Alternatives)
		require.Len(t, logs.rows, 1)
		assert.True(t, logs.rows[0].Fallback)
	}
}

func TestRecommendCropValidation(t *testing.T) {
	svc := New(service.Deps{})
	_, err := svc.RecommendCrop(context.Background(), "u1", service.CropRequest{})
	assert.ErrorIs(t, err, service.ErrMissingField)

	_, err = svc.RecommendCrop(context.Background(), "u1", service.CropRequest{SoilData: &engine.SoilSample{Ph: 15}})
	assert.ErrorIs(t, err, service.ErrInvalidField)
}

func TestPersistFailureDoesNotBlock(t *testing.T) {
	svc := New(service.Deps{Logs: &memLogs{err: errors.New("disk full")}})
	out, err := svc.RecommendCrop(context.Background(), "u1", service.CropRequest{SoilData: riceSoil()})
	require.NoError(t, err)
	assert.Empty(t, out.LogID)
	assert.Equal(t, "Rice", out.Crop.Name)
}

func TestPlanBudget(t *testing.T) {
	logs := &memLogs{}
	svc := New(service.Deps{Logs: logs, Crops: catalog.Static{
		{Name: "Millet", CostPerAcre: 900, YieldPerAcre: 10, UnitPrice: 120},
	}})

	_, err := svc.PlanBudget(context.Background(), "u1", service.BudgetRequest{})
	assert.ErrorIs(t, err, service.ErrMissingField)
	_, err = svc.PlanBudget(context.Background(), "u1", service.BudgetRequest{FinancialData: &service.FinancialData{}})
	assert.ErrorIs(t, err, service.ErrMissingField)
	_, err = svc.PlanBudget(context.Background(), "u1", service.BudgetRequest{FinancialData: &service.FinancialData{Budget: f(-500)}})
	assert.ErrorIs(t, err, service.ErrInvalidField)
	assert.Empty(t, logs.rows)

	out, err := svc.PlanBudget(context.Background(), "u1", service.BudgetRequest{FinancialData: &service.FinancialData{Budget: f(1000)}})
	require.NoError(t, err)
	require.Len(t, out.BudgetPlan.Allocations, 1)
	assert.Equal(t, 1, out.BudgetPlan.Allocations[0].Acres)
	assert.Equal(t, 100.0, out.BudgetPlan.RemainingBudget)
	assert.NotEmpty(t, out.LogID)

	b, err := svc.ExportBudget(context.Background(), "u1", out.LogID)
	require.NoError(t, err)
	x, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer x.Close()
	rows, err := x.GetRows(planSheet)
	require.NoError(t, err)
	assert.Equal(t, "Crop", rows[0][0])
	assert.Equal(t, "Millet", rows[1][0])
	assert.Equal(t, "1", rows[1][1])

	_, err = svc.ExportBudget(context.Background(), "u2", out.LogID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestPlanBudgetFallsBackToBuiltin(t *testing.T) {
	svc := New(service.Deps{Crops: brokenCatalog{}})
	out, err := svc.PlanBudget(context.Background(), "u1", service.BudgetRequest{FinancialData: &service.FinancialData{Budget: f(100000)}})
	require.NoError(t, err)
	assert.True(t, out.Fallback)
	assert.NotEmpty(t, out.BudgetPlan.Allocations)
	assert.Empty(t, out.LogID)
}

func TestAnalyzeDisease(t *testing.T) {
	logs := &memLogs{}
	svc := New(service.Deps{Logs: logs, Rand: fixedRand{f: 0.4}})

	_, err := svc.AnalyzeDisease(context.Background(), "u1", service.DiseaseRequest{})
	assert.ErrorIs(t, err, service.ErrMissingField)

	out, err := svc.AnalyzeDisease(context.Background(), "u1", service.DiseaseRequest{ImageURL: "https://img/leaf.jpg"})
	require.NoError(t, err)
	assert.Equal(t, catalog.Diseases()[0].Name, out.MainDisease.Name)
	assert.InDelta(t, 0.7, out.MainDisease.Confidence, 1e-9)
	assert.Len(t, out.Diseases, 3)

	// the diagnosis is stored as the log output
	require.Len(t, logs.rows, 1)
	var stored engine.DiagnosisResult
	require.NoError(t, json.Unmarshal(logs.rows[0].Output, &stored))
	assert.Equal(t, out.MainDisease.Name, stored.MainDisease.Name)

	// not a budget log
	_, err = svc.ExportBudget(context.Background(), "u1", out.LogID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestAnalyzeDiseaseFailurePayload(t *testing.T) {
	for name, src := range map[string]catalog.DiseaseSource{"error": brokenCatalog{}, "empty": catalog.DiseaseTable{}} {
		logs := &memLogs{}
		svc := New(service.Deps{Diseases: src, Logs: logs})
		out, err := svc.AnalyzeDisease(context.Background(), "u1", service.DiseaseRequest{ImageURL: "x.jpg"})
		require.NoError(t, err, name)
		assert.Equal(t, service.AnalysisFailed, out.MainDisease.Name)
		assert.Equal(t, 0.0, out.MainDisease.Confidence)
		assert.NotNil(t, out.Diseases)
		require.Len(t, logs.rows, 1)
		assert.True(t, logs.rows[0].Fallback)
	}
}

func TestHistory(t *testing.T) {
	logs := &memLogs{}
	svc := New(service.Deps{Logs: logs})
	_, err := svc.RecommendCrop(context.Background(), "u1", service.CropRequest{SoilData: riceSoil()})
	require.NoError(t, err)
	_, err = svc.PlanBudget(context.Background(), "u1", service.BudgetRequest{FinancialData: &service.FinancialData{Budget: f(0)}})
	require.NoError(t, err)

	all, err := svc.History(context.Background(), "u1", "", 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	budget, err := svc.History(context.Background(), "u1", entities.KindBudget, 10)
	require.NoError(t, err)
	assert.Len(t, budget, 1)

	_, err = svc.History(context.Background(), "u1", "weather", 10)
	assert.ErrorIs(t, err, service.ErrInvalidField)
}
