package controllerImp

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"agrow/database"
	"agrow/pkg/advisory/repositoryImp"
	"agrow/pkg/advisory/service"
	"agrow/pkg/advisory/serviceImp"
	"agrow/pkg/catalog"
	"agrow/pkg/middleware"
)

func newServer(t *testing.T, d service.Deps) *echo.Echo {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "advisory.db"))
	require.NoError(t, err)
	d.Logs = repositoryImp.New(db)
	h := New(serviceImp.New(d))

	e := echo.New()
	e.Use(middleware.Proxy(), middleware.Session(nil, "en"))
	e.POST("/api/recommendations/crop", h.RecommendCrop)
	e.POST("/api/recommendations/budget", h.PlanBudget)
	e.GET("/api/recommendations/budget/:id/export", h.ExportBudget)
	e.GET("/api/recommendations/history", h.History)
	e.POST("/api/diseases/analyze", h.AnalyzeDisease)
	return e
}

func do(e *echo.Echo, method, target, uid, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(middleware.UIDHeader, uid)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRecommendCropEndpoint(t *testing.T) {
	e := newServer(t, service.Deps{})
	body := `{"soilData":{"ph":6.5,"nitrogen":70,"phosphorus":40,"potassium":40,"temperature":27,"humidity":65,"rainfall":180},"region":"Punjab"}`

	rec := do(e, http.MethodPost, "/api/recommendations/crop", "u1", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := gjson.Parse(rec.Body.String())
	assert.Equal(t, "Rice", res.Get("crop.name").String())
	assert.Equal(t, 98.0, res.Get("crop.suitabilityScore").Float())
	assert.Equal(t, int64(96), res.Get("crop.confidencePercentage").Int())
	assert.Equal(t, 30.0, res.Get("crop.scoreBreakdown.ph").Float())
	assert.True(t, res.Get("crop.tips").IsArray())
	assert.Equal(t, int64(2), res.Get("alternatives.#").Int())
	assert.False(t, res.Get("fallback").Bool())
	assert.NotEmpty(t, res.Get("logId").String())

	rec = do(e, http.MethodPost, "/api/recommendations/crop", "u1", `{"region":"Punjab"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, gjson.Get(rec.Body.String(), "error").String(), "soilData")
}

func TestBudgetEndpointAndExport(t *testing.T) {
	e := newServer(t, service.Deps{})

	rec := do(e, http.MethodPost, "/api/recommendations/budget", "u1",
		`{"financialData":{"budget":200000,"existingCrops":["wheat"],"marketPrices":{"Wheat":2500}}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := gjson.Parse(rec.Body.String())
	assert.Equal(t, "Wheat", res.Get("budgetPlan.allocations.0.crop").String())
	assert.True(t, res.Get("budgetPlan.allocations.0.existing").Bool())
	assert.Equal(t, 200000.0, res.Get("budgetPlan.totalBudget").Float())
	assert.InDelta(t, 200000.0,
		res.Get("budgetPlan.totalAllocated").Float()+res.Get("budgetPlan.remainingBudget").Float(), 1e-6)
	for _, a := range res.Get("budgetPlan.allocations").Array() {
		assert.LessOrEqual(t, a.Get("acres").Int(), int64(10))
	}
	id := res.Get("logId").String()
	require.NotEmpty(t, id)

	rec = do(e, http.MethodGet, "/api/recommendations/budget/"+id+"/export", "u1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxMIME, rec.Header().Get(echo.HeaderContentType))
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "budget-plan-"+id)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "PK"), "xlsx is a zip archive")

	rec = do(e, http.MethodGet, "/api/recommendations/budget/"+id+"/export", "u2", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(e, http.MethodPost, "/api/recommendations/budget", "u1", `{"financialData":{"existingCrops":[]}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodPost, "/api/recommendations/budget", "u1", `{"financialData":{"budget":-1000}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, gjson.Get(rec.Body.String(), "error").String(), "negative")

	rec = do(e, http.MethodPost, "/api/recommendations/budget", "u1", `{"financialData":{"budget":0}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(0), gjson.Get(rec.Body.String(), "budgetPlan.allocations.#").Int())
	assert.Equal(t, 0.0, gjson.Get(rec.Body.String(), "budgetPlan.remainingBudget").Float())
}

func TestDiseaseEndpointEmptyCatalog(t *testing.T) {
	e := newServer(t, service.Deps{Diseases: catalog.DiseaseTable{}})
	rec := do(e, http.MethodPost, "/api/diseases/analyze", "u1", `{"imageUrl":"https://cdn/leaf.jpg"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.AnalysisFailed, gjson.Get(rec.Body.String(), "mainDisease.name").String())
	assert.Equal(t, int64(0), gjson.Get(rec.Body.String(), "diseases.#").Int())
}

func TestDiseaseEndpoint(t *testing.T) {
	e := newServer(t, service.Deps{})
	rec := do(e, http.MethodPost, "/api/diseases/analyze", "u1",
		`{"imageUrl":"https://cdn/leaf.jpg","weatherData":{"temperature":25,"humidity":85}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	res := gjson.Parse(rec.Body.String())
	main := res.Get("mainDisease.confidence").Float()
	assert.GreaterOrEqual(t, main, 0.5)
	assert.LessOrEqual(t, main, 0.98)
	assert.Equal(t, res.Get("mainDisease.name").String(), res.Get("diseases.0.name").String())
	for _, d := range res.Get("diseases").Array()[1:] {
		assert.Less(t, d.Get("confidence").Float(), main)
	}

	rec = do(e, http.MethodPost, "/api/diseases/analyze", "u1", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHistoryEndpoint(t *testing.T) {
	e := newServer(t, service.Deps{})
	do(e, http.MethodPost, "/api/recommendations/budget", "u1", `{"financialData":{"budget":50000}}`)
	do(e, http.MethodPost, "/api/diseases/analyze", "u1", `{"imageUrl":"a.jpg"}`)
	do(e, http.MethodPost, "/api/diseases/analyze", "u2", `{"imageUrl":"b.jpg"}`)

	rec := do(e, http.MethodGet, "/api/recommendations/history", "u1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(2), gjson.Get(rec.Body.String(), "#").Int())

	rec = do(e, http.MethodGet, "/api/recommendations/history?kind=disease", "u1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1), gjson.Get(rec.Body.String(), "#").Int())
	assert.Equal(t, "disease", gjson.Get(rec.Body.String(), "0.kind").String())
	assert.Equal(t, "a.jpg", gjson.Get(rec.Body.String(), "0.input.imageUrl").String())

	rec = do(e, http.MethodGet, "/api/recommendations/history?kind=nope", "u1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
