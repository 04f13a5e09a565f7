package controllerImp

import (
	"context"
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
	"agrow/entities"
	cropRepoImp "agrow/pkg/crop/repositoryImp"
	"agrow/pkg/middleware"
	"agrow/pkg/task/repositoryImp"
	"agrow/pkg/task/serviceImp"
)

// newServer returns the echo instance and the id of a crop owned by u1.
func newServer(t *testing.T) (*echo.Echo, string) {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "task.db"))
	require.NoError(t, err)
	crops := cropRepoImp.New(db)
	crop := &entities.Crop{UserID: "u1", Name: "Wheat"}
	require.NoError(t, crops.Create(context.Background(), crop))
	h := New(serviceImp.NewTaskService(repositoryImp.New(db), crops))

	e := echo.New()
	e.Use(middleware.Proxy(), middleware.Session(nil, "en"))
	e.POST("/api/tasks", h.Create)
	e.GET("/api/tasks", h.List)
	e.GET("/api/tasks/:id", h.Get)
	e.PATCH("/api/tasks/:id", h.Patch)
	e.DELETE("/api/tasks/:id", h.Delete)
	return e, crop.ID
}

func do(e *echo.Echo, method, target, uid, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(middleware.UIDHeader, uid)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestTaskLifecycle(t *testing.T) {
	e, cropID := newServer(t)

	rec := do(e, http.MethodPost, "/api/tasks", "u1", `{"title":"Irrigate","due_date":"2026-07-01","crop_id":"`+cropID+`"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := rec.Body.String()
	id := gjson.Get(body, "id").String()
	assert.Equal(t, "pending", gjson.Get(body, "status").String())
	assert.Equal(t, "medium", gjson.Get(body, "priority").String())
	assert.Equal(t, cropID, gjson.Get(body, "crop_id").String())

	rec = do(e, http.MethodPatch, "/api/tasks/"+id, "u1", `{"status":"in-progress","crop_id":""}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "in-progress", gjson.Get(rec.Body.String(), "status").String())
	assert.Equal(t, gjson.Null, gjson.Get(rec.Body.String(), "crop_id").Type)
	assert.Equal(t, "Irrigate", gjson.Get(rec.Body.String(), "title").String())

	rec = do(e, http.MethodPatch, "/api/tasks/"+id, "u1", `{"status":"done"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodGet, "/api/tasks?status=in-progress", "u1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1), gjson.Get(rec.Body.String(), "#").Int())

	rec = do(e, http.MethodPatch, "/api/tasks/"+id, "u2", `{"status":"completed"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(e, http.MethodDelete, "/api/tasks/"+id, "u1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestTaskCropMustBelongToUser(t *testing.T) {
	e, cropID := newServer(t)

	rec := do(e, http.MethodPost, "/api/tasks", "u1", `{"title":"Spray","crop_id":"no-such-crop"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, gjson.Get(rec.Body.String(), "error").String(), "crop_id")

	rec = do(e, http.MethodPost, "/api/tasks", "u2", `{"title":"Spray","crop_id":"`+cropID+`"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "another user's crop")

	rec = do(e, http.MethodPost, "/api/tasks", "u2", `{"title":"Spray"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := gjson.Get(rec.Body.String(), "id").String()

	rec = do(e, http.MethodPatch, "/api/tasks/"+id, "u2", `{"crop_id":"`+cropID+`"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = do(e, http.MethodGet, "/api/tasks/"+id, "u2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, gjson.Null, gjson.Get(rec.Body.String(), "crop_id").Type)
}

func TestTaskCreateValidation(t *testing.T) {
	e, _ := newServer(t)
	for _, body := range []string{
		`{"description":"no title"}`,
		`{"title":"x","status":"done"}`,
		`{"title":"x","priority":"urgent"}`,
		`{"title":"x","due_date":"tomorrow"}`,
	} {
		rec := do(e, http.MethodPost, "/api/tasks", "u1", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}
