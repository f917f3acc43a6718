package content

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc, _ := newTestService()
	controller := NewController(svc)

	r := gin.New()
	api := r.Group("/api/v1")
	SetupContentRoutes(api, controller)
	SetupAdminContentRoutes(api.Group("/admin"), controller)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestController_BlockedDateEndpoints(t *testing.T) {
	r := setupRouter()

	w := do(r, http.MethodPost, "/api/v1/admin/blocked-dates", `{"date":"2024-12-25"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data BlockedDateResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Data.Changed)
	assert.Equal(t, []string{"2024-12-25"}, resp.Data.BlockedDates)

	w = do(r, http.MethodPost, "/api/v1/admin/blocked-dates", `{"date":"2024-12-25"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Data.Changed)

	w = do(r, http.MethodPost, "/api/v1/admin/blocked-dates", `{"date":"Christmas"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodDelete, "/api/v1/admin/blocked-dates/2024-12-25", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Data.Changed)
	assert.Empty(t, resp.Data.BlockedDates)

	w = do(r, http.MethodPut, "/api/v1/admin/blocked-dates", `{"blockedDates":["2025-01-02","2025-01-01","2025-01-02"]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `["2025-01-01","2025-01-02"]`)
}

func TestController_ContentAndPricing(t *testing.T) {
	r := setupRouter()

	w := do(r, http.MethodGet, "/api/v1/content", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"heroTagline":"Escapada Exclusiva"`)
	assert.Contains(t, w.Body.String(), `"heroDescriptionHtml"`)

	w = do(r, http.MethodPut, "/api/v1/admin/content", `{"heroTagline":"Summer 2025"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"heroTagline":"Summer 2025"`)

	w = do(r, http.MethodPut, "/api/v1/admin/pricing",
		`{"defaultPrice":150,"seasonalPrices":[{"name":"Summer","startDate":"2024-07-01","endDate":"2024-07-31","price":220}]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"defaultPrice":150`)

	w = do(r, http.MethodPut, "/api/v1/admin/pricing", `{"defaultPrice":-1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
