package main

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

func init() {
	gin.SetMode(gin.TestMode)
}

func postJSON(t *testing.T, engine *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestCreateTranslationUnitReturnsTokenCount(t *testing.T) {
	engine := newEngine()
	rec := postJSON(t, engine, "/v1/translation-units", TranslationUnitRequest{
		FileName: "a.cpp",
		Source:   "int x;\n",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp TranslationUnitResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "a.cpp", resp.FileName)
	assert.Greater(t, resp.TokenCount, 0)
	assert.False(t, resp.HasErrors)
}

func TestCreateTranslationUnitRejectsUnrecognizedExtension(t *testing.T) {
	engine := newEngine()
	rec := postJSON(t, engine, "/v1/translation-units", TranslationUnitRequest{
		FileName: "a.txt",
		Source:   "int x;\n",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_REQUEST", resp.Code)
}

func TestCreateTranslationUnitRejectsMissingSource(t *testing.T) {
	engine := newEngine()
	rec := postJSON(t, engine, "/v1/translation-units", map[string]string{"file_name": "a.cpp"})

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_REQUEST", resp.Code)
}

func TestHealthzReportsOK(t *testing.T) {
	engine := newEngine()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsEndpointServesPrometheusExposition(t *testing.T) {
	engine := newEngine()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
