package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assetdash/assetdash/internal/catalogsrv/config"
	"github.com/assetdash/assetdash/internal/common/middleware"
	"github.com/assetdash/assetdash/pkg/api"
)

func TestGetVersion(t *testing.T) {
	req, _ := http.NewRequest("GET", "/version", nil)
	response := executeTestRequest(t, req, nil)

	require.Equal(t, http.StatusOK, response.Code)
	checkHeader(t, response.Result().Header)

	compareJson(t,
		&api.GetVersionRsp{
			ServerVersion: "AssetDash Catalog Server: " + api.ServerVersion,
			ApiVersion:    api.ApiVersion,
		}, response.Body.String())
}

func TestReadiness(t *testing.T) {
	b := newTestBackend(t)
	req, _ := http.NewRequest("GET", "/ready", nil)
	response := executeTestRequest(t, req, b)
	require.Equal(t, http.StatusOK, response.Code)
	compareJson(t, &api.ReadyRsp{Ready: true, Fingerprint: b.Catalog().Fingerprint()}, response.Body.String())

	req, _ = http.NewRequest("GET", "/ready", nil)
	response = executeTestRequest(t, req, nil)
	require.Equal(t, http.StatusServiceUnavailable, response.Code)
	compareJson(t, &api.ReadyRsp{Ready: false}, response.Body.String())
}

func TestCatalogRoutes(t *testing.T) {
	b := newTestBackend(t)

	req, _ := http.NewRequest("GET", "/assets?country=Norway", nil)
	response := executeTestRequest(t, req, b)
	require.Equal(t, http.StatusOK, response.Code)
	checkHeader(t, response.Result().Header)
	assert.Contains(t, response.Body.String(), `"count":5`)

	req, _ = http.NewRequest("GET", "/assets", nil)
	response = executeTestRequest(t, req, nil)
	assert.Equal(t, http.StatusServiceUnavailable, response.Code)

	req, _ = http.NewRequest("POST", "/assets", nil)
	response = executeTestRequest(t, req, b)
	assert.Equal(t, http.StatusMethodNotAllowed, response.Code)
	compareJson(t, map[string]any{"result": 0, "error": "Request Method Not Supported"}, response.Body.String())

	req, _ = http.NewRequest("GET", "/pipelines", nil)
	response = executeTestRequest(t, req, b)
	assert.Equal(t, http.StatusNotFound, response.Code)
	compareJson(t, map[string]any{"result": 0, "error": "Resource not found"}, response.Body.String())
}

func TestRequestIDPropagates(t *testing.T) {
	req, _ := http.NewRequest("GET", "/version", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-123")
	response := executeTestRequest(t, req, nil)
	assert.Equal(t, "req-123", response.Header().Get(middleware.RequestIDHeader))
}

func TestCORS(t *testing.T) {
	b := newTestBackend(t)
	origin := config.Config().AllowedOrigins[0]

	req, _ := http.NewRequest("OPTIONS", "/assets", nil)
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", "GET")
	response := executeTestRequest(t, req, b)
	assert.Equal(t, origin, response.Header().Get("Access-Control-Allow-Origin"))

	req, _ = http.NewRequest("GET", "/assets", nil)
	req.Header.Set("Origin", "http://evil.example")
	response = executeTestRequest(t, req, b)
	assert.Equal(t, http.StatusOK, response.Code)
	assert.Empty(t, response.Header().Get("Access-Control-Allow-Origin"))
}
