package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assetdash/assetdash/internal/catalogsrv/apis"
	"github.com/assetdash/assetdash/internal/catalogsrv/catalogstore"
	"github.com/assetdash/assetdash/internal/catalogsrv/catalogview"
	"github.com/assetdash/assetdash/internal/common/middleware"
)

func newTestBackend(t *testing.T) *apis.Backend {
	c, err := catalogstore.Bundled()
	require.NoError(t, err)
	return apis.NewBackend(c, catalogview.NewCache(8))
}

func executeTestRequest(t *testing.T, req *http.Request, b *apis.Backend) *httptest.ResponseRecorder {
	s, err := CreateNewServer(b)
	assert.NoError(t, err, "create new server")

	// Mount Handlers
	s.MountHandlers()

	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)

	return rr
}

func checkHeader(t *testing.T, h http.Header) {
	expected := "application/json"
	got := h.Get("Content-Type")
	assert.Equal(t, expected, got, "Content-Type expected %s, got %s", expected, got)
	assert.NotEmpty(t, h.Get(middleware.RequestIDHeader), "No Request Id")
}

func compareJson(t *testing.T, expected any, actual string) {
	j, err := json.Marshal(expected)
	assert.NoError(t, err, "json marshal")
	assert.JSONEq(t, string(j), actual, "Expected: %v\n Got: %v\n", expected, actual)
}
