package apis

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/assetdash/assetdash/internal/common/apperrors"
	"github.com/assetdash/assetdash/internal/common/httpx"
)

func TestError(t *testing.T) {
	err := ErrAssetNotFound.Suffix("EQ-1")
	assert.Equal(t, "asset not found: EQ-1", err.Error())
	assert.Equal(t, http.StatusNotFound, err.StatusCode())
	assert.True(t, errors.Is(err, ErrAssetNotFound))
	assert.True(t, errors.Is(err, ErrRequestError))
	assert.False(t, errors.Is(err, ErrInvalidCriteria))

	tests := []struct {
		err  apperrors.Error
		code int
	}{
		{ErrRequestError, http.StatusInternalServerError},
		{ErrInvalidCriteria.Suffix("search"), http.StatusBadRequest},
		{ErrCatalogNotReady, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		rr := httptest.NewRecorder()
		httpx.SendError(rr, tt.err)
		assert.Equal(t, tt.code, rr.Code, tt.err.Error())
		assert.Contains(t, rr.Body.String(), tt.err.Error())
	}
}
