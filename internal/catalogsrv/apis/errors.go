package apis

import (
	"net/http"

	"github.com/assetdash/assetdash/internal/common/apperrors"
)

var (
	ErrRequestError    apperrors.Error = apperrors.New("unable to process request").SetStatusCode(http.StatusInternalServerError)
	ErrAssetNotFound   apperrors.Error = ErrRequestError.New("asset not found").SetStatusCode(http.StatusNotFound)
	ErrInvalidCriteria apperrors.Error = ErrRequestError.New("invalid filter criteria").SetStatusCode(http.StatusBadRequest)
	ErrCatalogNotReady apperrors.Error = ErrRequestError.New("catalog not loaded").SetStatusCode(http.StatusServiceUnavailable)
)
