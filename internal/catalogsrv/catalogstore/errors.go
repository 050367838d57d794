package catalogstore

import (
	"net/http"

	"github.com/assetdash/assetdash/internal/common/apperrors"
)

var (
	ErrCatalogError         apperrors.Error = apperrors.New("catalog error").SetStatusCode(http.StatusInternalServerError)
	ErrCatalogNotFound      apperrors.Error = ErrCatalogError.New("catalog source not found").SetStatusCode(http.StatusNotFound)
	ErrCatalogFetch         apperrors.Error = ErrCatalogError.New("unable to fetch catalog").SetStatusCode(http.StatusBadGateway)
	ErrUnsupportedFormat    apperrors.Error = ErrCatalogError.New("unsupported catalog format").SetStatusCode(http.StatusBadRequest)
	ErrDecompress           apperrors.Error = ErrCatalogError.New("unable to decompress catalog").SetStatusCode(http.StatusBadRequest)
	ErrInvalidCatalog       apperrors.Error = ErrCatalogError.New("invalid catalog").SetStatusCode(http.StatusBadRequest).SetExpandError(true)
	ErrDuplicateAssetID     apperrors.Error = ErrInvalidCatalog.New("duplicate asset id").SetStatusCode(http.StatusBadRequest)
	ErrCatalogSchemaInvalid apperrors.Error = ErrInvalidCatalog.New("catalog does not match schema").SetStatusCode(http.StatusBadRequest).SetExpandError(true)
)
