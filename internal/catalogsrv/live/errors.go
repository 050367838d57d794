package live

import (
	"net/http"

	"github.com/assetdash/assetdash/internal/common/apperrors"
)

var (
	ErrLiveError       apperrors.Error = apperrors.New("error in processing live session").SetStatusCode(http.StatusInternalServerError)
	ErrInvalidSession  apperrors.Error = ErrLiveError.New("invalid session").SetStatusCode(http.StatusBadRequest)
	ErrAlreadyExists   apperrors.Error = ErrLiveError.New("session already exists").SetStatusCode(http.StatusConflict)
	ErrTooManySessions apperrors.Error = ErrLiveError.New("too many live sessions").SetStatusCode(http.StatusServiceUnavailable)
	ErrBadMessage      apperrors.Error = apperrors.New("bad message").SetStatusCode(http.StatusBadRequest)
)
