package httpx

import (
	"errors"
	"net/http"

	"github.com/appubr/backoffice/internal/shared"
)

// Sentinel errors for the handler layer.
var (
	ErrValidation = errors.New("validation failed")
)

// RespondError maps domain errors to HTTP responses. The detail string is
// intentionally generic for authorization-adjacent failures.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, shared.ErrDuplicate):
		Problem(w, http.StatusConflict, "Duplicate", err.Error())
	case errors.Is(err, shared.ErrInvalidCredentials):
		Problem(w, http.StatusUnauthorized, "Unauthorized", "invalid credentials")
	case errors.Is(err, ErrValidation):
		Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
