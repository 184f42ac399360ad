package v1

import (
	"errors"
	"net/http"

	"github.com/pocketledger/backend/internal/auth"
	"github.com/pocketledger/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"there is no account matching your query"`
}

// status returns the appropriate HTTP status for an error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	for _, unauthorized := range []error{
		auth.ErrTokenInvalid,
		auth.ErrTokenExpired,
		auth.ErrTokenWrongType,
		auth.ErrNoAuthHeader,
		auth.ErrCredentialsWrong,
	} {
		if errors.Is(err, unauthorized) {
			return http.StatusUnauthorized
		}
	}

	return http.StatusBadRequest
}
