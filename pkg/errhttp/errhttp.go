// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/equiptrack/pkg/httpx"
	identitydomain "github.com/ghuser/equiptrack/services/identity/domain"
	trackingdomain "github.com/ghuser/equiptrack/services/tracking/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors.
func WriteError(w http.ResponseWriter, err error) {
	httpx.JSONError(w, mapErrorToStatus(err), err.Error())
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, trackingdomain.ErrItemNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, identitydomain.ErrUserNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, identitydomain.ErrOrganisationNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, trackingdomain.ErrUnknownEventType):
		return http.StatusBadRequest // 400
	case errors.Is(err, trackingdomain.ErrUnknownDomain):
		return http.StatusNotFound // 404
	case errors.Is(err, trackingdomain.ErrInvalidDeviceID):
		return http.StatusBadRequest // 400
	case errors.Is(err, trackingdomain.ErrItemAlreadyExists):
		return http.StatusConflict // 409
	default:
		return http.StatusInternalServerError // 500
	}
}
