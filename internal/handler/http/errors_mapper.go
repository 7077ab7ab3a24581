package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-rest-api/internal/logger"
	"github.com/MKhiriev/go-rest-api/internal/service"
	"github.com/MKhiriev/go-rest-api/internal/utils"
	"github.com/MKhiriev/go-rest-api/models"
)

var errorStatusMap = map[error]int{
	service.ErrClientInput:     http.StatusBadRequest,
	service.ErrValidation:      http.StatusBadRequest,
	service.ErrUnauthorized:    http.StatusUnauthorized,
	service.ErrForbidden:       http.StatusForbidden,
	service.ErrNotFound:        http.StatusNotFound,
	service.ErrUnknownResource: http.StatusNotFound,
	service.ErrConflict:        http.StatusConflict,
	service.ErrPersistence:     http.StatusInternalServerError,

	ErrInvalidJSON:                http.StatusBadRequest,
	ErrEmptyBody:                  http.StatusBadRequest,
	ErrBodyTooLarge:               http.StatusRequestEntityTooLarge,
	ErrInvalidID:                  http.StatusBadRequest,
	ErrEmptyAuthorizationHeader:   http.StatusUnauthorized,
	ErrInvalidAuthorizationHeader: http.StatusUnauthorized,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// errorResponse builds the body for err. Unauthorized and internal errors
// carry their status text only.
func errorResponse(err error, status int) models.ErrorResponse {
	var verrs *service.ValidationErrors
	if errors.As(err, &verrs) {
		return models.ErrorResponse{Error: service.ErrValidation.Error(), Messages: verrs.Messages}
	}

	switch status {
	case http.StatusUnauthorized, http.StatusInternalServerError:
		return models.ErrorResponse{Error: http.StatusText(status)}
	}
	return models.ErrorResponse{Error: err.Error()}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)
	if status >= http.StatusInternalServerError {
		logger.FromRequest(r).Err(err).Int("status", status).Msg("request failed")
	} else {
		logger.FromRequest(r).Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	utils.WriteJSON(w, errorResponse(err, status), status)
}
