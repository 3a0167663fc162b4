package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/oaknest/storefront/internal/repository"
	"github.com/oaknest/storefront/internal/service"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zap.S().Warnw("failed to encode response", "err", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleServiceError translates workflow and repository errors into HTTP
// responses. Everything unrecognized is a 500 with a generic message; the
// underlying error is logged, not leaked.
func handleServiceError(log *zap.SugaredLogger, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrProductNotFound),
		errors.Is(err, repository.ErrVehicleNotFound),
		errors.Is(err, repository.ErrOrderNotFound),
		errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrDepartmentNotFound):
		respondError(w, http.StatusNotFound, "not_found", err.Error())

	case errors.Is(err, service.ErrNoItems),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrOutOfStock),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidID),
		errors.Is(err, service.ErrNotCancellable),
		errors.Is(err, service.ErrVehicleIDRequired),
		errors.Is(err, service.ErrInvalidVehicleType),
		errors.Is(err, service.ErrEmailRequired),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrNameRequired),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrInvalidPrice),
		errors.Is(err, service.ErrInvalidCapacity):
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())

	case errors.Is(err, service.ErrEmailMismatch):
		respondError(w, http.StatusForbidden, "forbidden", err.Error())

	case errors.Is(err, service.ErrCancelWindowExpired):
		respondError(w, http.StatusForbidden, "policy_violation", err.Error())

	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "unauthenticated", err.Error())

	case errors.Is(err, repository.ErrVehicleUnavailable),
		errors.Is(err, service.ErrNoVehicleAssigned),
		errors.Is(err, repository.ErrDuplicateEmail),
		errors.Is(err, repository.ErrDuplicateVehicleNumber):
		respondError(w, http.StatusConflict, "conflict", err.Error())

	default:
		log.Errorw("internal error", "err", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
