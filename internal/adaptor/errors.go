package adaptor

import (
	"context"
	"errors"
	"net/http"

	"storefront-admin/internal/apperr"
	"storefront-admin/internal/permission"
	"storefront-admin/pkg/utils"

	"go.uber.org/zap"
)

// handleServiceError maps the apperr kinds onto HTTP statuses. Anything it
// does not recognize is logged and reported as a 500 without details.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var (
		validationErr *apperr.ValidationError
		permissionErr *apperr.PermissionError
		transitionErr *apperr.TransitionError
	)

	switch {
	case errors.As(err, &validationErr):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, "Validation failed", validationErr.Fields)

	case errors.Is(err, apperr.ErrUnauthenticated):
		log.Warn(operation+" failed - invalid credentials", zap.Error(err))
		utils.ResponseUnauthorized(w, err.Error())

	case errors.As(err, &permissionErr):
		log.Warn(operation+" failed - permission denied", zap.Error(err))
		if permissionErr.Reason == permission.ReasonAuthRequired {
			utils.ResponseUnauthorized(w, "Authentication required")
			return
		}
		utils.ResponseForbidden(w, err.Error())

	case errors.As(err, &transitionErr):
		log.Warn(operation+" failed - invalid transition", zap.Error(err))
		utils.ResponseConflict(w, "Invalid status transition", map[string]string{
			"from": transitionErr.From,
			"to":   transitionErr.To,
		})

	case errors.Is(err, apperr.ErrConflict):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error(), nil)

	case errors.Is(err, apperr.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, context.DeadlineExceeded):
		log.Error(operation+" timed out", zap.Error(err))
		utils.ResponseJSON(w, http.StatusGatewayTimeout, false, "Request timed out", nil, nil)

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
