package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/cafeops/drinkshop/auth0"
	"github.com/cafeops/drinkshop/services"
	"github.com/cafeops/drinkshop/utils"
)

// HandleServiceError maps domain and auth errors to the uniform error
// envelope, keeping the original numeric code
func HandleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if err == nil {
		return
	}

	switch {
	case services.IsNotFoundError(err),
		services.IsValidationError(err),
		services.IsDuplicateError(err),
		services.IsUnauthorizedError(err):
		logger.Debug("handled domain error",
			zap.Int("status", services.StatusOf(err)),
			zap.Error(err))
		_ = utils.WriteError(w, services.StatusOf(err), domainMessage(err))
		return

	case services.IsQueryError(err):
		// persistence faults carry a stable client message; the cause
		// only goes to the log
		logger.Error("persistence fault", zap.Error(err))
		_ = utils.WriteError(w, services.StatusOf(err), domainMessage(err))
		return
	}

	var authErr *auth0.AuthError
	if errors.As(err, &authErr) {
		logger.Debug("handled auth error",
			zap.String("code", authErr.Code),
			zap.Int("status", authErr.Status))
		_ = utils.WriteError(w, authErr.Status, authErr.Description)
		return
	}

	logger.Error("unhandled error type", zap.Error(err))
	_ = utils.WriteError(w, http.StatusInternalServerError, "Internal Error")
}

// domainMessage extracts the client-facing message; DomainError.Error() is for
// logs and may include the wrapped cause
func domainMessage(err error) string {
	var domainErr *services.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}
	return err.Error()
}
