package http

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
)

// SettingsInvalidator drops cached system configuration.
type SettingsInvalidator interface {
	Invalidate(ctx context.Context) error
}

type SettingsHandler interface {
	InvalidateCache(w http.ResponseWriter, r *http.Request)
}

type settingsHandlerImpl struct {
	invalidator SettingsInvalidator
}

// NewSettingsHandler returns a handler whose InvalidateCache is a no-op when
// invalidator is nil.
func NewSettingsHandler(invalidator SettingsInvalidator) SettingsHandler {
	return &settingsHandlerImpl{
		invalidator: invalidator,
	}
}

// InvalidateCache implements SettingsHandler.
func (h *settingsHandlerImpl) InvalidateCache(w http.ResponseWriter, r *http.Request) {
	if h.invalidator != nil {
		if err := h.invalidator.Invalidate(r.Context()); err != nil {
			response.HandleError(w, err)
			return
		}
	}

	response.SuccessWithMessage(w, "Settings cache invalidated", nil)
}
