package controllers

import (
	"net/http"

	"github.com/wildwestwallart/storefront-backend/api/responses"
	"github.com/wildwestwallart/storefront-backend/api/validators"
	"github.com/wildwestwallart/storefront-backend/internal/notifications"
	pkgerrors "github.com/wildwestwallart/storefront-backend/pkg/errors"
	"github.com/wildwestwallart/storefront-backend/pkg/logger"
)

// Contact relays a contact-form submission to the admin inbox.
func Contact(svc notifications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "notification service unavailable"))
			return
		}

		var payload notifications.ContactMessage
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sent, err := svc.SendContactEmail(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"emailSent": sent})
	}
}
