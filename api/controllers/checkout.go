package controllers

import (
	"net/http"

	"github.com/wildwestwallart/storefront-backend/api/middleware"
	"github.com/wildwestwallart/storefront-backend/api/responses"
	"github.com/wildwestwallart/storefront-backend/api/validators"
	cartsvc "github.com/wildwestwallart/storefront-backend/internal/cart"
	"github.com/wildwestwallart/storefront-backend/internal/notifications"
	pkgerrors "github.com/wildwestwallart/storefront-backend/pkg/errors"
	"github.com/wildwestwallart/storefront-backend/pkg/logger"
)

type checkoutNotifyRequest struct {
	Name  string                  `json:"name" validate:"required"`
	Email string                  `json:"email" validate:"required,email"`
	Order cartsvc.CheckoutPayload `json:"order" validate:"required"`
}

// CartCheckout freezes the session's cart into a checkout payload.
func CartCheckout(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		payload, err := svc.PrepareForCheckout(r.Context(), middleware.SessionIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, payload)
	}
}

// CheckoutNotify fires the order confirmation to the customer and the
// heads-up to the admin inbox. An unconfigured email provider reports
// emailSent=false rather than failing the checkout.
func CheckoutNotify(svc notifications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "notification service unavailable"))
			return
		}

		var payload checkoutNotifyRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if payload.Order.OrderRef == "" || len(payload.Order.Items) == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "order payload is required"))
			return
		}

		customer := notifications.Customer{Name: payload.Name, Email: payload.Email}
		sent, err := svc.SendOrderConfirmation(r.Context(), customer, payload.Order)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if sent {
			if _, err := svc.SendAdminNotification(r.Context(), customer, payload.Order); err != nil {
				// The customer mail already went out; don't fail the call.
				if logg != nil {
					logg.Error(r.Context(), "checkout.admin_notify_failed", err)
				}
			}
		}

		responses.WriteSuccess(w, map[string]any{
			"orderRef":  payload.Order.OrderRef,
			"emailSent": sent,
		})
	}
}
