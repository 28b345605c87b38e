package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wildwestwallart/storefront-backend/api/middleware"
	"github.com/wildwestwallart/storefront-backend/api/responses"
	"github.com/wildwestwallart/storefront-backend/api/validators"
	cartsvc "github.com/wildwestwallart/storefront-backend/internal/cart"
	"github.com/wildwestwallart/storefront-backend/internal/catalog"
	"github.com/wildwestwallart/storefront-backend/pkg/enums"
	pkgerrors "github.com/wildwestwallart/storefront-backend/pkg/errors"
	"github.com/wildwestwallart/storefront-backend/pkg/logger"
)

type addCartItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Finish    string `json:"finish" validate:"required"`
	Size      string `json:"size" validate:"required"`
	Quantity  int    `json:"quantity" validate:"omitempty,min=1"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"min=0"`
}

type cartResponse struct {
	Items   []cartsvc.Item  `json:"items"`
	Summary cartsvc.Summary `json:"summary"`
}

// GetCart serves the session's cart lines and totals.
func GetCart(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}
		sessionID := middleware.SessionIDFromContext(r.Context())
		responses.WriteSuccess(w, cartResponse{
			Items:   svc.Items(r.Context(), sessionID),
			Summary: svc.GetSummary(r.Context(), sessionID),
		})
	}
}

// AddCartItem resolves the product against the live catalog and adds the
// selection to the session's cart.
func AddCartItem(carts cartsvc.Service, products catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if carts == nil || products == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		finish, ok := enums.ParseFinish(payload.Finish)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown finish"))
			return
		}
		size, ok := enums.ParseSize(payload.Size)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown size"))
			return
		}

		product := products.GetProductByID(r.Context(), payload.ProductID)
		if product == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		item, err := carts.AddItem(r.Context(), sessionID, product, finish, size, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{
			"item":    item,
			"summary": carts.GetSummary(r.Context(), sessionID),
		})
	}
}

// UpdateCartItem sets a line's quantity; zero removes it.
func UpdateCartItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var payload updateCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		itemID := chi.URLParam(r, "itemID")
		if err := svc.UpdateItemQuantity(r.Context(), sessionID, itemID, payload.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cartResponse{
			Items:   svc.Items(r.Context(), sessionID),
			Summary: svc.GetSummary(r.Context(), sessionID),
		})
	}
}

// RemoveCartItem drops a line. Removing an absent line is not an error.
func RemoveCartItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		removed, err := svc.RemoveItem(r.Context(), sessionID, chi.URLParam(r, "itemID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"removed": removed,
			"items":   svc.Items(r.Context(), sessionID),
			"summary": svc.GetSummary(r.Context(), sessionID),
		})
	}
}

// ClearCart empties the session's cart.
func ClearCart(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		if err := svc.ClearCart(r.Context(), sessionID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, svc.GetSummary(r.Context(), sessionID))
	}
}

// CartSummary serves just the totals block.
func CartSummary(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}
		responses.WriteSuccess(w, svc.GetSummary(r.Context(), middleware.SessionIDFromContext(r.Context())))
	}
}

// ValidateCart reconciles the cart against the live catalog.
func ValidateCart(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}
		result := svc.ValidateCart(r.Context(), middleware.SessionIDFromContext(r.Context()))
		responses.WriteSuccess(w, result)
	}
}
