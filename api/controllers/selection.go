package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/wildwestwallart/storefront-backend/api/middleware"
	"github.com/wildwestwallart/storefront-backend/api/responses"
	"github.com/wildwestwallart/storefront-backend/api/validators"
	cartsvc "github.com/wildwestwallart/storefront-backend/internal/cart"
	"github.com/wildwestwallart/storefront-backend/internal/catalog"
	"github.com/wildwestwallart/storefront-backend/internal/productview"
	"github.com/wildwestwallart/storefront-backend/pkg/enums"
	pkgerrors "github.com/wildwestwallart/storefront-backend/pkg/errors"
	"github.com/wildwestwallart/storefront-backend/pkg/logger"
)

type buyNowRequest struct {
	Finish   string `json:"finish"`
	Size     string `json:"size"`
	Quantity int    `json:"quantity" validate:"omitempty,min=1"`
}

// ProductPricing prices a detail-page selection without touching the cart.
// The finish query parameter tolerates junk the way a shared product link
// should; size and quantity are validated strictly.
func ProductPricing(products catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if products == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		product := products.GetProductByID(r.Context(), chi.URLParam(r, "productID"))
		if product == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}

		view := productview.NewView(*product, r.URL.Query().Get("finish"))

		if raw := strings.TrimSpace(r.URL.Query().Get("size")); raw != "" {
			size, ok := enums.ParseSize(raw)
			if !ok {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown size"))
				return
			}
			if err := view.SelectSize(size); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		quantity, err := validators.ParseQueryInt(r, "quantity", 1, 1, 999)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		view.SetQuantity(quantity)

		responses.WriteSuccess(w, map[string]any{
			"productId": product.ID,
			"finish":    view.Finish,
			"size":      view.Size,
			"pricing":   view.PriceBlock(),
		})
	}
}

// BuyNow adds a selection and immediately returns the checkout payload.
func BuyNow(products catalog.Service, carts cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if products == nil || carts == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		product := products.GetProductByID(r.Context(), chi.URLParam(r, "productID"))
		if product == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}

		var payload buyNowRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view := productview.NewView(*product, payload.Finish)
		if raw := strings.TrimSpace(payload.Size); raw != "" {
			size, ok := enums.ParseSize(raw)
			if !ok {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown size"))
				return
			}
			if err := view.SelectSize(size); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}
		view.SetQuantity(payload.Quantity)

		result, err := view.BuyNow(r.Context(), carts, middleware.SessionIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
