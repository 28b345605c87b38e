package controllers

import (
	"math"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/wildwestwallart/storefront-backend/api/responses"
	"github.com/wildwestwallart/storefront-backend/api/validators"
	"github.com/wildwestwallart/storefront-backend/internal/catalog"
	pkgerrors "github.com/wildwestwallart/storefront-backend/pkg/errors"
	"github.com/wildwestwallart/storefront-backend/pkg/logger"
)

var allowedSorts = []string{
	catalog.SortPriceAsc,
	catalog.SortPriceDesc,
	catalog.SortNewest,
	catalog.SortTitle,
}

// ListProducts serves the filtered catalog listing.
func ListProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		finish, err := validators.ParseQueryFinish(r, "finish")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		sortBy, err := validators.ParseQuerySort(r, "sort", allowedSorts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		priceMin, err := validators.ParseQueryInt(r, "price_min", 0, 0, math.MaxInt32)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		priceMax, err := validators.ParseQueryInt(r, "price_max", 0, 0, math.MaxInt32)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters := catalog.Filters{
			Category: strings.TrimSpace(r.URL.Query().Get("category")),
			Finish:   finish,
			SortBy:   sortBy,
		}
		if priceMin > 0 || priceMax > 0 {
			if priceMax == 0 {
				priceMax = math.MaxInt32
			}
			if priceMin > priceMax {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeValidation, "price_min must not exceed price_max"))
				return
			}
			filters.PriceRange = &catalog.PriceRange{Min: priceMin, Max: priceMax}
		}

		products := svc.SearchProducts(r.Context(), strings.TrimSpace(r.URL.Query().Get("q")), filters)
		responses.WriteSuccess(w, map[string]any{
			"products": products,
			"count":    len(products),
		})
	}
}

// GetProduct serves one product by record id.
func GetProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		productID := chi.URLParam(r, "productID")
		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithProductID(ctx, productID)
		}

		product := svc.GetProductByID(ctx, productID)
		if product == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// RefreshCatalog drops the cached listing so the next read refetches.
func RefreshCatalog(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		svc.ClearCache()
		responses.WriteSuccess(w, map[string]string{"status": "cache_cleared"})
	}
}
