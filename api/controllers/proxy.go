package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wildwestwallart/storefront-backend/api/responses"
	"github.com/wildwestwallart/storefront-backend/internal/relay"
	pkgerrors "github.com/wildwestwallart/storefront-backend/pkg/errors"
	"github.com/wildwestwallart/storefront-backend/pkg/logger"
)

// RecordsProxy mirrors the records backend for browser callers. Reads only;
// anything else is refused before it reaches the upstream.
func RecordsProxy(svc relay.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteRawError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "relay service unavailable"))
			return
		}

		if r.Method != http.MethodGet {
			responses.WriteRawError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeMethodNotAllowed, "only GET requests are supported"))
			return
		}

		recordID := chi.URLParam(r, "recordID")
		result, err := svc.Forward(r.Context(), recordID, r.URL.Query())
		if err != nil {
			responses.WriteRawError(r.Context(), logg, w, err)
			return
		}

		responses.WriteRaw(w, result.Status, result.Body)
	}
}
