package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/wildwestwallart/storefront-backend/api/middleware"
	cartsvc "github.com/wildwestwallart/storefront-backend/internal/cart"
	"github.com/wildwestwallart/storefront-backend/internal/catalog"
	"github.com/wildwestwallart/storefront-backend/pkg/kvstore"
	"github.com/wildwestwallart/storefront-backend/pkg/types"
)

func cartRouter(t *testing.T, products []catalog.Product) (http.Handler, cartsvc.Service) {
	t.Helper()
	logg := testLogger()
	catalogSvc := &fakeCatalog{products: products}
	cartSvc, err := cartsvc.NewService(kvstore.NewMemory(), catalogSvc, "wildWestCart", logg)
	if err != nil {
		t.Fatalf("cart.NewService: %v", err)
	}

	r := chi.NewRouter()
	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(middleware.Session(logg))
		r.Get("/", GetCart(cartSvc, logg))
		r.Delete("/", ClearCart(cartSvc, logg))
		r.Get("/summary", CartSummary(cartSvc, logg))
		r.Post("/items", AddCartItem(cartSvc, catalogSvc, logg))
		r.Patch("/items/{itemID}", UpdateCartItem(cartSvc, logg))
		r.Delete("/items/{itemID}", RemoveCartItem(cartSvc, logg))
		r.Post("/validate", ValidateCart(cartSvc, logg))
		r.Post("/checkout", CartCheckout(cartSvc, logg))
	})
	return r, cartSvc
}

func doJSON(t *testing.T, handler http.Handler, method, path, session, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if session != "" {
		req.Header.Set("X-Session-Id", session)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestCartLifecycleOverHTTP(t *testing.T) {
	handler, _ := cartRouter(t, []catalog.Product{sampleProduct("rec1", "Canyon Sunset")})
	session := "sess-http"

	// Empty cart first.
	rec := doJSON(t, handler, http.MethodGet, "/api/v1/cart", session, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET cart status = %d", rec.Code)
	}

	// Add an item.
	rec = doJSON(t, handler, http.MethodPost, "/api/v1/cart/items", session,
		`{"productId":"rec1","finish":"acrylic","size":"20x40","quantity":2}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST items status = %d body = %s", rec.Code, rec.Body.String())
	}

	// Summary reflects it. Base acrylic 20x40 is 180, so shipping is free.
	rec = doJSON(t, handler, http.MethodGet, "/api/v1/cart/summary", session, "")
	var envelope types.SuccessEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatal(err)
	}
	summary := envelope.Data.(map[string]any)
	if summary["itemCount"] != float64(2) || summary["subtotal"] != "360.00" || summary["freeShipping"] != true {
		t.Fatalf("unexpected summary %v", summary)
	}

	// Update quantity.
	rec = doJSON(t, handler, http.MethodPatch, "/api/v1/cart/items/rec1_acrylic_20x40", session, `{"quantity":1}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("PATCH status = %d body = %s", rec.Code, rec.Body.String())
	}

	// Checkout.
	rec = doJSON(t, handler, http.MethodPost, "/api/v1/cart/checkout", session, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("checkout status = %d body = %s", rec.Code, rec.Body.String())
	}

	// Remove and clear. The first delete reports a removal, a repeat does not.
	rec = doJSON(t, handler, http.MethodDelete, "/api/v1/cart/items/rec1_acrylic_20x40", session, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("DELETE item status = %d", rec.Code)
	}
	envelope = types.SuccessEnvelope{}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatal(err)
	}
	if removed := envelope.Data.(map[string]any)["removed"]; removed != true {
		t.Fatalf("removed = %v, want true", removed)
	}
	rec = doJSON(t, handler, http.MethodDelete, "/api/v1/cart/items/rec1_acrylic_20x40", session, "")
	envelope = types.SuccessEnvelope{}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatal(err)
	}
	if removed := envelope.Data.(map[string]any)["removed"]; removed != false {
		t.Fatalf("removed = %v, want false", removed)
	}
	rec = doJSON(t, handler, http.MethodDelete, "/api/v1/cart", session, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("DELETE cart status = %d", rec.Code)
	}
}

func TestAddCartItemUnknownProduct(t *testing.T) {
	handler, _ := cartRouter(t, nil)
	rec := doJSON(t, handler, http.MethodPost, "/api/v1/cart/items", "sess-1",
		`{"productId":"missing","finish":"acrylic","size":"20x40","quantity":1}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestAddCartItemValidation(t *testing.T) {
	handler, _ := cartRouter(t, []catalog.Product{sampleProduct("rec1", "Canyon Sunset")})

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/cart/items", "sess-1", `{"finish":"acrylic"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing fields: status = %d", rec.Code)
	}

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/cart/items", "sess-1",
		`{"productId":"rec1","finish":"velvet","size":"20x40"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad finish: status = %d", rec.Code)
	}

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/cart/items", "sess-1",
		`{"productId":"rec1","finish":"acrylic","size":"8x10"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad size: status = %d", rec.Code)
	}
}

func TestCartsAreSessionScoped(t *testing.T) {
	handler, _ := cartRouter(t, []catalog.Product{sampleProduct("rec1", "Canyon Sunset")})

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/cart/items", "sess-a",
		`{"productId":"rec1","finish":"acrylic","size":"20x40","quantity":1}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d", rec.Code)
	}

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/cart/summary", "sess-b", "")
	var envelope types.SuccessEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatal(err)
	}
	summary := envelope.Data.(map[string]any)
	if summary["itemCount"] != float64(0) {
		t.Fatalf("session b must not see session a's cart: %v", summary)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	handler, _ := cartRouter(t, nil)
	rec := doJSON(t, handler, http.MethodPost, "/api/v1/cart/checkout", "sess-1", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestValidateCartOverHTTP(t *testing.T) {
	product := sampleProduct("rec1", "Canyon Sunset")
	handler, _ := cartRouter(t, []catalog.Product{product})

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/cart/items", "sess-1",
		`{"productId":"rec1","finish":"acrylic","size":"20x40","quantity":1}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d", rec.Code)
	}

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/cart/validate", "sess-1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var envelope types.SuccessEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatal(err)
	}
	result := envelope.Data.(map[string]any)
	if valid := result["valid"].([]any); len(valid) != 1 {
		t.Fatalf("unexpected validation result %v", result)
	}
}
