package records

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/wildwestwallart/storefront-backend/pkg/config"
	pkgerrors "github.com/wildwestwallart/storefront-backend/pkg/errors"
)

func testConfig(endpoint string) config.RecordsConfig {
	return config.RecordsConfig{
		APIKey:   "keyTEST",
		BaseID:   "appTEST",
		Table:    "Products",
		Endpoint: endpoint,
		Timeout:  5 * time.Second,
	}
}

func TestNewClientRequiresCredentials(t *testing.T) {
	_, err := NewClient(config.RecordsConfig{Table: "Products"}, 100)
	if err == nil {
		t.Fatal("expected configuration error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConfiguration {
		t.Fatalf("expected configuration code, got %v", err)
	}
	details, ok := typed.Details().(map[string]any)
	if !ok {
		t.Fatalf("expected diagnostic details, got %T", typed.Details())
	}
	if details["hasApiKey"] != false || details["hasBaseId"] != false {
		t.Fatalf("unexpected details %v", details)
	}
}

func TestListPagePassesAuthSortAndOffset(t *testing.T) {
	var gotAuth, gotOffset, gotSortField, gotPageSize string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotOffset = r.URL.Query().Get("offset")
		gotSortField = r.URL.Query().Get("sort[0][field]")
		gotPageSize = r.URL.Query().Get("pageSize")
		_ = json.NewEncoder(w).Encode(ListPage{
			Records: []Record{{ID: "rec1", Fields: map[string]any{"Title": "Canyon"}}},
			Offset:  "next123",
		})
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL), 100)
	if err != nil {
		t.Fatalf("unexpected client error: %v", err)
	}

	page, err := client.ListPage(context.Background(), "off42")
	if err != nil {
		t.Fatalf("unexpected list error: %v", err)
	}
	if gotAuth != "Bearer keyTEST" {
		t.Fatalf("expected bearer credential, got %q", gotAuth)
	}
	if gotOffset != "off42" {
		t.Fatalf("expected offset to be echoed, got %q", gotOffset)
	}
	if gotSortField != "featured" {
		t.Fatalf("expected featured sort, got %q", gotSortField)
	}
	if gotPageSize != "100" {
		t.Fatalf("expected page size 100, got %q", gotPageSize)
	}
	if len(page.Records) != 1 || page.Records[0].ID != "rec1" {
		t.Fatalf("unexpected page %+v", page)
	}
	if page.Offset != "next123" {
		t.Fatalf("expected next cursor, got %q", page.Offset)
	}
}

func TestGetRecordNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL), 100)
	if err != nil {
		t.Fatalf("unexpected client error: %v", err)
	}

	_, err = client.GetRecord(context.Background(), "recMissing")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestListPageUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL), 50)
	if err != nil {
		t.Fatalf("unexpected client error: %v", err)
	}

	_, err = client.ListPage(context.Background(), "")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}
