package catalog

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/wildwestwallart/storefront-backend/internal/records"
	pkgerrors "github.com/wildwestwallart/storefront-backend/pkg/errors"
	"github.com/wildwestwallart/storefront-backend/pkg/logger"
)

type fakeFetcher struct {
	mu        sync.Mutex
	pages     []records.ListPage
	record    *records.Record
	listErr   error
	getErr    error
	listCalls int
	getCalls  int
}

func (f *fakeFetcher) ListPage(_ context.Context, offset string) (*records.ListPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	for i := range f.pages {
		if pageOffsetFor(i, f.pages) == offset {
			page := f.pages[i]
			return &page, nil
		}
	}
	return &records.ListPage{}, nil
}

func pageOffsetFor(i int, pages []records.ListPage) string {
	if i == 0 {
		return ""
	}
	return pages[i-1].Offset
}

func (f *fakeFetcher) GetRecord(_ context.Context, id string) (*records.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.record != nil && f.record.ID == id {
		rec := *f.record
		return &rec, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "record not found")
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	return logger.New(logger.Options{ServiceName: "catalog-test", Output: io.Discard})
}

func newTestService(t *testing.T, fetcher *fakeFetcher, clock *fakeClock) Service {
	t.Helper()
	svc, err := NewService(fetcher, 5*time.Minute, clock.Now, testLogger(t))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestNewServiceRequiresFetcher(t *testing.T) {
	if _, err := NewService(nil, time.Minute, nil, testLogger(t)); err == nil {
		t.Fatal("expected error for nil fetcher")
	}
	if _, err := NewService(&fakeFetcher{}, 0, nil, testLogger(t)); err == nil {
		t.Fatal("expected error for zero ttl")
	}
}

func TestGetAllProductsWalksPagesAndCaches(t *testing.T) {
	fetcher := &fakeFetcher{
		pages: []records.ListPage{
			{
				Records: []records.Record{
					{ID: "rec1", Fields: map[string]any{"Title": "Canyon"}},
					{ID: "", Fields: map[string]any{"Title": "orphan"}},
					{ID: "rec2", Fields: map[string]any{}},
				},
				Offset: "page2",
			},
			{
				Records: []records.Record{
					{ID: "rec3", Fields: map[string]any{"Title": "Mesa"}},
				},
			},
		},
	}
	clock := newFakeClock()
	svc := newTestService(t, fetcher, clock)

	got := svc.GetAllProducts(context.Background())
	if len(got) != 2 {
		t.Fatalf("expected 2 products after skipping malformed records, got %d", len(got))
	}
	if fetcher.listCalls != 2 {
		t.Fatalf("expected 2 page fetches, got %d", fetcher.listCalls)
	}

	// A second call inside the window serves from cache.
	clock.Advance(4 * time.Minute)
	again := svc.GetAllProducts(context.Background())
	if len(again) != 2 {
		t.Fatalf("cached read changed shape: %d products", len(again))
	}
	if fetcher.listCalls != 2 {
		t.Fatalf("cached read hit upstream, %d calls", fetcher.listCalls)
	}

	// Once the window elapses the next call refetches.
	clock.Advance(time.Minute)
	_ = svc.GetAllProducts(context.Background())
	if fetcher.listCalls != 4 {
		t.Fatalf("expected a fresh 2-page fetch after expiry, got %d total calls", fetcher.listCalls)
	}
}

func TestGetAllProductsUpstreamFailureReturnsEmpty(t *testing.T) {
	fetcher := &fakeFetcher{listErr: pkgerrors.New(pkgerrors.CodeDependency, "upstream down")}
	svc := newTestService(t, fetcher, newFakeClock())

	got := svc.GetAllProducts(context.Background())
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", got)
	}

	// Failures are not cached.
	_ = svc.GetAllProducts(context.Background())
	if fetcher.listCalls != 2 {
		t.Fatalf("failed fetch must not populate the cache, got %d calls", fetcher.listCalls)
	}
}

func TestGetProductByID(t *testing.T) {
	fetcher := &fakeFetcher{
		record: &records.Record{ID: "rec1", Fields: map[string]any{"Title": "Canyon Sunset"}},
	}
	clock := newFakeClock()
	svc := newTestService(t, fetcher, clock)

	got := svc.GetProductByID(context.Background(), "rec1")
	if got == nil || got.Title != "Canyon Sunset" {
		t.Fatalf("unexpected product %+v", got)
	}

	clock.Advance(time.Minute)
	_ = svc.GetProductByID(context.Background(), "rec1")
	if fetcher.getCalls != 1 {
		t.Fatalf("second lookup inside the window hit upstream, %d calls", fetcher.getCalls)
	}

	if svc.GetProductByID(context.Background(), "missing") != nil {
		t.Fatal("unknown id must return nil")
	}
	if svc.GetProductByID(context.Background(), "") != nil {
		t.Fatal("empty id must return nil without a fetch")
	}
}

func TestGetProductByIDUpstreamFailure(t *testing.T) {
	fetcher := &fakeFetcher{getErr: pkgerrors.New(pkgerrors.CodeDependency, "upstream down")}
	svc := newTestService(t, fetcher, newFakeClock())

	if svc.GetProductByID(context.Background(), "rec1") != nil {
		t.Fatal("dependency failure must degrade to nil")
	}
}

func TestSearchProductsFiltersCachedListing(t *testing.T) {
	fetcher := &fakeFetcher{
		pages: []records.ListPage{{
			Records: []records.Record{
				{ID: "rec1", Fields: map[string]any{"Title": "Canyon Sunset"}},
				{ID: "rec2", Fields: map[string]any{"Title": "Alpine Meadow"}},
			},
		}},
	}
	svc := newTestService(t, fetcher, newFakeClock())

	got := svc.SearchProducts(context.Background(), "canyon", Filters{})
	if len(got) != 1 || got[0].ID != "rec1" {
		t.Fatalf("unexpected search result %v", ids(got))
	}
	if fetcher.listCalls != 1 {
		t.Fatalf("search must reuse the cached listing, got %d calls", fetcher.listCalls)
	}
}

func TestClearCacheForcesRefetch(t *testing.T) {
	fetcher := &fakeFetcher{
		pages: []records.ListPage{{
			Records: []records.Record{{ID: "rec1", Fields: map[string]any{"Title": "Canyon"}}},
		}},
	}
	svc := newTestService(t, fetcher, newFakeClock())

	_ = svc.GetAllProducts(context.Background())
	svc.ClearCache()
	_ = svc.GetAllProducts(context.Background())
	if fetcher.listCalls != 2 {
		t.Fatalf("expected refetch after ClearCache, got %d calls", fetcher.listCalls)
	}
}
