package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wildwestwallart/storefront-backend/internal/records"
	"github.com/wildwestwallart/storefront-backend/pkg/cache"
	pkgerrors "github.com/wildwestwallart/storefront-backend/pkg/errors"
	"github.com/wildwestwallart/storefront-backend/pkg/logger"
)

const listCacheKey = "allProducts"

// Fetcher is the upstream surface the service pulls raw records from.
type Fetcher interface {
	ListPage(ctx context.Context, offset string) (*records.ListPage, error)
	GetRecord(ctx context.Context, id string) (*records.Record, error)
}

// Service serves the normalized catalog. Read failures degrade to empty
// results so listing pages stay renderable; callers that must distinguish
// emptiness from failure should watch the logs.
type Service interface {
	GetAllProducts(ctx context.Context) []Product
	GetProductByID(ctx context.Context, id string) *Product
	SearchProducts(ctx context.Context, query string, filters Filters) []Product
	ClearCache()
}

type service struct {
	fetcher   Fetcher
	logg      *logger.Logger
	listCache *cache.TTL[[]Product]
	itemCache *cache.TTL[Product]
}

// NewService wires the catalog with a time-boxed cache. A nil clock uses
// the wall clock.
func NewService(fetcher Fetcher, ttl time.Duration, clock cache.Clock, logg *logger.Logger) (Service, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("records fetcher required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("cache ttl must be positive")
	}
	return &service{
		fetcher:   fetcher,
		logg:      logg,
		listCache: cache.NewTTL[[]Product](ttl, clock),
		itemCache: cache.NewTTL[Product](ttl, clock),
	}, nil
}

// GetAllProducts walks every page of the upstream listing. The upstream
// already orders by featured desc then creation time desc; the result is
// not re-sorted here. Malformed records are skipped, not fatal.
func (s *service) GetAllProducts(ctx context.Context) []Product {
	if cached, ok := s.listCache.Get(listCacheKey); ok {
		return cached
	}

	var products []Product
	offset := ""
	for {
		page, err := s.fetcher.ListPage(ctx, offset)
		if err != nil {
			s.logError(ctx, "catalog.list_failed", err)
			return []Product{}
		}
		for _, record := range page.Records {
			if record.ID == "" || len(record.Fields) == 0 {
				continue
			}
			products = append(products, FormatProduct(record))
		}
		if page.Offset == "" {
			break
		}
		offset = page.Offset
	}
	if products == nil {
		products = []Product{}
	}

	s.listCache.Set(listCacheKey, products)
	return products
}

// GetProductByID returns the normalized product, or nil when it does not
// exist or the upstream fetch failed.
func (s *service) GetProductByID(ctx context.Context, id string) *Product {
	if id == "" {
		return nil
	}
	if cached, ok := s.itemCache.Get(id); ok {
		return &cached
	}

	record, err := s.fetcher.GetRecord(ctx, id)
	if err != nil {
		var typed *pkgerrors.Error
		if errors.As(err, &typed) && typed.Code() == pkgerrors.CodeNotFound {
			return nil
		}
		s.logError(ctx, "catalog.get_failed", err)
		return nil
	}
	if record == nil || record.ID == "" || len(record.Fields) == 0 {
		return nil
	}

	product := FormatProduct(*record)
	s.itemCache.Set(id, product)
	return &product
}

func (s *service) SearchProducts(ctx context.Context, query string, filters Filters) []Product {
	return FilterProducts(s.GetAllProducts(ctx), query, filters)
}

func (s *service) ClearCache() {
	s.listCache.Clear()
	s.itemCache.Clear()
}

func (s *service) logError(ctx context.Context, msg string, err error) {
	if s.logg != nil {
		s.logg.Error(ctx, msg, err)
	}
}
