package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wildwestwallart/storefront-backend/internal/catalog"
	"github.com/wildwestwallart/storefront-backend/pkg/cache"
	"github.com/wildwestwallart/storefront-backend/pkg/enums"
	pkgerrors "github.com/wildwestwallart/storefront-backend/pkg/errors"
	"github.com/wildwestwallart/storefront-backend/pkg/kvstore"
	"github.com/wildwestwallart/storefront-backend/pkg/logger"
	"github.com/wildwestwallart/storefront-backend/pkg/money"
)

// Orders at or above the threshold ship free; everything else pays the
// flat rate.
const (
	freeShippingThreshold = 100
	flatShippingRate      = 10
)

// Idle sessions are dropped from memory after this long; the kvstore copy
// stays and is reloaded on the next touch.
const sessionCacheTTL = 30 * time.Minute

// ItemID builds the composite line id. One artwork in two finishes or two
// sizes is two distinct lines.
func ItemID(productID string, finish enums.Finish, size enums.Size) string {
	return fmt.Sprintf("%s_%s_%s", productID, finish, size)
}

// ProductLookup resolves live catalog entries during validation.
type ProductLookup interface {
	GetProductByID(ctx context.Context, id string) *catalog.Product
}

// Listener observes cart mutations. Called with a snapshot after every
// change, outside the service lock.
type Listener func(sessionID string, items []Item)

// Service is a per-session shopping cart persisted to key-value storage.
// Reads are served from memory after the first load; every mutation writes
// through. A failed write degrades to in-memory state and a log line rather
// than a failed request.
type Service interface {
	AddItem(ctx context.Context, sessionID string, product *catalog.Product, finish enums.Finish, size enums.Size, quantity int) (Item, error)
	RemoveItem(ctx context.Context, sessionID, itemID string) (bool, error)
	UpdateItemQuantity(ctx context.Context, sessionID, itemID string, quantity int) error
	ClearCart(ctx context.Context, sessionID string) error
	Items(ctx context.Context, sessionID string) []Item
	Count(ctx context.Context, sessionID string) int
	IsInCart(ctx context.Context, sessionID, productID string, finish enums.Finish, size enums.Size) bool
	GetSummary(ctx context.Context, sessionID string) Summary
	ValidateCart(ctx context.Context, sessionID string) ValidationResult
	PrepareForCheckout(ctx context.Context, sessionID string) (CheckoutPayload, error)
	AddListener(fn Listener)
}

type service struct {
	store     kvstore.Store
	lookup    ProductLookup
	logg      *logger.Logger
	keyPrefix string

	mu        sync.Mutex
	carts     *cache.TTL[[]Item]
	listeners []Listener
}

func NewService(store kvstore.Store, lookup ProductLookup, keyPrefix string, logg *logger.Logger) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("kv store required")
	}
	if lookup == nil {
		return nil, fmt.Errorf("product lookup required")
	}
	if keyPrefix == "" {
		return nil, fmt.Errorf("storage key prefix required")
	}
	return &service{
		store:     store,
		lookup:    lookup,
		logg:      logg,
		keyPrefix: keyPrefix,
		carts:     cache.NewTTL[[]Item](sessionCacheTTL, nil),
	}, nil
}

func (s *service) AddItem(ctx context.Context, sessionID string, product *catalog.Product, finish enums.Finish, size enums.Size, quantity int) (Item, error) {
	if sessionID == "" {
		return Item{}, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if product == nil || product.ID == "" {
		return Item{}, pkgerrors.New(pkgerrors.CodeValidation, "product is required")
	}
	if !finish.Valid() {
		return Item{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown finish")
	}
	if !size.Valid() {
		return Item{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown size")
	}
	if !product.InStock {
		return Item{}, pkgerrors.New(pkgerrors.CodeConflict, "product is out of stock")
	}
	if quantity < 1 {
		quantity = 1
	}

	itemID := ItemID(product.ID, finish, size)

	s.mu.Lock()
	items := s.loadLocked(ctx, sessionID)

	var result Item
	found := false
	for i := range items {
		if items[i].ID == itemID {
			// The locked price survives quantity bumps.
			items[i].Quantity += quantity
			result = items[i]
			found = true
			break
		}
	}
	if !found {
		result = Item{
			ID:          itemID,
			ProductID:   product.ID,
			ProductData: product.Clone(),
			Finish:      finish,
			Size:        size,
			Quantity:    quantity,
			Price:       product.Prices.Price(finish, size),
			AddedAt:     time.Now().UTC(),
		}
		items = append(items, result)
	}

	s.carts.Set(sessionID, items)
	s.persistLocked(ctx, sessionID, items)
	snapshot := snapshotItems(items)
	s.mu.Unlock()

	s.notify(sessionID, snapshot)
	return result, nil
}

// RemoveItem drops a line and reports whether one was actually removed.
// Removing an absent line is not an error.
func (s *service) RemoveItem(ctx context.Context, sessionID, itemID string) (bool, error) {
	s.mu.Lock()
	items := s.loadLocked(ctx, sessionID)

	kept := items[:0]
	removed := false
	for _, item := range items {
		if item.ID == itemID {
			removed = true
			continue
		}
		kept = append(kept, item)
	}
	if !removed {
		s.mu.Unlock()
		return false, nil
	}

	s.carts.Set(sessionID, kept)
	s.persistLocked(ctx, sessionID, kept)
	snapshot := snapshotItems(kept)
	s.mu.Unlock()

	s.notify(sessionID, snapshot)
	return true, nil
}

// UpdateItemQuantity sets the line quantity. Zero or less removes the line.
func (s *service) UpdateItemQuantity(ctx context.Context, sessionID, itemID string, quantity int) error {
	if quantity <= 0 {
		_, err := s.RemoveItem(ctx, sessionID, itemID)
		return err
	}

	s.mu.Lock()
	items := s.loadLocked(ctx, sessionID)

	found := false
	for i := range items {
		if items[i].ID == itemID {
			items[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}

	s.carts.Set(sessionID, items)
	s.persistLocked(ctx, sessionID, items)
	snapshot := snapshotItems(items)
	s.mu.Unlock()

	s.notify(sessionID, snapshot)
	return nil
}

// ClearCart erases the storage key and evicts the session from memory.
func (s *service) ClearCart(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	s.carts.Delete(sessionID)
	if err := s.store.Remove(ctx, s.storageKey(sessionID)); err != nil {
		s.logError(ctx, "cart.clear_failed", err)
	}
	s.mu.Unlock()

	s.notify(sessionID, []Item{})
	return nil
}

func (s *service) Items(ctx context.Context, sessionID string) []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshotItems(s.loadLocked(ctx, sessionID))
}

func (s *service) Count(ctx context.Context, sessionID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, item := range s.loadLocked(ctx, sessionID) {
		count += item.Quantity
	}
	return count
}

func (s *service) IsInCart(ctx context.Context, sessionID, productID string, finish enums.Finish, size enums.Size) bool {
	itemID := ItemID(productID, finish, size)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.loadLocked(ctx, sessionID) {
		if item.ID == itemID {
			return true
		}
	}
	return false
}

func (s *service) GetSummary(ctx context.Context, sessionID string) Summary {
	s.mu.Lock()
	items := snapshotItems(s.loadLocked(ctx, sessionID))
	s.mu.Unlock()
	return summarize(items)
}

// ValidateCart checks every line against the live catalog. Lines whose
// product vanished or went out of stock are dropped from the cart; price
// drift is reported but the locked price stands.
func (s *service) ValidateCart(ctx context.Context, sessionID string) ValidationResult {
	s.mu.Lock()
	items := snapshotItems(s.loadLocked(ctx, sessionID))
	s.mu.Unlock()

	result := ValidationResult{
		Valid:        []Item{},
		Removed:      []RemovedItem{},
		PriceChanges: []PriceChange{},
	}
	for _, item := range items {
		product := s.lookup.GetProductByID(ctx, item.ProductID)
		switch {
		case product == nil:
			result.Removed = append(result.Removed, RemovedItem{Item: item, Reason: RemovalProductGone})
		case !product.InStock:
			result.Removed = append(result.Removed, RemovedItem{Item: item, Reason: RemovalOutOfStock})
		default:
			if live := product.Prices.Price(item.Finish, item.Size); live != item.Price {
				result.PriceChanges = append(result.PriceChanges, PriceChange{
					ItemID:       item.ID,
					LockedPrice:  item.Price,
					CurrentPrice: live,
				})
			}
			result.Valid = append(result.Valid, item)
		}
	}

	if len(result.Removed) > 0 {
		s.mu.Lock()
		s.carts.Set(sessionID, snapshotItems(result.Valid))
		s.persistLocked(ctx, sessionID, result.Valid)
		s.mu.Unlock()
		s.notify(sessionID, snapshotItems(result.Valid))
	}
	return result
}

func (s *service) PrepareForCheckout(ctx context.Context, sessionID string) (CheckoutPayload, error) {
	s.mu.Lock()
	items := snapshotItems(s.loadLocked(ctx, sessionID))
	s.mu.Unlock()

	if len(items) == 0 {
		return CheckoutPayload{}, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	summary := summarize(items)
	payload := CheckoutPayload{
		OrderRef:  uuid.NewString(),
		Items:     make([]CheckoutItem, 0, len(items)),
		ItemCount: summary.ItemCount,
		Subtotal:  summary.Subtotal,
		Shipping:  summary.Shipping,
		Total:     summary.Total,
	}
	for _, item := range items {
		payload.Items = append(payload.Items, CheckoutItem{
			ID:          item.ID,
			Title:       item.ProductData.Title,
			DisplayName: fmt.Sprintf("%s - %s %s", item.ProductData.Title, item.Finish, item.Size),
			Finish:      string(item.Finish),
			Size:        string(item.Size),
			Quantity:    item.Quantity,
			UnitPrice:   item.Price,
			LineTotal:   item.Price * item.Quantity,
		})
	}
	return payload, nil
}

func (s *service) AddListener(fn Listener) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func summarize(items []Item) Summary {
	count := 0
	subtotal := 0
	for _, item := range items {
		count += item.Quantity
		subtotal += item.Price * item.Quantity
	}

	free := subtotal >= freeShippingThreshold
	shipping := flatShippingRate
	if free {
		shipping = 0
	}
	return Summary{
		ItemCount:    count,
		Subtotal:     money.Format(subtotal),
		Shipping:     money.Format(shipping),
		Total:        money.Format(subtotal + shipping),
		FreeShipping: free,
	}
}

// loadLocked returns the session's cart, reading it from storage when the
// session is not in memory (first touch, or evicted after idling past the
// cache TTL). Storage failures and corrupt payloads degrade to an empty
// cart.
func (s *service) loadLocked(ctx context.Context, sessionID string) []Item {
	if items, ok := s.carts.Get(sessionID); ok {
		return items
	}

	items := []Item{}
	raw, found, err := s.store.Get(ctx, s.storageKey(sessionID))
	if err != nil {
		s.logError(ctx, "cart.load_failed", err)
	} else if found && raw != "" {
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			s.logError(ctx, "cart.decode_failed", err)
			items = []Item{}
		}
	}

	s.carts.Set(sessionID, items)
	return items
}

func (s *service) persistLocked(ctx context.Context, sessionID string, items []Item) {
	raw, err := json.Marshal(items)
	if err != nil {
		s.logError(ctx, "cart.encode_failed", err)
		return
	}
	if err := s.store.Set(ctx, s.storageKey(sessionID), string(raw)); err != nil {
		s.logError(ctx, "cart.persist_failed", err)
	}
}

func (s *service) storageKey(sessionID string) string {
	return s.keyPrefix + ":" + sessionID
}

func (s *service) notify(sessionID string, items []Item) {
	s.mu.Lock()
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(sessionID, items)
	}
}

func (s *service) logError(ctx context.Context, msg string, err error) {
	if s.logg != nil {
		s.logg.Error(ctx, msg, err)
	}
}

func snapshotItems(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}
