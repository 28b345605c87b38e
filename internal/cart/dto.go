package cart

import (
	"time"

	"github.com/wildwestwallart/storefront-backend/internal/catalog"
	"github.com/wildwestwallart/storefront-backend/pkg/enums"
)

// Item is a single cart line. ID is the composite of product, finish and
// size, so the same artwork in two finishes occupies two lines. Price is
// locked when the line is first added; later quantity bumps reuse it.
// ProductData is the full normalized product as it stood at add-time, so
// the cart renders without a catalog round trip even after the product
// changes or disappears upstream.
type Item struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"productId"`
	ProductData catalog.Product `json:"productData"`
	Finish      enums.Finish    `json:"finish"`
	Size        enums.Size      `json:"size"`
	Quantity    int             `json:"quantity"`
	Price       int             `json:"price"`
	AddedAt     time.Time       `json:"addedAt"`
}

// Summary is the rendered cart totals block. Money fields are formatted
// dollar strings with two decimals.
type Summary struct {
	ItemCount    int    `json:"itemCount"`
	Subtotal     string `json:"subtotal"`
	Shipping     string `json:"shipping"`
	Total        string `json:"total"`
	FreeShipping bool   `json:"freeShipping"`
}

// CheckoutItem is a cart line flattened for the order pipeline.
type CheckoutItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	DisplayName string `json:"displayName"`
	Finish      string `json:"finish"`
	Size        string `json:"size"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int    `json:"unitPrice"`
	LineTotal   int    `json:"lineTotal"`
}

// CheckoutPayload is everything the order pipeline needs from the cart.
type CheckoutPayload struct {
	OrderRef  string         `json:"orderRef"`
	Items     []CheckoutItem `json:"items"`
	ItemCount int            `json:"itemCount"`
	Subtotal  string         `json:"subtotal"`
	Shipping  string         `json:"shipping"`
	Total     string         `json:"total"`
}

// Removal reasons reported by ValidateCart.
const (
	RemovalProductGone = "product_no_longer_available"
	RemovalOutOfStock  = "out_of_stock"
)

// RemovedItem records a line ValidateCart dropped and why.
type RemovedItem struct {
	Item   Item   `json:"item"`
	Reason string `json:"reason"`
}

// PriceChange reports a line whose live catalog price no longer matches the
// locked price. The line keeps its locked price; this is advisory.
type PriceChange struct {
	ItemID       string `json:"itemId"`
	LockedPrice  int    `json:"lockedPrice"`
	CurrentPrice int    `json:"currentPrice"`
}

// ValidationResult buckets the outcome of a cart-against-catalog check.
type ValidationResult struct {
	Valid        []Item        `json:"valid"`
	Removed      []RemovedItem `json:"removed"`
	PriceChanges []PriceChange `json:"priceChanges"`
}
