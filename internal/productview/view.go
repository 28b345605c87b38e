// Package productview holds the selection and pricing logic behind a
// product detail page: which finish and size are active, what the line
// costs, and the handoff into the cart.
package productview

import (
	"context"

	"github.com/wildwestwallart/storefront-backend/internal/cart"
	"github.com/wildwestwallart/storefront-backend/internal/catalog"
	"github.com/wildwestwallart/storefront-backend/pkg/enums"
	pkgerrors "github.com/wildwestwallart/storefront-backend/pkg/errors"
	"github.com/wildwestwallart/storefront-backend/pkg/money"
)

// Selections below this subtotal pay a small-order surcharge.
const (
	smallOrderThreshold = 100
	smallOrderSurcharge = 10
)

// Defaults for a freshly opened detail page.
const (
	DefaultFinish = enums.FinishAcrylic
	DefaultSize   = enums.Size20x40
)

// View is the selection state for one product. Build one per request with
// NewView; it is not safe for concurrent use.
type View struct {
	Product  catalog.Product
	Finish   enums.Finish
	Size     enums.Size
	Quantity int
}

// NewView opens a detail view. The finish parameter comes straight from the
// URL; anything unrecognized falls back to acrylic.
func NewView(product catalog.Product, finishParam string) *View {
	finish, ok := enums.ParseFinish(finishParam)
	if !ok {
		finish = DefaultFinish
	}
	return &View{
		Product:  product,
		Finish:   finish,
		Size:     DefaultSize,
		Quantity: 1,
	}
}

// SelectFinish switches the active finish. Unknown finishes are rejected,
// not defaulted, because by now the caller is past URL parsing.
func (v *View) SelectFinish(finish enums.Finish) error {
	if !finish.Valid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown finish")
	}
	v.Finish = finish
	return nil
}

func (v *View) SelectSize(size enums.Size) error {
	if !size.Valid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown size")
	}
	v.Size = size
	return nil
}

// SetQuantity clamps to a minimum of one.
func (v *View) SetQuantity(quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	v.Quantity = quantity
}

// UnitPrice is the per-piece price of the active finish and size.
func (v *View) UnitPrice() int {
	return v.Product.Prices.Price(v.Finish, v.Size)
}

// Surcharge is the small-order fee for the current selection. It is waived
// when either the unit price or the selection subtotal reaches the
// threshold.
func (v *View) Surcharge() int {
	unit := v.UnitPrice()
	if unit >= smallOrderThreshold || unit*v.Quantity >= smallOrderThreshold {
		return 0
	}
	return smallOrderSurcharge
}

// TotalPrice is the selection subtotal plus any small-order surcharge.
func (v *View) TotalPrice() int {
	return v.UnitPrice()*v.Quantity + v.Surcharge()
}

// Pricing is the rendered price block for the active selection.
type Pricing struct {
	UnitPrice      string `json:"unitPrice"`
	Quantity       int    `json:"quantity"`
	Surcharge      string `json:"surcharge"`
	Total          string `json:"total"`
	SurchargeFreed bool   `json:"surchargeFreed"`
}

func (v *View) PriceBlock() Pricing {
	surcharge := v.Surcharge()
	return Pricing{
		UnitPrice:      money.Format(v.UnitPrice()),
		Quantity:       v.Quantity,
		Surcharge:      money.Format(surcharge),
		Total:          money.Format(v.TotalPrice()),
		SurchargeFreed: surcharge == 0,
	}
}

// AddToCart pushes the current selection onto the session's cart. Out of
// stock products never reach the cart.
func (v *View) AddToCart(ctx context.Context, carts cart.Service, sessionID string) (cart.Item, error) {
	if !v.Product.InStock {
		return cart.Item{}, pkgerrors.New(pkgerrors.CodeConflict, "product is out of stock")
	}
	product := v.Product
	return carts.AddItem(ctx, sessionID, &product, v.Finish, v.Size, v.Quantity)
}

// BuyNow adds the selection and immediately prepares the cart for checkout.
func (v *View) BuyNow(ctx context.Context, carts cart.Service, sessionID string) (cart.CheckoutPayload, error) {
	if _, err := v.AddToCart(ctx, carts, sessionID); err != nil {
		return cart.CheckoutPayload{}, err
	}
	return carts.PrepareForCheckout(ctx, sessionID)
}
