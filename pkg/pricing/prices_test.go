package pricing

import (
	"testing"

	"github.com/wildwestwallart/storefront-backend/pkg/enums"
)

func TestBasePricesCoverEverySlot(t *testing.T) {
	for _, finish := range enums.Finishes() {
		for _, size := range enums.Sizes() {
			if BasePrice(finish, size) <= 0 {
				t.Fatalf("missing base price for %s/%s", finish, size)
			}
		}
	}
}

func TestNewTableIsACopy(t *testing.T) {
	table := NewTable()
	table.Set(enums.FinishMetal, enums.Size20x40, 999)

	if BasePrice(enums.FinishMetal, enums.Size20x40) != 220 {
		t.Fatal("mutating a table must not touch the base prices")
	}
	if got := table.Price(enums.FinishMetal, enums.Size20x40); got != 999 {
		t.Fatalf("expected override 999, got %d", got)
	}
}

func TestPriceFallsBackToBase(t *testing.T) {
	table := PriceTable{}
	if got := table.Price(enums.FinishAcrylic, enums.Size16x24); got != 60 {
		t.Fatalf("expected base fallback 60, got %d", got)
	}

	table.Set(enums.FinishAcrylic, enums.Size16x24, 0)
	if got := table.Price(enums.FinishAcrylic, enums.Size16x24); got != 60 {
		t.Fatalf("zero entry should fall back to base, got %d", got)
	}
}

func TestMinMaxAcrossSizes(t *testing.T) {
	table := NewTable()
	if got := table.MinFor(enums.FinishMetal); got != 70 {
		t.Fatalf("expected metal min 70, got %d", got)
	}
	if got := table.MaxFor(enums.FinishMetal); got != 220 {
		t.Fatalf("expected metal max 220, got %d", got)
	}
}

func TestAnyInRangeIsInclusive(t *testing.T) {
	table := NewTable()
	// Acrylic carries 180/130/100/60.
	if !table.AnyInRange(enums.FinishAcrylic, 100, 150) {
		t.Fatal("expected 100 and 130 to satisfy [100,150]")
	}
	if table.AnyInRange(enums.FinishAcrylic, 181, 500) {
		t.Fatal("no acrylic price sits above 180")
	}
	if !table.AnyInRange(enums.FinishAcrylic, 60, 60) {
		t.Fatal("range bounds are inclusive")
	}
}
