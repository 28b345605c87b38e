package pricing

import "github.com/wildwestwallart/storefront-backend/pkg/enums"

// PriceTable maps finish -> size -> unit price in whole dollars. A fully
// populated table always carries all twelve finish/size combinations.
type PriceTable map[enums.Finish]map[enums.Size]int

var basePrices = PriceTable{
	enums.FinishAcrylic: {
		enums.Size20x40: 180,
		enums.Size24x36: 130,
		enums.Size20x30: 100,
		enums.Size16x24: 60,
	},
	enums.FinishMetal: {
		enums.Size20x40: 220,
		enums.Size24x36: 150,
		enums.Size20x30: 120,
		enums.Size16x24: 70,
	},
	enums.FinishCanvas: {
		enums.Size20x40: 180,
		enums.Size24x36: 130,
		enums.Size20x30: 100,
		enums.Size16x24: 60,
	},
}

// BasePrice returns the hardcoded default price for a finish/size pair.
func BasePrice(finish enums.Finish, size enums.Size) int {
	if sizes, ok := basePrices[finish]; ok {
		return sizes[size]
	}
	return 0
}

// NewTable builds a fully populated price table from the base prices.
func NewTable() PriceTable {
	table := make(PriceTable, len(basePrices))
	for finish, sizes := range basePrices {
		row := make(map[enums.Size]int, len(sizes))
		for size, price := range sizes {
			row[size] = price
		}
		table[finish] = row
	}
	return table
}

// Price looks up the unit price for a finish/size pair, falling back to the
// base price when the slot is missing or zero.
func (t PriceTable) Price(finish enums.Finish, size enums.Size) int {
	if sizes, ok := t[finish]; ok {
		if price, ok := sizes[size]; ok && price > 0 {
			return price
		}
	}
	return BasePrice(finish, size)
}

// Set stores a unit price, allocating the finish row if needed.
func (t PriceTable) Set(finish enums.Finish, size enums.Size, price int) {
	if t[finish] == nil {
		t[finish] = make(map[enums.Size]int, len(enums.Sizes()))
	}
	t[finish][size] = price
}

// Clone returns an independent copy of the table.
func (t PriceTable) Clone() PriceTable {
	out := make(PriceTable, len(t))
	for finish, sizes := range t {
		row := make(map[enums.Size]int, len(sizes))
		for size, price := range sizes {
			row[size] = price
		}
		out[finish] = row
	}
	return out
}

// MinFor returns the lowest price across all sizes of the given finish.
func (t PriceTable) MinFor(finish enums.Finish) int {
	min := 0
	for _, size := range enums.Sizes() {
		price := t.Price(finish, size)
		if min == 0 || price < min {
			min = price
		}
	}
	return min
}

// MaxFor returns the highest price across all sizes of the given finish.
func (t PriceTable) MaxFor(finish enums.Finish) int {
	max := 0
	for _, size := range enums.Sizes() {
		if price := t.Price(finish, size); price > max {
			max = price
		}
	}
	return max
}

// AnyInRange reports whether any size of the given finish has a price inside
// [min, max] inclusive.
func (t PriceTable) AnyInRange(finish enums.Finish, min, max int) bool {
	for _, size := range enums.Sizes() {
		price := t.Price(finish, size)
		if price >= min && price <= max {
			return true
		}
	}
	return false
}
