package catalog

import (
	"time"

	"github.com/wildwestwallart/storefront-backend/pkg/enums"
	"github.com/wildwestwallart/storefront-backend/pkg/pricing"
)

// Product is a normalized catalog entry. Every product carries a fully
// populated price table and at least one available finish.
type Product struct {
	ID                string                  `json:"id"`
	Title             string                  `json:"title"`
	Description       string                  `json:"description"`
	ShortDescription  string                  `json:"shortDescription"`
	Category          string                  `json:"category"`
	Tags              []string                `json:"tags"`
	MainImage         string                  `json:"mainImage"`
	GalleryImages     []string                `json:"galleryImages"`
	PreviewImages     map[enums.Finish]string `json:"previewImages"`
	AvailableFinishes []enums.Finish          `json:"availableFinishes"`
	Prices            pricing.PriceTable      `json:"prices"`
	SEOTitle          string                  `json:"seoTitle"`
	SEODescription    string                  `json:"seoDescription"`
	Featured          bool                    `json:"featured"`
	InStock           bool                    `json:"inStock"`
	Stock             int                     `json:"stock"`
	CreatedTime       time.Time               `json:"createdTime"`
	LastModified      time.Time               `json:"lastModified"`
	Slug              string                  `json:"slug"`
	Artist            string                  `json:"artist"`
}

// Clone returns a deep copy that shares no slices or maps with the
// original, so a snapshot survives later catalog mutations.
func (p Product) Clone() Product {
	out := p
	out.Tags = append([]string(nil), p.Tags...)
	out.GalleryImages = append([]string(nil), p.GalleryImages...)
	out.AvailableFinishes = append([]enums.Finish(nil), p.AvailableFinishes...)
	if p.PreviewImages != nil {
		out.PreviewImages = make(map[enums.Finish]string, len(p.PreviewImages))
		for finish, url := range p.PreviewImages {
			out.PreviewImages[finish] = url
		}
	}
	if p.Prices != nil {
		out.Prices = p.Prices.Clone()
	}
	return out
}

// Sort orders accepted by FilterProducts.
const (
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortNewest    = "newest"
	SortTitle     = "title"
)

// PriceRange is an inclusive dollar range.
type PriceRange struct {
	Min int
	Max int
}

// Filters narrows and orders a product listing. Zero values mean "no
// constraint".
type Filters struct {
	Category   string
	Finish     enums.Finish
	PriceRange *PriceRange
	SortBy     string
}
