package catalog

import (
	"regexp"
	"strings"
	"time"

	"github.com/wildwestwallart/storefront-backend/internal/records"
	"github.com/wildwestwallart/storefront-backend/pkg/enums"
	"github.com/wildwestwallart/storefront-backend/pkg/pricing"
)

const defaultArtist = "Ryan Osmun"

var (
	slugStrip      = regexp.MustCompile(`[^\w\s-]`)
	slugWhitespace = regexp.MustCompile(`\s+`)
	slugHyphens    = regexp.MustCompile(`-+`)

	titleSeparators = regexp.MustCompile(`[_-]+`)
	titleSuffix     = regexp.MustCompile(`(?i)\s+(print|landscape|portrait)$`)
)

// GenerateSlug derives a URL slug from a title: lowercase, punctuation
// stripped, whitespace collapsed to single hyphens, repeated hyphens
// collapsed.
func GenerateSlug(title string) string {
	slug := strings.ToLower(title)
	slug = slugStrip.ReplaceAllString(slug, "")
	slug = slugWhitespace.ReplaceAllString(slug, "-")
	slug = slugHyphens.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// CleanTitle prepares a raw record title for display: separators become
// spaces and a trailing print/landscape/portrait marker is dropped.
func CleanTitle(raw string) string {
	title := titleSeparators.ReplaceAllString(raw, " ")
	title = titleSuffix.ReplaceAllString(title, "")
	return strings.TrimSpace(title)
}

// FormatProduct normalizes one raw record into a Product per the catalog
// rules: display defaults, tag splitting, finish detection and base-price
// backfill for every missing finish/size slot.
func FormatProduct(record records.Record) Product {
	fields := record.Fields
	if fields == nil {
		fields = map[string]any{}
	}

	rawTitle := stringField(fields, "Title")
	description := stringField(fields, "Description")

	short := stringField(fields, "ShortDescription")
	if short == "" && description != "" {
		short = truncate(description, 100) + "..."
	}

	category := stringField(fields, "Category")
	if category == "" {
		category = "Uncategorized"
	}

	artist := stringField(fields, "Artist")
	if artist == "" {
		artist = defaultArtist
	}

	title := CleanTitle(rawTitle)

	seoTitle := stringField(fields, "SEOTitle")
	if seoTitle == "" {
		seoTitle = title
	}
	seoDescription := stringField(fields, "SEODescription")
	if seoDescription == "" {
		seoDescription = short
	}

	previews := map[enums.Finish]string{}
	for _, finish := range enums.Finishes() {
		previews[finish] = firstAttachmentURL(fields, previewField(finish))
	}

	prices := pricing.PriceTable{}
	for _, finish := range enums.Finishes() {
		for _, size := range enums.Sizes() {
			price := intField(fields, priceField(finish, size))
			if price <= 0 {
				price = pricing.BasePrice(finish, size)
			}
			prices.Set(finish, size, price)
		}
	}

	stock := intField(fields, "Stock")
	if stock <= 0 {
		stock = 1
	}

	return Product{
		ID:                record.ID,
		Title:             title,
		Description:       description,
		ShortDescription:  short,
		Category:          category,
		Tags:              tagList(fields["Tags"]),
		MainImage:         firstAttachmentURL(fields, "MainImage"),
		GalleryImages:     attachmentURLs(fields, "GalleryImages"),
		PreviewImages:     previews,
		AvailableFinishes: availableFinishes(fields),
		Prices:            prices,
		SEOTitle:          seoTitle,
		SEODescription:    seoDescription,
		Featured:          boolField(fields, "Featured"),
		InStock:           inStock(fields),
		Stock:             stock,
		CreatedTime:       timeField(fields, "created_time"),
		LastModified:      parseTime(record.CreatedTime),
		Slug:              GenerateSlug(rawTitle),
		Artist:            artist,
	}
}

// availableFinishes detects finishes by the presence of a preview image or
// any price field; when nothing is detected every finish is offered.
func availableFinishes(fields map[string]any) []enums.Finish {
	var finishes []enums.Finish
	for _, finish := range enums.Finishes() {
		if firstAttachmentURL(fields, previewField(finish)) != "" {
			finishes = append(finishes, finish)
			continue
		}
		for _, size := range enums.Sizes() {
			if intField(fields, priceField(finish, size)) > 0 {
				finishes = append(finishes, finish)
				break
			}
		}
	}
	if len(finishes) == 0 {
		return enums.Finishes()
	}
	return finishes
}

// inStock treats a product as available unless the field is explicitly false.
func inStock(fields map[string]any) bool {
	if value, ok := fields["InStock"].(bool); ok {
		return value
	}
	return true
}

func previewField(finish enums.Finish) string {
	return capitalize(finish.String()) + "Preview"
}

func priceField(finish enums.Finish, size enums.Size) string {
	return capitalize(finish.String()) + size.String()
}

func capitalize(value string) string {
	if value == "" {
		return value
	}
	return strings.ToUpper(value[:1]) + value[1:]
}

func truncate(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit])
}

func stringField(fields map[string]any, key string) string {
	if value, ok := fields[key].(string); ok {
		return value
	}
	return ""
}

func boolField(fields map[string]any, key string) bool {
	value, ok := fields[key].(bool)
	return ok && value
}

func intField(fields map[string]any, key string) int {
	switch value := fields[key].(type) {
	case float64:
		return int(value)
	case int:
		return value
	default:
		return 0
	}
}

func timeField(fields map[string]any, key string) time.Time {
	return parseTime(stringField(fields, key))
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return ts
	}
	if ts, err := time.Parse("2006-01-02", raw); err == nil {
		return ts
	}
	return time.Time{}
}

// tagList accepts either an already-split list or a comma-separated string.
func tagList(raw any) []string {
	switch value := raw.(type) {
	case []any:
		tags := make([]string, 0, len(value))
		for _, item := range value {
			if tag, ok := item.(string); ok {
				tags = append(tags, strings.TrimSpace(tag))
			}
		}
		return tags
	case []string:
		tags := make([]string, 0, len(value))
		for _, tag := range value {
			tags = append(tags, strings.TrimSpace(tag))
		}
		return tags
	case string:
		if value == "" {
			return []string{}
		}
		parts := strings.Split(value, ",")
		tags := make([]string, 0, len(parts))
		for _, part := range parts {
			tags = append(tags, strings.TrimSpace(part))
		}
		return tags
	default:
		return []string{}
	}
}

// firstAttachmentURL pulls the first URL out of an attachment-style field.
func firstAttachmentURL(fields map[string]any, key string) string {
	urls := attachmentURLs(fields, key)
	if len(urls) == 0 {
		return ""
	}
	return urls[0]
}

func attachmentURLs(fields map[string]any, key string) []string {
	items, ok := fields[key].([]any)
	if !ok {
		return []string{}
	}
	urls := make([]string, 0, len(items))
	for _, item := range items {
		attachment, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if u, ok := attachment["url"].(string); ok && u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}
