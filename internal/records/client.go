// Package records talks to the external records backend the catalog is
// sourced from: a read-only HTTP API returning paginated JSON pages keyed by
// an opaque offset cursor.
package records

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-resty/resty/v2"
	"github.com/wildwestwallart/storefront-backend/pkg/config"
	pkgerrors "github.com/wildwestwallart/storefront-backend/pkg/errors"
)

// Record is one raw row from the backend. Fields is left untyped; the
// catalog normalizes it.
type Record struct {
	ID          string         `json:"id"`
	CreatedTime string         `json:"createdTime"`
	Fields      map[string]any `json:"fields"`
}

// ListPage is one page of a listing plus the cursor for the next page.
// An empty Offset means the listing is exhausted.
type ListPage struct {
	Records []Record `json:"records"`
	Offset  string   `json:"offset"`
}

const defaultPageSize = 100

// Client issues authenticated reads against a single collection.
type Client struct {
	http     *resty.Client
	table    string
	pageSize int
}

// NewClient builds a client for the configured base/collection. The bearer
// credential never leaves this process. A non-positive pageSize falls back
// to the backend's default of 100.
func NewClient(cfg config.RecordsConfig, pageSize int) (*Client, error) {
	if !cfg.HasCredentials() {
		return nil, pkgerrors.New(pkgerrors.CodeConfiguration, "records credentials not configured").
			WithDetails(map[string]any{
				"hasApiKey": cfg.APIKey != "",
				"hasBaseId": cfg.BaseID != "",
				"table":     cfg.Table,
			})
	}
	httpClient := resty.New().
		SetBaseURL(cfg.Endpoint + "/" + url.PathEscape(cfg.BaseID)).
		SetAuthToken(cfg.APIKey).
		SetTimeout(cfg.Timeout)
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &Client{
		http:     httpClient,
		table:    cfg.Table,
		pageSize: pageSize,
	}, nil
}

// ListPage fetches one page of the listing. The backend is asked to sort by
// featured descending then creation time descending; callers echo the
// returned offset until it comes back empty.
func (c *Client) ListPage(ctx context.Context, offset string) (*ListPage, error) {
	req := c.http.R().
		SetContext(ctx).
		SetQueryParam("pageSize", strconv.Itoa(c.pageSize)).
		SetQueryParam("sort[0][field]", "featured").
		SetQueryParam("sort[0][direction]", "desc").
		SetQueryParam("sort[1][field]", "created_time").
		SetQueryParam("sort[1][direction]", "desc")
	if offset != "" {
		req.SetQueryParam("offset", offset)
	}

	var page ListPage
	resp, err := req.SetResult(&page).Get("/" + url.PathEscape(c.table))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list records")
	}
	if resp.IsError() {
		return nil, pkgerrors.New(pkgerrors.CodeDependency,
			fmt.Sprintf("records api error: %d %s", resp.StatusCode(), resp.Status()))
	}
	return &page, nil
}

// GetRecord fetches a single record by id.
func (c *Client) GetRecord(ctx context.Context, id string) (*Record, error) {
	var record Record
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&record).
		Get("/" + url.PathEscape(c.table) + "/" + url.PathEscape(id))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "get record")
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "record not found")
	}
	if resp.IsError() {
		return nil, pkgerrors.New(pkgerrors.CodeDependency,
			fmt.Sprintf("records api error: %d %s", resp.StatusCode(), resp.Status()))
	}
	return &record, nil
}
