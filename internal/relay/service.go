// Package relay fronts the records backend for browser callers. It injects
// the server-side credential and mirrors whatever the backend answers; the
// bearer token never reaches the client.
package relay

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/go-resty/resty/v2"

	"github.com/wildwestwallart/storefront-backend/pkg/config"
	pkgerrors "github.com/wildwestwallart/storefront-backend/pkg/errors"
	"github.com/wildwestwallart/storefront-backend/pkg/logger"
)

// Result is the mirrored upstream answer. Body is raw JSON passed through
// untouched.
type Result struct {
	Status int
	Body   json.RawMessage
}

// Service forwards read requests to the records backend.
type Service interface {
	Forward(ctx context.Context, recordID string, query url.Values) (*Result, error)
}

type service struct {
	http  *resty.Client
	cfg   config.RecordsConfig
	logg  *logger.Logger
	ready bool
}

// NewService always succeeds so the server can boot without credentials;
// Forward reports the configuration problem per request instead.
func NewService(cfg config.RecordsConfig, logg *logger.Logger) Service {
	s := &service{cfg: cfg, logg: logg}
	if cfg.HasCredentials() {
		s.http = resty.New().
			SetBaseURL(cfg.Endpoint + "/" + url.PathEscape(cfg.BaseID)).
			SetAuthToken(cfg.APIKey).
			SetTimeout(cfg.Timeout)
		s.ready = true
	}
	return s
}

// Forward proxies a read, optionally narrowing to a single record. The
// table query parameter overrides the configured collection; it and the id
// parameter steer routing here and are stripped before forwarding. Listing
// parameters only apply to listings, so a single-record fetch goes upstream
// with a bare query.
func (s *service) Forward(ctx context.Context, recordID string, query url.Values) (*Result, error) {
	if !s.ready {
		return nil, pkgerrors.New(pkgerrors.CodeConfiguration, "records credentials not configured").
			WithDetails(map[string]any{
				"hasApiKey": s.cfg.APIKey != "",
				"hasBaseId": s.cfg.BaseID != "",
				"table":     s.cfg.Table,
			})
	}

	if recordID == "" {
		recordID = query.Get("id")
	}
	table := s.cfg.Table
	if override := query.Get("table"); override != "" {
		table = override
	}

	req := s.http.R().SetContext(ctx)
	if recordID == "" {
		for key, values := range query {
			if key == "table" || key == "id" {
				continue
			}
			for _, value := range values {
				req.SetQueryParam(key, value)
			}
		}
	}

	path := "/" + url.PathEscape(table)
	if recordID != "" {
		path += "/" + url.PathEscape(recordID)
	}

	resp, err := req.Get(path)
	if err != nil {
		s.logError(ctx, "relay.forward_failed", err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "records backend unreachable")
	}

	body := resp.Body()
	if len(body) == 0 || !json.Valid(body) {
		wrapped, merr := json.Marshal(map[string]string{"passthrough": string(body)})
		if merr != nil {
			wrapped = []byte(`{"passthrough":""}`)
		}
		body = wrapped
	}
	return &Result{Status: resp.StatusCode(), Body: json.RawMessage(body)}, nil
}

func (s *service) logError(ctx context.Context, msg string, err error) {
	if s.logg != nil {
		s.logg.Error(ctx, msg, err)
	}
}
