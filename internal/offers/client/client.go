// Package client provides the HTTP client for the rescue backend REST API.
// The backend owns all durable offer state and every business rule; this
// client only moves JSON and classifies failures.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"foodrescue_portal/internal/offers/domain"
	"foodrescue_portal/internal/offers/transport"
	"foodrescue_portal/platform/apperr"
	"foodrescue_portal/platform/logger"
)

// Client is the HTTP client for the rescue backend.
type Client struct {
	httpClient *http.Client
	baseURL    string
	log        *logger.Logger
}

// New creates a backend client. baseURL includes the /api prefix.
func New(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		log:        log,
	}
}

// List fetches the full offer collection.
func (c *Client) List(ctx context.Context) ([]domain.Offer, error) {
	var offers []domain.Offer
	if err := c.get(ctx, "/offers", &offers); err != nil {
		return nil, err
	}
	return offers, nil
}

// ListAvailable fetches only offers currently open for reservation.
func (c *Client) ListAvailable(ctx context.Context) ([]domain.Offer, error) {
	var offers []domain.Offer
	if err := c.get(ctx, "/offers/available", &offers); err != nil {
		return nil, err
	}
	return offers, nil
}

// Get fetches a single offer.
func (c *Client) Get(ctx context.Context, id string) (domain.Offer, error) {
	var offer domain.Offer
	if err := c.get(ctx, "/offers/"+url.PathEscape(id), &offer); err != nil {
		return domain.Offer{}, err
	}
	return offer, nil
}

// Create submits a new offer and returns it with backend-assigned fields.
func (c *Client) Create(ctx context.Context, req transport.CreateOfferRequest) (domain.Offer, error) {
	var offer domain.Offer
	if err := c.post(ctx, "/offers", req, &offer); err != nil {
		return domain.Offer{}, err
	}
	return offer, nil
}

// ApplyAction invokes the backend mutation endpoint for a lifecycle action.
// The action name is the endpoint path segment (reserve, in-transit,
// delivered, cancel).
func (c *Client) ApplyAction(ctx context.Context, id string, action domain.Action) (domain.Offer, error) {
	var offer domain.Offer
	path := fmt.Sprintf("/offers/%s/%s", url.PathEscape(id), string(action))
	if err := c.post(ctx, path, nil, &offer); err != nil {
		return domain.Offer{}, err
	}
	return offer, nil
}

// Delete removes an offer.
func (c *Client) Delete(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/offers/"+url.PathEscape(id), nil)
	if err != nil {
		return apperr.Internal("create request").WithOp("backend.delete")
	}
	return c.do(req, nil)
}

// Stats fetches the backend's statistics snapshot.
func (c *Client) Stats(ctx context.Context) (domain.Statistics, error) {
	var stats domain.Statistics
	if err := c.get(ctx, "/offers/stats", &stats); err != nil {
		return domain.Statistics{}, err
	}
	return stats, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return apperr.Internal("create request").WithOp("backend.get")
	}
	req.Header.Set("Accept", "application/json")
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return apperr.Internal("encode request body").WithOp("backend.post")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return apperr.Internal("create request").WithOp("backend.post")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return c.do(req, out)
}

// do executes the request and decodes into out when provided. Any non-2xx
// response is a single upstream failure class; the portal does not interpret
// backend status codes beyond success/failure.
func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.UpstreamError("rescue-backend", req.Method+" "+req.URL.Path, err)
		return apperr.Upstream("rescue backend unreachable", err).WithOp("backend.request")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := fmt.Errorf("unexpected status %d", resp.StatusCode)
		c.log.UpstreamError("rescue-backend", req.Method+" "+req.URL.Path, err)
		return apperr.Upstream(fmt.Sprintf("rescue backend returned status %d", resp.StatusCode), err).WithOp("backend.request")
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.log.UpstreamError("rescue-backend", req.Method+" "+req.URL.Path, err)
		return apperr.Upstream("decode rescue backend response", err).WithOp("backend.decode")
	}
	return nil
}
