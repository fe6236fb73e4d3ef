package faire

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/yatelabs/faire-sync/internal/config"
)

// maxResponseSize caps how much of a vendor response is read (10MB).
const maxResponseSize = 10 * 1024 * 1024

const accessTokenHeader = "X-FAIRE-ACCESS-TOKEN"

// RemoteFetchError reports a failed vendor API call: a non-success HTTP
// status, a network failure, or a timeout. No retry is attempted.
type RemoteFetchError struct {
	StatusCode int
	Reason     string
}

func (e *RemoteFetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("faire: remote fetch failed: %d %s", e.StatusCode, e.Reason)
	}
	return "faire: remote fetch failed: " + e.Reason
}

// Client calls the Faire external API over HTTP. Every request carries the
// configured access token and is bounded by the client timeout.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a vendor API client from configuration.
func NewClient(cfg config.FaireConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// GetOrders fetches a page of orders from the vendor.
func (c *Client) GetOrders(ctx context.Context, params OrderListParams) (*OrdersPayload, error) {
	body, err := c.get(ctx, c.baseURL+"/orders", params.Values())
	if err != nil {
		return nil, err
	}

	var payload OrdersPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("faire: decoding orders response: %w", err)
	}

	c.logger.Debug("Fetched orders from vendor", zap.Int("count", len(payload.Orders)))
	return &payload, nil
}

// GetOrder fetches a single order by its vendor id.
func (c *Client) GetOrder(ctx context.Context, orderID string) (*OrderPayload, error) {
	body, err := c.get(ctx, c.baseURL+"/orders/"+url.PathEscape(orderID), nil)
	if err != nil {
		return nil, err
	}

	var payload OrderPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("faire: decoding order response: %w", err)
	}

	return &payload, nil
}

func (c *Client) get(ctx context.Context, rawURL string, query url.Values) ([]byte, error) {
	if len(query) > 0 {
		rawURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("faire: building request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(accessTokenHeader, c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Vendor request failed", zap.String("url", rawURL), zap.Error(err))
		return nil, &RemoteFetchError{Reason: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Vendor returned non-success status",
			zap.String("url", rawURL),
			zap.Int("status_code", resp.StatusCode),
		)
		return nil, &RemoteFetchError{
			StatusCode: resp.StatusCode,
			Reason:     http.StatusText(resp.StatusCode),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &RemoteFetchError{Reason: err.Error()}
	}

	return body, nil
}

// IsNotFound reports whether err is a vendor 404.
func IsNotFound(err error) bool {
	var fetchErr *RemoteFetchError
	return errors.As(err, &fetchErr) && fetchErr.StatusCode == http.StatusNotFound
}
