package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/orderhub/order-admin/internal/entities"
	"github.com/orderhub/order-admin/pkg/utils"
)

// Config tunes the client. The backoff and sync delays exist because
// the order API is eventually consistent: the read model may lag a
// write, so a fresh id can transiently 404.
type Config struct {
	BaseURL string

	Timeout time.Duration

	// RetryMaxAttempts is the 404 budget for fetches that follow a
	// write, where the read model is most likely to lag.
	RetryMaxAttempts  int
	RetryInitialDelay time.Duration
	RetryMaxDelay     time.Duration
	RetryMultiplier   float64

	// CreateSyncDelay is the head start given to the read-model sync
	// before the first fetch of a just-created order.
	CreateSyncDelay time.Duration
}

// Client is the order API gateway. Every operation returns a
// *RequestError on failure.
type Client struct {
	logger *slog.Logger
	http   *http.Client
	cfg    Config

	// wait is swapped in tests to observe delays without sleeping.
	wait func(ctx context.Context, d time.Duration) error
}

func New(logger *slog.Logger, cfg Config) *Client {
	if cfg.RetryMaxAttempts <= 0 {
		cfg.RetryMaxAttempts = 10
	}
	if cfg.RetryInitialDelay <= 0 {
		cfg.RetryInitialDelay = 500 * time.Millisecond
	}
	if cfg.RetryMaxDelay <= 0 {
		cfg.RetryMaxDelay = 3 * time.Second
	}
	if cfg.RetryMultiplier <= 1 {
		cfg.RetryMultiplier = 1.5
	}
	if cfg.CreateSyncDelay <= 0 {
		cfg.CreateSyncDelay = time.Second
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		logger: logger.With(slog.String("component", "gateway")),
		http:   &http.Client{Timeout: timeout},
		cfg:    cfg,
		wait:   utils.Wait,
	}
}

// List fetches one page of orders. A blank search is omitted from the
// query entirely. When the API omits totalPages it is computed as
// ceil(totalCount / pageSize).
func (c *Client) List(ctx context.Context, page, pageSize int, search string) (entities.PagedOrders, error) {
	params := url.Values{}
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		params.Set("pageSize", strconv.Itoa(pageSize))
	}
	if s := strings.TrimSpace(search); s != "" {
		params.Set("search", s)
	}

	endpoint := c.ordersURL()
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var result entities.PagedOrders
	body, err := c.do(ctx, "list", http.MethodGet, endpoint, nil)
	if err != nil {
		return entities.PagedOrders{}, err
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return entities.PagedOrders{}, contractError("invalid list response")
	}
	if result.TotalPages == 0 && result.PageSize > 0 {
		result.TotalPages = (result.TotalCount + result.PageSize - 1) / result.PageSize
	}
	return result, nil
}

// GetByID fetches a single order, retrying 404 responses up to
// maxAttempts times with exponential backoff while the read model
// catches up. Any other failure surfaces immediately.
func (c *Client) GetByID(ctx context.Context, id string, maxAttempts int) (entities.Order, error) {
	var order entities.Order
	attempt := 0

	cfg := utils.RetryConfig{
		MaxAttempts:  maxAttempts,
		InitialDelay: c.cfg.RetryInitialDelay,
		MaxDelay:     c.cfg.RetryMaxDelay,
		Multiplier:   c.cfg.RetryMultiplier,
		Wait:         c.wait,
	}

	fn := func() error {
		attempt++
		body, err := c.do(ctx, "get", http.MethodGet, c.ordersURL()+"/"+url.PathEscape(id), nil)
		if err != nil {
			var re *RequestError
			if errors.As(err, &re) && re.NotFound() {
				c.logger.DebugContext(ctx, "read model not synced yet",
					slog.String("order_id", id),
					slog.Int("attempt", attempt),
					slog.Int("max_attempts", maxAttempts),
				)
			}
			return err
		}
		if err := json.Unmarshal(body, &order); err != nil {
			return contractError("invalid order response")
		}
		return nil
	}

	retryable := func(err error) bool {
		var re *RequestError
		return errors.As(err, &re) && re.NotFound()
	}

	if err := utils.Retry(ctx, cfg, fn, retryable); err != nil {
		return entities.Order{}, err
	}
	return order, nil
}

// Create submits a new order and returns the created id.
func (c *Client) Create(ctx context.Context, req entities.CreateOrderRequest) (string, error) {
	body, err := c.do(ctx, "create", http.MethodPost, c.ordersURL(), req)
	if err != nil {
		return "", err
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &created); err != nil || created.ID == "" {
		return "", contractError("created id missing")
	}
	return created.ID, nil
}

// CreateAndFetch creates an order, waits the configured sync delay so
// the read model has a head start, then fetches the order through the
// standard retry policy.
func (c *Client) CreateAndFetch(ctx context.Context, req entities.CreateOrderRequest) (entities.Order, error) {
	id, err := c.Create(ctx, req)
	if err != nil {
		return entities.Order{}, err
	}
	c.logger.InfoContext(ctx, "order created, waiting for read model sync", slog.String("order_id", id))

	if err := c.wait(ctx, c.cfg.CreateSyncDelay); err != nil {
		return entities.Order{}, transportError(err)
	}
	return c.GetByID(ctx, id, c.cfg.RetryMaxAttempts)
}

// Update replaces an order's status and/or items. The path id always
// wins over the caller-supplied request id.
func (c *Client) Update(ctx context.Context, id string, req entities.UpdateOrderRequest) error {
	req.OrderID = id
	_, err := c.do(ctx, "update", http.MethodPut, c.ordersURL()+"/"+url.PathEscape(id), req)
	return err
}

// UpdateStatus changes only the status, leaving items untouched.
func (c *Client) UpdateStatus(ctx context.Context, id string, statusCode int) error {
	return c.Update(ctx, id, entities.UpdateOrderRequest{
		OrderID:      id,
		NewStatus:    &statusCode,
		ReplaceItems: nil,
	})
}

// Remove deletes an order. No read-after-write reconciliation is
// needed, the caller navigates away.
func (c *Client) Remove(ctx context.Context, id string) error {
	_, err := c.do(ctx, "delete", http.MethodDelete, c.ordersURL()+"/"+url.PathEscape(id), nil)
	return err
}

func (c *Client) ordersURL() string {
	return strings.TrimSuffix(c.cfg.BaseURL, "/") + "/orders"
}

func (c *Client) do(ctx context.Context, operation, method, endpoint string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, transportError(fmt.Errorf("encode request: %w", err))
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, transportError(err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		observeRequest(operation, 0, time.Since(start))
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	observeRequest(operation, resp.StatusCode, time.Since(start))
	if err != nil {
		return nil, transportError(err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		reqErr := statusError(resp.StatusCode, body)
		if !reqErr.NotFound() {
			c.logger.ErrorContext(ctx, "order api request failed",
				slog.String("operation", operation),
				slog.Int("status", resp.StatusCode),
				slog.String("error", reqErr.Message),
			)
		}
		return nil, reqErr
	}
	return body, nil
}
