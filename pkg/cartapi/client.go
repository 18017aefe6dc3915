package cartapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/packfinderz-storefront/pkg/auth"
	"github.com/angelmondragon/packfinderz-storefront/pkg/config"
	pkgerrors "github.com/angelmondragon/packfinderz-storefront/pkg/errors"
	"github.com/angelmondragon/packfinderz-storefront/pkg/logger"
	"github.com/angelmondragon/packfinderz-storefront/pkg/metrics"
)

const errorBodyReadLimit int64 = 4096

var (
	errBaseURLRequired = errors.New("cart api base url is required")
	errCredsRequired   = errors.New("credential store is required")
	errLoggerRequired  = errors.New("cart api logger is required")
)

// Client talks to the remote cart/order service with centralized auth,
// logging, error mapping, and metrics.
type Client struct {
	httpClient *http.Client
	baseURL    string
	creds      auth.CredentialStore
	logger     *logger.Logger
	metrics    *metrics.ClientMetrics
	now        func() time.Time
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithMetrics attaches request metrics to the client.
func WithMetrics(m *metrics.ClientMetrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithClock overrides the time source used for the local expiry check.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// NewClient builds the cart/order service client.
func NewClient(cfg config.CartAPIConfig, creds auth.CredentialStore, logg *logger.Logger, opts ...Option) (*Client, error) {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		return nil, errBaseURLRequired
	}
	if creds == nil {
		return nil, errCredsRequired
	}
	if logg == nil {
		return nil, errLoggerRequired
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	client := &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		creds:      creds,
		logger:     logg,
		metrics:    nil,
		now:        time.Now,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client, nil
}

// GetCart fetches the buyer's current cart.
func (c *Client) GetCart(ctx context.Context) (*CartPayload, error) {
	var payload CartPayload
	if err := c.do(ctx, "load_cart", http.MethodGet, "cart", nil, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// UpdateItemQuantity sets the quantity on a single line item.
func (c *Client) UpdateItemQuantity(ctx context.Context, lineItemID string, quantity int) (*CartLineItem, error) {
	trimmed := strings.TrimSpace(lineItemID)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "line item id is required")
	}
	var item CartLineItem
	path := fmt.Sprintf("cart/items/%s", url.PathEscape(trimmed))
	if err := c.do(ctx, "update_quantity", http.MethodPut, path, quantityUpdate{Quantity: quantity}, nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveItem deletes a single line item from the cart.
func (c *Client) RemoveItem(ctx context.Context, lineItemID string) error {
	trimmed := strings.TrimSpace(lineItemID)
	if trimmed == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "line item id is required")
	}
	path := fmt.Sprintf("cart/items/%s", url.PathEscape(trimmed))
	return c.do(ctx, "remove_item", http.MethodDelete, path, nil, nil, nil)
}

// ClearCart removes every line item from the cart.
func (c *Client) ClearCart(ctx context.Context) error {
	return c.do(ctx, "clear_cart", http.MethodDelete, "cart", nil, nil, nil)
}

// NewIdempotencyKey mints a key for SubmitOrder. Callers hold one key
// per order attempt and reuse it when retrying that attempt.
func NewIdempotencyKey() string {
	return fmt.Sprintf("order-%s", uuid.NewString())
}

func ensureIdempotencyKey(provided string) string {
	if strings.TrimSpace(provided) != "" {
		return provided
	}
	return NewIdempotencyKey()
}

// SubmitOrder posts the composite checkout payload. The idempotency key
// lets the service dedupe a retried submission; passing the same key on
// every retry of one attempt is what prevents a double-created order,
// so callers should mint it once per attempt. An empty key gets a
// generated fallback.
func (c *Client) SubmitOrder(ctx context.Context, req OrderRequest, idempotencyKey string) (*OrderCreated, error) {
	headers := map[string]string{"Idempotency-Key": ensureIdempotencyKey(idempotencyKey)}
	var created OrderCreated
	if err := c.do(ctx, "submit_order", http.MethodPost, "orders", req, headers, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, body any, headers map[string]string, dest any) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeInternal, "cart api client not configured")
	}

	// The expiry claim is inspected locally before spending a round trip;
	// an expired token clears the stored credentials.
	token, err := auth.RequireFresh(c.creds, c.now())
	if err != nil {
		c.fail(ctx, op, err)
		return err
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			wrapped := pkgerrors.Wrap(pkgerrors.CodeInternal, err, fmt.Sprintf("marshal %s request", op))
			c.fail(ctx, op, wrapped)
			return wrapped
		}
		reader = bytes.NewReader(encoded)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.buildURL(path), reader)
	if err != nil {
		wrapped := pkgerrors.Wrap(pkgerrors.CodeInternal, err, fmt.Sprintf("build %s request", op))
		c.fail(ctx, op, wrapped)
		return wrapped
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		httpReq.Header.Set(k, v)
	}

	c.log(ctx, "request", op, map[string]any{"method": method, "path": path})

	start := c.now()
	resp, err := c.httpClient.Do(httpReq)
	c.metrics.ObserveDuration(op, c.now().Sub(start))
	if err != nil {
		wrapped := pkgerrors.Wrap(pkgerrors.CodeTransient, err, fmt.Sprintf("execute %s request", op))
		c.fail(ctx, op, wrapped)
		return wrapped
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		mapped := c.mapStatusError(op, resp)
		c.fail(ctx, op, mapped)
		return mapped
	}

	if dest != nil {
		if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
			wrapped := pkgerrors.Wrap(pkgerrors.CodeTransient, err, fmt.Sprintf("decode %s response", op))
			c.fail(ctx, op, wrapped)
			return wrapped
		}
	}

	c.metrics.IncSuccess(op)
	c.log(ctx, "response", op, map[string]any{"status": resp.StatusCode})
	return nil
}

func (c *Client) mapStatusError(op string, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))

	if resp.StatusCode == http.StatusUnauthorized {
		c.creds.Clear()
		return pkgerrors.New(pkgerrors.CodeAuthentication, "session rejected by service")
	}

	var body errorBody
	_ = json.Unmarshal(raw, &body)
	message := strings.TrimSpace(body.Message)

	// A missing resource is not retryable; retrying a remove on a line
	// item that is already gone can never succeed.
	if resp.StatusCode == http.StatusNotFound {
		if message == "" {
			message = "not found"
		}
		return pkgerrors.New(pkgerrors.CodeNotFound, message)
	}

	// Any other 4xx with a server message is a business rule the buyer
	// can act on; everything else is reported as retryable.
	if resp.StatusCode >= 400 && resp.StatusCode < 500 && message != "" {
		return pkgerrors.New(pkgerrors.CodeBusinessRule, message)
	}

	cause := fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	return pkgerrors.Wrap(pkgerrors.CodeTransient, cause, fmt.Sprintf("%s request failed", op))
}

func (c *Client) fail(ctx context.Context, op string, err error) {
	code := string(pkgerrors.CodeInternal)
	if typed := pkgerrors.As(err); typed != nil {
		code = string(typed.Code())
	}
	c.metrics.IncFailure(op, code)
	c.log(ctx, "error", op, map[string]any{"error": err.Error()})
}

func (c *Client) log(ctx context.Context, phase, op string, fields map[string]any) {
	if c == nil || c.logger == nil {
		return
	}
	logFields := map[string]any{
		"operation": op,
		"phase":     phase,
	}
	for k, v := range fields {
		logFields[k] = redact(k, v)
	}
	ctx = c.logger.WithFields(ctx, logFields)
	switch phase {
	case "error":
		c.logger.Error(ctx, fmt.Sprintf("cart api %s", op), errors.New(fmt.Sprint(fields["error"])))
	default:
		c.logger.Debug(ctx, fmt.Sprintf("cart api %s", phase))
	}
}

func redact(key string, value any) any {
	lower := strings.ToLower(key)
	for _, sensitive := range []string{"card", "cvv", "token", "secret", "phone"} {
		if strings.Contains(lower, sensitive) {
			return "[REDACTED]"
		}
	}
	return value
}

func (c *Client) buildURL(path string) string {
	return fmt.Sprintf("%s/%s", c.baseURL, strings.TrimLeft(path, "/"))
}
