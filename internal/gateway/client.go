package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/styleshelf/storefront/internal/models"
)

const requestTimeout = 10 * time.Second

// gateway order status
const (
	OrderStatusCreated   = "created"
	OrderStatusAttempted = "attempted"
	OrderStatusPaid      = "paid"
)

// Client talks to the payment gateway's order API
type Client struct {
	client    *http.Client
	baseURL   string
	keyID     string
	keySecret string
}

// NewClient creates new gateway Client instance
func NewClient(baseURL, keyID, keySecret string) *Client {
	return &Client{
		client: &http.Client{
			Timeout: requestTimeout,
		},
		baseURL:   baseURL,
		keyID:     keyID,
		keySecret: keySecret,
	}
}

// Order is a gateway-side payment order
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type orderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type errorResponse struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// CreateOrder creates a gateway order for amount in the smallest currency
// unit. The receipt travels through the gateway and back with the payment
// widget, so the ledger id put here is the stable confirmation key.
func (c *Client) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*Order, error) {
	// POST /v1/orders
	url, err := url.JoinPath(c.baseURL, "v1", "orders")
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(orderRequest{Amount: amount, Currency: currency, Receipt: receipt})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	return c.do(req)
}

// GetOrder fetches the current state of a gateway order
func (c *Client) GetOrder(ctx context.Context, id string) (*Order, error) {
	// GET /v1/orders/{id}
	url, err := url.JoinPath(c.baseURL, "v1", "orders", id)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.keyID, c.keySecret)

	return c.do(req)
}

func (c *Client) do(req *http.Request) (*Order, error) {
	resp, err := c.client.Do(req)
	if resp != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		if isTimeout(err) {
			return nil, models.ErrGatewayTimeout
		}
		return nil, err
	}

	switch resp.StatusCode {
	case http.StatusOK:
		order := Order{}
		if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
			return nil, err
		}
		return &order, nil
	default:
		errResp := errorResponse{}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil || errResp.Error.Description == "" {
			return nil, models.NewGatewayError(resp.StatusCode, "unexpected gateway response")
		}
		return nil, models.NewGatewayError(resp.StatusCode, errResp.Error.Description)
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
