package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/styleshelf/storefront/internal/models"
)

const requestTimeout = 10 * time.Second

// Client talks to the transactional email provider
type Client struct {
	client  *http.Client
	baseURL string
	apiKey  string
	sender  string
}

// NewClient creates new email Client instance
func NewClient(baseURL, apiKey, sender string) *Client {
	return &Client{
		client: &http.Client{
			Timeout: requestTimeout,
		},
		baseURL: baseURL,
		apiKey:  apiKey,
		sender:  sender,
	}
}

// Message is a single outgoing email
type Message struct {
	To      string
	Subject string
	HTML    string
}

// SendResponse is the provider's acknowledgement
type SendResponse struct {
	ID string `json:"id"`
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// Send posts the message to the provider's send endpoint
func (c *Client) Send(ctx context.Context, msg Message) (*SendResponse, error) {
	if c.apiKey == "" {
		return nil, models.ErrMissingAPIKey
	}

	// POST /emails
	url, err := url.JoinPath(c.baseURL, "emails")
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(sendRequest{
		From:    c.sender,
		To:      []string{msg.To},
		Subject: msg.Subject,
		HTML:    msg.HTML,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if resp != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("send email: status %d: %s", resp.StatusCode, respBody)
	}

	sendResp := SendResponse{}
	if err := json.NewDecoder(resp.Body).Decode(&sendResp); err != nil {
		return nil, err
	}

	return &sendResp, nil
}
