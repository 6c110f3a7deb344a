// Package payment talks to the external payment processor: creating hosted
// checkout sessions and verifying the signatures on its webhook deliveries.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// SessionLineItem is a processor-side line item, priced in minor currency
// units (cents).
type SessionLineItem struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	UnitAmount  int64  `json:"unit_amount"`
	Quantity    int    `json:"quantity"`
	Currency    string `json:"currency"`
}

// SessionParams describes one pending payment attempt. Metadata is echoed
// back verbatim inside the confirmation event.
type SessionParams struct {
	LineItems  []SessionLineItem `json:"line_items"`
	Metadata   string            `json:"metadata"`
	SuccessURL string            `json:"success_url"`
	CancelURL  string            `json:"cancel_url"`
}

// Session is the processor's handle on a pending payment.
type Session struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

func NewClient(baseURL, secretKey string) *Client {
	return &Client{
		baseURL:   baseURL,
		secretKey: secretKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// CreateSession registers a checkout session with the processor and returns
// the hosted payment page the shopper is redirected to.
func (c *Client) CreateSession(ctx context.Context, params SessionParams) (*Session, error) {
	body, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("marshal session params: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/checkout/sessions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build session request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call payment processor: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("payment processor returned %d: %s", resp.StatusCode, snippet)
	}

	var session Session
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("decode session response: %w", err)
	}
	return &session, nil
}
