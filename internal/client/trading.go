// Package client holds HTTP clients for external collaborators. The
// trading backend owns all market logic; this client only attaches signed
// wallet credentials and relays JSON.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"tradewallet/internal/auth"
	"tradewallet/internal/model"
)

// TradingClient calls the trading backend with per-request auth headers.
type TradingClient struct {
	baseURL string
	client  *http.Client
	authn   *auth.Authenticator
}

// NewTradingClient creates a client for the given backend base URL.
func NewTradingClient(baseURL string, authn *auth.Authenticator) *TradingClient {
	return &TradingClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
		authn: authn,
	}
}

// GetQuote requests a trade quote.
func (c *TradingClient) GetQuote(ctx context.Context, req *model.QuoteRequest) (*model.QuoteResponse, error) {
	var out model.QuoteResponse
	if err := c.post(ctx, "/v1/quote", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExecuteTrade executes a previously quoted trade.
func (c *TradingClient) ExecuteTrade(ctx context.Context, req *model.ExecuteTradeRequest) (*model.ExecuteTradeResponse, error) {
	var out model.ExecuteTradeResponse
	if err := c.post(ctx, "/v1/trade", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CheckWalletLinked asks whether the wallet address is linked to a backend
// account.
func (c *TradingClient) CheckWalletLinked(ctx context.Context) (*model.WalletLinkedResponse, error) {
	var out model.WalletLinkedResponse
	if err := c.get(ctx, "/v1/wallet/linked", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *TradingClient) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(ctx, req, out)
}

func (c *TradingClient) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	return c.do(ctx, req, out)
}

// do attaches a freshly signed credential and executes the request. Every
// call gets its own signature and timestamp.
func (c *TradingClient) do(ctx context.Context, req *http.Request, out any) error {
	cred, err := c.authn.BuildAuthHeaders(ctx)
	if err != nil {
		return err
	}
	auth.Apply(req, cred)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("trading backend request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("trading backend returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode trading backend response: %w", err)
	}
	return nil
}
