package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// HTTPInvoker is an HTTP implementation of the Invoker interface. It posts
// the action and inputs to the tool's endpoint under a configured base URL.
type HTTPInvoker struct {
	baseURL string
	client  *http.Client
}

// NewHTTPInvoker creates an HTTPInvoker. A nil client falls back to
// http.DefaultClient.
func NewHTTPInvoker(baseURL string, client *http.Client) *HTTPInvoker {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPInvoker{baseURL: baseURL, client: client}
}

type invokeRequest struct {
	Action    string                 `json:"action"`
	Inputs    map[string]interface{} `json:"inputs"`
	SessionID string                 `json:"session_id,omitempty"`
}

// Invoke posts the invocation to the tool endpoint and decodes the result.
func (c *HTTPInvoker) Invoke(ctx context.Context, inv *Invocation) (*Result, error) {
	body, err := json.Marshal(invokeRequest{
		Action:    inv.Action,
		Inputs:    inv.Inputs,
		SessionID: inv.SessionID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	url := c.baseURL + inv.Tool.Endpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to invoke tool %s: %w", inv.Tool.ID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tool %s returned status code %d", inv.Tool.ID, resp.StatusCode)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}

	return &result, nil
}
