package simapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// SimulateTimeout bounds a simulate call so a hung collaborator cannot
// leave the station submitting forever.
const SimulateTimeout = 30 * time.Second

// Client talks to the simulator collaborator endpoints.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: SimulateTimeout},
	}
}

// Platforms fetches the platform catalog, preserving server order.
func (c *Client) Platforms(ctx context.Context) ([]Platform, error) {
	var platforms []Platform
	if err := c.getJSON(ctx, "/api/platforms", &platforms); err != nil {
		return nil, fmt.Errorf("fetching platforms: %w", err)
	}
	return platforms, nil
}

// Payloads fetches the payload catalog, preserving server order.
func (c *Client) Payloads(ctx context.Context) ([]Payload, error) {
	var payloads []Payload
	if err := c.getJSON(ctx, "/api/payloads", &payloads); err != nil {
		return nil, fmt.Errorf("fetching payloads: %w", err)
	}
	return payloads, nil
}

// Simulate posts a simulation request and decodes the response.
func (c *Client) Simulate(ctx context.Context, req SimulationRequest) (*SimulationResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding simulation request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, SimulateTimeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/simulate", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("simulate call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("simulate call failed: status %d", resp.StatusCode)
	}

	var result SimulationResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding simulation response: %w", err)
	}
	return &result, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
