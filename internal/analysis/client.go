package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Operations understood by the computation service.
const (
	OpMonteCarlo        = "montecarlo"
	OpOptimizeLinear    = "optimize/linear"
	OpOptimizeNonLinear = "optimize/nonlinear"
	OpForecast          = "forecast"
)

// Transport carries one request/response exchange with the computation
// service. Implementations marshal in and decode the reply into out.
type Transport interface {
	Call(ctx context.Context, op string, in, out any) error
}

type Client struct {
	t Transport
}

func NewClient(t Transport) *Client { return &Client{t: t} }

func (c *Client) RunMonteCarlo(ctx context.Context, in SimulationInput) (*SimulationResults, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var out SimulationResults
	if err := c.t.Call(ctx, OpMonteCarlo, in, &out); err != nil {
		return nil, fmt.Errorf("monte carlo simulation: %w", err)
	}
	return &out, nil
}

func (c *Client) OptimizeLinear(ctx context.Context, cfg SolarSystemConfig) (*OptimizationResults, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var out OptimizationResults
	if err := c.t.Call(ctx, OpOptimizeLinear, cfg, &out); err != nil {
		return nil, fmt.Errorf("linear optimization: %w", err)
	}
	return &out, nil
}

func (c *Client) OptimizeNonLinear(ctx context.Context, cfg SolarPanelConfig) ([]OptimizationResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	out := []OptimizationResult{}
	if err := c.t.Call(ctx, OpOptimizeNonLinear, cfg, &out); err != nil {
		return nil, fmt.Errorf("non-linear optimization: %w", err)
	}
	return out, nil
}

func (c *Client) Forecast(ctx context.Context, cfg ForecastConfig) (*ForecastResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var out ForecastResult
	if err := c.t.Call(ctx, OpForecast, cfg, &out); err != nil {
		return nil, fmt.Errorf("consumption forecast: %w", err)
	}
	return &out, nil
}

// RemoteError is a non-2xx reply from the computation service.
type RemoteError struct {
	Status int
	Body   string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("analysis service returned %d: %s", e.Status, e.Body)
}

// HTTPTransport posts JSON to <baseURL>/<op>.
type HTTPTransport struct {
	baseURL string
	http    *http.Client
}

func NewHTTPTransport(baseURL string) *HTTPTransport {
	return &HTTPTransport{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (t *HTTPTransport) Call(ctx context.Context, op string, in, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/"+op, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := t.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &RemoteError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
