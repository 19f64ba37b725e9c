// Package illustration talks to the external asset provider that draws task
// and chore tiles. The provider returns opaque image references; nothing
// here interprets them.
package illustration

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var (
	ErrUnavailable    = errors.New("asset provider unavailable")
	ErrTimeout        = errors.New("asset request timed out")
	ErrRetryExhausted = errors.New("asset request retries exhausted")
	ErrEmptyReference = errors.New("asset provider returned no reference")
	ErrNotConfigured  = errors.New("asset provider not configured")
)

// Request describes one image to generate.
type Request struct {
	Description string   `json:"description"`
	References  []string `json:"references,omitempty"`
}

// Generator produces an image reference for a request.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Config configures HTTPGenerator.
type Config struct {
	Endpoint   string
	APIKey     string
	Timeout    time.Duration
	MaxRetries int
}

// HTTPGenerator posts requests to the provider's /v1/illustrations endpoint.
type HTTPGenerator struct {
	cfg    Config
	client *http.Client
}

func NewHTTPGenerator(cfg Config) *HTTPGenerator {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &HTTPGenerator{cfg: cfg, client: &http.Client{}}
}

type generateResponse struct {
	Ref string `json:"ref"`
}

func (g *HTTPGenerator) Generate(ctx context.Context, req Request) (string, error) {
	if g.cfg.Endpoint == "" {
		return "", ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	var lastErr error
	for attempt := 0; attempt <= g.cfg.MaxRetries; attempt++ {
		ref, err := g.doRequest(ctx, req)
		if err == nil {
			return ref, nil
		}
		lastErr = err
		if ctx.Err() != nil || errors.Is(err, ErrEmptyReference) {
			break
		}
	}

	if ctx.Err() != nil {
		return "", ErrTimeout
	}
	if errors.Is(lastErr, ErrEmptyReference) {
		return "", lastErr
	}
	return "", fmt.Errorf("%w: %v", ErrRetryExhausted, lastErr)
}

func (g *HTTPGenerator) doRequest(ctx context.Context, req Request) (string, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.Endpoint+"/v1/illustrations", bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if g.cfg.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+g.cfg.APIKey)
	}

	httpResp, err := g.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	if httpResp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("provider returned status %d: %s", httpResp.StatusCode, string(body))
	}

	var resp generateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	if resp.Ref == "" {
		return "", ErrEmptyReference
	}
	return resp.Ref, nil
}
