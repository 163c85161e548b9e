// Package ai integrates the AI optimization service consumed by
// ai_optimize actions.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Service requests an optimization run for a campaign and returns the
// opaque identifier of the created optimization.
type Service interface {
	Optimize(ctx context.Context, campaignID, optimizationType string) (string, error)
}

// HTTPClient calls the Ads Pro AI optimization API.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPClient creates an AI optimization API client.
func NewHTTPClient(baseURL, apiKey string, timeout time.Duration) *HTTPClient {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &HTTPClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

// Optimize submits an optimization request.
func (c *HTTPClient) Optimize(ctx context.Context, campaignID, optimizationType string) (string, error) {
	payload, err := json.Marshal(map[string]string{
		"campaign_id":       campaignID,
		"optimization_type": optimizationType,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/optimizations", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("optimization API: status %d", resp.StatusCode)
	}

	var result struct {
		OptimizationID string `json:"optimization_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode optimization response: %w", err)
	}
	return result.OptimizationID, nil
}

// LocalStub fabricates optimization ids without calling out. Used in
// development when no AI service endpoint is configured.
type LocalStub struct {
	logger *slog.Logger
}

// NewLocalStub creates a stub optimization service.
func NewLocalStub(logger *slog.Logger) *LocalStub {
	if logger == nil {
		logger = slog.Default()
	}
	return &LocalStub{logger: logger}
}

// Optimize logs the request and returns a synthetic id.
func (s *LocalStub) Optimize(ctx context.Context, campaignID, optimizationType string) (string, error) {
	id := fmt.Sprintf("opt_%d", time.Now().UnixNano())
	s.logger.Info("optimization requested (stub)",
		"campaign_id", campaignID,
		"optimization_type", optimizationType,
		"optimization_id", id,
	)
	return id, nil
}
