package campaigns

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
)

// HTTPController calls the Ads Pro platform campaign API. All calls
// run through a shared circuit breaker so that a failing platform
// does not keep absorbing automation traffic.
type HTTPController struct {
	baseURL string
	apiKey  string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[map[string]any]
	logger  *slog.Logger
}

// HTTPControllerConfig configures the campaign API client.
type HTTPControllerConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration

	// Circuit breaker settings; zero values fall back to defaults.
	BreakerMaxRequests      uint32
	BreakerInterval         time.Duration
	BreakerTimeout          time.Duration
	BreakerFailureThreshold uint32
}

// NewHTTPController creates a campaign API client.
func NewHTTPController(cfg HTTPControllerConfig, logger *slog.Logger) *HTTPController {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.BreakerMaxRequests == 0 {
		cfg.BreakerMaxRequests = 3
	}
	if cfg.BreakerInterval == 0 {
		cfg.BreakerInterval = 10 * time.Second
	}
	if cfg.BreakerTimeout == 0 {
		cfg.BreakerTimeout = 30 * time.Second
	}
	if cfg.BreakerFailureThreshold == 0 {
		cfg.BreakerFailureThreshold = 5
	}
	if logger == nil {
		logger = slog.Default()
	}

	settings := gobreaker.Settings{
		Name:        "campaign-api",
		MaxRequests: cfg.BreakerMaxRequests,
		Interval:    cfg.BreakerInterval,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("campaign API circuit breaker state change",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}

	return &HTTPController{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: cfg.Timeout},
		breaker: gobreaker.NewCircuitBreaker[map[string]any](settings),
		logger:  logger,
	}
}

// Pause pauses the campaign.
func (c *HTTPController) Pause(ctx context.Context, campaignID, reason string) error {
	_, err := c.post(ctx, fmt.Sprintf("/v1/campaigns/%s/pause", campaignID), map[string]any{
		"reason": reason,
	})
	return err
}

// AdjustBudget applies a budget change and returns the new daily budget.
func (c *HTTPController) AdjustBudget(ctx context.Context, campaignID string, change BudgetChange) (float64, error) {
	body := map[string]any{}
	if change.Percent != 0 {
		body["percent"] = change.Percent
	} else {
		body["amount"] = change.Amount
	}
	resp, err := c.post(ctx, fmt.Sprintf("/v1/campaigns/%s/budget", campaignID), body)
	if err != nil {
		return 0, err
	}
	budget, _ := resp["daily_budget"].(float64)
	return budget, nil
}

// AdjustBids applies a bid modifier.
func (c *HTTPController) AdjustBids(ctx context.Context, campaignID string, modifier float64, target string) error {
	_, err := c.post(ctx, fmt.Sprintf("/v1/campaigns/%s/bids", campaignID), map[string]any{
		"modifier": modifier,
		"target":   target,
	})
	return err
}

// RotateCreatives rotates the campaign's creative set.
func (c *HTTPController) RotateCreatives(ctx context.Context, campaignID, strategy string) (int, error) {
	resp, err := c.post(ctx, fmt.Sprintf("/v1/campaigns/%s/creatives/rotate", campaignID), map[string]any{
		"strategy": strategy,
	})
	if err != nil {
		return 0, err
	}
	rotated, _ := resp["rotated"].(float64)
	return int(rotated), nil
}

// ExpandAudience attaches a lookalike audience to the campaign.
func (c *HTTPController) ExpandAudience(ctx context.Context, campaignID string, opts AudienceExpansion) (string, error) {
	resp, err := c.post(ctx, fmt.Sprintf("/v1/campaigns/%s/audience/expand", campaignID), map[string]any{
		"similarity_threshold": opts.SimilarityThreshold,
		"markets":              opts.Markets,
	})
	if err != nil {
		return "", err
	}
	audienceID, _ := resp["audience_id"].(string)
	return audienceID, nil
}

func (c *HTTPController) post(ctx context.Context, path string, body map[string]any) (map[string]any, error) {
	return c.breaker.Execute(func() (map[string]any, error) {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 {
			data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			return nil, fmt.Errorf("campaign API %s: status %d: %s", path, resp.StatusCode, bytes.TrimSpace(data))
		}

		var result map[string]any
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil && err != io.EOF {
			return nil, fmt.Errorf("decode campaign API response: %w", err)
		}
		return result, nil
	})
}
