package campaigns

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// LogController is a development stand-in for the platform API. It
// logs every mutation and reports success without touching any
// campaign.
type LogController struct {
	logger *slog.Logger
}

// NewLogController creates a controller that only logs.
func NewLogController(logger *slog.Logger) *LogController {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogController{logger: logger}
}

func (c *LogController) Pause(ctx context.Context, campaignID, reason string) error {
	c.logger.Info("campaign pause (log only)",
		slog.String("campaign_id", campaignID),
		slog.String("reason", reason))
	return nil
}

func (c *LogController) AdjustBudget(ctx context.Context, campaignID string, change BudgetChange) (float64, error) {
	c.logger.Info("campaign budget change (log only)",
		slog.String("campaign_id", campaignID),
		slog.Float64("amount", change.Amount),
		slog.Float64("percent", change.Percent))
	return change.Amount, nil
}

func (c *LogController) AdjustBids(ctx context.Context, campaignID string, modifier float64, target string) error {
	c.logger.Info("campaign bid adjustment (log only)",
		slog.String("campaign_id", campaignID),
		slog.Float64("modifier", modifier),
		slog.String("target", target))
	return nil
}

func (c *LogController) RotateCreatives(ctx context.Context, campaignID, strategy string) (int, error) {
	c.logger.Info("creative rotation (log only)",
		slog.String("campaign_id", campaignID),
		slog.String("strategy", strategy))
	return 0, nil
}

func (c *LogController) ExpandAudience(ctx context.Context, campaignID string, opts AudienceExpansion) (string, error) {
	c.logger.Info("audience expansion (log only)",
		slog.String("campaign_id", campaignID),
		slog.Float64("similarity_threshold", opts.SimilarityThreshold))
	return fmt.Sprintf("aud_%d", time.Now().UnixNano()), nil
}
