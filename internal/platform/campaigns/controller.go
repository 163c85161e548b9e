// Package campaigns defines the campaign control surface the
// automation engine acts through. The engine does not own campaign
// state; it issues control calls against the Ads Pro platform API.
package campaigns

import "context"

// BudgetChange describes a budget delta. Percent takes precedence
// over Amount when both are set; negative values decrease the budget.
type BudgetChange struct {
	Amount  float64
	Percent float64
}

// AudienceExpansion configures an audience-expansion call.
type AudienceExpansion struct {
	SimilarityThreshold float64
	Markets             []string
}

// Controller performs control operations against a single campaign.
// Every call either succeeds or returns an error; the engine's
// failure handling depends only on that.
type Controller interface {
	Pause(ctx context.Context, campaignID, reason string) error
	// AdjustBudget applies the change and returns the new daily budget.
	AdjustBudget(ctx context.Context, campaignID string, change BudgetChange) (float64, error)
	AdjustBids(ctx context.Context, campaignID string, modifier float64, target string) error
	// RotateCreatives returns the number of creatives rotated in.
	RotateCreatives(ctx context.Context, campaignID, strategy string) (int, error)
	// ExpandAudience returns the id of the newly attached audience.
	ExpandAudience(ctx context.Context, campaignID string, opts AudienceExpansion) (string, error)
}
