package domain

import (
	"time"

	"github.com/google/uuid"
)

// OptimizationStatus represents the lifecycle of an AI recommendation.
type OptimizationStatus string

const (
	OptimizationStatusPending   OptimizationStatus = "pending"
	OptimizationStatusApplied   OptimizationStatus = "applied"
	OptimizationStatusDismissed OptimizationStatus = "dismissed"
)

// AIOptimization is a flat recommendation record produced by the AI
// optimization service. It shares an organization id (and optionally
// a campaign id) with rules but carries no referential coupling to
// them.
type AIOptimization struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	CampaignID     string

	Kind            string
	Recommendation  string
	EstimatedImpact float64
	Status          OptimizationStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAIOptimization creates a pending recommendation record.
func NewAIOptimization(orgID uuid.UUID, campaignID, kind, recommendation string, estimatedImpact float64) *AIOptimization {
	now := time.Now()
	return &AIOptimization{
		ID:              uuid.New(),
		OrganizationID:  orgID,
		CampaignID:      campaignID,
		Kind:            kind,
		Recommendation:  recommendation,
		EstimatedImpact: estimatedImpact,
		Status:          OptimizationStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// SetStatus transitions the recommendation's status.
func (o *AIOptimization) SetStatus(status OptimizationStatus) {
	o.Status = status
	o.UpdatedAt = time.Now()
}
