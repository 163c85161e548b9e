package commands

import (
	"context"
	"errors"

	"github.com/adspro/autopilot/internal/automation/domain"
	"github.com/google/uuid"
)

// CreateOptimizationCommand records an AI recommendation.
type CreateOptimizationCommand struct {
	OrganizationID  uuid.UUID
	CampaignID      string
	Kind            string
	Recommendation  string
	EstimatedImpact float64
}

// Validate checks required fields.
func (c CreateOptimizationCommand) Validate() error {
	if c.OrganizationID == uuid.Nil {
		return errors.New("organization_id is required")
	}
	if c.Kind == "" {
		return errors.New("kind is required")
	}
	return nil
}

// UpdateOptimizationCommand transitions a recommendation's status.
type UpdateOptimizationCommand struct {
	OptimizationID uuid.UUID
	Status         domain.OptimizationStatus
}

// OptimizationHandler handles AI optimization commands.
type OptimizationHandler struct {
	repo domain.OptimizationRepository
}

// NewOptimizationHandler creates a new OptimizationHandler.
func NewOptimizationHandler(repo domain.OptimizationRepository) *OptimizationHandler {
	return &OptimizationHandler{repo: repo}
}

// Create records a pending recommendation.
func (h *OptimizationHandler) Create(ctx context.Context, cmd CreateOptimizationCommand) (*domain.AIOptimization, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	opt := domain.NewAIOptimization(cmd.OrganizationID, cmd.CampaignID, cmd.Kind, cmd.Recommendation, cmd.EstimatedImpact)
	if err := h.repo.Create(ctx, opt); err != nil {
		return nil, err
	}
	return opt, nil
}

// Update transitions the recommendation's status. An unknown id is
// not an error; it reports false, mirroring rule updates.
func (h *OptimizationHandler) Update(ctx context.Context, cmd UpdateOptimizationCommand) (bool, error) {
	opt, err := h.repo.GetByID(ctx, cmd.OptimizationID)
	if err != nil {
		if errors.Is(err, domain.ErrOptimizationNotFound) {
			return false, nil
		}
		return false, err
	}

	opt.SetStatus(cmd.Status)
	if err := h.repo.Update(ctx, opt); err != nil {
		return false, err
	}
	return true, nil
}
