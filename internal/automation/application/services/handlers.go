package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/adspro/autopilot/internal/automation/domain"
	"github.com/adspro/autopilot/internal/platform/ai"
	"github.com/adspro/autopilot/internal/platform/campaigns"
	"github.com/adspro/autopilot/internal/platform/notify"
	"github.com/google/uuid"
)

// ErrNoCampaign is returned by campaign-control handlers when the
// trigger data carried no acting campaign id.
var ErrNoCampaign = errors.New("trigger data carries no campaign id")

// RegisterStandardHandlers registers one handler per action type of
// the closed enumeration.
func RegisterStandardHandlers(
	e *Executor,
	controller campaigns.Controller,
	dispatcher notify.Dispatcher,
	optimizer ai.Service,
	optimizations domain.OptimizationRepository,
	logger *slog.Logger,
) {
	e.RegisterHandler(&PauseCampaignHandler{controller: controller})
	e.RegisterHandler(&BudgetHandler{controller: controller, actionType: domain.ActionIncreaseBudget})
	e.RegisterHandler(&BudgetHandler{controller: controller, actionType: domain.ActionDecreaseBudget})
	e.RegisterHandler(&AdjustBidsHandler{controller: controller})
	e.RegisterHandler(&RotateCreativesHandler{controller: controller})
	e.RegisterHandler(&ExpandAudienceHandler{controller: controller})
	e.RegisterHandler(&NotificationHandler{dispatcher: dispatcher})
	e.RegisterHandler(&AIOptimizeHandler{optimizer: optimizer, optimizations: optimizations, logger: logger})
}

// PauseCampaignHandler handles pause_campaign actions.
type PauseCampaignHandler struct {
	controller campaigns.Controller
}

// ActionType returns the action type.
func (h *PauseCampaignHandler) ActionType() domain.ActionType { return domain.ActionPauseCampaign }

// Execute pauses the acting campaign.
func (h *PauseCampaignHandler) Execute(ctx context.Context, orgID uuid.UUID, campaignID string, params domain.ActionParams) (map[string]any, error) {
	if campaignID == "" {
		return nil, ErrNoCampaign
	}
	p, _ := params.(domain.PauseCampaignParams)
	if err := h.controller.Pause(ctx, campaignID, p.Reason); err != nil {
		return nil, err
	}
	return map[string]any{"campaign_id": campaignID, "paused": true}, nil
}

// BudgetHandler handles increase_budget and decrease_budget actions.
// The same handler serves both directions; decrease negates the
// declared change.
type BudgetHandler struct {
	controller campaigns.Controller
	actionType domain.ActionType
}

// ActionType returns the action type.
func (h *BudgetHandler) ActionType() domain.ActionType { return h.actionType }

// Execute applies the budget change.
func (h *BudgetHandler) Execute(ctx context.Context, orgID uuid.UUID, campaignID string, params domain.ActionParams) (map[string]any, error) {
	if campaignID == "" {
		return nil, ErrNoCampaign
	}
	p, ok := params.(domain.BudgetChangeParams)
	if !ok {
		return nil, fmt.Errorf("unexpected params type %T for %s", params, h.actionType)
	}

	change := campaigns.BudgetChange{Amount: p.Amount, Percent: p.Percent}
	if h.actionType == domain.ActionDecreaseBudget {
		change.Amount = -change.Amount
		change.Percent = -change.Percent
	}

	newBudget, err := h.controller.AdjustBudget(ctx, campaignID, change)
	if err != nil {
		return nil, err
	}
	return map[string]any{"campaign_id": campaignID, "daily_budget": newBudget}, nil
}

// AdjustBidsHandler handles adjust_bids actions.
type AdjustBidsHandler struct {
	controller campaigns.Controller
}

// ActionType returns the action type.
func (h *AdjustBidsHandler) ActionType() domain.ActionType { return domain.ActionAdjustBids }

// Execute applies the bid modifier.
func (h *AdjustBidsHandler) Execute(ctx context.Context, orgID uuid.UUID, campaignID string, params domain.ActionParams) (map[string]any, error) {
	if campaignID == "" {
		return nil, ErrNoCampaign
	}
	p, ok := params.(domain.AdjustBidsParams)
	if !ok {
		return nil, fmt.Errorf("unexpected params type %T for adjust_bids", params)
	}
	if err := h.controller.AdjustBids(ctx, campaignID, p.Modifier, p.Target); err != nil {
		return nil, err
	}
	return map[string]any{"campaign_id": campaignID, "modifier": p.Modifier}, nil
}

// RotateCreativesHandler handles rotate_creatives actions.
type RotateCreativesHandler struct {
	controller campaigns.Controller
}

// ActionType returns the action type.
func (h *RotateCreativesHandler) ActionType() domain.ActionType { return domain.ActionRotateCreatives }

// Execute rotates the campaign's creative set.
func (h *RotateCreativesHandler) Execute(ctx context.Context, orgID uuid.UUID, campaignID string, params domain.ActionParams) (map[string]any, error) {
	if campaignID == "" {
		return nil, ErrNoCampaign
	}
	p, _ := params.(domain.RotateCreativesParams)
	rotated, err := h.controller.RotateCreatives(ctx, campaignID, p.Strategy)
	if err != nil {
		return nil, err
	}
	return map[string]any{"campaign_id": campaignID, "rotated": rotated}, nil
}

// ExpandAudienceHandler handles expand_audience actions.
type ExpandAudienceHandler struct {
	controller campaigns.Controller
}

// ActionType returns the action type.
func (h *ExpandAudienceHandler) ActionType() domain.ActionType { return domain.ActionExpandAudience }

// Execute attaches a lookalike audience to the campaign.
func (h *ExpandAudienceHandler) Execute(ctx context.Context, orgID uuid.UUID, campaignID string, params domain.ActionParams) (map[string]any, error) {
	if campaignID == "" {
		return nil, ErrNoCampaign
	}
	p, _ := params.(domain.ExpandAudienceParams)
	audienceID, err := h.controller.ExpandAudience(ctx, campaignID, campaigns.AudienceExpansion{
		SimilarityThreshold: p.SimilarityThreshold,
		Markets:             p.Markets,
	})
	if err != nil {
		return nil, err
	}
	return map[string]any{"campaign_id": campaignID, "audience_id": audienceID}, nil
}

// NotificationHandler handles send_notification actions.
type NotificationHandler struct {
	dispatcher notify.Dispatcher
}

// ActionType returns the action type.
func (h *NotificationHandler) ActionType() domain.ActionType { return domain.ActionSendNotification }

// Execute dispatches the notification. Notifications do not require
// an acting campaign.
func (h *NotificationHandler) Execute(ctx context.Context, orgID uuid.UUID, campaignID string, params domain.ActionParams) (map[string]any, error) {
	p, ok := params.(domain.NotificationParams)
	if !ok {
		return nil, fmt.Errorf("unexpected params type %T for send_notification", params)
	}
	if p.Title == "" {
		return nil, errors.New("notification title is required")
	}

	err := h.dispatcher.Dispatch(ctx, notify.Notification{
		OrganizationID: orgID,
		Title:          p.Title,
		Message:        p.Message,
		Priority:       p.Priority,
	})
	if err != nil {
		return nil, err
	}
	return map[string]any{"delivered": true}, nil
}

// AIOptimizeHandler handles ai_optimize actions. A successful run
// also records a pending AIOptimization so the recommendation shows
// up in the optimization store.
type AIOptimizeHandler struct {
	optimizer     ai.Service
	optimizations domain.OptimizationRepository
	logger        *slog.Logger
}

// ActionType returns the action type.
func (h *AIOptimizeHandler) ActionType() domain.ActionType { return domain.ActionAIOptimize }

// Execute requests an optimization run.
func (h *AIOptimizeHandler) Execute(ctx context.Context, orgID uuid.UUID, campaignID string, params domain.ActionParams) (map[string]any, error) {
	if campaignID == "" {
		return nil, ErrNoCampaign
	}
	p, _ := params.(domain.AIOptimizeParams)
	kind := p.OptimizationType
	if kind == "" {
		kind = "general"
	}

	optimizationID, err := h.optimizer.Optimize(ctx, campaignID, kind)
	if err != nil {
		return nil, err
	}

	if h.optimizations != nil {
		record := domain.NewAIOptimization(orgID, campaignID, kind,
			fmt.Sprintf("optimization %s requested", optimizationID), 0)
		if err := h.optimizations.Create(ctx, record); err != nil && h.logger != nil {
			h.logger.Error("failed to record optimization",
				"optimization_id", optimizationID,
				"error", err,
			)
		}
	}

	return map[string]any{"campaign_id": campaignID, "optimization_id": optimizationID}, nil
}
