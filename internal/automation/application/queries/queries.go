// Package queries contains the read-side handlers of the automation
// application layer.
package queries

import (
	"context"
	"errors"

	"github.com/adspro/autopilot/internal/automation/domain"
	"github.com/google/uuid"
)

// GetRuleQuery fetches a single rule.
type GetRuleQuery struct {
	RuleID uuid.UUID
}

// GetRuleHandler handles GetRuleQuery.
type GetRuleHandler struct {
	ruleRepo domain.RuleRepository
}

// NewGetRuleHandler creates a new GetRuleHandler.
func NewGetRuleHandler(ruleRepo domain.RuleRepository) *GetRuleHandler {
	return &GetRuleHandler{ruleRepo: ruleRepo}
}

// Handle fetches the rule; unknown ids return domain.ErrRuleNotFound.
func (h *GetRuleHandler) Handle(ctx context.Context, q GetRuleQuery) (*domain.AutomationRule, error) {
	return h.ruleRepo.GetByID(ctx, q.RuleID)
}

// ListRulesQuery lists an organization's rules, optionally narrowed
// by type and/or status.
type ListRulesQuery struct {
	OrganizationID uuid.UUID
	Type           *domain.RuleType
	Status         *domain.RuleStatus
}

// Validate checks the query.
func (q ListRulesQuery) Validate() error {
	if q.OrganizationID == uuid.Nil {
		return errors.New("organization_id is required")
	}
	return nil
}

// ListRulesHandler handles ListRulesQuery.
type ListRulesHandler struct {
	ruleRepo domain.RuleRepository
}

// NewListRulesHandler creates a new ListRulesHandler.
func NewListRulesHandler(ruleRepo domain.RuleRepository) *ListRulesHandler {
	return &ListRulesHandler{ruleRepo: ruleRepo}
}

// Handle lists rules newest-created-first.
func (h *ListRulesHandler) Handle(ctx context.Context, q ListRulesQuery) ([]*domain.AutomationRule, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return h.ruleRepo.List(ctx, domain.RuleFilter{
		OrganizationID: q.OrganizationID,
		Type:           q.Type,
		Status:         q.Status,
	})
}

// ListExecutionsQuery lists an organization's executions.
type ListExecutionsQuery struct {
	OrganizationID uuid.UUID
	RuleID         *uuid.UUID
	Status         *domain.ExecutionStatus
	Limit          int
}

// Validate checks the query.
func (q ListExecutionsQuery) Validate() error {
	if q.OrganizationID == uuid.Nil {
		return errors.New("organization_id is required")
	}
	if q.Limit < 0 {
		return errors.New("limit must not be negative")
	}
	return nil
}

// ListExecutionsHandler handles ListExecutionsQuery.
type ListExecutionsHandler struct {
	executionRepo domain.ExecutionRepository
}

// NewListExecutionsHandler creates a new ListExecutionsHandler.
func NewListExecutionsHandler(executionRepo domain.ExecutionRepository) *ListExecutionsHandler {
	return &ListExecutionsHandler{executionRepo: executionRepo}
}

// Handle lists executions newest-first, capped at the query limit
// (default 100).
func (h *ListExecutionsHandler) Handle(ctx context.Context, q ListExecutionsQuery) ([]*domain.RuleExecution, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return h.executionRepo.List(ctx, domain.ExecutionFilter{
		OrganizationID: q.OrganizationID,
		RuleID:         q.RuleID,
		Status:         q.Status,
		Limit:          q.Limit,
	})
}

// ListOptimizationsQuery lists AI optimization records.
type ListOptimizationsQuery struct {
	OrganizationID uuid.UUID
	CampaignID     string
	Status         *domain.OptimizationStatus
}

// ListOptimizationsHandler handles ListOptimizationsQuery.
type ListOptimizationsHandler struct {
	repo domain.OptimizationRepository
}

// NewListOptimizationsHandler creates a new ListOptimizationsHandler.
func NewListOptimizationsHandler(repo domain.OptimizationRepository) *ListOptimizationsHandler {
	return &ListOptimizationsHandler{repo: repo}
}

// Handle lists matching optimization records.
func (h *ListOptimizationsHandler) Handle(ctx context.Context, q ListOptimizationsQuery) ([]*domain.AIOptimization, error) {
	if q.OrganizationID == uuid.Nil {
		return nil, errors.New("organization_id is required")
	}
	return h.repo.List(ctx, domain.OptimizationFilter{
		OrganizationID: q.OrganizationID,
		CampaignID:     q.CampaignID,
		Status:         q.Status,
	})
}
