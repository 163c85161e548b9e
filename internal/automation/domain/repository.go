package domain

import (
	"context"

	"github.com/google/uuid"
)

// DefaultExecutionListLimit caps execution listings when the caller
// does not request a limit.
const DefaultExecutionListLimit = 100

// RuleFilter narrows a rule listing. Nil fields match everything.
type RuleFilter struct {
	OrganizationID uuid.UUID
	Type           *RuleType
	Status         *RuleStatus
}

// ExecutionFilter narrows an execution listing. Limit <= 0 means the
// repository default of 100.
type ExecutionFilter struct {
	OrganizationID uuid.UUID
	RuleID         *uuid.UUID
	Status         *ExecutionStatus
	Limit          int
}

// OptimizationFilter narrows an AI optimization listing.
type OptimizationFilter struct {
	OrganizationID uuid.UUID
	CampaignID     string
	Status         *OptimizationStatus
}

// RuleRepository stores automation rules.
type RuleRepository interface {
	Create(ctx context.Context, rule *AutomationRule) error
	Update(ctx context.Context, rule *AutomationRule) error
	// Delete reports whether the rule existed.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	// GetByID returns ErrRuleNotFound when the id is unknown.
	GetByID(ctx context.Context, id uuid.UUID) (*AutomationRule, error)
	// List returns rules newest-created-first.
	List(ctx context.Context, filter RuleFilter) ([]*AutomationRule, error)
	CountByStatus(ctx context.Context, orgID uuid.UUID, status RuleStatus) (int64, error)
	Count(ctx context.Context, orgID uuid.UUID) (int64, error)
}

// ExecutionRepository stores finalized rule executions.
type ExecutionRepository interface {
	Create(ctx context.Context, execution *RuleExecution) error
	// GetByID returns ErrExecutionNotFound when the id is unknown.
	GetByID(ctx context.Context, id uuid.UUID) (*RuleExecution, error)
	// List returns executions newest-first, capped by filter.Limit.
	List(ctx context.Context, filter ExecutionFilter) ([]*RuleExecution, error)
}

// OptimizationRepository stores AI optimization records.
type OptimizationRepository interface {
	Create(ctx context.Context, opt *AIOptimization) error
	Update(ctx context.Context, opt *AIOptimization) error
	// GetByID returns ErrOptimizationNotFound when the id is unknown.
	GetByID(ctx context.Context, id uuid.UUID) (*AIOptimization, error)
	List(ctx context.Context, filter OptimizationFilter) ([]*AIOptimization, error)
}
