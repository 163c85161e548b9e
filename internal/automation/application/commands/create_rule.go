// Package commands contains the write-side handlers of the
// automation application layer.
package commands

import (
	"context"
	"errors"

	"github.com/adspro/autopilot/internal/automation/domain"
	"github.com/google/uuid"
)

// CreateRuleCommand contains the data needed to create an automation rule.
type CreateRuleCommand struct {
	OrganizationID uuid.UUID
	Name           string
	Description    string
	Type           domain.RuleType

	Trigger    domain.Trigger
	Actions    []domain.Action
	Conditions *domain.RuleConditions
	Status     domain.RuleStatus
}

// Validate checks identity fields only. Trigger and action
// completeness is deliberately not enforced here: the store accepts
// incomplete rules and surfaces the gap at execution time. Callers
// that want stricter input checking run domain Validate themselves.
func (c CreateRuleCommand) Validate() error {
	if c.OrganizationID == uuid.Nil {
		return errors.New("organization_id is required")
	}
	if c.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

// CreateRuleHandler handles the CreateRuleCommand.
type CreateRuleHandler struct {
	ruleRepo domain.RuleRepository
}

// NewCreateRuleHandler creates a new CreateRuleHandler.
func NewCreateRuleHandler(ruleRepo domain.RuleRepository) *CreateRuleHandler {
	return &CreateRuleHandler{ruleRepo: ruleRepo}
}

// Handle executes the CreateRuleCommand.
func (h *CreateRuleHandler) Handle(ctx context.Context, cmd CreateRuleCommand) (*domain.AutomationRule, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	ruleType := cmd.Type
	if ruleType == "" {
		ruleType = domain.RuleTypeCustom
	}

	rule := domain.NewAutomationRule(cmd.OrganizationID, cmd.Name, ruleType, cmd.Trigger, cmd.Actions)
	rule.Description = cmd.Description
	rule.Conditions = cmd.Conditions
	if cmd.Status != "" {
		rule.Status = cmd.Status
	}

	if err := h.ruleRepo.Create(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}
