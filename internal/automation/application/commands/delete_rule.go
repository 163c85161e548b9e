package commands

import (
	"context"

	"github.com/adspro/autopilot/internal/automation/domain"
	"github.com/google/uuid"
)

// DeleteRuleCommand removes a rule.
type DeleteRuleCommand struct {
	RuleID uuid.UUID
}

// DeleteRuleHandler handles the DeleteRuleCommand.
type DeleteRuleHandler struct {
	ruleRepo domain.RuleRepository
}

// NewDeleteRuleHandler creates a new DeleteRuleHandler.
func NewDeleteRuleHandler(ruleRepo domain.RuleRepository) *DeleteRuleHandler {
	return &DeleteRuleHandler{ruleRepo: ruleRepo}
}

// Handle removes the rule and reports whether it existed.
func (h *DeleteRuleHandler) Handle(ctx context.Context, cmd DeleteRuleCommand) (bool, error) {
	return h.ruleRepo.Delete(ctx, cmd.RuleID)
}
