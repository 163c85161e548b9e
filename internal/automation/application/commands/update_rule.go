package commands

import (
	"context"
	"errors"

	"github.com/adspro/autopilot/internal/automation/domain"
	"github.com/google/uuid"
)

// UpdateRuleCommand applies a partial update to a rule.
type UpdateRuleCommand struct {
	RuleID uuid.UUID
	Patch  domain.RulePatch
}

// UpdateRuleHandler handles the UpdateRuleCommand.
type UpdateRuleHandler struct {
	ruleRepo domain.RuleRepository
}

// NewUpdateRuleHandler creates a new UpdateRuleHandler.
func NewUpdateRuleHandler(ruleRepo domain.RuleRepository) *UpdateRuleHandler {
	return &UpdateRuleHandler{ruleRepo: ruleRepo}
}

// Handle shallow-merges the patch and refreshes the updated
// timestamp. An unknown rule id is not an error; it reports false.
func (h *UpdateRuleHandler) Handle(ctx context.Context, cmd UpdateRuleCommand) (bool, error) {
	rule, err := h.ruleRepo.GetByID(ctx, cmd.RuleID)
	if err != nil {
		if errors.Is(err, domain.ErrRuleNotFound) {
			return false, nil
		}
		return false, err
	}

	rule.Apply(cmd.Patch)
	if err := h.ruleRepo.Update(ctx, rule); err != nil {
		return false, err
	}
	return true, nil
}
