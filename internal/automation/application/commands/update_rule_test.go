package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/adspro/autopilot/internal/automation/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateRuleHandler_Handle(t *testing.T) {
	t.Run("applies patch and persists", func(t *testing.T) {
		repo := new(mockRuleRepo)
		handler := NewUpdateRuleHandler(repo)

		rule := domain.NewAutomationRule(uuid.New(), "Old name", domain.RuleTypeCustom,
			domain.Trigger{Type: domain.TriggerTypeManual}, nil)

		repo.On("GetByID", mock.Anything, rule.ID).Return(rule, nil)
		repo.On("Update", mock.Anything, rule).Return(nil)

		newName := "New name"
		status := domain.RuleStatusPaused
		ok, err := handler.Handle(context.Background(), UpdateRuleCommand{
			RuleID: rule.ID,
			Patch:  domain.RulePatch{Name: &newName, Status: &status},
		})

		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "New name", rule.Name)
		assert.Equal(t, domain.RuleStatusPaused, rule.Status)
		assert.Equal(t, domain.TriggerTypeManual, rule.Trigger.Type, "unpatched fields untouched")
		repo.AssertExpectations(t)
	})

	t.Run("unknown rule reports false without error", func(t *testing.T) {
		repo := new(mockRuleRepo)
		handler := NewUpdateRuleHandler(repo)

		ruleID := uuid.New()
		repo.On("GetByID", mock.Anything, ruleID).Return(nil, domain.ErrRuleNotFound)

		ok, err := handler.Handle(context.Background(), UpdateRuleCommand{RuleID: ruleID})

		require.NoError(t, err)
		assert.False(t, ok)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("lookup error propagates", func(t *testing.T) {
		repo := new(mockRuleRepo)
		handler := NewUpdateRuleHandler(repo)

		ruleID := uuid.New()
		repo.On("GetByID", mock.Anything, ruleID).Return(nil, errors.New("database unavailable"))

		ok, err := handler.Handle(context.Background(), UpdateRuleCommand{RuleID: ruleID})

		assert.Error(t, err)
		assert.False(t, ok)
	})

	t.Run("update error propagates", func(t *testing.T) {
		repo := new(mockRuleRepo)
		handler := NewUpdateRuleHandler(repo)

		rule := domain.NewAutomationRule(uuid.New(), "Rule", domain.RuleTypeCustom,
			domain.Trigger{Type: domain.TriggerTypeManual}, nil)

		repo.On("GetByID", mock.Anything, rule.ID).Return(rule, nil)
		repo.On("Update", mock.Anything, rule).Return(errors.New("write failed"))

		ok, err := handler.Handle(context.Background(), UpdateRuleCommand{RuleID: rule.ID})

		assert.Error(t, err)
		assert.False(t, ok)
	})
}
