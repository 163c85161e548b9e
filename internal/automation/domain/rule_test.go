package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRule(t *testing.T) *AutomationRule {
	t.Helper()
	return NewAutomationRule(uuid.New(), "Test Rule", RuleTypePerformanceOptimization,
		Trigger{Type: TriggerTypePerformanceThreshold, Metric: "roas", Operator: "lt", Threshold: 1.5},
		[]Action{{Type: ActionPauseCampaign, Params: PauseCampaignParams{Reason: "poor performance"}}},
	)
}

func TestNewAutomationRule(t *testing.T) {
	orgID := uuid.New()
	rule := NewAutomationRule(orgID, "Pause burners", RuleTypeBudgetOptimization,
		Trigger{Type: TriggerTypeManual}, nil)

	assert.NotEqual(t, uuid.Nil, rule.ID)
	assert.Equal(t, orgID, rule.OrganizationID)
	assert.Equal(t, "Pause burners", rule.Name)
	assert.Equal(t, RuleTypeBudgetOptimization, rule.Type)
	assert.Equal(t, RuleStatusActive, rule.Status)
	assert.Zero(t, rule.Metadata.ExecutionCount)
	assert.Nil(t, rule.Metadata.LastExecuted)
	assert.False(t, rule.CreatedAt.IsZero())
}

func TestAutomationRule_Validate(t *testing.T) {
	t.Run("complete rule passes", func(t *testing.T) {
		require.NoError(t, testRule(t).Validate())
	})

	t.Run("missing name", func(t *testing.T) {
		rule := testRule(t)
		rule.Name = ""
		err := rule.Validate()
		require.ErrorIs(t, err, ErrInvalidRule)
		assert.Contains(t, err.Error(), "name is required")
	})

	t.Run("missing trigger type", func(t *testing.T) {
		rule := testRule(t)
		rule.Trigger = Trigger{}
		require.ErrorIs(t, rule.Validate(), ErrInvalidRule)
	})

	t.Run("no actions", func(t *testing.T) {
		rule := testRule(t)
		rule.Actions = nil
		require.ErrorIs(t, rule.Validate(), ErrInvalidRule)
	})

	t.Run("unknown action type", func(t *testing.T) {
		rule := testRule(t)
		rule.Actions = []Action{{Type: "teleport_campaign"}}
		err := rule.Validate()
		require.ErrorIs(t, err, ErrInvalidRule)
		assert.Contains(t, err.Error(), "teleport_campaign")
	})

	t.Run("store accepts what Validate rejects", func(t *testing.T) {
		// Creation itself never validates completeness.
		rule := NewAutomationRule(uuid.New(), "incomplete", RuleTypeCustom, Trigger{}, nil)
		assert.NotNil(t, rule)
		assert.Error(t, rule.Validate())
	})
}

func TestAutomationRule_Apply(t *testing.T) {
	rule := testRule(t)
	originalTrigger := rule.Trigger
	originalUpdatedAt := rule.UpdatedAt
	time.Sleep(time.Millisecond)

	name := "Renamed"
	status := RuleStatusPaused
	rule.Apply(RulePatch{Name: &name, Status: &status})

	assert.Equal(t, "Renamed", rule.Name)
	assert.Equal(t, RuleStatusPaused, rule.Status)
	// Unpatched fields keep their values.
	assert.Equal(t, originalTrigger, rule.Trigger)
	assert.True(t, rule.UpdatedAt.After(originalUpdatedAt))
}

func TestAutomationRule_PauseActivate(t *testing.T) {
	rule := testRule(t)

	rule.Pause()
	assert.Equal(t, RuleStatusPaused, rule.Status)

	rule.Activate()
	assert.Equal(t, RuleStatusActive, rule.Status)
}

func TestAutomationRule_Matches(t *testing.T) {
	t.Run("no conditions always match", func(t *testing.T) {
		rule := testRule(t)
		assert.True(t, rule.Matches(TriggerData{}))
		assert.True(t, rule.Matches(TriggerData{"campaign_id": "cmp_1"}))
	})

	t.Run("campaign scope", func(t *testing.T) {
		rule := testRule(t)
		rule.Conditions = &RuleConditions{CampaignIDs: []string{"cmp_1", "cmp_2"}}

		assert.True(t, rule.Matches(TriggerData{"campaign_id": "cmp_1"}))
		assert.False(t, rule.Matches(TriggerData{"campaign_id": "cmp_9"}))
		// Absent field does not veto.
		assert.True(t, rule.Matches(TriggerData{}))
	})

	t.Run("budget range", func(t *testing.T) {
		min, max := 100.0, 500.0
		rule := testRule(t)
		rule.Conditions = &RuleConditions{BudgetRange: &FloatRange{Min: &min, Max: &max}}

		assert.True(t, rule.Matches(TriggerData{"budget": 250.0}))
		assert.False(t, rule.Matches(TriggerData{"budget": 50.0}))
		assert.False(t, rule.Matches(TriggerData{"budget": 600.0}))
		assert.True(t, rule.Matches(TriggerData{}))
	})

	t.Run("metric ranges", func(t *testing.T) {
		min := 2.0
		rule := testRule(t)
		rule.Conditions = &RuleConditions{MetricRanges: map[string]FloatRange{
			"roas": {Min: &min},
		}}

		assert.True(t, rule.Matches(TriggerData{"roas": 3.5}))
		assert.False(t, rule.Matches(TriggerData{"roas": 1.0}))
		assert.True(t, rule.Matches(TriggerData{"ctr": 0.01}))
	})
}

func TestAutomationRule_RecordExecution(t *testing.T) {
	t.Run("success and failure counters", func(t *testing.T) {
		rule := testRule(t)
		now := time.Now()

		rule.RecordExecution(ExecutionStatusSuccess, 100*time.Millisecond, now)
		rule.RecordExecution(ExecutionStatusFailed, 100*time.Millisecond, now)

		assert.Equal(t, 2, rule.Metadata.ExecutionCount)
		assert.Equal(t, 1, rule.Metadata.SuccessCount)
		assert.Equal(t, 1, rule.Metadata.FailureCount)
		require.NotNil(t, rule.Metadata.LastExecuted)
		assert.Equal(t, now, *rule.Metadata.LastExecuted)
	})

	t.Run("partial and skipped count executions only", func(t *testing.T) {
		rule := testRule(t)
		now := time.Now()

		rule.RecordExecution(ExecutionStatusPartial, time.Millisecond, now)
		rule.RecordExecution(ExecutionStatusSkipped, time.Millisecond, now)

		assert.Equal(t, 2, rule.Metadata.ExecutionCount)
		assert.Zero(t, rule.Metadata.SuccessCount)
		assert.Zero(t, rule.Metadata.FailureCount)
		assert.LessOrEqual(t,
			rule.Metadata.SuccessCount+rule.Metadata.FailureCount,
			rule.Metadata.ExecutionCount)
	})

	t.Run("two-point average", func(t *testing.T) {
		rule := testRule(t)
		now := time.Now()

		rule.RecordExecution(ExecutionStatusSuccess, 100*time.Millisecond, now)
		assert.Equal(t, 50*time.Millisecond, rule.Metadata.AverageExecutionTime)

		rule.RecordExecution(ExecutionStatusSuccess, 150*time.Millisecond, now)
		assert.Equal(t, 100*time.Millisecond, rule.Metadata.AverageExecutionTime)
	})
}

func TestFloatRange_Contains(t *testing.T) {
	min, max := 1.0, 10.0

	assert.True(t, FloatRange{}.Contains(-99))
	assert.True(t, FloatRange{Min: &min}.Contains(1))
	assert.False(t, FloatRange{Min: &min}.Contains(0.5))
	assert.True(t, FloatRange{Max: &max}.Contains(10))
	assert.False(t, FloatRange{Max: &max}.Contains(10.5))
	assert.True(t, FloatRange{Min: &min, Max: &max}.Contains(5))
}
