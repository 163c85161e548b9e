package queries

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/adspro/autopilot/internal/automation/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func statsExecution(orgID uuid.UUID, status domain.ExecutionStatus, duration time.Duration) *domain.RuleExecution {
	return &domain.RuleExecution{
		ID:             uuid.New(),
		RuleID:         uuid.New(),
		OrganizationID: orgID,
		Status:         status,
		Duration:       duration,
	}
}

func TestStatsHandler_Handle(t *testing.T) {
	orgID := uuid.New()

	t.Run("computes rates over the sample", func(t *testing.T) {
		ruleRepo := new(mockRuleRepo)
		executionRepo := new(mockExecutionRepo)
		handler := NewStatsHandler(ruleRepo, executionRepo)

		executions := []*domain.RuleExecution{
			statsExecution(orgID, domain.ExecutionStatusSuccess, 100*time.Millisecond),
			statsExecution(orgID, domain.ExecutionStatusSuccess, 200*time.Millisecond),
			statsExecution(orgID, domain.ExecutionStatusFailed, 300*time.Millisecond),
			statsExecution(orgID, domain.ExecutionStatusPartial, 400*time.Millisecond),
		}

		ruleRepo.On("Count", mock.Anything, orgID).Return(int64(5), nil)
		ruleRepo.On("CountByStatus", mock.Anything, orgID, domain.RuleStatusActive).Return(int64(3), nil)
		executionRepo.On("List", mock.Anything, domain.ExecutionFilter{
			OrganizationID: orgID,
			Limit:          100,
		}).Return(executions, nil)

		stats, err := handler.Handle(context.Background(), StatsQuery{OrganizationID: orgID})

		require.NoError(t, err)
		assert.Equal(t, int64(5), stats.TotalRules)
		assert.Equal(t, int64(3), stats.ActiveRules)
		assert.Equal(t, 4, stats.TotalExecutions)
		// Only fully successful executions count toward the rate.
		assert.InDelta(t, 50.0, stats.SuccessRate, 0.001)
		assert.Equal(t, 250*time.Millisecond, stats.AverageExecutionTime)
		assert.Equal(t, executions, stats.RecentExecutions)
	})

	t.Run("zero executions", func(t *testing.T) {
		ruleRepo := new(mockRuleRepo)
		executionRepo := new(mockExecutionRepo)
		handler := NewStatsHandler(ruleRepo, executionRepo)

		ruleRepo.On("Count", mock.Anything, orgID).Return(int64(2), nil)
		ruleRepo.On("CountByStatus", mock.Anything, orgID, domain.RuleStatusActive).Return(int64(0), nil)
		executionRepo.On("List", mock.Anything, mock.AnythingOfType("domain.ExecutionFilter")).
			Return([]*domain.RuleExecution{}, nil)

		stats, err := handler.Handle(context.Background(), StatsQuery{OrganizationID: orgID})

		require.NoError(t, err)
		assert.Equal(t, 0, stats.TotalExecutions)
		assert.Zero(t, stats.SuccessRate, "no executions yields rate 0, not NaN")
		assert.Zero(t, stats.AverageExecutionTime)
		assert.Empty(t, stats.RecentExecutions)
	})

	t.Run("recent list caps at ten", func(t *testing.T) {
		ruleRepo := new(mockRuleRepo)
		executionRepo := new(mockExecutionRepo)
		handler := NewStatsHandler(ruleRepo, executionRepo)

		executions := make([]*domain.RuleExecution, 30)
		for i := range executions {
			executions[i] = statsExecution(orgID, domain.ExecutionStatusSuccess, time.Millisecond)
		}

		ruleRepo.On("Count", mock.Anything, orgID).Return(int64(1), nil)
		ruleRepo.On("CountByStatus", mock.Anything, orgID, domain.RuleStatusActive).Return(int64(1), nil)
		executionRepo.On("List", mock.Anything, mock.AnythingOfType("domain.ExecutionFilter")).
			Return(executions, nil)

		stats, err := handler.Handle(context.Background(), StatsQuery{OrganizationID: orgID})

		require.NoError(t, err)
		assert.Equal(t, 30, stats.TotalExecutions)
		require.Len(t, stats.RecentExecutions, 10)
		// Newest-first ordering comes from the repository; the cap
		// keeps the head of the list.
		assert.Equal(t, executions[0], stats.RecentExecutions[0])
	})

	t.Run("missing organization_id", func(t *testing.T) {
		handler := NewStatsHandler(new(mockRuleRepo), new(mockExecutionRepo))

		_, err := handler.Handle(context.Background(), StatsQuery{})
		assert.Error(t, err)
	})

	t.Run("rule count error propagates", func(t *testing.T) {
		ruleRepo := new(mockRuleRepo)
		executionRepo := new(mockExecutionRepo)
		handler := NewStatsHandler(ruleRepo, executionRepo)

		ruleRepo.On("Count", mock.Anything, orgID).Return(int64(0), errors.New("database unavailable"))

		_, err := handler.Handle(context.Background(), StatsQuery{OrganizationID: orgID})
		assert.Error(t, err)
	})
}
