package queries

import (
	"context"
	"errors"
	"time"

	"github.com/adspro/autopilot/internal/automation/domain"
	"github.com/google/uuid"
)

// statsSampleLimit caps how many recent executions the aggregate is
// computed over.
const statsSampleLimit = 100

// recentExecutionCount is how many executions the stats payload
// carries verbatim.
const recentExecutionCount = 10

// StatsQuery computes automation statistics for an organization.
type StatsQuery struct {
	OrganizationID uuid.UUID
}

// AutomationStats is a derived snapshot, computed fresh on each call.
type AutomationStats struct {
	TotalRules           int64
	ActiveRules          int64
	TotalExecutions      int
	SuccessRate          float64 // percent, over the sampled executions
	AverageExecutionTime time.Duration
	RecentExecutions     []*domain.RuleExecution
}

// StatsHandler handles StatsQuery.
type StatsHandler struct {
	ruleRepo      domain.RuleRepository
	executionRepo domain.ExecutionRepository
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(ruleRepo domain.RuleRepository, executionRepo domain.ExecutionRepository) *StatsHandler {
	return &StatsHandler{ruleRepo: ruleRepo, executionRepo: executionRepo}
}

// Handle computes the stats over the most recent executions (at most
// 100). The success rate is successful/total*100 and 0 when there are
// no executions; the average duration is an unweighted mean over the
// sample, unlike the per-rule two-point bookkeeping average.
func (h *StatsHandler) Handle(ctx context.Context, q StatsQuery) (*AutomationStats, error) {
	if q.OrganizationID == uuid.Nil {
		return nil, errors.New("organization_id is required")
	}

	totalRules, err := h.ruleRepo.Count(ctx, q.OrganizationID)
	if err != nil {
		return nil, err
	}
	activeRules, err := h.ruleRepo.CountByStatus(ctx, q.OrganizationID, domain.RuleStatusActive)
	if err != nil {
		return nil, err
	}

	executions, err := h.executionRepo.List(ctx, domain.ExecutionFilter{
		OrganizationID: q.OrganizationID,
		Limit:          statsSampleLimit,
	})
	if err != nil {
		return nil, err
	}

	stats := &AutomationStats{
		TotalRules:      totalRules,
		ActiveRules:     activeRules,
		TotalExecutions: len(executions),
	}

	if len(executions) > 0 {
		var successful int
		var totalDuration time.Duration
		for _, ex := range executions {
			if ex.Status == domain.ExecutionStatusSuccess {
				successful++
			}
			totalDuration += ex.Duration
		}
		stats.SuccessRate = float64(successful) / float64(len(executions)) * 100
		stats.AverageExecutionTime = totalDuration / time.Duration(len(executions))
	}

	recent := executions
	if len(recent) > recentExecutionCount {
		recent = recent[:recentExecutionCount]
	}
	stats.RecentExecutions = recent

	return stats, nil
}
