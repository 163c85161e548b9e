// Package application contains the automation application layer.
package application

import (
	"context"

	"github.com/adspro/autopilot/internal/automation/application/commands"
	"github.com/adspro/autopilot/internal/automation/application/queries"
	"github.com/adspro/autopilot/internal/automation/application/services"
	"github.com/adspro/autopilot/internal/automation/domain"
	"github.com/adspro/autopilot/internal/observability"
	"github.com/google/uuid"
)

// Service is the facade over the automation engine's operations. It
// is constructed explicitly by the composition root; there is no
// package-level instance.
type Service struct {
	createRuleHandler *commands.CreateRuleHandler
	updateRuleHandler *commands.UpdateRuleHandler
	deleteRuleHandler *commands.DeleteRuleHandler
	optimization      *commands.OptimizationHandler

	getRuleHandler           *queries.GetRuleHandler
	listRulesHandler         *queries.ListRulesHandler
	listExecutionsHandler    *queries.ListExecutionsHandler
	listOptimizationsHandler *queries.ListOptimizationsHandler
	statsHandler             *queries.StatsHandler

	executor *services.Executor
	queue    services.Queue
	metrics  *observability.EngineMetrics
}

// NewService creates the automation service. Queue and metrics may be
// nil when the caller does not use queued execution.
func NewService(
	ruleRepo domain.RuleRepository,
	executionRepo domain.ExecutionRepository,
	optimizationRepo domain.OptimizationRepository,
	executor *services.Executor,
	queue services.Queue,
	metrics *observability.EngineMetrics,
) *Service {
	return &Service{
		createRuleHandler: commands.NewCreateRuleHandler(ruleRepo),
		updateRuleHandler: commands.NewUpdateRuleHandler(ruleRepo),
		deleteRuleHandler: commands.NewDeleteRuleHandler(ruleRepo),
		optimization:      commands.NewOptimizationHandler(optimizationRepo),

		getRuleHandler:           queries.NewGetRuleHandler(ruleRepo),
		listRulesHandler:         queries.NewListRulesHandler(ruleRepo),
		listExecutionsHandler:    queries.NewListExecutionsHandler(executionRepo),
		listOptimizationsHandler: queries.NewListOptimizationsHandler(optimizationRepo),
		statsHandler:             queries.NewStatsHandler(ruleRepo, executionRepo),

		executor: executor,
		queue:    queue,
		metrics:  metrics,
	}
}

// CreateRule creates a new automation rule.
func (s *Service) CreateRule(ctx context.Context, cmd commands.CreateRuleCommand) (*domain.AutomationRule, error) {
	return s.createRuleHandler.Handle(ctx, cmd)
}

// UpdateRule applies a partial update; false when the id is unknown.
func (s *Service) UpdateRule(ctx context.Context, cmd commands.UpdateRuleCommand) (bool, error) {
	return s.updateRuleHandler.Handle(ctx, cmd)
}

// DeleteRule removes a rule and reports whether it existed.
func (s *Service) DeleteRule(ctx context.Context, cmd commands.DeleteRuleCommand) (bool, error) {
	return s.deleteRuleHandler.Handle(ctx, cmd)
}

// GetRule retrieves a single rule.
func (s *Service) GetRule(ctx context.Context, q queries.GetRuleQuery) (*domain.AutomationRule, error) {
	return s.getRuleHandler.Handle(ctx, q)
}

// ListRules lists an organization's rules.
func (s *Service) ListRules(ctx context.Context, q queries.ListRulesQuery) ([]*domain.AutomationRule, error) {
	return s.listRulesHandler.Handle(ctx, q)
}

// Execute fires a rule synchronously against the trigger data.
func (s *Service) Execute(ctx context.Context, ruleID uuid.UUID, trigger domain.TriggerData) (*domain.RuleExecution, error) {
	return s.executor.Execute(ctx, ruleID, trigger)
}

// EnqueueExecution appends the rule to the background execution queue.
func (s *Service) EnqueueExecution(ctx context.Context, ruleID uuid.UUID) error {
	if err := s.queue.Enqueue(ctx, ruleID); err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.QueuedTotal.Inc()
		if depth, err := s.queue.Len(ctx); err == nil {
			s.metrics.QueueDepth.Set(float64(depth))
		}
	}
	return nil
}

// ListExecutions lists executions for an organization.
func (s *Service) ListExecutions(ctx context.Context, q queries.ListExecutionsQuery) ([]*domain.RuleExecution, error) {
	return s.listExecutionsHandler.Handle(ctx, q)
}

// GetStats computes automation statistics for an organization.
func (s *Service) GetStats(ctx context.Context, q queries.StatsQuery) (*queries.AutomationStats, error) {
	return s.statsHandler.Handle(ctx, q)
}

// CreateOptimization records an AI recommendation.
func (s *Service) CreateOptimization(ctx context.Context, cmd commands.CreateOptimizationCommand) (*domain.AIOptimization, error) {
	return s.optimization.Create(ctx, cmd)
}

// UpdateOptimization transitions a recommendation's status; false
// when the id is unknown.
func (s *Service) UpdateOptimization(ctx context.Context, cmd commands.UpdateOptimizationCommand) (bool, error) {
	return s.optimization.Update(ctx, cmd)
}

// ListOptimizations lists AI recommendations.
func (s *Service) ListOptimizations(ctx context.Context, q queries.ListOptimizationsQuery) ([]*domain.AIOptimization, error) {
	return s.listOptimizationsHandler.Handle(ctx, q)
}
