// Package services contains the automation engine's execution services.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/adspro/autopilot/internal/automation/domain"
	"github.com/adspro/autopilot/internal/observability"
	"github.com/google/uuid"
)

// ActionHandler handles execution of a specific action type.
type ActionHandler interface {
	// ActionType returns the action type this handler supports.
	ActionType() domain.ActionType

	// Execute performs the action against the acting campaign. The
	// engine's failure handling depends only on whether the call
	// returns an error, not on the result shape.
	Execute(ctx context.Context, orgID uuid.UUID, campaignID string, params domain.ActionParams) (map[string]any, error)
}

// Executor runs a rule's action list against triggering data and
// maintains the execution history and rule bookkeeping.
type Executor struct {
	rules      domain.RuleRepository
	executions domain.ExecutionRepository
	handlers   map[domain.ActionType]ActionHandler
	logger     *slog.Logger
	metrics    *observability.EngineMetrics
}

// NewExecutor creates an executor. Metrics may be nil.
func NewExecutor(
	rules domain.RuleRepository,
	executions domain.ExecutionRepository,
	logger *slog.Logger,
	metrics *observability.EngineMetrics,
) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{
		rules:      rules,
		executions: executions,
		handlers:   make(map[domain.ActionType]ActionHandler),
		logger:     logger,
		metrics:    metrics,
	}
}

// RegisterHandler registers an action handler.
func (e *Executor) RegisterHandler(handler ActionHandler) {
	e.handlers[handler.ActionType()] = handler
}

// Execute fires the rule against the trigger data.
//
// An unknown rule id is the one hard failure: it returns
// domain.ErrRuleNotFound and no execution record is created. Every
// other failure mode is absorbed into the returned execution's
// status and per-action outcomes; callers must not take a nil error
// to mean full success.
func (e *Executor) Execute(ctx context.Context, ruleID uuid.UUID, trigger domain.TriggerData) (*domain.RuleExecution, error) {
	rule, err := e.rules.GetByID(ctx, ruleID)
	if err != nil {
		return nil, err
	}
	if trigger == nil {
		trigger = domain.TriggerData{}
	}

	execution := domain.NewRuleExecution(rule, trigger)

	if !rule.Matches(trigger) {
		execution.Skip("rule conditions do not match trigger data")
		e.logger.Debug("rule execution skipped",
			"rule_id", rule.ID,
			"reason", execution.SkipReason,
		)
	} else {
		e.runActions(ctx, rule, execution, trigger)
	}

	if err := e.executions.Create(ctx, execution); err != nil {
		return nil, fmt.Errorf("store execution %s: %w", execution.ID, err)
	}

	rule.RecordExecution(execution.Status, execution.Duration, *execution.CompletedAt)
	if err := e.rules.Update(ctx, rule); err != nil {
		e.logger.Error("failed to update rule metadata",
			"rule_id", rule.ID,
			"error", err,
		)
	}

	if e.metrics != nil {
		e.metrics.ExecutionsTotal.WithLabelValues(string(execution.Status)).Inc()
		e.metrics.ExecutionDuration.Observe(execution.Duration.Seconds())
	}

	e.logger.Info("rule executed",
		"rule_id", rule.ID,
		"execution_id", execution.ID,
		"status", execution.Status,
		"actions", len(execution.Actions),
		"duration_ms", execution.Duration.Milliseconds(),
	)
	return execution, nil
}

// runActions dispatches the rule's actions strictly in declared
// order. Actions are independent: each observes only the trigger
// data, never the results of earlier actions, and a failure never
// short-circuits the remainder.
func (e *Executor) runActions(ctx context.Context, rule *domain.AutomationRule, execution *domain.RuleExecution, trigger domain.TriggerData) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("rule execution aborted",
				"rule_id", rule.ID,
				"execution_id", execution.ID,
				"panic", r,
			)
			execution.FailOrchestration(fmt.Sprintf("rule execution aborted: %v", r))
		}
	}()

	campaignID := trigger.CampaignID()
	partial := false

	for _, action := range rule.Actions {
		outcome := e.dispatch(ctx, rule.OrganizationID, campaignID, action, trigger)
		execution.Append(outcome)

		switch outcome.Status {
		case domain.ActionStatusFailed:
			partial = true
		case domain.ActionStatusSuccess:
			execution.RecordAffectedCampaign(campaignID)
		}
		if e.metrics != nil {
			e.metrics.ActionOutcomesTotal.WithLabelValues(string(action.Type), string(outcome.Status)).Inc()
		}
	}

	if partial {
		execution.Finalize(domain.ExecutionStatusPartial)
	} else {
		execution.Finalize(domain.ExecutionStatusSuccess)
	}
}

func (e *Executor) dispatch(ctx context.Context, orgID uuid.UUID, campaignID string, action domain.Action, trigger domain.TriggerData) domain.ActionResult {
	for _, cond := range action.Conditions {
		if !cond.Holds(trigger) {
			return domain.ActionResult{
				ActionType: action.Type,
				Status:     domain.ActionStatusSkipped,
				Error:      fmt.Sprintf("condition not met: %s %s %v", cond.Field, cond.Operator, cond.Value),
			}
		}
	}

	handler, ok := e.handlers[action.Type]
	if !ok {
		e.logger.Warn("no handler for action type", "action_type", action.Type)
		return domain.ActionResult{
			ActionType: action.Type,
			Status:     domain.ActionStatusSkipped,
			Error:      fmt.Sprintf("no handler registered for action type: %s", action.Type),
		}
	}

	result, err := handler.Execute(ctx, orgID, campaignID, action.Params)
	if err != nil {
		e.logger.Error("action execution failed",
			"action_type", action.Type,
			"campaign_id", campaignID,
			"error", err,
		)
		return domain.ActionResult{
			ActionType: action.Type,
			Status:     domain.ActionStatusFailed,
			Error:      err.Error(),
		}
	}

	return domain.ActionResult{
		ActionType: action.Type,
		Status:     domain.ActionStatusSuccess,
		Result:     result,
	}
}
