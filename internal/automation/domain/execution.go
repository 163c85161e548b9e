package domain

import (
	"time"

	"github.com/google/uuid"
)

// TriggerData is the snapshot of data that accompanied a rule firing.
// Every action of the execution observes the same snapshot.
type TriggerData map[string]any

// CampaignID returns the acting campaign id, if present.
func (d TriggerData) CampaignID() string {
	s, _ := d.String("campaign_id")
	return s
}

// String returns a string field from the snapshot.
func (d TriggerData) String(key string) (string, bool) {
	v, ok := d[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Float returns a numeric field from the snapshot.
func (d TriggerData) Float(key string) (float64, bool) {
	v, ok := d[key]
	if !ok {
		return 0, false
	}
	return toFloat(v)
}

// ExecutionStatus represents the overall outcome of a rule execution.
type ExecutionStatus string

const (
	ExecutionStatusPending ExecutionStatus = "pending"
	ExecutionStatusSuccess ExecutionStatus = "success"
	ExecutionStatusFailed  ExecutionStatus = "failed"
	ExecutionStatusPartial ExecutionStatus = "partial"
	ExecutionStatusSkipped ExecutionStatus = "skipped"
)

// ActionStatus represents the outcome of one action within an execution.
type ActionStatus string

const (
	ActionStatusSuccess ActionStatus = "success"
	ActionStatusFailed  ActionStatus = "failed"
	ActionStatusSkipped ActionStatus = "skipped"
)

// ActionResult records the outcome of a single dispatched action.
type ActionResult struct {
	ActionType ActionType     `json:"action_type"`
	Status     ActionStatus   `json:"status"`
	Result     map[string]any `json:"result,omitempty"`
	Error      string         `json:"error,omitempty"`
}

// RuleExecution is the immutable record of one firing of a rule. It
// is appended to while the actions run and never mutated after
// finalization.
type RuleExecution struct {
	ID             uuid.UUID
	RuleID         uuid.UUID
	OrganizationID uuid.UUID

	TriggerType TriggerType
	TriggerData TriggerData

	Status  ExecutionStatus
	Actions []ActionResult

	AffectedCampaignIDs []string
	SkipReason          string

	StartedAt   time.Time
	CompletedAt *time.Time
	Duration    time.Duration
}

// NewRuleExecution opens an execution record for a firing rule.
func NewRuleExecution(rule *AutomationRule, trigger TriggerData) *RuleExecution {
	return &RuleExecution{
		ID:             uuid.New(),
		RuleID:         rule.ID,
		OrganizationID: rule.OrganizationID,
		TriggerType:    rule.Trigger.Type,
		TriggerData:    trigger,
		Status:         ExecutionStatusPending,
		Actions:        []ActionResult{},
		StartedAt:      time.Now(),
	}
}

// Append records one action outcome, in dispatch order.
func (e *RuleExecution) Append(result ActionResult) {
	e.Actions = append(e.Actions, result)
}

// RecordAffectedCampaign notes a campaign touched by the execution.
func (e *RuleExecution) RecordAffectedCampaign(campaignID string) {
	if campaignID == "" || containsString(e.AffectedCampaignIDs, campaignID) {
		return
	}
	e.AffectedCampaignIDs = append(e.AffectedCampaignIDs, campaignID)
}

// Finalize closes the record with the given overall status.
func (e *RuleExecution) Finalize(status ExecutionStatus) {
	now := time.Now()
	e.Status = status
	e.CompletedAt = &now
	e.Duration = now.Sub(e.StartedAt)
}

// FailOrchestration marks the whole execution failed because of an
// error outside any single action's scope, annotating it with a
// synthetic notification entry carrying the reason.
func (e *RuleExecution) FailOrchestration(reason string) {
	e.Append(ActionResult{
		ActionType: ActionSendNotification,
		Status:     ActionStatusFailed,
		Error:      reason,
	})
	e.Finalize(ExecutionStatusFailed)
}

// Skip finalizes the execution without running any action.
func (e *RuleExecution) Skip(reason string) {
	e.SkipReason = reason
	e.Finalize(ExecutionStatusSkipped)
}
