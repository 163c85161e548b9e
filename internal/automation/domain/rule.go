// Package domain contains the campaign automation domain model.
package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Common errors for automation rules.
var (
	ErrRuleNotFound         = errors.New("automation rule not found")
	ErrExecutionNotFound    = errors.New("rule execution not found")
	ErrOptimizationNotFound = errors.New("ai optimization not found")
	ErrInvalidRule          = errors.New("invalid automation rule")
)

// RuleType categorizes what a rule optimizes for.
type RuleType string

const (
	RuleTypeBudgetOptimization      RuleType = "budget_optimization"
	RuleTypePerformanceOptimization RuleType = "performance_optimization"
	RuleTypeCreativeRotation        RuleType = "creative_rotation"
	RuleTypeAudienceExpansion       RuleType = "audience_expansion"
	RuleTypeCustom                  RuleType = "custom"
)

// RuleStatus represents the lifecycle status of a rule.
type RuleStatus string

const (
	RuleStatusActive    RuleStatus = "active"
	RuleStatusPaused    RuleStatus = "paused"
	RuleStatusCompleted RuleStatus = "completed"
	RuleStatusFailed    RuleStatus = "failed"
	RuleStatusScheduled RuleStatus = "scheduled"
)

// TriggerType represents the condition category that causes a rule to fire.
type TriggerType string

const (
	TriggerTypePerformanceThreshold TriggerType = "performance_threshold"
	TriggerTypeBudgetThreshold      TriggerType = "budget_threshold"
	TriggerTypeTimeBased            TriggerType = "time_based"
	TriggerTypeManual               TriggerType = "manual"
	TriggerTypeAIRecommendation     TriggerType = "ai_recommendation"
)

// Schedule describes the window of a time-based trigger.
type Schedule struct {
	StartTime  string `json:"start_time"` // HH:MM
	EndTime    string `json:"end_time"`   // HH:MM
	Timezone   string `json:"timezone"`   // IANA name
	DaysOfWeek []int  `json:"days_of_week,omitempty"`
}

// Trigger is the condition payload of a rule, tagged by Type.
// Threshold triggers carry Metric/Operator/Threshold; time-based
// triggers carry Schedule. Manual and AI-recommendation triggers
// carry nothing beyond the type.
type Trigger struct {
	Type      TriggerType `json:"type"`
	Metric    string      `json:"metric,omitempty"`
	Operator  string      `json:"operator,omitempty"` // gt, gte, lt, lte, eq
	Threshold float64     `json:"threshold,omitempty"`
	Schedule  *Schedule   `json:"schedule,omitempty"`
}

// FloatRange bounds a numeric scoping filter.
type FloatRange struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// RuleConditions are optional scoping filters restricting when a rule
// is eligible to fire.
type RuleConditions struct {
	CampaignIDs  []string              `json:"campaign_ids,omitempty"`
	PlatformIDs  []string              `json:"platform_ids,omitempty"`
	BudgetRange  *FloatRange           `json:"budget_range,omitempty"`
	MetricRanges map[string]FloatRange `json:"metric_ranges,omitempty"`
}

// RuleMetadata carries the execution bookkeeping of a rule.
type RuleMetadata struct {
	LastExecuted         *time.Time    `json:"last_executed,omitempty"`
	ExecutionCount       int           `json:"execution_count"`
	SuccessCount         int           `json:"success_count"`
	FailureCount         int           `json:"failure_count"`
	AverageExecutionTime time.Duration `json:"average_execution_time"`
}

// AutomationRule is a named, user-authored automation policy.
type AutomationRule struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	Name           string
	Description    string
	Type           RuleType

	Trigger    Trigger
	Actions    []Action
	Conditions *RuleConditions

	Status   RuleStatus
	Metadata RuleMetadata

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAutomationRule creates a rule with a fresh id and timestamps.
// The store performs no completeness validation: a rule without a
// trigger or actions is storable and will surface the gap when
// executed. Callers that want pre-validation use Validate.
func NewAutomationRule(orgID uuid.UUID, name string, ruleType RuleType, trigger Trigger, actions []Action) *AutomationRule {
	now := time.Now()
	return &AutomationRule{
		ID:             uuid.New(),
		OrganizationID: orgID,
		Name:           name,
		Type:           ruleType,
		Trigger:        trigger,
		Actions:        actions,
		Status:         RuleStatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Validate checks the rule for completeness. The engine does not call
// this on create; it exists for callers that want to reject rules
// that would run vacuously or fail at execution time.
func (r *AutomationRule) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidRule)
	}
	if r.OrganizationID == uuid.Nil {
		return fmt.Errorf("%w: organization id is required", ErrInvalidRule)
	}
	if r.Trigger.Type == "" {
		return fmt.Errorf("%w: trigger type is required", ErrInvalidRule)
	}
	if len(r.Actions) == 0 {
		return fmt.Errorf("%w: at least one action is required", ErrInvalidRule)
	}
	for i, a := range r.Actions {
		if !a.Type.Known() {
			return fmt.Errorf("%w: action %d has unknown type %q", ErrInvalidRule, i, a.Type)
		}
	}
	return nil
}

// RulePatch is a partial update applied with shallow-merge semantics.
// Nil fields are left untouched.
type RulePatch struct {
	Name        *string
	Description *string
	Type        *RuleType
	Trigger     *Trigger
	Actions     *[]Action
	Conditions  *RuleConditions
	Status      *RuleStatus
}

// Apply merges the patch into the rule and refreshes UpdatedAt.
func (r *AutomationRule) Apply(patch RulePatch) {
	if patch.Name != nil {
		r.Name = *patch.Name
	}
	if patch.Description != nil {
		r.Description = *patch.Description
	}
	if patch.Type != nil {
		r.Type = *patch.Type
	}
	if patch.Trigger != nil {
		r.Trigger = *patch.Trigger
	}
	if patch.Actions != nil {
		r.Actions = *patch.Actions
	}
	if patch.Conditions != nil {
		r.Conditions = patch.Conditions
	}
	if patch.Status != nil {
		r.Status = *patch.Status
	}
	r.UpdatedAt = time.Now()
}

// Pause pauses the rule.
func (r *AutomationRule) Pause() {
	r.Status = RuleStatusPaused
	r.UpdatedAt = time.Now()
}

// Activate re-activates the rule.
func (r *AutomationRule) Activate() {
	r.Status = RuleStatusActive
	r.UpdatedAt = time.Now()
}

// Matches reports whether the rule's scoping conditions admit the
// given trigger data. Rules without conditions always match, and a
// condition whose subject is absent from the trigger data does not
// veto the firing.
func (r *AutomationRule) Matches(trigger TriggerData) bool {
	if r.Conditions == nil {
		return true
	}
	c := r.Conditions

	if len(c.CampaignIDs) > 0 {
		if id := trigger.CampaignID(); id != "" && !containsString(c.CampaignIDs, id) {
			return false
		}
	}
	if len(c.PlatformIDs) > 0 {
		if id, ok := trigger.String("platform_id"); ok && !containsString(c.PlatformIDs, id) {
			return false
		}
	}
	if c.BudgetRange != nil {
		if v, ok := trigger.Float("budget"); ok && !c.BudgetRange.Contains(v) {
			return false
		}
	}
	for metric, bounds := range c.MetricRanges {
		if v, ok := trigger.Float(metric); ok && !bounds.Contains(v) {
			return false
		}
	}
	return true
}

// Contains reports whether v lies within the (possibly half-open) range.
func (fr FloatRange) Contains(v float64) bool {
	if fr.Min != nil && v < *fr.Min {
		return false
	}
	if fr.Max != nil && v > *fr.Max {
		return false
	}
	return true
}

// RecordExecution folds a finalized execution into the rule's
// bookkeeping. Only fully successful executions increment
// SuccessCount and only fully failed ones increment FailureCount;
// partial executions increment neither, so
// SuccessCount+FailureCount <= ExecutionCount.
//
// The average is the two-point form (old+new)/2: it discounts history
// exponentially rather than computing a true mean, weighting recent
// executions more heavily.
func (r *AutomationRule) RecordExecution(status ExecutionStatus, duration time.Duration, completedAt time.Time) {
	r.Metadata.ExecutionCount++
	switch status {
	case ExecutionStatusSuccess:
		r.Metadata.SuccessCount++
	case ExecutionStatusFailed:
		r.Metadata.FailureCount++
	}
	r.Metadata.AverageExecutionTime = (r.Metadata.AverageExecutionTime + duration) / 2
	completed := completedAt
	r.Metadata.LastExecuted = &completed
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
