package domain

import (
	"encoding/json"
	"fmt"
)

// ActionType enumerates the effects a rule can declare.
type ActionType string

const (
	ActionPauseCampaign    ActionType = "pause_campaign"
	ActionIncreaseBudget   ActionType = "increase_budget"
	ActionDecreaseBudget   ActionType = "decrease_budget"
	ActionAdjustBids       ActionType = "adjust_bids"
	ActionRotateCreatives  ActionType = "rotate_creatives"
	ActionExpandAudience   ActionType = "expand_audience"
	ActionSendNotification ActionType = "send_notification"
	ActionAIOptimize       ActionType = "ai_optimize"
)

// Known reports whether the action type is part of the closed enumeration.
func (t ActionType) Known() bool {
	switch t {
	case ActionPauseCampaign, ActionIncreaseBudget, ActionDecreaseBudget,
		ActionAdjustBids, ActionRotateCreatives, ActionExpandAudience,
		ActionSendNotification, ActionAIOptimize:
		return true
	}
	return false
}

// ActionParams is the parameter payload of an action, tagged by the
// action type. Unknown action types decode into RawParams so that a
// rule referencing an unregistered action still round-trips through
// storage and is reported as skipped at execution time.
type ActionParams interface {
	actionParams()
}

// PauseCampaignParams configures a pause_campaign action.
type PauseCampaignParams struct {
	Reason string `json:"reason,omitempty"`
}

// BudgetChangeParams configures increase_budget and decrease_budget
// actions. Percent takes precedence when both are set.
type BudgetChangeParams struct {
	Amount  float64 `json:"amount,omitempty"`
	Percent float64 `json:"percent,omitempty"`
}

// AdjustBidsParams configures an adjust_bids action.
type AdjustBidsParams struct {
	Modifier float64 `json:"modifier"`
	Target   string  `json:"target,omitempty"` // keyword, placement, device
}

// RotateCreativesParams configures a rotate_creatives action.
type RotateCreativesParams struct {
	Strategy string `json:"strategy,omitempty"` // even, optimized
}

// ExpandAudienceParams configures an expand_audience action.
type ExpandAudienceParams struct {
	SimilarityThreshold float64  `json:"similarity_threshold,omitempty"`
	Markets             []string `json:"markets,omitempty"`
}

// NotificationParams configures a send_notification action.
type NotificationParams struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	Priority string `json:"priority,omitempty"` // low, medium, high, critical
}

// AIOptimizeParams configures an ai_optimize action.
type AIOptimizeParams struct {
	OptimizationType string `json:"optimization_type"`
}

// RawParams holds the parameters of an action whose type is not part
// of the closed enumeration.
type RawParams map[string]any

func (PauseCampaignParams) actionParams()  {}
func (BudgetChangeParams) actionParams()   {}
func (AdjustBidsParams) actionParams()     {}
func (RotateCreativesParams) actionParams() {}
func (ExpandAudienceParams) actionParams() {}
func (NotificationParams) actionParams()   {}
func (AIOptimizeParams) actionParams()     {}
func (RawParams) actionParams()            {}

// Action is one declared effect within a rule. Conditions, when
// present, guard the action: an unmet guard yields a skipped outcome
// instead of a dispatch.
type Action struct {
	Type       ActionType
	Params     ActionParams
	Conditions []Condition
}

type actionJSON struct {
	Type       ActionType      `json:"type"`
	Params     json.RawMessage `json:"params,omitempty"`
	Conditions []Condition     `json:"conditions,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (a Action) MarshalJSON() ([]byte, error) {
	var params json.RawMessage
	if a.Params != nil {
		b, err := json.Marshal(a.Params)
		if err != nil {
			return nil, err
		}
		params = b
	}
	return json.Marshal(actionJSON{Type: a.Type, Params: params, Conditions: a.Conditions})
}

// UnmarshalJSON implements json.Unmarshaler, resolving the params
// variant from the action type.
func (a *Action) UnmarshalJSON(data []byte) error {
	var raw actionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	a.Type = raw.Type
	a.Conditions = raw.Conditions

	if len(raw.Params) == 0 {
		a.Params = ParamsFor(raw.Type)
		return nil
	}

	params, err := decodeParams(raw.Type, raw.Params)
	if err != nil {
		return fmt.Errorf("decode params for action %q: %w", raw.Type, err)
	}
	a.Params = params
	return nil
}

// ParamsFor returns the zero parameter value for an action type.
func ParamsFor(t ActionType) ActionParams {
	switch t {
	case ActionPauseCampaign:
		return PauseCampaignParams{}
	case ActionIncreaseBudget, ActionDecreaseBudget:
		return BudgetChangeParams{}
	case ActionAdjustBids:
		return AdjustBidsParams{}
	case ActionRotateCreatives:
		return RotateCreativesParams{}
	case ActionExpandAudience:
		return ExpandAudienceParams{}
	case ActionSendNotification:
		return NotificationParams{}
	case ActionAIOptimize:
		return AIOptimizeParams{}
	default:
		return RawParams{}
	}
}

func decodeParams(t ActionType, data json.RawMessage) (ActionParams, error) {
	switch t {
	case ActionPauseCampaign:
		var p PauseCampaignParams
		return p, json.Unmarshal(data, &p)
	case ActionIncreaseBudget, ActionDecreaseBudget:
		var p BudgetChangeParams
		return p, json.Unmarshal(data, &p)
	case ActionAdjustBids:
		var p AdjustBidsParams
		return p, json.Unmarshal(data, &p)
	case ActionRotateCreatives:
		var p RotateCreativesParams
		return p, json.Unmarshal(data, &p)
	case ActionExpandAudience:
		var p ExpandAudienceParams
		return p, json.Unmarshal(data, &p)
	case ActionSendNotification:
		var p NotificationParams
		return p, json.Unmarshal(data, &p)
	case ActionAIOptimize:
		var p AIOptimizeParams
		return p, json.Unmarshal(data, &p)
	default:
		var p RawParams
		return p, json.Unmarshal(data, &p)
	}
}

// ConditionOperator compares a trigger-data field against a value.
type ConditionOperator string

const (
	OperatorEquals      ConditionOperator = "eq"
	OperatorNotEquals   ConditionOperator = "neq"
	OperatorGreaterThan ConditionOperator = "gt"
	OperatorGreaterOrEq ConditionOperator = "gte"
	OperatorLessThan    ConditionOperator = "lt"
	OperatorLessOrEq    ConditionOperator = "lte"
)

// Condition is a single guard entry on an action.
type Condition struct {
	Field    string            `json:"field"`
	Operator ConditionOperator `json:"operator"`
	Value    any               `json:"value"`
}

// Holds reports whether the condition is satisfied by the trigger
// data. A field absent from the trigger data fails the guard: guards
// name data the action depends on.
func (c Condition) Holds(trigger TriggerData) bool {
	actual, ok := trigger[c.Field]
	if !ok {
		return false
	}

	if af, aok := toFloat(actual); aok {
		if ef, eok := toFloat(c.Value); eok {
			switch c.Operator {
			case OperatorEquals:
				return af == ef
			case OperatorNotEquals:
				return af != ef
			case OperatorGreaterThan:
				return af > ef
			case OperatorGreaterOrEq:
				return af >= ef
			case OperatorLessThan:
				return af < ef
			case OperatorLessOrEq:
				return af <= ef
			}
			return false
		}
	}

	as := fmt.Sprintf("%v", actual)
	es := fmt.Sprintf("%v", c.Value)
	switch c.Operator {
	case OperatorEquals:
		return as == es
	case OperatorNotEquals:
		return as != es
	}
	return false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
