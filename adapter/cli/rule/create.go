package rule

import (
	"encoding/json"
	"fmt"

	"github.com/adspro/autopilot/adapter/cli"
	"github.com/adspro/autopilot/internal/automation/application/commands"
	"github.com/adspro/autopilot/internal/automation/domain"
	"github.com/spf13/cobra"
)

var (
	createRuleType    string
	createDescription string
	createTrigger     string
	createActions     string
	createConditions  string
	createStatus      string
)

var createCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new automation rule",
	Long: `Create a new automation rule with a trigger and an action list.

Rule Types:
  budget_optimization       - Budget-focused rules
  performance_optimization  - Performance-threshold rules
  creative_rotation         - Creative rotation rules
  audience_expansion        - Audience expansion rules
  custom                    - Anything else (default)

Examples:
  # Pause campaigns whose ROAS drops below 1.5
  autopilot rule create "Pause burners" \
    --type performance_optimization \
    --trigger '{"type":"performance_threshold","metric":"roas","operator":"lt","threshold":1.5}' \
    --actions '[{"type":"pause_campaign","params":{"reason":"ROAS below threshold"}}]'

  # Nudge budgets up on strong performers, scoped to two campaigns
  autopilot rule create "Scale winners" \
    --type budget_optimization \
    --trigger '{"type":"performance_threshold","metric":"roas","operator":"gte","threshold":4}' \
    --actions '[{"type":"increase_budget","params":{"percent":10}}]' \
    --conditions '{"campaign_ids":["cmp_1","cmp_2"]}'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.AutomationService == nil {
			fmt.Println("Rule management requires a database connection.")
			return nil
		}

		name := args[0]

		var trigger domain.Trigger
		if createTrigger != "" {
			if err := json.Unmarshal([]byte(createTrigger), &trigger); err != nil {
				return fmt.Errorf("invalid trigger JSON: %w", err)
			}
		}

		var actions []domain.Action
		if createActions != "" {
			if err := json.Unmarshal([]byte(createActions), &actions); err != nil {
				return fmt.Errorf("invalid actions JSON: %w", err)
			}
		}

		var conditions *domain.RuleConditions
		if createConditions != "" {
			conditions = &domain.RuleConditions{}
			if err := json.Unmarshal([]byte(createConditions), conditions); err != nil {
				return fmt.Errorf("invalid conditions JSON: %w", err)
			}
		}

		createCommand := commands.CreateRuleCommand{
			OrganizationID: app.OrganizationID,
			Name:           name,
			Description:    createDescription,
			Type:           domain.RuleType(createRuleType),
			Trigger:        trigger,
			Actions:        actions,
			Conditions:     conditions,
			Status:         domain.RuleStatus(createStatus),
		}

		rule, err := app.AutomationService.CreateRule(cmd.Context(), createCommand)
		if err != nil {
			return fmt.Errorf("failed to create rule: %w", err)
		}

		fmt.Printf("Created automation rule: %s\n", name)
		fmt.Printf("  ID: %s\n", rule.ID)
		fmt.Printf("  Type: %s\n", rule.Type)
		fmt.Printf("  Status: %s\n", rule.Status)
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&createRuleType, "type", "", "rule type (defaults to custom)")
	createCmd.Flags().StringVarP(&createDescription, "description", "d", "", "rule description")
	createCmd.Flags().StringVar(&createTrigger, "trigger", "", "trigger as JSON")
	createCmd.Flags().StringVar(&createActions, "actions", "", "action list as JSON")
	createCmd.Flags().StringVar(&createConditions, "conditions", "", "scoping conditions as JSON")
	createCmd.Flags().StringVar(&createStatus, "status", "", "initial status (defaults to active)")
}
