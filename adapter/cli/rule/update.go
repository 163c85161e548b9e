package rule

import (
	"encoding/json"
	"fmt"

	"github.com/adspro/autopilot/adapter/cli"
	"github.com/adspro/autopilot/internal/automation/application/commands"
	"github.com/adspro/autopilot/internal/automation/domain"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	updateName        string
	updateDescription string
	updateRuleType    string
	updateTrigger     string
	updateActions     string
	updateConditions  string
	updateStatus      string
)

var updateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Update an automation rule",
	Long: `Apply a partial update to a rule. Only the provided flags change;
everything else keeps its value.

Examples:
  autopilot rule update <id> --name "New name"
  autopilot rule update <id> --actions '[{"type":"pause_campaign","params":{"reason":"cleanup"}}]'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.AutomationService == nil {
			fmt.Println("Rule management requires a database connection.")
			return nil
		}

		ruleID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid rule ID: %w", err)
		}

		var patch domain.RulePatch
		if cmd.Flags().Changed("name") {
			patch.Name = &updateName
		}
		if cmd.Flags().Changed("description") {
			patch.Description = &updateDescription
		}
		if updateRuleType != "" {
			ruleType := domain.RuleType(updateRuleType)
			patch.Type = &ruleType
		}
		if updateTrigger != "" {
			trigger := &domain.Trigger{}
			if err := json.Unmarshal([]byte(updateTrigger), trigger); err != nil {
				return fmt.Errorf("invalid trigger JSON: %w", err)
			}
			patch.Trigger = trigger
		}
		if updateActions != "" {
			var actions []domain.Action
			if err := json.Unmarshal([]byte(updateActions), &actions); err != nil {
				return fmt.Errorf("invalid actions JSON: %w", err)
			}
			patch.Actions = &actions
		}
		if updateConditions != "" {
			conditions := &domain.RuleConditions{}
			if err := json.Unmarshal([]byte(updateConditions), conditions); err != nil {
				return fmt.Errorf("invalid conditions JSON: %w", err)
			}
			patch.Conditions = conditions
		}
		if updateStatus != "" {
			status := domain.RuleStatus(updateStatus)
			patch.Status = &status
		}

		ok, err := app.AutomationService.UpdateRule(cmd.Context(), commands.UpdateRuleCommand{
			RuleID: ruleID,
			Patch:  patch,
		})
		if err != nil {
			return fmt.Errorf("failed to update rule: %w", err)
		}
		if !ok {
			fmt.Printf("Rule %s not found.\n", ruleID)
			return nil
		}

		fmt.Printf("Updated rule %s\n", ruleID)
		return nil
	},
}

func init() {
	updateCmd.Flags().StringVar(&updateName, "name", "", "new name")
	updateCmd.Flags().StringVarP(&updateDescription, "description", "d", "", "new description")
	updateCmd.Flags().StringVar(&updateRuleType, "type", "", "new rule type")
	updateCmd.Flags().StringVar(&updateTrigger, "trigger", "", "new trigger as JSON")
	updateCmd.Flags().StringVar(&updateActions, "actions", "", "new action list as JSON")
	updateCmd.Flags().StringVar(&updateConditions, "conditions", "", "new scoping conditions as JSON")
	updateCmd.Flags().StringVar(&updateStatus, "status", "", "new status")
}
