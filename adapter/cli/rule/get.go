package rule

import (
	"encoding/json"
	"fmt"

	"github.com/adspro/autopilot/adapter/cli"
	"github.com/adspro/autopilot/internal/automation/application/queries"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show a single automation rule",
	Args:  cobra.ExactArgs(1),
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

		r, err := app.AutomationService.GetRule(cmd.Context(), queries.GetRuleQuery{RuleID: ruleID})
		if err != nil {
			return fmt.Errorf("failed to get rule: %w", err)
		}

		fmt.Printf("Rule: %s\n", r.Name)
		fmt.Printf("  ID: %s\n", r.ID)
		fmt.Printf("  Type: %s\n", r.Type)
		fmt.Printf("  Status: %s\n", r.Status)
		if r.Description != "" {
			fmt.Printf("  Description: %s\n", r.Description)
		}

		trigger, _ := json.Marshal(r.Trigger)
		fmt.Printf("  Trigger: %s\n", trigger)
		actions, _ := json.MarshalIndent(r.Actions, "  ", "  ")
		fmt.Printf("  Actions: %s\n", actions)
		if r.Conditions != nil {
			conditions, _ := json.Marshal(r.Conditions)
			fmt.Printf("  Conditions: %s\n", conditions)
		}

		fmt.Printf("  Executions: %d (%d ok, %d failed)\n", r.Metadata.ExecutionCount,
			r.Metadata.SuccessCount, r.Metadata.FailureCount)
		if r.Metadata.LastExecuted != nil {
			fmt.Printf("  Last executed: %s\n", r.Metadata.LastExecuted.Format("2006-01-02 15:04:05"))
		}
		if r.Metadata.AverageExecutionTime > 0 {
			fmt.Printf("  Average execution time: %s\n", r.Metadata.AverageExecutionTime)
		}
		return nil
	},
}
