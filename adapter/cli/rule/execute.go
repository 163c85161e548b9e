package rule

import (
	"encoding/json"
	"fmt"

	"github.com/adspro/autopilot/adapter/cli"
	"github.com/adspro/autopilot/internal/automation/domain"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	executeTrigger string
	executeQueued  bool
)

var executeCmd = &cobra.Command{
	Use:     "execute [id]",
	Aliases: []string{"run", "fire"},
	Short:   "Execute an automation rule",
	Long: `Fire a rule immediately, or append it to the background
execution queue with --queue.

Examples:
  autopilot rule execute <id>
  autopilot rule execute <id> --trigger '{"campaign_id":"cmp_1","roas":1.2}'
  autopilot rule execute <id> --queue`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.AutomationService == nil {
			fmt.Println("Rule execution requires a database connection.")
			return nil
		}

		ruleID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid rule ID: %w", err)
		}

		if executeQueued {
			if err := app.AutomationService.EnqueueExecution(cmd.Context(), ruleID); err != nil {
				return fmt.Errorf("failed to enqueue rule: %w", err)
			}
			fmt.Printf("Queued rule %s for execution\n", ruleID)
			return nil
		}

		trigger := domain.TriggerData{}
		if executeTrigger != "" {
			if err := json.Unmarshal([]byte(executeTrigger), &trigger); err != nil {
				return fmt.Errorf("invalid trigger data JSON: %w", err)
			}
		}

		execution, err := app.AutomationService.Execute(cmd.Context(), ruleID, trigger)
		if err != nil {
			return fmt.Errorf("failed to execute rule: %w", err)
		}

		fmt.Printf("Execution %s: %s\n", execution.ID, execution.Status)
		if execution.SkipReason != "" {
			fmt.Printf("  Skip reason: %s\n", execution.SkipReason)
		}
		for _, result := range execution.Actions {
			line := fmt.Sprintf("  %-20s %s", result.ActionType, result.Status)
			if result.Error != "" {
				line += "  " + result.Error
			}
			fmt.Println(line)
		}
		if len(execution.AffectedCampaignIDs) > 0 {
			fmt.Printf("  Affected campaigns: %v\n", execution.AffectedCampaignIDs)
		}
		fmt.Printf("  Duration: %s\n", execution.Duration)
		return nil
	},
}

func init() {
	executeCmd.Flags().StringVar(&executeTrigger, "trigger", "", "trigger data as JSON")
	executeCmd.Flags().BoolVar(&executeQueued, "queue", false, "enqueue instead of executing inline")
}
