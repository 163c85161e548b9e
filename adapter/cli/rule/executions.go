package rule

import (
	"fmt"
	"strings"

	"github.com/adspro/autopilot/adapter/cli"
	"github.com/adspro/autopilot/internal/automation/application/queries"
	"github.com/adspro/autopilot/internal/automation/domain"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	execRuleID string
	execStatus string
	execLimit  int
)

var executionsCmd = &cobra.Command{
	Use:   "executions",
	Short: "List rule execution history",
	Long: `View the execution history of automation rules.

Examples:
  autopilot rule executions                     # All executions
  autopilot rule executions --rule abc123...    # For a specific rule
  autopilot rule executions --status failed     # Failed executions only
  autopilot rule executions --limit 200         # Show more results`,
	Aliases: []string{"exec", "history"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.AutomationService == nil {
			fmt.Println("Execution history requires a database connection.")
			return nil
		}

		query := queries.ListExecutionsQuery{
			OrganizationID: app.OrganizationID,
			Limit:          execLimit,
		}
		if execRuleID != "" {
			ruleID, err := uuid.Parse(execRuleID)
			if err != nil {
				return fmt.Errorf("invalid rule ID: %w", err)
			}
			query.RuleID = &ruleID
		}
		if execStatus != "" {
			status := domain.ExecutionStatus(execStatus)
			query.Status = &status
		}

		executions, err := app.AutomationService.ListExecutions(cmd.Context(), query)
		if err != nil {
			return fmt.Errorf("failed to list executions: %w", err)
		}

		if len(executions) == 0 {
			fmt.Println("No execution history found.")
			return nil
		}

		fmt.Printf("Rule Executions (%d shown)\n", len(executions))
		fmt.Println(strings.Repeat("-", 80))

		for _, exec := range executions {
			fmt.Printf("%s %-36s  %s\n", statusIcon(exec.Status), exec.ID,
				exec.StartedAt.Format("2006-01-02 15:04:05"))
			fmt.Printf("    Rule: %s\n", exec.RuleID)
			fmt.Printf("    Status: %-10s  Duration: %s\n", exec.Status, exec.Duration)

			if exec.Status == domain.ExecutionStatusSkipped && exec.SkipReason != "" {
				fmt.Printf("    Skip reason: %s\n", exec.SkipReason)
			}
			for _, result := range exec.Actions {
				line := fmt.Sprintf("    - %-20s %s", result.ActionType, result.Status)
				if result.Error != "" {
					line += "  " + result.Error
				}
				fmt.Println(line)
			}
		}
		return nil
	},
}

func statusIcon(status domain.ExecutionStatus) string {
	switch status {
	case domain.ExecutionStatusSuccess:
		return "✓"
	case domain.ExecutionStatusFailed:
		return "✗"
	case domain.ExecutionStatusPartial:
		return "◐"
	case domain.ExecutionStatusSkipped:
		return "→"
	default:
		return "·"
	}
}

func init() {
	executionsCmd.Flags().StringVar(&execRuleID, "rule", "", "filter by rule ID")
	executionsCmd.Flags().StringVar(&execStatus, "status", "", "filter by status")
	executionsCmd.Flags().IntVar(&execLimit, "limit", 0, "max results (default 100)")
}
