package rule

import (
	"fmt"
	"strings"

	"github.com/adspro/autopilot/adapter/cli"
	"github.com/adspro/autopilot/internal/automation/application/queries"
	"github.com/adspro/autopilot/internal/automation/domain"
	"github.com/spf13/cobra"
)

var (
	listRuleType string
	listStatus   string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List automation rules",
	Long: `List all automation rules with optional filtering.

Examples:
  autopilot rule list                          # List all rules
  autopilot rule list --status active          # Active rules only
  autopilot rule list --type budget_optimization`,
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.AutomationService == nil {
			fmt.Println("Rule management requires a database connection.")
			return nil
		}

		query := queries.ListRulesQuery{
			OrganizationID: app.OrganizationID,
		}
		if listRuleType != "" {
			ruleType := domain.RuleType(listRuleType)
			query.Type = &ruleType
		}
		if listStatus != "" {
			status := domain.RuleStatus(listStatus)
			query.Status = &status
		}

		rules, err := app.AutomationService.ListRules(cmd.Context(), query)
		if err != nil {
			return fmt.Errorf("failed to list rules: %w", err)
		}

		if len(rules) == 0 {
			fmt.Println("No automation rules found.")
			fmt.Println()
			fmt.Println("Create a new rule with: autopilot rule create \"Rule name\"")
			return nil
		}

		fmt.Printf("Automation Rules (%d total)\n", len(rules))
		fmt.Println(strings.Repeat("-", 70))

		for _, r := range rules {
			statusIcon := "✓"
			if r.Status != domain.RuleStatusActive {
				statusIcon = "○"
			}

			fmt.Printf("%s %-36s  %s\n", statusIcon, r.ID, r.Name)
			fmt.Printf("    Type: %-26s  Status: %s\n", r.Type, r.Status)
			fmt.Printf("    Executions: %d (%d ok, %d failed)", r.Metadata.ExecutionCount,
				r.Metadata.SuccessCount, r.Metadata.FailureCount)
			if r.Metadata.LastExecuted != nil {
				fmt.Printf("  Last: %s", r.Metadata.LastExecuted.Format("2006-01-02 15:04"))
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listRuleType, "type", "", "filter by rule type")
	listCmd.Flags().StringVar(&listStatus, "status", "", "filter by status")
}
