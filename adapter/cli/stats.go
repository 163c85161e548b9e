package cli

import (
	"fmt"
	"strings"

	"github.com/adspro/autopilot/internal/automation/application/queries"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show automation statistics",
	Long: `Show aggregate automation statistics: rule counts, success rate,
average execution time, and the most recent executions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.AutomationService == nil {
			fmt.Println("Statistics require a database connection.")
			return nil
		}

		stats, err := app.AutomationService.GetStats(cmd.Context(), queries.StatsQuery{
			OrganizationID: app.OrganizationID,
		})
		if err != nil {
			return fmt.Errorf("failed to compute stats: %w", err)
		}

		fmt.Println("Automation Statistics")
		fmt.Println(strings.Repeat("-", 40))
		fmt.Printf("Rules:            %d (%d active)\n", stats.TotalRules, stats.ActiveRules)
		fmt.Printf("Executions:       %d sampled\n", stats.TotalExecutions)
		fmt.Printf("Success rate:     %.1f%%\n", stats.SuccessRate)
		fmt.Printf("Avg execution:    %s\n", stats.AverageExecutionTime)

		if len(stats.RecentExecutions) > 0 {
			fmt.Println()
			fmt.Println("Recent executions:")
			for _, exec := range stats.RecentExecutions {
				fmt.Printf("  %-36s  %-8s  %s\n", exec.ID, exec.Status,
					exec.StartedAt.Format("2006-01-02 15:04:05"))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
