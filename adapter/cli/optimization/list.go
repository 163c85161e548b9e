package optimization

import (
	"fmt"
	"strings"

	"github.com/adspro/autopilot/adapter/cli"
	"github.com/adspro/autopilot/internal/automation/application/queries"
	"github.com/adspro/autopilot/internal/automation/domain"
	"github.com/spf13/cobra"
)

var (
	listCampaignID string
	listStatus     string
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List AI optimization recommendations",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.AutomationService == nil {
			fmt.Println("Optimization management requires a database connection.")
			return nil
		}

		query := queries.ListOptimizationsQuery{
			OrganizationID: app.OrganizationID,
			CampaignID:     listCampaignID,
		}
		if listStatus != "" {
			status := domain.OptimizationStatus(listStatus)
			query.Status = &status
		}

		opts, err := app.AutomationService.ListOptimizations(cmd.Context(), query)
		if err != nil {
			return fmt.Errorf("failed to list optimizations: %w", err)
		}

		if len(opts) == 0 {
			fmt.Println("No optimization recommendations found.")
			return nil
		}

		fmt.Printf("Optimization Recommendations (%d total)\n", len(opts))
		fmt.Println(strings.Repeat("-", 70))

		for _, opt := range opts {
			fmt.Printf("%-36s  %-12s  %s\n", opt.ID, opt.Status, opt.Kind)
			if opt.CampaignID != "" {
				fmt.Printf("    Campaign: %s\n", opt.CampaignID)
			}
			if opt.Recommendation != "" {
				fmt.Printf("    %s\n", opt.Recommendation)
			}
			if opt.EstimatedImpact != 0 {
				fmt.Printf("    Estimated impact: %.1f%%\n", opt.EstimatedImpact*100)
			}
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listCampaignID, "campaign", "", "filter by campaign")
	listCmd.Flags().StringVar(&listStatus, "status", "", "filter by status (pending, applied, dismissed)")
}
