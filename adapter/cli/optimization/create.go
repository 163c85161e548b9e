package optimization

import (
	"fmt"

	"github.com/adspro/autopilot/adapter/cli"
	"github.com/adspro/autopilot/internal/automation/application/commands"
	"github.com/spf13/cobra"
)

var (
	createCampaignID     string
	createRecommendation string
	createImpact         float64
)

var createCmd = &cobra.Command{
	Use:   "create [kind]",
	Short: "Record an AI optimization recommendation",
	Long: `Record a recommendation so it shows up in the pending queue.

Examples:
  autopilot optimization create budget_reallocation \
    --campaign cmp_1 \
    --recommendation "Shift 20% of budget to campaign cmp_2" \
    --impact 0.15`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.AutomationService == nil {
			fmt.Println("Optimization management requires a database connection.")
			return nil
		}

		opt, err := app.AutomationService.CreateOptimization(cmd.Context(), commands.CreateOptimizationCommand{
			OrganizationID:  app.OrganizationID,
			CampaignID:      createCampaignID,
			Kind:            args[0],
			Recommendation:  createRecommendation,
			EstimatedImpact: createImpact,
		})
		if err != nil {
			return fmt.Errorf("failed to create optimization: %w", err)
		}

		fmt.Printf("Recorded optimization: %s\n", opt.ID)
		fmt.Printf("  Kind: %s\n", opt.Kind)
		fmt.Printf("  Status: %s\n", opt.Status)
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&createCampaignID, "campaign", "", "campaign the recommendation targets")
	createCmd.Flags().StringVar(&createRecommendation, "recommendation", "", "recommendation text")
	createCmd.Flags().Float64Var(&createImpact, "impact", 0, "estimated impact (fraction)")
}
