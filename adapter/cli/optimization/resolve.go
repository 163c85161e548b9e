package optimization

import (
	"fmt"

	"github.com/adspro/autopilot/adapter/cli"
	"github.com/adspro/autopilot/internal/automation/application/commands"
	"github.com/adspro/autopilot/internal/automation/domain"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var applyCmd = &cobra.Command{
	Use:   "apply [id]",
	Short: "Mark a recommendation as applied",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return resolve(cmd, args[0], domain.OptimizationStatusApplied)
	},
}

var dismissCmd = &cobra.Command{
	Use:   "dismiss [id]",
	Short: "Dismiss a recommendation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return resolve(cmd, args[0], domain.OptimizationStatusDismissed)
	},
}

func resolve(cmd *cobra.Command, arg string, status domain.OptimizationStatus) error {
	app := cli.GetApp()
	if app == nil || app.AutomationService == nil {
		fmt.Println("Optimization management requires a database connection.")
		return nil
	}

	id, err := uuid.Parse(arg)
	if err != nil {
		return fmt.Errorf("invalid optimization ID: %w", err)
	}

	ok, err := app.AutomationService.UpdateOptimization(cmd.Context(), commands.UpdateOptimizationCommand{
		OptimizationID: id,
		Status:         status,
	})
	if err != nil {
		return fmt.Errorf("failed to update optimization: %w", err)
	}
	if !ok {
		fmt.Printf("Optimization %s not found.\n", id)
		return nil
	}

	fmt.Printf("Optimization %s is now %s\n", id, status)
	return nil
}
