package rule

import (
	"fmt"

	"github.com/adspro/autopilot/adapter/cli"
	"github.com/adspro/autopilot/internal/automation/application/commands"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete [id]",
	Aliases: []string{"rm"},
	Short:   "Delete an automation rule",
	Args:    cobra.ExactArgs(1),
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

		ok, err := app.AutomationService.DeleteRule(cmd.Context(), commands.DeleteRuleCommand{RuleID: ruleID})
		if err != nil {
			return fmt.Errorf("failed to delete rule: %w", err)
		}
		if !ok {
			fmt.Printf("Rule %s not found.\n", ruleID)
			return nil
		}

		fmt.Printf("Deleted rule %s\n", ruleID)
		return nil
	},
}
