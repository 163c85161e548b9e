package rule

import (
	"fmt"

	"github.com/adspro/autopilot/adapter/cli"
	"github.com/adspro/autopilot/internal/automation/application/commands"
	"github.com/adspro/autopilot/internal/automation/domain"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var pauseCmd = &cobra.Command{
	Use:   "pause [id]",
	Short: "Pause an automation rule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setRuleStatus(cmd, args[0], domain.RuleStatusPaused)
	},
}

var activateCmd = &cobra.Command{
	Use:     "activate [id]",
	Aliases: []string{"resume"},
	Short:   "Activate a paused automation rule",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setRuleStatus(cmd, args[0], domain.RuleStatusActive)
	},
}

func setRuleStatus(cmd *cobra.Command, arg string, status domain.RuleStatus) error {
	app := cli.GetApp()
	if app == nil || app.AutomationService == nil {
		fmt.Println("Rule management requires a database connection.")
		return nil
	}

	ruleID, err := uuid.Parse(arg)
	if err != nil {
		return fmt.Errorf("invalid rule ID: %w", err)
	}

	ok, err := app.AutomationService.UpdateRule(cmd.Context(), commands.UpdateRuleCommand{
		RuleID: ruleID,
		Patch:  domain.RulePatch{Status: &status},
	})
	if err != nil {
		return fmt.Errorf("failed to update rule: %w", err)
	}
	if !ok {
		fmt.Printf("Rule %s not found.\n", ruleID)
		return nil
	}

	fmt.Printf("Rule %s is now %s\n", ruleID, status)
	return nil
}
