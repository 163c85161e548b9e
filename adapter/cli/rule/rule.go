// Package rule implements the rule command group.
package rule

import (
	"github.com/spf13/cobra"
)

// Cmd is the rule command group
var Cmd = &cobra.Command{
	Use:     "rule",
	Aliases: []string{"rules", "automation"},
	Short:   "Manage automation rules",
	Long: `Create, list, and manage campaign automation rules.

Rules watch campaign performance metrics and run their action lists
when a trigger fires.

Examples:
  autopilot rule list                     # List all rules
  autopilot rule create "Pause burners"   # Create a new rule
  autopilot rule execute <id>             # Fire a rule now
  autopilot rule executions               # View execution history`,
}

func init() {
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(getCmd)
	Cmd.AddCommand(updateCmd)
	Cmd.AddCommand(pauseCmd)
	Cmd.AddCommand(activateCmd)
	Cmd.AddCommand(deleteCmd)
	Cmd.AddCommand(executeCmd)
	Cmd.AddCommand(executionsCmd)
}
