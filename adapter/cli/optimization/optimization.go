// Package optimization implements the optimization command group.
package optimization

import (
	"github.com/spf13/cobra"
)

// Cmd is the optimization command group
var Cmd = &cobra.Command{
	Use:     "optimization",
	Aliases: []string{"opt", "optimizations"},
	Short:   "Manage AI optimization recommendations",
	Long: `Record, list, and resolve AI optimization recommendations.

Recommendations come from the AI optimization service (or are recorded
manually) and stay pending until they are applied or dismissed.

Examples:
  autopilot optimization list                    # All recommendations
  autopilot optimization list --status pending   # Pending only
  autopilot optimization apply <id>              # Mark as applied`,
}

func init() {
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(applyCmd)
	Cmd.AddCommand(dismissCmd)
}
