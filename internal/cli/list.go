// internal/cli/list.go
package energystat

import (
	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List resources",
}

// listCommandsCmd prints every command and subcommand.
var listCommandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List all available commands and subcommands",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runListCommands(cmd.OutOrStdout(), rootCmd)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.AddCommand(listCommandsCmd)
}
