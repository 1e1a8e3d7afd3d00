// internal/cli/show.go
package energystat

import (
	"github.com/spf13/cobra"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show resources",
}

func init() {
	rootCmd.AddCommand(showCmd)
}
