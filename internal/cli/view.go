// internal/cli/view.go
package energystat

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mwiater/energystat/internal/report"
	"github.com/mwiater/energystat/internal/tui"
)

var viewFile string

// viewCmd browses a CSV table in the terminal.
var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Browse a result table interactively (defaults to the summary table)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if cfg == nil {
			return errConfigNotLoaded
		}
		path := viewFile
		if path == "" {
			path = filepath.Join(cfg.OutputPath(), report.SummaryFile)
		}
		return tui.Run(path)
	},
}

func init() {
	viewCmd.Flags().StringVar(&viewFile, "file", "", "CSV file to browse")
	rootCmd.AddCommand(viewCmd)
}
