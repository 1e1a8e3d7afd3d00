// internal/cli/overview.go
package energystat

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/mwiater/energystat/internal/analysis"
	"github.com/mwiater/energystat/internal/appconfig"
	"github.com/mwiater/energystat/internal/report"
	"github.com/mwiater/energystat/internal/runtable"
)

var overviewJSON bool

// overviewCmd summarises the run table before any analysis is written.
var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Inspect the run table: shape, design balance, missing values and a preliminary comparison",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if cfg == nil {
			return errConfigNotLoaded
		}
		return runOverview(cmd.OutOrStdout(), *cfg, overviewJSON)
	},
}

func init() {
	overviewCmd.Flags().BoolVar(&overviewJSON, "json", false, "print the overview as JSON")
	rootCmd.AddCommand(overviewCmd)
}

func runOverview(out io.Writer, cfg appconfig.Config, asJSON bool) error {
	table, err := runtable.Load(cfg.InputPath())
	if err != nil {
		return err
	}
	ov := analysis.BuildOverview(table, analysisOptions(cfg))
	if asJSON {
		return report.WriteOverviewJSON(out, ov)
	}
	report.PrintOverview(out, ov)
	return nil
}
