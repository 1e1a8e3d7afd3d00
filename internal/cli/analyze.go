// internal/cli/analyze.go
package energystat

import (
	"github.com/spf13/cobra"
)

// analyzeCmd runs the full pipeline and writes every artifact.
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the statistics pipeline and write tables, plots and the HTML report",
	Long: `Loads the run table, filters outliers for display, computes descriptive
statistics, Wilcoxon signed-rank tests with Bonferroni correction, Spearman
correlations and the baseline/treatment comparison, then writes the CSV
tables, PNG plots and report.html to the output directory.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if cfg == nil {
			return errConfigNotLoaded
		}
		return runAnalyze(cmd.OutOrStdout(), *cfg)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}
