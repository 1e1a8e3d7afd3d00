// internal/cli/show_config.go
package energystat

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mwiater/energystat/internal/appconfig"
)

var showConfigYAML bool

// showConfigCmd represents the show config command
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Display the current configuration with defaults applied",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if cfg == nil {
			return errConfigNotLoaded
		}
		return runShowConfig(cmd.OutOrStdout(), *cfg, showConfigYAML)
	},
}

func init() {
	showConfigCmd.Flags().BoolVar(&showConfigYAML, "yaml", false, "print the resolved configuration as YAML")
	showCmd.AddCommand(showConfigCmd)
}

func runShowConfig(out io.Writer, cfg appconfig.Config, asYAML bool) error {
	if asYAML {
		return appconfig.WriteYAML(out, cfg)
	}
	file := ""
	if configLoaded {
		file = viper.ConfigFileUsed()
	}
	appconfig.ShowConfig(out, file, cfg)
	return nil
}
