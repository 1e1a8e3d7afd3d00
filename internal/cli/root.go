// internal/cli/root.go
package energystat

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mwiater/energystat/internal/appconfig"
	"github.com/mwiater/energystat/internal/logging"
)

// envPrefix namespaces environment overrides, e.g. ENERGYSTAT_ALPHA.
const envPrefix = "ENERGYSTAT"

var (
	cfgFile       string
	envFile       string
	configLoaded  bool
	currentConfig *appconfig.Config
	appVersion    = "dev"
	appCommit     = "none"
	appDate       = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:           "energystat",
	Short:         "energystat: baseline vs optimized energy statistics for benchmark run tables",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureConfigLoaded(); err != nil {
			return err
		}

		var cfg appconfig.Config
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("unmarshal config: %w", err)
		}
		if configLoaded {
			cfg.ConfigPath = viper.ConfigFileUsed()
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		currentConfig = &cfg

		if err := logging.Init(currentConfig.LogFilePath()); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		if cfg.Debug {
			pp.Fprintln(cmd.ErrOrStderr(), cfg.Resolved())
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", appVersion, appCommit, appDate)

	defer logging.Close()
	if err := rootCmd.Execute(); err != nil {
		_ = logging.Close()
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file (e.g., config/config.json)")
	flags.StringVar(&envFile, "env-file", ".env", "optional dotenv file with ENERGYSTAT_* overrides")

	flags.String("input", "", "run table CSV (default data/run_table.csv)")
	flags.String("outputDir", "", "directory for CSV tables and report.html (default data/output)")
	flags.String("plotDir", "", "directory for PNG plots (default <outputDir>/plots)")
	flags.String("baselineVersion", "", "version treated as the baseline (default baseline)")
	flags.String("treatmentVersion", "", "version compared against the baseline (default opt)")
	flags.Float64("alpha", 0, "significance level for corrected p-values (default 0.05)")
	flags.StringSlice("forensicBenchmarks", nil, "benchmarks that get a forensic plot (default all)")
	flags.Int64("jitterSeed", 0, "seed for point jitter in forensic plots (default 42)")
	flags.Bool("plots", true, "render PNG plots")
	flags.Bool("htmlReport", true, "write report.html")
	flags.String("logFile", "", "path to the log file")
	flags.Bool("debug", false, "enable debug output")

	for _, name := range configFlags {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}
}

// configFlags are the persistent flags mirrored into viper.
var configFlags = []string{
	"input", "outputDir", "plotDir", "baselineVersion", "treatmentVersion", "alpha",
	"forensicBenchmarks", "jitterSeed", "plots", "htmlReport", "logFile", "debug",
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "warning: could not read %s: %v\n", envFile, err)
		}
	}
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetConfigType("json")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// ensureConfigLoaded reads the config file. A missing default file clears
// any previously loaded values and leaves the defaults in place; a missing
// explicit file is an error.
func ensureConfigLoaded() error {
	configLoaded = false
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			if cfgFile != "" && cfgFile != appconfig.DefaultConfigPath {
				return fmt.Errorf("no configuration file found at %q", cfgFile)
			}
			return viper.ReadConfig(strings.NewReader("{}"))
		}
		return fmt.Errorf("failed to load config: %w", err)
	}
	configLoaded = true
	return nil
}

// GetConfig returns the loaded application configuration for other packages.
func GetConfig() *appconfig.Config {
	return currentConfig
}

// SetVersionInfo allows the main package to inject build-time variables.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}
