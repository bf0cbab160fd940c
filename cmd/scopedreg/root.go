package main

import (
	"os"
	"path/filepath"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config is the configuration of the command, read from a config file and
// overridden by flags.
type Config struct {
	Trace        string `mapstructure:"trace"`
	Redefinition bool   `mapstructure:"redefinition"`
	Manifest     string `mapstructure:"manifest"`
}

// traceKeys are the tracers of the packages of this module.
var traceKeys = []string{
	"scopedreg.dom",
	"scopedreg.registry",
	"scopedreg.manifest",
}

var (
	cfgFile string
	cfg     Config
)

var rootCmd = &cobra.Command{
	Use:   "scopedreg",
	Short: "Scoped custom element registries for HTML documents",
	Long: `scopedreg applies manifests of scoped custom element registries to HTML
pages and shows which registry upgraded which element.`,
	SilenceUsage: true,
	PersistentPreRun: func(*cobra.Command, []string) {
		setupTracing(cfg.Trace)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/scopedreg/config.yaml)")
	rootCmd.PersistentFlags().String("trace", "Error",
		"trace level: Error, Info or Debug")
	rootCmd.PersistentFlags().Bool("redefinition", false,
		"allow redefining tags in the document's registry")
	rootCmd.PersistentFlags().StringP("manifest", "m", "",
		"component manifest (YAML)")

	_ = viper.BindPFlag("trace", rootCmd.PersistentFlags().Lookup("trace"))
	_ = viper.BindPFlag("redefinition", rootCmd.PersistentFlags().Lookup("redefinition"))
	_ = viper.BindPFlag("manifest", rootCmd.PersistentFlags().Lookup("manifest"))

	rootCmd.AddCommand(inspectCmd, validateCmd)
}

func initConfig() {
	viper.SetDefault("trace", "Error")
	viper.SetDefault("redefinition", false)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, _ := os.UserHomeDir()
		viper.AddConfigPath(filepath.Join(home, ".config", "scopedreg"))
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}
	// A missing config file is fine, flags and defaults apply.
	_ = viper.ReadInConfig()
	_ = viper.Unmarshal(&cfg)
}

// setupTracing routes all tracers of this module to the Go logger.
func setupTracing(level string) {
	tracing.SetTraceSelector(tracing.SelectorForAdapter(gologadapter.GetAdapter()))
	l := tracing.TraceLevelFromString(level)
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(l)
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags).
func SetVersion(v string) {
	rootCmd.Version = v
}
