package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "bazi",
	Short: "Four Pillars of Destiny chart calculator",
	Long: `bazi derives the four sexagenary pillars of a birth moment, annotates them
with elements, polarity, hidden stems and Ten Gods relative to the day master,
and sequences the ten-year luck pillars.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default .bazi.toml)")
	pf.BoolP("verbose", "v", false, "verbose output")
	pf.StringP("format", "o", "", "output format: text, json, toml or yaml")
	pf.String("lang", "", "label language: zh or en")
	pf.String("timezone", "", "zone for absolute timestamps (default Asia/Shanghai)")
	pf.Int("sect", 0, "late Rat hour convention: 1 next day, 2 same day")
	pf.Int("horizon", 0, "last age covered by the luck timeline")
	pf.String("archive", "", "chart history database")
	pf.String("telemetry", "", "append JSONL telemetry events to this file")

	for key, flag := range map[string]string{
		"verbose":        "verbose",
		"format":         "format",
		"lang":           "lang",
		"timezone":       "timezone",
		"sect":           "sect",
		"horizon_age":    "horizon",
		"archive_path":   "archive",
		"telemetry_path": "telemetry",
	} {
		_ = viper.BindPFlag(key, pf.Lookup(flag))
	}
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".bazi")
		viper.SetConfigType("toml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("BAZI")
	viper.AutomaticEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}
