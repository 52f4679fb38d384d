// cmd/root.go
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yataco/dashboard/backend/config"
	"github.com/yataco/dashboard/backend/utils"
)

var cfgFile string

// Config locations tried when --config is not given: run from the repo root or from backend/.
var defaultConfigPaths = []string{
	"backend/config/config.yaml",
	"config/config.yaml",
}

var rootCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Enrollment dashboard backend for Yataco Academy course reports.",
	Long: `dashboard reads course enrollment exports (CSV, XLSX or HTML tables), works out
site, shift and period for every course and reports students, capacity and occupancy
per site. Run "serve" for the HTTP API or "report" for a one-off terminal summary.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default backend/config/config.yaml or config/config.yaml)")
	rootCmd.PersistentFlags().StringP("loglevel", "l", "", "Override log level. Available: debug, info, warn, error, fatal")
}

func initConfig(cmd *cobra.Command) error {
	path := cfgFile
	if path == "" {
		for _, p := range defaultConfigPaths {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if err := config.LoadConfig(path); err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}

	level := config.AppConfig.Logging.Level
	if flagLevel, _ := cmd.Flags().GetString("loglevel"); flagLevel != "" {
		level = flagLevel
	}
	if err := utils.SetLogLevel(level); err != nil {
		return err
	}
	utils.SetLogFormat(config.AppConfig.Logging.Format)

	if path != "" {
		utils.Log.Debugf("Configuration loaded from %s", path)
	} else {
		utils.Log.Debug("No config file found; using defaults and environment")
	}
	return nil
}
