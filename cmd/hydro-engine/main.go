// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the hydro-engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the hydro-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "hydro-engine",
	Short: "Health analysis for hydraulic-model simulation reports",
	Long: `hydro-engine extracts a structured health summary from hydraulic-model
simulation report files: global mass-balance (continuity) errors, the most
heavily flooded network nodes, and the most surcharged conduits.

Reports are streamed line by line, so multi-gigabyte files parse in constant
memory. Each analysis can be recorded in a local SQLite history database and
reviewed later with the history subcommands.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./hydro-engine.yaml or ~/.config/hydro-engine/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("hydro-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "hydro-engine"))
		}
	}

	viper.SetEnvPrefix("HYDRO_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
