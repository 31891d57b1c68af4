// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the study-planner CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/study-planner/internal/logging"
	"github.com/pdiddy/study-planner/internal/metrics"
	"github.com/pdiddy/study-planner/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// recorder collects metrics for the current invocation.
var recorder = metrics.New()

// rootCmd is the base command for the study-planner CLI.
var rootCmd = &cobra.Command{
	Use:   "study-planner",
	Short: "Find and download NCERT textbook chapters",
	Long: `study-planner resolves a subject, grade and optional book title against a
built-in catalog of NCERT textbooks for grades 9 and 10, then downloads the
requested chapter as a PDF.

Missing subject, grade or chapter values are asked for interactively; a
missing title shows a chooser over the books of that subject and grade.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		debug, _ := cmd.Flags().GetBool("debug")
		silent, _ := cmd.Flags().GetBool("silent")
		level := logging.LevelFromFlags(viper.GetString("log.level"), debug, silent)
		logging.Setup(level, viper.GetString("log.format"), cmd.ErrOrStderr())

		loadEnvironment(".env", ".secrets/")
		if f := viper.ConfigFileUsed(); f != "" {
			slog.Debug("using config file", "path", f)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./study-planner.yaml or ~/.config/study-planner/study-planner.yaml)")
	rootCmd.PersistentFlags().BoolP("silent", "s", false, "only log errors")
	rootCmd.PersistentFlags().Bool("debug", false, "log debug output")
	rootCmd.PersistentFlags().String("log-format", "", "log format: text or json")
	rootCmd.PersistentFlags().String("metrics-file", "", "write Prometheus metrics to this textfile on exit")

	viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("metrics.textfile", rootCmd.PersistentFlags().Lookup("metrics-file"))
}

// loadEnvironment applies .env and .secrets/ values to the process
// environment. Only the S3 destination needs them, so an unreadable file is
// logged and skipped.
func loadEnvironment(dotenvPath, dir string) []string {
	applied, err := secrets.LoadInto(dotenvPath, dir)
	if err != nil {
		slog.Warn("skipping environment files", "error", err)
		return nil
	}
	if len(applied) > 0 {
		slog.Debug("loaded environment", "keys", applied)
	}
	return applied
}

func main() {
	err := rootCmd.Execute()
	if path := viper.GetString("metrics.textfile"); path != "" {
		if werr := recorder.WriteTextfile(path); werr != nil {
			fmt.Fprintln(os.Stderr, "warning:", werr)
		}
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
