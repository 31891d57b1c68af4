// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/study-planner/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently downloaded chapters",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of entries")
	historyCmd.Flags().Bool("json", false, "output entries as JSON")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	if !cfg.History.Enabled {
		fmt.Fprintln(cmd.OutOrStdout(), "History is disabled (history.enabled=false).")
		return nil
	}

	store, err := history.Open(cfg.History)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	entries, err := store.List(context.Background(), limit)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatHistory(cmd.OutOrStdout(), entries, jsonOutput)
}

func formatHistory(w io.Writer, entries []history.Entry, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No downloads recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-20s  %-5s  %-14s  %-36s  %-3s  %s\n",
		"Time", "Grade", "Subject", "Title", "Ch", "Location")
	fmt.Fprintln(w, strings.Repeat("-", 110))
	for _, e := range entries {
		title := e.Title
		if len(title) > 36 {
			title = title[:33] + "..."
		}
		fmt.Fprintf(w, "%-20s  %-5d  %-14s  %-36s  %02d   %s\n",
			e.Time.Local().Format("2006-01-02 15:04:05"), int(e.Grade), e.Subject, title, e.Chapter, e.Location)
	}
	return nil
}
