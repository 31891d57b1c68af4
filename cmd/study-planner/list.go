// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/study-planner/internal/catalog"
	"github.com/pdiddy/study-planner/internal/pager"
)

var listCmd = &cobra.Command{
	Use:   "list [SUBJECT] [GRADE]",
	Short: "List the books in the catalog",
	Long: `List prints the catalog grouped by grade and subject. SUBJECT and GRADE
narrow the listing. Text output is shown through $STUDY_PAGER
(default "less -R") unless --no-pager is given.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runList,
}

func init() {
	listCmd.Flags().String("format", "text", "output format: text, yaml, or json")
	listCmd.Flags().Bool("no-pager", false, "write straight to stdout")

	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	formatName, _ := cmd.Flags().GetString("format")
	format, err := pager.ParseFormat(formatName)
	if err != nil {
		return err
	}

	filter, err := parseListFilter(args)
	if err != nil {
		return err
	}

	cat, err := catalog.Default()
	if err != nil {
		return err
	}
	listings, err := pager.Build(cat, filter)
	if err != nil {
		return err
	}

	noPager, _ := cmd.Flags().GetBool("no-pager")
	if format != pager.FormatText || noPager {
		return pager.Render(cmd.OutOrStdout(), listings, format)
	}

	var buf bytes.Buffer
	if err := pager.Render(&buf, listings, format); err != nil {
		return err
	}
	return pager.Page(pager.Command(viper.GetString("pager")), &buf, cmd.OutOrStdout())
}

// parseListFilter turns the positional arguments into a listing filter. A
// grade outside the supported set is rejected here, since a zero Grade in
// the filter means "all grades".
func parseListFilter(args []string) (pager.Filter, error) {
	var (
		filter pager.Filter
		err    error
	)
	if len(args) > 0 {
		if filter.Subject, err = catalog.ParseSubject(args[0]); err != nil {
			return filter, err
		}
	}
	if len(args) > 1 {
		if filter.Grade, err = catalog.ParseGrade(args[1]); err != nil {
			return filter, err
		}
		if !filter.Grade.Supported() {
			return filter, &catalog.UnsupportedGradeError{Grade: filter.Grade}
		}
	}
	return filter, nil
}
