// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pager

import (
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/study-planner/internal/catalog"
	"github.com/pdiddy/study-planner/pkg/types"
)

// Format selects how a listing is rendered.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat validates a format name; empty means text.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatText:
		return FormatText, nil
	case FormatYAML, FormatJSON:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown format %q (text, yaml, json)", s)
	}
}

// Filter narrows a listing. Zero fields match everything.
type Filter struct {
	Subject types.Subject
	Grade   types.Grade
}

// GradeListing is the listing of one grade.
type GradeListing struct {
	Grade    types.Grade      `json:"grade" yaml:"grade"`
	Subjects []SubjectListing `json:"subjects" yaml:"subjects"`
}

// SubjectListing is the listing of one subject within a grade.
type SubjectListing struct {
	Subject types.Subject `json:"subject" yaml:"subject"`
	Books   []types.Book  `json:"books" yaml:"books"`
}

var gradeNames = map[types.Grade]string{
	types.GradeNine: "Ninth",
	types.GradeTen:  "Tenth",
}

// Build collects the catalog entries selected by f, grades ascending and
// subjects in enumeration order.
func Build(c *types.Catalog, f Filter) ([]GradeListing, error) {
	grades := types.SupportedGrades
	if f.Grade != 0 {
		grades = []types.Grade{f.Grade}
	}

	var out []GradeListing
	for _, g := range grades {
		subjects, err := catalog.Subjects(c, g)
		if err != nil {
			return nil, err
		}
		if f.Subject != 0 {
			subjects = []types.Subject{f.Subject}
		}

		gl := GradeListing{Grade: g}
		for _, s := range subjects {
			books, err := catalog.BooksFor(c, s, g)
			if err != nil {
				// A subject filter across all grades tolerates grades
				// without that subject.
				if f.Grade == 0 {
					continue
				}
				return nil, err
			}
			gl.Subjects = append(gl.Subjects, SubjectListing{Subject: s, Books: books})
		}
		if len(gl.Subjects) > 0 {
			out = append(out, gl)
		}
	}

	if len(out) == 0 {
		if f.Subject != 0 {
			return nil, fmt.Errorf("%w: no books for subject %s in any grade", catalog.ErrBookNotFound, f.Subject)
		}
		return nil, fmt.Errorf("%w: catalog is empty", catalog.ErrBookNotFound)
	}
	return out, nil
}

// Render writes listings to w in the given format.
func Render(w io.Writer, listings []GradeListing, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(listings)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(listings); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		return enc.Close()
	default:
		for _, gl := range listings {
			fmt.Fprintln(w, gradeNames[gl.Grade])
			for _, sl := range gl.Subjects {
				fmt.Fprintf(w, "\t%s\n", sl.Subject)
				for _, b := range sl.Books {
					fmt.Fprintf(w, "\t\t%s\n", b.Title)
				}
			}
		}
		return nil
	}
}
