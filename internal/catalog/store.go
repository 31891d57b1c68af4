// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog loads the embedded textbook catalog and resolves
// subject, grade and title queries against it.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"io"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/study-planner/pkg/types"
)

//go:embed bookcodes.yaml
var embeddedPayload []byte

// rawCatalog mirrors the payload before subject labels are resolved.
type rawCatalog struct {
	Ninth map[string]types.SubjectBooks `yaml:"ninth"`
	Tenth map[string]types.SubjectBooks `yaml:"tenth"`
}

// Load parses the catalog embedded in the binary. A failure here means the
// binary was built with a broken payload; it is never a user error.
func Load() (*types.Catalog, error) {
	return LoadFrom(embeddedPayload)
}

// Default returns the process-wide catalog, loading it on first use.
// Every call returns the same instance and the same error.
var Default = sync.OnceValues(Load)

// LoadFrom parses and validates a catalog payload.
func LoadFrom(data []byte) (*types.Catalog, error) {
	var raw rawCatalog
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, configErrorf(nil, "empty payload")
		}
		return nil, configErrorf(err, "parsing payload")
	}

	if raw.Ninth == nil {
		return nil, configErrorf(nil, "missing section %q", "ninth")
	}
	if raw.Tenth == nil {
		return nil, configErrorf(nil, "missing section %q", "tenth")
	}

	ninth, err := convertSection("ninth", raw.Ninth)
	if err != nil {
		return nil, err
	}
	tenth, err := convertSection("tenth", raw.Tenth)
	if err != nil {
		return nil, err
	}
	return &types.Catalog{Ninth: ninth, Tenth: tenth}, nil
}

// convertSection resolves subject labels and validates every entry of one
// grade section. Titles within a subject must stay distinct after
// normalization so that title lookup has at most one match.
func convertSection(section string, in map[string]types.SubjectBooks) (map[types.Subject]types.SubjectBooks, error) {
	out := make(map[types.Subject]types.SubjectBooks, len(in))
	for label, sb := range in {
		subject, ok := types.SubjectFromLabel(label)
		if !ok {
			return nil, configErrorf(nil, "%s: unknown subject label %q", section, label)
		}
		if len(sb.Books) == 0 {
			return nil, configErrorf(nil, "%s.%s: empty books list", section, label)
		}

		seen := make(map[string]string, len(sb.Books))
		for i, b := range sb.Books {
			if b.Title == "" {
				return nil, configErrorf(nil, "%s.%s.books[%d]: missing title", section, label, i)
			}
			if strings.ContainsAny(b.Title, `/\`) || strings.Contains(b.Title, "..") {
				return nil, configErrorf(nil, "%s.%s.books[%d]: title %q contains a path separator", section, label, i, b.Title)
			}
			if b.PDFCode == "" {
				return nil, configErrorf(nil, "%s.%s.books[%d]: missing pdf_code", section, label, i)
			}
			key := Normalize(b.Title)
			if prev, dup := seen[key]; dup {
				return nil, configErrorf(nil, "%s.%s: titles %q and %q collide", section, label, prev, b.Title)
			}
			seen[key] = b.Title
		}

		books := make([]types.Book, len(sb.Books))
		copy(books, sb.Books)
		out[subject] = types.SubjectBooks{Books: books}
	}
	return out, nil
}
