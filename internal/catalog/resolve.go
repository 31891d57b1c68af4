// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/pdiddy/study-planner/pkg/types"
)

// section returns the subject mapping for grade.
func section(c *types.Catalog, grade types.Grade) (map[types.Subject]types.SubjectBooks, error) {
	switch grade {
	case types.GradeNine:
		return c.Ninth, nil
	case types.GradeTen:
		return c.Tenth, nil
	default:
		return nil, &UnsupportedGradeError{Grade: grade}
	}
}

// BooksFor returns the books offered for subject in grade, in catalog order.
// The returned slice is a copy; callers may modify it freely.
func BooksFor(c *types.Catalog, subject types.Subject, grade types.Grade) ([]types.Book, error) {
	m, err := section(c, grade)
	if err != nil {
		return nil, err
	}
	sb, ok := m[subject]
	if !ok || len(sb.Books) == 0 {
		return nil, &BookNotFoundError{Subject: subject, Grade: grade}
	}
	return slices.Clone(sb.Books), nil
}

// Subjects returns the subjects that have books in grade, in enumeration order.
func Subjects(c *types.Catalog, grade types.Grade) ([]types.Subject, error) {
	m, err := section(c, grade)
	if err != nil {
		return nil, err
	}
	var out []types.Subject
	for _, s := range types.AllSubjects() {
		if sb, ok := m[s]; ok && len(sb.Books) > 0 {
			out = append(out, s)
		}
	}
	return out, nil
}

// FindByTitle returns the first book whose normalized title equals the
// normalized query.
func FindByTitle(books []types.Book, title string) (types.Book, error) {
	want := Normalize(title)
	for _, b := range books {
		if Normalize(b.Title) == want {
			return b, nil
		}
	}
	return types.Book{}, &TitleNotFoundError{Title: title}
}

var titleSeparators = strings.NewReplacer(" ", "", "-", "", "_", "")

// Normalize folds s to its lookup key: NFKC-normalized, lowercased, with
// spaces, hyphens and underscores removed.
func Normalize(s string) string {
	s = norm.NFKC.String(s)
	s = cases.Lower(language.Und).String(s)
	return titleSeparators.Replace(s)
}

// ParseSubject resolves user input to a subject. Both the internal symbol
// ("Math", "social-science") and the catalog label ("Mathematics") are
// accepted, compared under Normalize.
func ParseSubject(input string) (types.Subject, error) {
	key := Normalize(strings.TrimSpace(input))
	if key != "" {
		for _, s := range types.AllSubjects() {
			if key == Normalize(s.Symbol()) || key == Normalize(s.Label()) {
				return s, nil
			}
		}
	}
	names := make([]string, 0, len(types.AllSubjects()))
	for _, s := range types.AllSubjects() {
		names = append(names, s.Symbol())
	}
	return 0, fmt.Errorf("%w %q (valid: %s)", ErrUnknownSubject, input, strings.Join(names, ", "))
}

// ParseGrade parses user input as a grade number. Whether the grade is
// supported is decided by BooksFor.
func ParseGrade(input string) (types.Grade, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, fmt.Errorf("invalid grade %q: %w", input, err)
	}
	return types.Grade(n), nil
}
