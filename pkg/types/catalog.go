// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// Subject identifies one of the fixed catalog subjects. The zero value is
// not a valid subject.
type Subject int

const (
	SubjectMath Subject = iota + 1
	SubjectScience
	SubjectEnglish
	SubjectHistory
	SubjectGeography
	SubjectPolitics
	SubjectHindi
	SubjectSanskrit
	SubjectSocialScience
	SubjectEnvironmentalEducation
	SubjectHealthAndPhysicalEducation
)

// subjectNames maps each subject to its internal symbol and its external
// catalog label. The two differ for Math ("Mathematics").
var subjectNames = map[Subject]struct{ symbol, label string }{
	SubjectMath:                       {"Math", "Mathematics"},
	SubjectScience:                    {"Science", "Science"},
	SubjectEnglish:                    {"English", "English"},
	SubjectHistory:                    {"History", "History"},
	SubjectGeography:                  {"Geography", "Geography"},
	SubjectPolitics:                   {"Politics", "Politics"},
	SubjectHindi:                      {"Hindi", "Hindi"},
	SubjectSanskrit:                   {"Sanskrit", "Sanskrit"},
	SubjectSocialScience:              {"SocialScience", "SocialScience"},
	SubjectEnvironmentalEducation:     {"EnvironmentalEducation", "EnvironmentalEducation"},
	SubjectHealthAndPhysicalEducation: {"HealthAndPhysicalEducation", "HealthAndPhysicalEducation"},
}

// AllSubjects returns every subject in enumeration order.
func AllSubjects() []Subject {
	out := make([]Subject, 0, len(subjectNames))
	for s := SubjectMath; s <= SubjectHealthAndPhysicalEducation; s++ {
		out = append(out, s)
	}
	return out
}

// Valid reports whether s is one of the enumerated subjects.
func (s Subject) Valid() bool {
	_, ok := subjectNames[s]
	return ok
}

// Symbol returns the internal name of the subject (e.g. "Math").
func (s Subject) Symbol() string {
	if n, ok := subjectNames[s]; ok {
		return n.symbol
	}
	return fmt.Sprintf("Subject(%d)", int(s))
}

// Label returns the external catalog label of the subject (e.g. "Mathematics").
func (s Subject) Label() string {
	if n, ok := subjectNames[s]; ok {
		return n.label
	}
	return fmt.Sprintf("Subject(%d)", int(s))
}

// String returns the internal symbol.
func (s Subject) String() string { return s.Symbol() }

// MarshalText encodes the subject as its external label so listings and
// exports use the same names as the catalog payload.
func (s Subject) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid subject %d", int(s))
	}
	return []byte(s.Label()), nil
}

// SubjectFromLabel returns the subject whose external label is exactly label.
func SubjectFromLabel(label string) (Subject, bool) {
	for s, n := range subjectNames {
		if n.label == label {
			return s, true
		}
	}
	return 0, false
}

// Grade is a school grade. Only GradeNine and GradeTen have catalog sections.
type Grade int

const (
	GradeNine Grade = 9
	GradeTen  Grade = 10
)

// SupportedGrades lists the grades the catalog carries, in ascending order.
var SupportedGrades = []Grade{GradeNine, GradeTen}

// Supported reports whether g has a catalog section.
func (g Grade) Supported() bool {
	return g == GradeNine || g == GradeTen
}

// Book is a single catalog entry.
type Book struct {
	// Title is the human-readable name, kept verbatim for display and file naming.
	Title string `json:"title" yaml:"title"`

	// PDFCode is the opaque prefix of the remote document path (e.g. "jesc1").
	PDFCode string `json:"pdf_code" yaml:"pdf_code"`
}

// String returns the title, which is what choosers display.
func (b Book) String() string { return b.Title }

// SubjectBooks holds the books of one subject within one grade, in catalog
// authoring order.
type SubjectBooks struct {
	Books []Book `json:"books" yaml:"books"`
}

// Catalog is the full set of known books, one mapping per supported grade.
// A subject missing from a grade's mapping has no books in that grade.
// A Catalog is never mutated after it is loaded.
type Catalog struct {
	Ninth map[Subject]SubjectBooks `json:"ninth" yaml:"ninth"`
	Tenth map[Subject]SubjectBooks `json:"tenth" yaml:"tenth"`
}
