// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"fmt"
	"strings"

	"github.com/pdiddy/study-planner/pkg/types"
)

const (
	// DefaultBaseURL is the document host path chapter codes are appended to.
	DefaultBaseURL = "https://ncert.nic.in/textbook/pdf/"

	docExt = ".pdf"

	minChapter = 1
	maxChapter = 99
)

// ValidateChapter rejects chapters that do not fit in two digits.
func ValidateChapter(chapter int) error {
	if chapter < minChapter || chapter > maxChapter {
		return fmt.Errorf("%w %d: must be between %d and %d", ErrInvalidChapter, chapter, minChapter, maxChapter)
	}
	return nil
}

// ChapterCode joins a pdf code and a two-digit chapter number ("jesc1", 3 -> "jesc103").
func ChapterCode(pdfCode string, chapter int) string {
	return fmt.Sprintf("%s%02d", pdfCode, chapter)
}

// URL returns the remote document location of one chapter of book.
// baseURL must end with a slash.
func URL(baseURL string, book types.Book, chapter int) string {
	return baseURL + ChapterCode(book.PDFCode, chapter) + docExt
}

// FileName returns the local file name of one chapter of book:
// the lowercased title with spaces replaced by underscores, a dash, the
// two-digit chapter and the document extension.
func FileName(book types.Book, chapter int) string {
	stem := strings.ReplaceAll(strings.ToLower(book.Title), " ", "_")
	return fmt.Sprintf("%s-%02d%s", stem, chapter, docExt)
}
