package pdfparser

import (
	"fmt"

	"github.com/ledongthuc/pdf"
)

// TableExtractor turns a PDF statement into table rows, one []string of cell
// texts per row, across all pages.
type TableExtractor interface {
	ExtractRows(pdfPath string) ([][]string, error)
}

// LibraryExtractor implements TableExtractor with github.com/ledongthuc/pdf.
// Text runs are grouped into lines by their Y coordinate and split into
// columns anchored on the statement's header line.
type LibraryExtractor struct{}

// NewLibraryExtractor creates a new LibraryExtractor instance.
func NewLibraryExtractor() *LibraryExtractor {
	return &LibraryExtractor{}
}

// ExtractRows reads every page of the PDF at pdfPath.
func (e *LibraryExtractor) ExtractRows(pdfPath string) (rows [][]string, err error) {
	// The library panics on some malformed documents.
	defer func() {
		if r := recover(); r != nil {
			rows = nil
			err = fmt.Errorf("PDF library crashed: %v", r)
		}
	}()

	f, r, err := pdf.Open(pdfPath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	numPages := r.NumPage()
	if numPages == 0 {
		return nil, fmt.Errorf("PDF has no pages")
	}

	var layout tableLayout
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content := page.Content()
		glyphs := make([]glyph, 0, len(content.Text))
		for _, t := range content.Text {
			glyphs = append(glyphs, glyph{X: t.X, Y: t.Y, W: t.W, FontSize: t.FontSize, S: t.S})
		}
		rows = append(rows, layout.pageRows(glyphs)...)
	}
	return rows, nil
}

// MockExtractor implements TableExtractor for testing purposes.
type MockExtractor struct {
	Rows [][]string
	Err  error
}

// NewMockExtractor creates a new MockExtractor with the given rows.
func NewMockExtractor(rows [][]string, err error) *MockExtractor {
	return &MockExtractor{Rows: rows, Err: err}
}

// ExtractRows returns the predefined rows or error.
func (e *MockExtractor) ExtractRows(string) ([][]string, error) {
	if e.Err != nil {
		return nil, e.Err
	}
	return e.Rows, nil
}
