// Package validation performs cheap sanity checks on statement files before
// they reach a parser.
package validation

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"ledgerlens/ledgerlens/internal/models"
	"ledgerlens/ledgerlens/internal/parsererror"
)

const sniffSize = 512

var (
	magicPDF  = []byte("%PDF-")
	magicXLSX = []byte("PK\x03\x04")
	magicXLS  = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// IsValidPath checks if a given path exists and is a regular file.
func IsValidPath(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("path does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("path %s is not a regular file", path)
	}
	return nil
}

// CheckStatementFile verifies that path is a non-empty regular file whose
// leading bytes match its file type. Content mismatches are reported as
// *parsererror.InvalidFormatError.
func CheckStatementFile(path string, fileType models.FileType) error {
	if err := IsValidPath(path); err != nil {
		return err
	}

	head, err := readHead(path)
	if err != nil {
		return err
	}
	if len(head) == 0 {
		return invalid(path, fileType, head, "file is empty")
	}

	switch fileType {
	case models.FileTypePDF:
		if !bytes.HasPrefix(head, magicPDF) {
			return invalid(path, fileType, head, "missing PDF header")
		}
	case models.FileTypeExcel:
		want := magicXLSX
		if strings.EqualFold(filepath.Ext(path), ".xls") {
			want = magicXLS
		}
		if !bytes.HasPrefix(head, want) {
			return invalid(path, fileType, head, "not a workbook")
		}
	case models.FileTypeCSV:
		if bytes.IndexByte(head, 0) >= 0 {
			return invalid(path, fileType, head, "binary content in text file")
		}
	}
	return nil
}

func readHead(path string) ([]byte, error) {
	f, err := os.Open(path) // #nosec G304 -- path comes from the user or the watched directory
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	head := make([]byte, sniffSize)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return head[:n], nil
}

func invalid(path string, fileType models.FileType, head []byte, msg string) error {
	snippet := head
	if len(snippet) > 16 {
		snippet = snippet[:16]
	}
	return &parsererror.InvalidFormatError{
		FilePath:             path,
		ExpectedFormat:       strings.ToUpper(string(fileType)),
		ActualContentSnippet: fmt.Sprintf("%q", snippet),
		Msg:                  msg,
	}
}
