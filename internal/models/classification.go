package models

import "fmt"

// FileType is the coarse file type inferred from a filename extension.
type FileType string

const (
	FileTypePDF     FileType = "pdf"
	FileTypeCSV     FileType = "csv"
	FileTypeExcel   FileType = "excel"
	FileTypeUnknown FileType = "unknown"
)

// BankName is the issuing bank inferred from a filename.
type BankName string

const (
	BankSBI     BankName = "sbi"
	BankHDFC    BankName = "hdfc"
	BankICICI   BankName = "icici"
	BankUnknown BankName = "unknown"

	// BankAny matches every bank when registering parsers.
	BankAny BankName = "*"
)

// Classification is the (file type, bank) pair used to select a parser.
type Classification struct {
	FileType FileType `json:"file_type" yaml:"file_type"`
	BankName BankName `json:"bank_name" yaml:"bank_name"`
}

// IsKnownType reports whether the file type was recognized.
func (c Classification) IsKnownType() bool {
	return c.FileType != FileTypeUnknown && c.FileType != ""
}

func (c Classification) String() string {
	return fmt.Sprintf("%s/%s", c.FileType, c.BankName)
}
