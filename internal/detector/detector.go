// Package detector classifies statement files by name.
//
// Classification is purely filename based: the extension selects the file
// type and a substring of the base name selects the bank. File contents are
// never inspected.
package detector

import (
	"path/filepath"
	"strings"

	"ledgerlens/ledgerlens/internal/models"
)

var extensionTypes = map[string]models.FileType{
	".pdf":  models.FileTypePDF,
	".csv":  models.FileTypeCSV,
	".xlsx": models.FileTypeExcel,
	".xls":  models.FileTypeExcel,
}

// bankMarkers is ordered: the first marker found in the name wins.
var bankMarkers = []models.BankName{
	models.BankSBI,
	models.BankHDFC,
	models.BankICICI,
}

// Detect classifies a file from its path. It never fails; unrecognized
// extensions and banks come back as unknown.
func Detect(filePath string) models.Classification {
	name := strings.ToLower(filepath.Base(filePath))

	fileType, ok := extensionTypes[filepath.Ext(name)]
	if !ok {
		fileType = models.FileTypeUnknown
	}

	bank := models.BankUnknown
	for _, marker := range bankMarkers {
		if strings.Contains(name, string(marker)) {
			bank = marker
			break
		}
	}

	return models.Classification{FileType: fileType, BankName: bank}
}
