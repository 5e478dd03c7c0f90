package parser

import (
	"fmt"
	"sort"

	"ledgerlens/ledgerlens/internal/models"
	"ledgerlens/ledgerlens/internal/parsererror"
)

type registryKey struct {
	fileType models.FileType
	bank     models.BankName
}

// Registry maps a file classification to the parser that handles it.
// A parser registered under models.BankAny serves every bank of its file
// type that has no dedicated parser.
type Registry struct {
	parsers map[registryKey]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[registryKey]Parser)}
}

// Register adds a parser for a file type and bank. Panics on duplicate
// registration.
func (r *Registry) Register(fileType models.FileType, bank models.BankName, p Parser) {
	key := registryKey{fileType: fileType, bank: bank}
	if _, ok := r.parsers[key]; ok {
		panic(fmt.Sprintf("duplicate parser registration: %s/%s", fileType, bank))
	}
	r.parsers[key] = p
}

// Lookup returns the parser for a classification. Unknown file types and
// classifications without a registered parser yield an
// *parsererror.UnsupportedFormatError naming filePath.
func (r *Registry) Lookup(filePath string, c models.Classification) (Parser, error) {
	if c.IsKnownType() {
		if p, ok := r.parsers[registryKey{fileType: c.FileType, bank: c.BankName}]; ok {
			return p, nil
		}
		if p, ok := r.parsers[registryKey{fileType: c.FileType, bank: models.BankAny}]; ok {
			return p, nil
		}
	}
	return nil, &parsererror.UnsupportedFormatError{FilePath: filePath, Classification: c}
}

// Supported lists the registered classifications, sorted.
func (r *Registry) Supported() []models.Classification {
	out := make([]models.Classification, 0, len(r.parsers))
	for key := range r.parsers {
		out = append(out, models.Classification{FileType: key.fileType, BankName: key.bank})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].String() < out[j].String()
	})
	return out
}
