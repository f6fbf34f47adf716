package importer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kushtati/kushtati-immo/internal/importer/ledgercsv"
	"github.com/kushtati/kushtati-immo/internal/payment"
)

type Service struct {
	csvImporter Importer
}

func NewService() *Service {
	return &Service{
		csvImporter: ledgercsv.NewParser(),
	}
}

func (s *Service) Import(format Format, r io.Reader) ([]*payment.Record, error) {
	var importer Importer

	switch format {
	case FormatLedgerCSV:
		importer = s.csvImporter
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}

	return importer.Parse(r)
}

// ImportFile picks the format from the file extension.
func (s *Service) ImportFile(path string) ([]*payment.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening seed file: %w", err)
	}
	defer f.Close()

	format := Format(strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."))

	records, err := s.Import(format, f)
	if err != nil {
		return nil, fmt.Errorf("importing %s: %w", filepath.Base(path), err)
	}

	return records, nil
}
