package importer

import (
	"io"

	"github.com/kushtati/kushtati-immo/internal/payment"
)

type Format string

const (
	FormatLedgerCSV Format = "csv"
)

type Importer interface {
	Parse(r io.Reader) ([]*payment.Record, error)
}
