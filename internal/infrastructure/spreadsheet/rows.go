package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	domain "github.com/mohammadpnp/candidate-onboarding/internal/domain/onboarding"
	"github.com/xuri/excelize/v2"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Codec converts uploads to and from the stored payload form and reads their rows.
type Codec struct{}

func NewCodec() *Codec {
	return &Codec{}
}

func (c *Codec) Encode(data []byte) string {
	return EncodePayload(data)
}

func (c *Codec) Payload(file domain.File) ([]byte, error) {
	return DecodePayload(file.Encoded)
}

// Rows decodes the stored payload of file and returns its rows in sheet order.
func (c *Codec) Rows(file domain.File) ([]domain.RawRow, error) {
	data, err := DecodePayload(file.Encoded)
	if err != nil {
		return nil, err
	}
	return DecodeRows(data, file.MediaType)
}

// DecodeRows parses delimited text when mediaType mentions csv and a workbook otherwise.
// Only the first sheet of a workbook is read. The first row supplies column labels.
func DecodeRows(data []byte, mediaType string) ([]domain.RawRow, error) {
	if strings.Contains(strings.ToLower(mediaType), "csv") {
		return decodeCSV(data)
	}
	return decodeWorkbook(data)
}

func decodeCSV(data []byte) ([]domain.RawRow, error) {
	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: read csv: %v", domain.ErrDecode, err)
	}
	return tabulate(records), nil
}

func decodeWorkbook(data []byte) ([]domain.RawRow, error) {
	book, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: open workbook: %v", domain.ErrDecode, err)
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return []domain.RawRow{}, nil
	}

	records, err := book.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %q: %v", domain.ErrDecode, sheets[0], err)
	}
	return tabulate(records), nil
}

// tabulate keys each record by the header row. Blank cells are omitted, blank rows dropped,
// and for repeated headers the first column wins.
func tabulate(records [][]string) []domain.RawRow {
	rows := make([]domain.RawRow, 0)
	if len(records) == 0 {
		return rows
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(h)
	}

	for _, record := range records[1:] {
		row := domain.RawRow{}
		for i, cell := range record {
			if i >= len(headers) || headers[i] == "" {
				continue
			}
			if _, seen := row[headers[i]]; seen {
				continue
			}
			if v := strings.TrimSpace(cell); v != "" {
				row[headers[i]] = v
			}
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	return rows
}
