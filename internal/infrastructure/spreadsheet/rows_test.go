package spreadsheet_test

import (
	"errors"
	"testing"

	domain "github.com/mohammadpnp/candidate-onboarding/internal/domain/onboarding"
	"github.com/mohammadpnp/candidate-onboarding/internal/infrastructure/spreadsheet"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, cells map[string]any, extraSheet bool) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for cell, value := range cells {
		if err := f.SetCellValue("Sheet1", cell, value); err != nil {
			t.Fatalf("set cell %s: %v", cell, err)
		}
	}
	if extraSheet {
		if _, err := f.NewSheet("Ignored"); err != nil {
			t.Fatalf("new sheet: %v", err)
		}
		if err := f.SetCellValue("Ignored", "A1", "Email"); err != nil {
			t.Fatalf("set cell: %v", err)
		}
		if err := f.SetCellValue("Ignored", "A2", "ghost@example.com"); err != nil {
			t.Fatalf("set cell: %v", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func TestDecodeRowsCSV(t *testing.T) {
	t.Parallel()

	data := []byte("\xEF\xBB\xBFName,Email,Password,Credits\nAlice,alice@example.com,p1,5\n,,,\nBob,bob@example.com,p2\n")

	rows, err := spreadsheet.DecodeRows(data, "text/csv")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0]["Name"] != "Alice" || rows[0]["Credits"] != "5" {
		t.Fatalf("unexpected first row: %#v", rows[0])
	}
	if _, ok := rows[1]["Credits"]; ok {
		t.Fatalf("short record must not carry credits: %#v", rows[1])
	}
}

func TestDecodeRowsCSVHeaderOnly(t *testing.T) {
	t.Parallel()

	rows, err := spreadsheet.DecodeRows([]byte("Name,Email,Password\n"), "application/vnd.ms-excel; csv")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected zero rows, got %d", len(rows))
	}

	rows, err = spreadsheet.DecodeRows(nil, "text/csv")
	if err != nil {
		t.Fatalf("expected no error for empty csv, got %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected zero rows, got %d", len(rows))
	}
}

func TestDecodeRowsWorkbookFirstSheet(t *testing.T) {
	t.Parallel()

	data := buildWorkbook(t, map[string]any{
		"A1": "Name", "B1": "EMAIL", "C1": "Password", "D1": "Credits",
		"A2": "Alice", "B2": "alice@example.com", "C2": "p1", "D2": 5,
		"A3": "Bob", "B3": "bob@example.com", "C3": "p2",
	}, true)

	rows, err := spreadsheet.DecodeRows(data, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0]["EMAIL"] != "alice@example.com" || rows[0]["Credits"] != "5" {
		t.Fatalf("unexpected first row: %#v", rows[0])
	}
	for _, row := range rows {
		if row["EMAIL"] == "ghost@example.com" {
			t.Fatal("rows from the second sheet must be ignored")
		}
	}
}

func TestDecodeRowsEmptyWorkbook(t *testing.T) {
	t.Parallel()

	rows, err := spreadsheet.DecodeRows(buildWorkbook(t, nil, false), "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected zero rows, got %d", len(rows))
	}
}

func TestDecodeRowsCorruptWorkbook(t *testing.T) {
	t.Parallel()

	_, err := spreadsheet.DecodeRows([]byte("definitely not a zip archive"), "application/octet-stream")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, domain.ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
}

func TestCodecRowsFromDataURL(t *testing.T) {
	t.Parallel()

	encoded := "data:text/csv;base64," + spreadsheet.EncodePayload([]byte("Email,Name,Password\na@x.com,A,p\n"))

	rows, err := spreadsheet.NewCodec().Rows(domain.File{Encoded: encoded, MediaType: "text/csv", Name: "a.csv"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(rows) != 1 || rows[0]["Email"] != "a@x.com" {
		t.Fatalf("unexpected rows: %#v", rows)
	}
}

func TestDecodePayloadInvalid(t *testing.T) {
	t.Parallel()

	for _, encoded := range []string{"", "data:text/csv,plain", "%%%not-base64%%%"} {
		if _, err := spreadsheet.DecodePayload(encoded); !errors.Is(err, domain.ErrDecode) {
			t.Fatalf("%q: expected ErrDecode, got %v", encoded, err)
		}
	}
}
