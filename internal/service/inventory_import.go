package service

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// importRow is one parsed line of a stock sheet: a product name and the
// quantity the accounting system expects on hand.
type importRow struct {
	Name     string
	Expected int
}

var nameHeaders = []string{"название", "name"}

var expectedHeaders = []string{
	"ост. на складе",
	"остаток на складе",
	"остаток",
	"expected_qty",
	"expected",
}

// parseImportFile sniffs the upload by extension: .xlsx goes through
// excelize, anything else is treated as CSV.
func parseImportFile(filename string, data []byte) ([]importRow, error) {
	if strings.HasSuffix(strings.ToLower(filename), ".xlsx") {
		return parseXLSX(data)
	}
	return parseCSV(data)
}

// parseXLSX reads the first sheet. Row 1 is a title and is skipped; row 2
// holds the column headers; data starts at row 3.
func parseXLSX(data []byte) ([]importRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.New("файл не читается как xlsx")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("в файле нет листов")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, errors.New("в файле нет строки заголовков")
	}

	nameCol, qtyCol := findColumns(rows[1])
	if nameCol < 0 || qtyCol < 0 {
		return nil, errors.New("не найдены колонки «Название» и «Остаток»")
	}

	var out []importRow
	for _, row := range rows[2:] {
		name := cellAt(row, nameCol)
		if name == "" {
			continue
		}
		out = append(out, importRow{
			Name:     name,
			Expected: parseExpected(cellAt(row, qtyCol)),
		})
	}
	return out, nil
}

// parseCSV tries semicolon-delimited first (the common export format here),
// then falls back to comma. The header row is required.
func parseCSV(data []byte) ([]importRow, error) {
	for _, sep := range []rune{';', ','} {
		rows, err := readCSV(data, sep)
		if err != nil {
			continue
		}
		if len(rows) == 0 {
			continue
		}
		nameCol, qtyCol := findColumns(rows[0])
		if nameCol < 0 || qtyCol < 0 {
			continue
		}
		var out []importRow
		for _, row := range rows[1:] {
			name := cellAt(row, nameCol)
			if name == "" {
				continue
			}
			out = append(out, importRow{
				Name:     name,
				Expected: parseExpected(cellAt(row, qtyCol)),
			})
		}
		return out, nil
	}
	return nil, errors.New("не найдены колонки «Название» и «Остаток»")
}

func readCSV(data []byte, sep rune) ([][]string, error) {
	// Excel prepends a UTF-8 BOM to its CSV exports, which would glue onto
	// the first header name.
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = sep
	r.FieldsPerRecord = -1
	var rows [][]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, record)
	}
	return rows, nil
}

func findColumns(header []string) (nameCol, qtyCol int) {
	nameCol, qtyCol = -1, -1
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		for _, n := range nameHeaders {
			if key == n {
				nameCol = i
			}
		}
		for _, e := range expectedHeaders {
			if key == e {
				qtyCol = i
			}
		}
	}
	return nameCol, qtyCol
}

func cellAt(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// parseExpected is forgiving: "5", "5.0" and "5,0" all read as 5, anything
// unparseable reads as zero so junk rows never break the whole import.
func parseExpected(raw string) int {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	if raw == "" {
		return 0
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return int(f)
	}
	return 0
}
