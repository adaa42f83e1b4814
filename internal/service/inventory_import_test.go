package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseExpected(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"5", 5},
		{"5.0", 5},
		{"5,0", 5},
		{" 12 ", 12},
		{"", 0},
		{"мало", 0},
		{"-3", -3},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, parseExpected(c.in), "raw %q", c.in)
	}
}

func TestParseCSVSemicolon(t *testing.T) {
	data := []byte("Название;Ост. на складе\nКола 0.5;12\nЧипсы;3,0\n;\nСнэк;\n")
	rows, err := parseImportFile("stock.csv", data)
	require.NoError(t, err)

	require.Len(t, rows, 3) // the row without a name is dropped
	assert.Equal(t, importRow{Name: "Кола 0.5", Expected: 12}, rows[0])
	assert.Equal(t, importRow{Name: "Чипсы", Expected: 3}, rows[1])
	assert.Equal(t, importRow{Name: "Снэк", Expected: 0}, rows[2])
}

func TestParseCSVStripsBOM(t *testing.T) {
	data := []byte("\xef\xbb\xbfНазвание;Остаток\nКола 0.5;6\n")
	rows, err := parseImportFile("stock.csv", data)
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, importRow{Name: "Кола 0.5", Expected: 6}, rows[0])
}

func TestParseCSVCommaFallback(t *testing.T) {
	data := []byte("name,expected_qty\nКола 0.5,7\n")
	rows, err := parseImportFile("stock.csv", data)
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, importRow{Name: "Кола 0.5", Expected: 7}, rows[0])
}

func TestParseCSVHeaderVariants(t *testing.T) {
	for _, header := range []string{"Остаток", "Остаток на складе", "Ост. на складе"} {
		data := []byte("Название;" + header + "\nКола 0.5;4\n")
		rows, err := parseImportFile("stock.csv", data)
		require.NoError(t, err, "header %q", header)
		require.Len(t, rows, 1)
		assert.Equal(t, 4, rows[0].Expected)
	}
}

func TestParseCSVMissingColumns(t *testing.T) {
	_, err := parseImportFile("stock.csv", []byte("a;b\n1;2\n"))
	assert.ErrorContains(t, err, "не найдены колонки")
}

func TestParseXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	// Row 1 is the export title and must be skipped.
	require.NoError(t, f.SetCellValue(sheet, "A1", "Остатки на 31.08.2026"))
	require.NoError(t, f.SetCellValue(sheet, "A2", "Название"))
	require.NoError(t, f.SetCellValue(sheet, "B2", "Остаток на складе"))
	require.NoError(t, f.SetCellValue(sheet, "A3", "Кола 0.5"))
	require.NoError(t, f.SetCellValue(sheet, "B3", "12"))
	require.NoError(t, f.SetCellValue(sheet, "A4", "Чипсы"))
	require.NoError(t, f.SetCellValue(sheet, "B4", "5,0"))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	rows, err := parseImportFile("Остатки.xlsx", buf.Bytes())
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, importRow{Name: "Кола 0.5", Expected: 12}, rows[0])
	assert.Equal(t, importRow{Name: "Чипсы", Expected: 5}, rows[1])
}

func TestParseXLSXGarbage(t *testing.T) {
	_, err := parseImportFile("stock.xlsx", []byte("definitely not a zip"))
	assert.ErrorContains(t, err, "не читается")
}
