// Package spreadsheet reads and writes the Excel workbooks used by the bulk
// import/export endpoints. Only the first sheet of a workbook is considered;
// the first row is the header row.
package spreadsheet

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Sheet is the tabular content of the first worksheet.
type Sheet struct {
	headers []string
	byName  map[string]int
	rows    [][]string
}

// Open parses workbook bytes. It fails on non-Excel payloads, workbooks
// without sheets and sheets without a header row.
func Open(data []byte) (*Sheet, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("abrir libro excel: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("el libro no contiene hojas")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("leer hoja %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("la hoja %q esta vacia", sheets[0])
	}

	headers := rows[0]
	byName := make(map[string]int, len(headers))
	for i, h := range headers {
		key := NormalizeHeader(h)
		if key == "" {
			continue
		}
		if _, dup := byName[key]; !dup {
			byName[key] = i
		}
	}

	return &Sheet{headers: headers, byName: byName, rows: rows[1:]}, nil
}

// Column resolves a normalized header name to its index.
func (s *Sheet) Column(normalized string) (int, bool) {
	i, ok := s.byName[normalized]
	return i, ok
}

// RowCount is the number of data rows (header excluded).
func (s *Sheet) RowCount() int {
	return len(s.rows)
}

// Cell returns the trimmed cell at (data row, column); out-of-range reads
// return the empty string, matching how Excel trims trailing blanks.
func (s *Sheet) Cell(row, col int) string {
	if row < 0 || row >= len(s.rows) || col < 0 || col >= len(s.rows[row]) {
		return ""
	}
	return strings.TrimSpace(s.rows[row][col])
}

// RowIsEmpty reports whether every cell of a data row is blank.
func (s *Sheet) RowIsEmpty(row int) bool {
	if row < 0 || row >= len(s.rows) {
		return true
	}
	for _, cell := range s.rows[row] {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// SpreadsheetRow converts a zero-based data row index to the 1-indexed row
// number the user sees in Excel (one header row above the data).
func SpreadsheetRow(dataIndex int) int {
	return dataIndex + 2
}

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeHeader canonicalizes a column title for matching: trim, collapse
// internal whitespace, lowercase and strip diacritics. "Número  Club " and
// "numero club" normalize identically.
func NormalizeHeader(h string) string {
	h = strings.Join(strings.Fields(h), " ")
	h = strings.ToLower(h)
	if out, _, err := transform.String(stripAccents, h); err == nil {
		h = out
	}
	return h
}

// Build produces workbook bytes with one sheet holding a header row followed
// by the given rows. The inverse of Open for export round trips.
func Build(sheetName string, headers []string, rows [][]any) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const defaultSheet = "Sheet1"
	if sheetName != "" && sheetName != defaultSheet {
		if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
			return nil, fmt.Errorf("renombrar hoja: %w", err)
		}
	} else {
		sheetName = defaultSheet
	}

	headerRow := make([]any, len(headers))
	for i, h := range headers {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &headerRow); err != nil {
		return nil, fmt.Errorf("escribir cabecera: %w", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("coordenadas de fila %d: %w", i+2, err)
		}
		r := row
		if err := f.SetSheetRow(sheetName, cell, &r); err != nil {
			return nil, fmt.Errorf("escribir fila %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serializar libro: %w", err)
	}
	return buf.Bytes(), nil
}
