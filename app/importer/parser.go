package importer

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Row maps a header name to the cell value of one spreadsheet line.
type Row map[string]string

// Sheet is the parsed upload: the header list in file order plus one Row per
// data line. Row order follows the file.
type Sheet struct {
	Headers []string
	Rows    []Row
}

// candidate separators for CSV files, tried in order. Ties favor the
// earliest entry.
var csvSeparators = []string{",", ";", "\t"}

// Parse reads an uploaded spreadsheet into a Sheet. The format is chosen by
// the file extension (.csv, .xls, .xlsx).
func Parse(filename string, data []byte) (*Sheet, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return parseCSV(data)
	case ".xlsx":
		return parseXLSX(data)
	case ".xls":
		return parseXLS(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedExtension, filepath.Ext(filename))
	}
}

// parseCSV splits the text with each candidate separator and keeps the
// result with the most non-empty cells. A strict CSV reader is deliberately
// not used: ragged rows are tolerated and short rows are padded with empty
// strings, matching the permissive behavior the import contract promises.
func parseCSV(data []byte) (*Sheet, error) {
	text, err := decodeText(data)
	if err != nil {
		return nil, err
	}

	var best *Sheet
	bestScore := -1
	for _, sep := range csvSeparators {
		sheet := splitCSV(text, sep)
		if sheet == nil {
			continue
		}
		score := countNonEmptyCells(sheet)
		if score > bestScore {
			best = sheet
			bestScore = score
		}
	}

	if best == nil || len(best.Rows) == 0 {
		return nil, ErrEmptyFile
	}
	return best, nil
}

func splitCSV(text, sep string) *Sheet {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) < 2 {
		return nil
	}

	headers := make([]string, 0, 8)
	for _, h := range strings.Split(lines[0], sep) {
		headers = append(headers, cleanCell(h))
	}

	sheet := &Sheet{Headers: headers}
	for _, line := range lines[1:] {
		values := strings.Split(line, sep)
		row := make(Row, len(headers))
		for i, header := range headers {
			if i < len(values) {
				row[header] = cleanCell(values[i])
			} else {
				row[header] = ""
			}
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet
}

// cleanCell trims whitespace and strips quote characters and carriage
// returns, wherever they appear in the cell.
func cleanCell(s string) string {
	s = strings.ReplaceAll(s, `"`, "")
	s = strings.ReplaceAll(s, "\r", "")
	return strings.TrimSpace(s)
}

func countNonEmptyCells(sheet *Sheet) int {
	count := 0
	for _, row := range sheet.Rows {
		for _, v := range row {
			if strings.TrimSpace(v) != "" {
				count++
			}
		}
	}
	return count
}

// decodeText returns the payload as UTF-8 text, falling back to Latin-1 when
// the bytes are not valid UTF-8. Spreadsheets exported from Brazilian office
// software are frequently ISO-8859-1.
func decodeText(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF}) // UTF-8 BOM

	if utf8.Valid(data) {
		return string(data), nil
	}

	decoded, _, err := transform.Bytes(charmap.ISO8859_1.NewDecoder(), data)
	if err != nil {
		return "", fmt.Errorf("%w: unreadable text encoding", ErrUnreadableFile)
	}
	return string(decoded), nil
}

func parseXLSX(data []byte) (*Sheet, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableFile, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableFile, err)
	}

	return sheetFromGrid(rows)
}

func parseXLS(data []byte) (*Sheet, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableFile, err)
	}

	ws := wb.GetSheet(0)
	if ws == nil {
		return nil, ErrEmptyFile
	}

	var grid [][]string
	for i := 0; i <= int(ws.MaxRow); i++ {
		row := ws.Row(i)
		if row == nil {
			grid = append(grid, nil)
			continue
		}
		var cells []string
		for j := 0; j <= row.LastCol(); j++ {
			cells = append(cells, row.Col(j))
		}
		grid = append(grid, cells)
	}

	return sheetFromGrid(grid)
}

// sheetFromGrid converts a raw cell grid into a Sheet keyed by the first
// row. Rows with no non-empty cell are skipped.
func sheetFromGrid(grid [][]string) (*Sheet, error) {
	if len(grid) < 2 {
		return nil, ErrEmptyFile
	}

	var headers []string
	for _, h := range grid[0] {
		headers = append(headers, cleanCell(h))
	}

	sheet := &Sheet{Headers: headers}
	for _, line := range grid[1:] {
		row := make(Row, len(headers))
		empty := true
		for i, header := range headers {
			if header == "" {
				continue
			}
			value := ""
			if i < len(line) {
				value = cleanCell(line[i])
			}
			row[header] = value
			if value != "" {
				empty = false
			}
		}
		if empty {
			continue
		}
		sheet.Rows = append(sheet.Rows, row)
	}

	if len(sheet.Rows) == 0 {
		return nil, ErrEmptyFile
	}
	return sheet, nil
}
