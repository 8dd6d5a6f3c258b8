package spreadsheet

import (
	"encoding/json"
	"io"
	"math"
	"strconv"

	"github.com/xuri/excelize/v2"
)

type CellKind int

const (
	KindEmpty CellKind = iota
	KindNumber
	KindText
)

// Cell is one typed spreadsheet value: a number, a text string or empty.
// Sheets have no fixed schema, so every value goes through this union.
type Cell struct {
	Kind   CellKind
	Number float64
	Text   string
}

func NumberCell(v float64) Cell { return Cell{Kind: KindNumber, Number: v} }
func TextCell(s string) Cell    { return Cell{Kind: KindText, Text: s} }

func (c Cell) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case KindNumber:
		return json.Marshal(c.Number)
	case KindText:
		return json.Marshal(c.Text)
	default:
		return []byte("null"), nil
	}
}

// String returns the display form of the cell, used for chart labels.
func (c Cell) String() string {
	switch c.Kind {
	case KindNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case KindText:
		return c.Text
	default:
		return ""
	}
}

// Row maps column names to cell values. Blank cells are omitted, so a
// missing key reads back as the zero Cell (KindEmpty).
type Row map[string]Cell

// Headers reads only the first row of the first sheet.
func Headers(r io.Reader) ([]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := firstSheetRows(f)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	return rows[0], nil
}

// Parse materializes the whole first sheet: the first row becomes the
// column list and every following non-blank row becomes a Row keyed by
// those columns. An empty sheet yields empty columns and rows, not an
// error.
func Parse(r io.Reader) ([]string, []Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	raw, err := firstSheetRows(f)
	if err != nil {
		return nil, nil, err
	}
	if len(raw) == 0 {
		return []string{}, []Row{}, nil
	}

	columns := raw[0]
	rows := make([]Row, 0, len(raw)-1)
	for _, line := range raw[1:] {
		row := make(Row, len(columns))
		for i, col := range columns {
			if col == "" || i >= len(line) || line[i] == "" {
				continue
			}
			row[col] = parseCell(line[i])
		}
		if len(row) == 0 {
			continue
		}
		rows = append(rows, row)
	}

	return columns, rows, nil
}

func firstSheetRows(f *excelize.File) ([][]string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	return f.GetRows(sheets[0])
}

func parseCell(s string) Cell {
	// ParseFloat accepts "NaN" and "Inf", neither of which survives
	// json.Marshal or histogram arithmetic. Keep those as text.
	if n, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(n) && !math.IsInf(n, 0) {
		return NumberCell(n)
	}
	return TextCell(s)
}
