package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"github.com/luminastudy/studygen/internal/docformat"
)

// fromSpreadsheet extracts tabular text from a modern (.xlsx) workbook:
// one marker line per sheet, then one tab-joined line per row. Rows that
// are entirely blank after joining are dropped; a missing cell serializes
// as an empty string, never a placeholder.
func fromSpreadsheet(data []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return fail(docformat.FormatSpreadsheet, err)
	}
	defer f.Close()

	var b strings.Builder
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return fail(docformat.FormatSpreadsheet, err)
		}
		writeSheet(&b, name, rows)
	}
	return b.String(), nil
}

// fromLegacySpreadsheet handles the BIFF (.xls) workbook family. The
// reader panics on some truncated or corrupt inputs, so the pass runs
// under a recover that converts panics to errors.
func fromLegacySpreadsheet(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = fail(docformat.FormatSpreadsheetLegacy, fmt.Errorf("malformed workbook: %v", r))
		}
	}()
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return fail(docformat.FormatSpreadsheetLegacy, err)
	}
	var b strings.Builder
	for i := 0; i < wb.NumSheets(); i++ {
		sheet := wb.GetSheet(i)
		if sheet == nil {
			continue
		}
		rows := make([][]string, 0, int(sheet.MaxRow)+1)
		for r := 0; r <= int(sheet.MaxRow); r++ {
			row := sheet.Row(r)
			if row == nil {
				rows = append(rows, nil)
				continue
			}
			cells := make([]string, 0, row.LastCol()+1)
			for c := 0; c <= row.LastCol(); c++ {
				cells = append(cells, row.Col(c))
			}
			rows = append(rows, cells)
		}
		writeSheet(&b, sheet.Name, rows)
	}
	return b.String(), nil
}

func writeSheet(b *strings.Builder, name string, rows [][]string) {
	b.WriteString("=== Sheet: ")
	b.WriteString(name)
	b.WriteString(" ===\n")
	for _, cells := range rows {
		line := strings.Join(cells, "\t")
		if strings.TrimSpace(line) == "" {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
}
