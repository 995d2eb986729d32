package excel

import (
	"io"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"kastelo.dev/compressxml"
)

const (
	minColWidth = 8
	maxColWidth = 60
)

// ConvertXLSX reads a COMPRESS report and returns the converted workbook.
// Nothing is produced for malformed input.
func ConvertXLSX(r io.Reader) ([]byte, error) {
	root, err := compressxml.Parse(r)
	if err != nil {
		return nil, err
	}
	return WorkbookXLSX(compressxml.Convert(root))
}

// WorkbookXLSX writes one worksheet per sheet, in order. Names longer than
// Excel allows are cut; a name that then repeats an earlier one writes over
// that worksheet.
func WorkbookXLSX(sheets []compressxml.Sheet) ([]byte, error) {
	xlsx := excelize.NewFile()
	defer xlsx.Close()

	_ = xlsx.SetAppProps(&excelize.AppProperties{
		Application: "kastelo.dev/compressxml",
	})

	first := xlsx.GetSheetName(xlsx.GetActiveSheetIndex())
	for i, sh := range sheets {
		name := SheetName(sh.Name)
		if i == 0 {
			if err := xlsx.SetSheetName(first, name); err != nil {
				return nil, err
			}
		} else if _, err := xlsx.NewSheet(name); err != nil {
			return nil, err
		}
		if err := writeSheet(xlsx, name, sh); err != nil {
			return nil, err
		}
	}

	xlsx.SetActiveSheet(0)

	buf, err := xlsx.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SheetName cuts name to the worksheet name limit.
func SheetName(name string) string {
	if utf8.RuneCountInString(name) <= excelize.MaxSheetNameLength {
		return name
	}
	return string([]rune(name)[:excelize.MaxSheetNameLength])
}

func writeSheet(xlsx *excelize.File, sheet string, sh compressxml.Sheet) error {
	if len(sh.Header) == 0 {
		return nil
	}

	widths := make([]int, len(sh.Header))
	fit := func(values []string) {
		for i, v := range values {
			if i < len(widths) {
				widths[i] = max(widths[i], utf8.RuneCountInString(v)+2)
			}
		}
	}

	if err := setRow(xlsx, sheet, 1, sh.Header); err != nil {
		return err
	}
	fit(sh.Header)
	for i, row := range sh.Rows {
		if err := setRow(xlsx, sheet, i+2, row); err != nil {
			return err
		}
		fit(row)
	}

	lastHeader, err := excelize.CoordinatesToCellName(len(sh.Header), 1)
	if err != nil {
		return err
	}
	style, _ := xlsx.NewStyle(mergeStyles(defaultStyle(), fontBold(), headerFill(), thinBorder("bottom")))
	_ = xlsx.SetCellStyle(sheet, "A1", lastHeader, style)

	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		_ = xlsx.SetColWidth(sheet, col, col, float64(min(max(w, minColWidth), maxColWidth)))
	}

	_ = xlsx.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
	return nil
}

func setRow(xlsx *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return xlsx.SetSheetRow(sheet, cell, &values)
}
