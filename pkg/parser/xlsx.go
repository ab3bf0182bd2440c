package parser

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
	"github.com/yurifrl/invoicer/pkg/models"
)

// ParseXLSX reads the first sheet of an OOXML workbook. Strings, booleans,
// errors, formula strings and ISO dates become text; numeric cells become
// numbers.
func (p *Parser) ParseXLSX(data []byte) (models.Grid, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("error opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptySheet
	}
	sheet := sheets[0]

	formatted, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("error reading sheet %s: %w", sheet, err)
	}
	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("error reading sheet %s: %w", sheet, err)
	}

	grid := make(models.Grid, len(formatted))
	for r, row := range formatted {
		cells := make(models.Row, len(row))
		for c, text := range row {
			if text == "" {
				continue
			}
			name, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, err
			}
			cellType, err := f.GetCellType(sheet, name)
			if err != nil {
				return nil, fmt.Errorf("error reading cell %s: %w", name, err)
			}
			cells[c] = typedCell(cellType, text, rawAt(raw, r, c))
		}
		grid[r] = cells
	}
	return grid, nil
}

func typedCell(cellType excelize.CellType, text, raw string) models.Cell {
	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString,
		excelize.CellTypeBool, excelize.CellTypeError,
		excelize.CellTypeFormula, excelize.CellTypeDate:
		return models.TextCell(text)
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return models.NumberCell(n)
	}
	return models.TextCell(text)
}

func rawAt(rows [][]string, r, c int) string {
	if r >= len(rows) || c >= len(rows[r]) {
		return ""
	}
	return rows[r][c]
}
