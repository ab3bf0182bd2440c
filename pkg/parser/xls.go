package parser

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/extrame/xls"
	"github.com/yurifrl/invoicer/pkg/models"
)

// ParseXLS reads the first sheet of a legacy BIFF workbook. The format hands
// every cell back as text, so text that parses as a number becomes a number.
// Date cells arrive already rendered: a custom date format as RFC 3339 text,
// a built-in one as YYYY.MM (and so as a number).
func (p *Parser) ParseXLS(data []byte) (models.Grid, error) {
	workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("error creating workbook: %w", err)
	}
	if workbook == nil {
		return nil, ErrNoWorkbookStream
	}

	sheet := workbook.GetSheet(0)
	if sheet == nil {
		return nil, ErrEmptySheet
	}

	var grid models.Grid
	for i := 0; i <= int(sheet.MaxRow) && i < maxRows; i++ {
		row := sheetRow(sheet, i)
		if row == nil {
			grid = append(grid, models.Row{})
			continue
		}
		cells := make(models.Row, row.LastCol())
		for c := row.FirstCol(); c < row.LastCol(); c++ {
			cells[c] = textToCell(row.Col(c))
		}
		grid = append(grid, cells)
	}
	return trimTrailingEmpty(grid), nil
}

// sheetRow returns nil for rows the sheet holds no record of. The xls
// package panics on those instead.
func sheetRow(sheet *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return sheet.Row(i)
}

func textToCell(s string) models.Cell {
	if strings.TrimSpace(s) == "" {
		return models.Cell{}
	}
	if n, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		return models.NumberCell(n)
	}
	return models.TextCell(s)
}

func trimTrailingEmpty(grid models.Grid) models.Grid {
	for len(grid) > 0 && len(grid[len(grid)-1].Compact()) == 0 {
		grid = grid[:len(grid)-1]
	}
	return grid
}
