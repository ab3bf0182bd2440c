// Package document turns a raw grid into the layout a monthly invoice batch
// sheet is expected to have: a month cell, a block of currency rates, a
// field-label row and the data rows that follow it.
package document

import (
	"errors"
	"strings"

	"github.com/yurifrl/invoicer/pkg/models"
)

const (
	rateMarker  = "Rate"
	statusReady = "Ready"
)

var (
	ErrNoRateBlock     = errors.New("no currency rate rows")
	ErrRateBlockOffset = errors.New("currency rates do not start on the second row")
	ErrNoFieldLabels   = errors.New("no field label row")
	ErrFieldLabelsGap  = errors.New("field label row does not follow the currency rates")
	ErrNoInvoiceRows   = errors.New("no relevant invoice rows")
)

// IndexedRow is a row together with its position in the grid.
type IndexedRow struct {
	Index int
	Cells models.Row
}

// Document is the parsed layout of a batch sheet. It is produced once by
// Parse and read by everything downstream.
type Document struct {
	MonthCell   models.Cell
	RateRows    []IndexedRow
	FieldLabels models.Row
	FieldIndex  int
	DataRows    []IndexedRow
}

// Parse locates the month cell, the rate rows, the field-label row and the
// relevant invoice rows. It never fails; use Check to find out whether the
// pieces sit where they should.
func Parse(grid models.Grid) *Document {
	g := grid.Normalize()
	doc := &Document{FieldIndex: -1}
	if len(g) > 0 {
		doc.MonthCell = g[0].At(0)
	}

	for i := 1; i < len(g); i++ {
		if isRateRow(g[i]) {
			doc.RateRows = append(doc.RateRows, IndexedRow{Index: i, Cells: g[i]})
		}
	}

	for i, row := range g {
		if row.Full() {
			doc.FieldIndex = i
			doc.FieldLabels = row
			break
		}
	}
	if doc.FieldIndex < 0 {
		return doc
	}

	status := doc.FieldLabels.Index(models.FieldStatus)
	number := doc.FieldLabels.Index(models.FieldInvoiceNumber)
	for i := doc.FieldIndex + 1; i < len(g); i++ {
		if isRelevant(g[i], status, number) {
			doc.DataRows = append(doc.DataRows, IndexedRow{Index: i, Cells: g[i]})
		}
	}
	return doc
}

// Check reports the first structural problem of the document, if any.
// Data rows always follow the field-label row since Parse only looks below it.
func (d *Document) Check() error {
	if len(d.RateRows) == 0 {
		return ErrNoRateBlock
	}
	if d.RateRows[0].Index != 1 {
		return ErrRateBlockOffset
	}
	if d.FieldIndex < 0 {
		return ErrNoFieldLabels
	}
	if d.FieldIndex != d.RateRows[len(d.RateRows)-1].Index+1 {
		return ErrFieldLabelsGap
	}
	if len(d.DataRows) == 0 {
		return ErrNoInvoiceRows
	}
	return nil
}

func (d *Document) Valid() bool {
	return d.Check() == nil
}

// Invoices returns the relevant data rows in grid order.
func (d *Document) Invoices() []models.Row {
	rows := make([]models.Row, len(d.DataRows))
	for i, r := range d.DataRows {
		rows[i] = r.Cells
	}
	return rows
}

func isRateRow(row models.Row) bool {
	for _, c := range row {
		if !c.IsAbsent() && strings.Contains(c.String(), rateMarker) {
			return true
		}
	}
	return false
}

// A row is relevant when its status is Ready or it already carries an
// invoice number. Missing columns never match.
func isRelevant(row models.Row, status, number int) bool {
	if status >= 0 {
		if c := row.At(status); c.IsText() && c.Str == statusReady {
			return true
		}
	}
	return number >= 0 && !row.At(number).IsAbsent()
}
