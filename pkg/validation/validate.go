// Package validation assembles the report returned for an uploaded batch.
package validation

import (
	"github.com/yurifrl/invoicer/pkg/document"
	"github.com/yurifrl/invoicer/pkg/invoice"
	"github.com/yurifrl/invoicer/pkg/models"
)

const (
	ErrInvalidStructure = "Invalid document structure"
	ErrMonthMismatch    = "Value of invoicingMonth doesn't match the invoicing month in the file"
)

// Validate checks the grid layout and the invoicing month, then builds the
// invoices. Findings are reported in the returned report, never as errors.
func Validate(grid models.Grid, invoicingMonth string) *models.Report {
	doc := document.Parse(grid)
	if !doc.Valid() {
		return models.Failed(ErrInvalidStructure)
	}

	month, err := doc.Month()
	if err != nil {
		return models.Failed(ErrInvalidStructure)
	}
	requested, err := document.ParseMonth(invoicingMonth)
	if err != nil || !requested.Equal(month) {
		return models.Failed(ErrMonthMismatch)
	}

	rates := doc.CurrencyRates()
	return &models.Report{
		InvoicingMonth: month.Format(document.MonthLayout),
		CurrencyRates:  rates,
		Invoices:       invoice.Build(doc.FieldLabels, doc.Invoices(), rates),
	}
}
