// Package invoice maps relevant batch rows onto invoice records.
package invoice

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/yurifrl/invoicer/pkg/models"
)

// MissingRatesError is recorded when either currency of an invoice has no
// usable rate.
const MissingRatesError = "Invoice Total could not be calculated due to missing currency rates"

// Build returns one invoice per row, in row order. The labels row decides
// which column feeds which field.
func Build(labels models.Row, rows []models.Row, rates map[string]float64) []*models.Invoice {
	invoices := make([]*models.Invoice, 0, len(rows))
	for _, row := range rows {
		invoices = append(invoices, buildOne(labels, row, rates))
	}
	return invoices
}

func buildOne(labels, row models.Row, rates map[string]float64) *models.Invoice {
	inv := models.NewInvoice()
	for idx, label := range labels {
		name := label.String()
		value := row.At(idx)

		fieldType, known := models.LookupField(name)
		switch {
		case !known:
			inv.Extra[name] = value.Value()
		case fieldType == models.NumberField:
			if !value.IsNumber() {
				inv.AddError(fmt.Sprintf("Field %s has invalid value: %s", name, value))
				continue
			}
			inv.SetNumber(name, value.Num)
		default:
			inv.SetText(name, textOf(value))
		}
	}

	total, ok := convert(inv.TotalPrice, rates[inv.ItemPriceCurrency], rates[inv.InvoiceCurrency])
	if !ok {
		inv.InvoiceTotal = 0
		inv.AddError(MissingRatesError)
		return inv
	}
	inv.InvoiceTotal = total
	return inv
}

// convert scales amount from one currency to another through their rates.
// A zero rate counts as missing.
func convert(amount, from, to float64) (float64, bool) {
	if from == 0 || to == 0 {
		return 0, false
	}
	total := decimal.NewFromFloat(amount).
		Div(decimal.NewFromFloat(from)).
		Mul(decimal.NewFromFloat(to))
	f, _ := total.Float64()
	return f, true
}

func textOf(c models.Cell) string {
	if c.IsAbsent() {
		return ""
	}
	return c.String()
}
