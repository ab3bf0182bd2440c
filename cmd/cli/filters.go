package main

import (
	"strings"

	"github.com/yurifrl/invoicer/pkg/csv"
	"github.com/yurifrl/invoicer/pkg/models"
)

type filters struct {
	customer   string
	status     string
	onlyErrors bool
}

func (f *filters) toFilterFunc() csv.FilterFunc {
	return func(inv *models.Invoice) bool {
		if f.onlyErrors && !csv.WithErrors(inv) {
			return false
		}
		if f.customer != "" && !strings.Contains(strings.ToLower(inv.Customer), strings.ToLower(f.customer)) {
			return false
		}
		if f.status != "" && !strings.EqualFold(inv.Status, f.status) {
			return false
		}
		return true
	}
}

// apply narrows the invoices of a successful report in place.
func (f *filters) apply(report *models.Report) {
	if !report.OK() {
		return
	}
	keep := f.toFilterFunc()
	out := report.Invoices[:0]
	for _, inv := range report.Invoices {
		if keep(inv) {
			out = append(out, inv)
		}
	}
	report.Invoices = out
}
