package csv

import (
	"bytes"
	stdcsv "encoding/csv"
	"sort"
	"strconv"
	"strings"

	"github.com/yurifrl/invoicer/pkg/models"
)

type FilterFunc func(*models.Invoice) bool

var header = []string{
	models.FieldCustomer,
	models.FieldCustomerNumber,
	models.FieldProjectType,
	models.FieldQuantity,
	models.FieldPricePerItem,
	models.FieldItemPriceCurrency,
	models.FieldTotalPrice,
	models.FieldInvoiceCurrency,
	models.FieldStatus,
	models.FieldInvoiceTotal,
}

// Create renders invoices as CSV: the fixed fields, then every extra column
// seen in the batch (sorted), then the validation errors joined by "; ".
func Create(invoices []*models.Invoice, filter FilterFunc) ([]byte, error) {
	extras := extraColumns(invoices)

	var buf bytes.Buffer
	w := stdcsv.NewWriter(&buf)
	cols := append(append(append([]string{}, header...), extras...), "Validation Errors")
	if err := w.Write(cols); err != nil {
		return nil, err
	}
	for _, inv := range invoices {
		if filter != nil && !filter(inv) {
			continue
		}
		fields := inv.Fields()
		record := make([]string, 0, len(cols))
		for _, col := range header {
			record = append(record, format(fields[col]))
		}
		for _, col := range extras {
			record = append(record, format(inv.Extra[col]))
		}
		record = append(record, strings.Join(inv.ValidationErrors, "; "))
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// WithErrors keeps only invoices that failed at least one check.
func WithErrors(inv *models.Invoice) bool {
	return len(inv.ValidationErrors) > 0
}

func extraColumns(invoices []*models.Invoice) []string {
	seen := map[string]struct{}{}
	var cols []string
	for _, inv := range invoices {
		for k := range inv.Extra {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			cols = append(cols, k)
		}
	}
	sort.Strings(cols)
	return cols
}

func format(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}
