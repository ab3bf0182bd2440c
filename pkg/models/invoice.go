package models

import (
	"encoding/json"
)

// FieldType is the declared semantic type of an invoice field.
type FieldType int

const (
	TextField FieldType = iota
	NumberField
)

// Field labels as they appear in the field-label row of a batch sheet.
const (
	FieldCustomer          = "Customer"
	FieldCustomerNumber    = "Cust No'"
	FieldProjectType       = "Project Type"
	FieldQuantity          = "Quantity"
	FieldPricePerItem      = "Price Per Item"
	FieldItemPriceCurrency = "Item Price Currency"
	FieldTotalPrice        = "Total Price"
	FieldInvoiceCurrency   = "Invoice Currency"
	FieldStatus            = "Status"
	FieldInvoiceTotal      = "Invoice Total"
	FieldInvoiceNumber     = "Invoice #"
)

var invoiceFields = map[string]FieldType{
	FieldCustomer:          TextField,
	FieldCustomerNumber:    TextField,
	FieldProjectType:       TextField,
	FieldQuantity:          NumberField,
	FieldPricePerItem:      NumberField,
	FieldItemPriceCurrency: TextField,
	FieldTotalPrice:        NumberField,
	FieldInvoiceCurrency:   TextField,
	FieldStatus:            TextField,
	FieldInvoiceTotal:      NumberField,
}

// LookupField returns the declared type of a fixed invoice field.
func LookupField(label string) (FieldType, bool) {
	t, ok := invoiceFields[label]
	return t, ok
}

// Invoice is one relevant row of a batch sheet mapped onto the fixed field
// set. Columns outside the fixed set are kept in Extra.
type Invoice struct {
	Customer          string
	CustomerNumber    string
	ProjectType       string
	Quantity          float64
	PricePerItem      float64
	ItemPriceCurrency string
	TotalPrice        float64
	InvoiceCurrency   string
	Status            string
	InvoiceTotal      float64

	Extra            map[string]any
	ValidationErrors []string
}

// NewInvoice returns an invoice with every field at its default.
func NewInvoice() *Invoice {
	return &Invoice{
		Extra:            map[string]any{},
		ValidationErrors: []string{},
	}
}

// AddError records a validation finding on the invoice.
func (i *Invoice) AddError(msg string) {
	i.ValidationErrors = append(i.ValidationErrors, msg)
}

// SetNumber assigns a numeric fixed field. Unknown labels go to Extra.
func (i *Invoice) SetNumber(label string, v float64) {
	switch label {
	case FieldQuantity:
		i.Quantity = v
	case FieldPricePerItem:
		i.PricePerItem = v
	case FieldTotalPrice:
		i.TotalPrice = v
	case FieldInvoiceTotal:
		i.InvoiceTotal = v
	default:
		i.Extra[label] = v
	}
}

// SetText assigns a text fixed field. Unknown labels go to Extra.
func (i *Invoice) SetText(label, v string) {
	switch label {
	case FieldCustomer:
		i.Customer = v
	case FieldCustomerNumber:
		i.CustomerNumber = v
	case FieldProjectType:
		i.ProjectType = v
	case FieldItemPriceCurrency:
		i.ItemPriceCurrency = v
	case FieldInvoiceCurrency:
		i.InvoiceCurrency = v
	case FieldStatus:
		i.Status = v
	default:
		i.Extra[label] = v
	}
}

// Fields flattens the invoice into the label-keyed shape used on the wire.
func (i *Invoice) Fields() map[string]any {
	out := make(map[string]any, len(invoiceFields)+len(i.Extra)+1)
	for k, v := range i.Extra {
		out[k] = v
	}
	out[FieldCustomer] = i.Customer
	out[FieldCustomerNumber] = i.CustomerNumber
	out[FieldProjectType] = i.ProjectType
	out[FieldQuantity] = i.Quantity
	out[FieldPricePerItem] = i.PricePerItem
	out[FieldItemPriceCurrency] = i.ItemPriceCurrency
	out[FieldTotalPrice] = i.TotalPrice
	out[FieldInvoiceCurrency] = i.InvoiceCurrency
	out[FieldStatus] = i.Status
	out[FieldInvoiceTotal] = i.InvoiceTotal

	errs := i.ValidationErrors
	if errs == nil {
		errs = []string{}
	}
	out["validationErrors"] = errs
	return out
}

func (i *Invoice) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.Fields())
}

func (i *Invoice) MarshalYAML() (interface{}, error) {
	return i.Fields(), nil
}
