package models

import "encoding/json"

// Report is the outcome of validating one batch sheet: either Error is set,
// or the month, the rates and the invoices are.
type Report struct {
	Error          string
	InvoicingMonth string
	CurrencyRates  map[string]float64
	Invoices       []*Invoice
}

// Failed builds an error-only report.
func Failed(msg string) *Report {
	return &Report{Error: msg}
}

func (r *Report) OK() bool {
	return r.Error == ""
}

type errorBody struct {
	Error string `json:"error" yaml:"error"`
}

type reportBody struct {
	InvoicingMonth string             `json:"InvoicingMonth" yaml:"InvoicingMonth"`
	CurrencyRates  map[string]float64 `json:"currencyRates" yaml:"currencyRates"`
	InvoicesData   []*Invoice         `json:"invoicesData" yaml:"invoicesData"`
}

func (r *Report) body() interface{} {
	if !r.OK() {
		return errorBody{Error: r.Error}
	}
	rates := r.CurrencyRates
	if rates == nil {
		rates = map[string]float64{}
	}
	invoices := r.Invoices
	if invoices == nil {
		invoices = []*Invoice{}
	}
	return reportBody{InvoicingMonth: r.InvoicingMonth, CurrencyRates: rates, InvoicesData: invoices}
}

func (r *Report) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.body())
}

func (r *Report) MarshalYAML() (interface{}, error) {
	return r.body(), nil
}
