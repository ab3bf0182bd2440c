package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/yurifrl/invoicer/pkg/csv"
	"github.com/yurifrl/invoicer/pkg/models"
)

type printer struct {
	format string
	w      io.Writer
}

func newPrinter(format string, w io.Writer) (*printer, error) {
	switch format {
	case "json", "yaml", "csv", "text":
		return &printer{format: format, w: w}, nil
	}
	return nil, fmt.Errorf("unknown format %q", format)
}

func (p *printer) print(file string, report *models.Report) error {
	switch p.format {
	case "yaml":
		enc := yaml.NewEncoder(p.w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return err
		}
		return enc.Close()
	case "csv":
		if !report.OK() {
			return fmt.Errorf("%s: %s", file, report.Error)
		}
		data, err := csv.Create(report.Invoices, nil)
		if err != nil {
			return err
		}
		_, err = p.w.Write(data)
		return err
	case "text":
		_, err := io.WriteString(p.w, renderText(file, report))
		return err
	default:
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // red
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))  // gray
)

func renderText(file string, report *models.Report) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(file) + "\n")
	if !report.OK() {
		b.WriteString(errStyle.Render("! "+report.Error) + "\n")
		return b.String()
	}

	rates := make([]string, 0, len(report.CurrencyRates))
	for code, rate := range report.CurrencyRates {
		rates = append(rates, fmt.Sprintf("%s=%g", code, rate))
	}
	sort.Strings(rates)
	b.WriteString(dimStyle.Render(fmt.Sprintf("month %s | rates %s", report.InvoicingMonth, strings.Join(rates, " "))) + "\n")

	for _, inv := range report.Invoices {
		line := fmt.Sprintf("%-30s | %-8s | %12.2f %s", inv.Customer, inv.Status, inv.InvoiceTotal, inv.InvoiceCurrency)
		if len(inv.ValidationErrors) == 0 {
			b.WriteString(okStyle.Render("= "+line) + "\n")
			continue
		}
		b.WriteString(errStyle.Render("x "+line) + "\n")
		for _, msg := range inv.ValidationErrors {
			b.WriteString(errStyle.Render("    - "+msg) + "\n")
		}
	}
	return b.String()
}
