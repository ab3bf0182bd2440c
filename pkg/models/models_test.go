package models

import (
	"encoding/json"
	"testing"
)

func TestCellString(t *testing.T) {
	tests := []struct {
		cell Cell
		want string
	}{
		{TextCell("abc"), "abc"},
		{NumberCell(100), "100"},
		{NumberCell(0.9), "0.9"},
		{NumberCell(-2.5), "-2.5"},
		{Cell{}, "null"},
	}
	for _, tt := range tests {
		if got := tt.cell.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestGridNormalize(t *testing.T) {
	g := Grid{
		{TextCell("Jan 2024")},
		{TextCell("a"), NumberCell(1), TextCell("b")},
		{},
	}
	n := g.Normalize()
	for i, row := range n {
		if len(row) != 3 {
			t.Errorf("row %d: expected width 3, got %d", i, len(row))
		}
	}
	if n[0].Full() {
		t.Error("padded row should not be full")
	}
	if !n[1].Full() {
		t.Error("complete row should be full")
	}
	if n[2].Full() {
		t.Error("empty row should not be full")
	}
	if len(g[0]) != 1 {
		t.Error("Normalize must not modify the original grid")
	}
}

func TestRowHelpers(t *testing.T) {
	r := Row{TextCell("Customer"), Cell{}, TextCell("Status"), NumberCell(3)}
	if r.Index("Status") != 2 {
		t.Errorf("expected Status at 2, got %d", r.Index("Status"))
	}
	if r.Index("Invoice #") != -1 {
		t.Error("expected missing label to be -1")
	}
	if !r.At(10).IsAbsent() || !r.At(-1).IsAbsent() {
		t.Error("out of range cells should be absent")
	}
	if len(r.Compact()) != 3 {
		t.Errorf("expected 3 cells after Compact, got %d", len(r.Compact()))
	}
}

func TestInvoiceJSON(t *testing.T) {
	inv := NewInvoice()
	inv.SetText(FieldCustomer, "Acme")
	inv.SetNumber(FieldQuantity, 2)
	inv.SetText("Region", "North")
	inv.AddError("Field Total Price has invalid value: abc")

	data, err := json.Marshal(inv)
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}

	if got["Customer"] != "Acme" || got["Quantity"] != float64(2) || got["Region"] != "North" {
		t.Errorf("unexpected fields: %s", data)
	}
	if got["Total Price"] != float64(0) || got["Cust No'"] != "" {
		t.Errorf("expected defaults for unset fields: %s", data)
	}
	errs, ok := got["validationErrors"].([]any)
	if !ok || len(errs) != 1 {
		t.Errorf("unexpected validationErrors: %v", got["validationErrors"])
	}
}

func TestFailedReportJSON(t *testing.T) {
	data, err := json.Marshal(Failed("Invalid document structure"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"error":"Invalid document structure"}` {
		t.Errorf("unexpected body: %s", data)
	}
}
