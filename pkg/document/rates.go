package document

import (
	"strings"

	"github.com/yurifrl/invoicer/pkg/models"
)

const rateSuffix = " Rate"

// CurrencyRates maps each currency code declared in the rate block to its
// rate. Rows that do not reduce to exactly a label and a number are skipped.
func (d *Document) CurrencyRates() map[string]float64 {
	rates := make(map[string]float64, len(d.RateRows))
	for _, r := range d.RateRows {
		code, rate, ok := rateOf(r.Cells)
		if !ok {
			continue
		}
		rates[code] = rate
	}
	return rates
}

// SkippedRateRows returns the grid indexes of rate rows CurrencyRates ignored.
func (d *Document) SkippedRateRows() []int {
	var skipped []int
	for _, r := range d.RateRows {
		if _, _, ok := rateOf(r.Cells); !ok {
			skipped = append(skipped, r.Index)
		}
	}
	return skipped
}

func rateOf(row models.Row) (string, float64, bool) {
	cells := row.Compact()
	if len(cells) != 2 || cells[0].IsNumber() || !cells[1].IsNumber() {
		return "", 0, false
	}
	code := strings.TrimSuffix(cells[0].String(), rateSuffix)
	return code, cells[1].Num, true
}
