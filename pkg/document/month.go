package document

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"

	"github.com/xuri/excelize/v2"

	"github.com/yurifrl/invoicer/pkg/models"
)

// MonthLayout is the canonical invoicing month format.
const MonthLayout = "2006-01"

var (
	namedLayouts   = []string{"Jan 2006", "January 2006"}
	numericLayouts = []string{MonthLayout, "2006-1", "2006-01-02", time.RFC3339}

	// Separators accepted between month and year. Named months end up
	// space separated, numeric ones dash separated.
	namedSeparators   = strings.NewReplacer("-", " ", "/", " ", ".", " ", ",", " ")
	numericSeparators = strings.NewReplacer("/", "-", ".", "-")
)

// ParseMonth reads an invoicing month from text such as "Jan 2024",
// "Jan-2024", "2024-01" or "2024/1". The result is the first day of that
// month in UTC.
func ParseMonth(s string) (time.Time, error) {
	in := strings.TrimSpace(s)
	if in == "" {
		return time.Time{}, fmt.Errorf("invalid month %q", s)
	}

	var text string
	var layouts []string
	if unicode.IsLetter(rune(in[0])) {
		text = strings.Join(strings.Fields(namedSeparators.Replace(in)), " ")
		layouts = namedLayouts
	} else {
		text = numericSeparators.Replace(in)
		layouts = numericLayouts
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, text); err == nil {
			return firstOfMonth(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid month %q", s)
}

// ParseMonthCell reads the month from the top-left cell. Numeric cells are
// Excel serial dates, or YYYY.MM as legacy .xls files render built-in date
// formats.
func ParseMonthCell(c models.Cell) (time.Time, error) {
	switch {
	case c.IsText():
		return ParseMonth(c.Str)
	case c.IsNumber():
		if t, ok := renderedMonth(c.Num); ok {
			return t, nil
		}
		t, err := excelize.ExcelDateToTime(c.Num, false)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid month serial %v: %w", c.Num, err)
		}
		return firstOfMonth(t), nil
	default:
		return time.Time{}, fmt.Errorf("month cell is empty")
	}
}

// Month returns the invoicing month the document declares.
func (d *Document) Month() (time.Time, error) {
	return ParseMonthCell(d.MonthCell)
}

// renderedMonth reads n as YYYY.MM. Serials in that range fall in 1905-1927,
// which no invoicing month does.
func renderedMonth(n float64) (time.Time, bool) {
	year := math.Floor(n)
	month := math.Round((n - year) * 100)
	if year < 1900 || year > 9999 || month < 1 || month > 12 {
		return time.Time{}, false
	}
	if math.Abs((n-year)*100-month) > 1e-6 {
		return time.Time{}, false
	}
	return time.Date(int(year), time.Month(month), 1, 0, 0, 0, 0, time.UTC), true
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
