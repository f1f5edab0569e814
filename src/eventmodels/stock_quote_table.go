package eventmodels

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// FormatPrice renders a price as "$X.XX".
func FormatPrice(price float64) string {
	return fmt.Sprintf("$%.2f", price)
}

// FormatChangePercent renders a change with an explicit sign, e.g. "+0.50%" or "-0.30%".
func FormatChangePercent(change float64) string {
	if change == 0 {
		change = 0 // drop the sign of -0
	}

	if change >= 0 {
		return fmt.Sprintf("+%.2f%%", change)
	}

	return fmt.Sprintf("%.2f%%", change)
}

func (d *DailyQuotes) String() string {
	display := &strings.Builder{}

	table := tablewriter.NewWriter(display)
	table.SetHeader([]string{"Symbol", "Price", "Change"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	display.WriteString("Daily Quotes:\n")

	for _, q := range d.Items() {
		table.Append([]string{q.Symbol.String(), FormatPrice(q.Price), FormatChangePercent(q.ChangePercent)})
	}

	table.Render()
	return display.String()
}
