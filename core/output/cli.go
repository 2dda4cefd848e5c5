package output

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"refining-profit/core/types"
)

// CLIFormatter renders fixed-width tables
type CLIFormatter struct{}

// Format returns FormatCLI
func (CLIFormatter) Format() Format { return FormatCLI }

func number(d decimal.Decimal) string {
	return humanize.FormatFloat("#,###.##", d.InexactFloat64())
}

// Render writes one line per record
func (CLIFormatter) Render(w io.Writer, report *Report) error {
	if _, err := fmt.Fprintf(w, "%-20s%20s%20s%20s\n", "Name", "Profit", "Profit / Focus", "Percent Difference"); err != nil {
		return err
	}
	for _, row := range report.Rows {
		_, err := fmt.Fprintf(w, "%-20s%20s%20s%20s\n",
			row.Product.Name,
			number(row.Profit),
			number(row.ProfitPerFocus()),
			number(row.PercentDifference))
		if err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

// RenderPrices writes one line per item price
func (CLIFormatter) RenderPrices(w io.Writer, prices []types.ItemPrice) error {
	if _, err := fmt.Fprintf(w, "%-24s%-16s%14s%14s\n", "Item", "City", "Sell", "Average"); err != nil {
		return err
	}
	for _, p := range prices {
		_, err := fmt.Fprintf(w, "%-24s%-16s%14s%14s\n",
			p.ItemName, p.City, humanize.Comma(p.SellPrice), humanize.Comma(p.AveragePrice))
		if err != nil {
			return err
		}
	}
	return nil
}
