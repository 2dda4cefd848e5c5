package output

import (
	"encoding/json"
	"io"

	"github.com/shopspring/decimal"

	"refining-profit/core/types"
)

// JSONFormatter renders machine-readable output
type JSONFormatter struct {
	Indent string
}

// Format returns FormatJSON
func (JSONFormatter) Format() Format { return FormatJSON }

// jsonRow adds the derived ranking metric to a record
type jsonRow struct {
	types.ProfitView
	ProfitPerFocus decimal.Decimal `json:"profit_per_focus"`
}

type jsonReport struct {
	*Report
	Rows []jsonRow `json:"rows"`
}

func (f JSONFormatter) encoder(w io.Writer) *json.Encoder {
	enc := json.NewEncoder(w)
	if f.Indent != "" {
		enc.SetIndent("", f.Indent)
	}
	return enc
}

// Render writes the report as a single JSON document
func (f JSONFormatter) Render(w io.Writer, report *Report) error {
	rows := make([]jsonRow, len(report.Rows))
	for i, v := range report.Rows {
		rows[i] = jsonRow{ProfitView: v, ProfitPerFocus: v.ProfitPerFocus()}
	}
	return f.encoder(w).Encode(jsonReport{Report: report, Rows: rows})
}

// RenderPrices writes the prices as a JSON array
func (f JSONFormatter) RenderPrices(w io.Writer, prices []types.ItemPrice) error {
	return f.encoder(w).Encode(prices)
}
