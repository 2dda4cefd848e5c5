package output

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"refining-profit/core/types"
	"refining-profit/internal/errors"
)

// SortKey selects the ranking metric
type SortKey string

const (
	SortProfit            SortKey = "profit"
	SortProfitPerFocus    SortKey = "profit_per_focus"
	SortPercentDifference SortKey = "percent_difference"
)

// ParseSortKey validates a sort key name
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(s); k {
	case SortProfit, SortProfitPerFocus, SortPercentDifference:
		return k, nil
	case "":
		return SortProfit, nil
	default:
		return "", errors.Input(fmt.Sprintf("unknown sort key %q", s))
	}
}

// Options controls which records appear in a report and in what order
type Options struct {
	// MaxTier drops products above this tier (0 = keep all)
	MaxTier int `json:"max_tier"`

	// SortBy is the descending ranking metric
	SortBy SortKey `json:"sort_by"`
}

func (k SortKey) value(v types.ProfitView) decimal.Decimal {
	switch k {
	case SortProfitPerFocus:
		return v.ProfitPerFocus()
	case SortPercentDifference:
		return v.PercentDifference
	default:
		return v.Profit
	}
}

// Select filters views by tier and sorts them descending by the chosen metric.
// Ties are broken by product name. The input slice is not modified.
func Select(views []types.ProfitView, opts Options) []types.ProfitView {
	rows := make([]types.ProfitView, 0, len(views))
	for _, v := range views {
		if opts.MaxTier > 0 && v.Product.Tier > opts.MaxTier {
			continue
		}
		rows = append(rows, v)
	}

	key := opts.SortBy
	if key == "" {
		key = SortProfit
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := key.value(rows[i]), key.value(rows[j])
		if !a.Equal(b) {
			return a.GreaterThan(b)
		}
		return rows[i].Product.Name < rows[j].Product.Name
	})
	return rows
}
