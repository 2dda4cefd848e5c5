// Package output provides output formatting interfaces.
// This package produces human and machine-readable outputs.
package output

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"refining-profit/core/types"
	"refining-profit/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable CLI table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render writes a profit report
	Render(w io.Writer, report *Report) error

	// RenderPrices writes a price listing
	RenderPrices(w io.Writer, prices []types.ItemPrice) error
}

// Report is a selected, ordered set of profitability records
type Report struct {
	// RunID identifies this run
	RunID string `json:"run_id"`

	// GeneratedAt is when the report was produced
	GeneratedAt time.Time `json:"generated_at"`

	// UseFocus records whether focus return rates were applied
	UseFocus bool `json:"use_focus"`

	// Options are the selection options used
	Options Options `json:"options"`

	Rows []types.ProfitView `json:"rows"`
}

// NewReport selects and orders views into a report
func NewReport(views []types.ProfitView, useFocus bool, opts Options) *Report {
	return &Report{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		UseFocus:    useFocus,
		Options:     opts,
		Rows:        Select(views, opts),
	}
}

// ForFormat returns the formatter for a format name
func ForFormat(name string) (Formatter, error) {
	switch Format(name) {
	case FormatCLI, "":
		return CLIFormatter{}, nil
	case FormatJSON:
		return JSONFormatter{Indent: "  "}, nil
	default:
		return nil, errors.Input(fmt.Sprintf("unknown output format %q (want %s or %s)", name, FormatCLI, FormatJSON))
	}
}
