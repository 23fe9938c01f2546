// Package output provides output formatting for pricing results.
// This package produces human and machine-readable outputs.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"landed-cost/core/types"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable CLI table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"

	// FormatMarkdown is a markdown report
	FormatMarkdown Format = "markdown"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render produces output for the given result
	Render(w io.Writer, result *types.PricingResult) error
}

// Registry manages formatter registration
type Registry struct {
	formatters map[Format]Formatter
}

// NewRegistry returns a registry holding the built-in formatters
func NewRegistry() *Registry {
	r := &Registry{formatters: make(map[Format]Formatter)}
	r.Register(CLIFormatter{ShowDetails: true})
	r.Register(JSONFormatter{Indent: true})
	r.Register(MarkdownFormatter{})
	return r
}

// Register adds a formatter, replacing any with the same format
func (r *Registry) Register(formatter Formatter) {
	r.formatters[formatter.Format()] = formatter
}

// Get returns the formatter for a format
func (r *Registry) Get(format Format) (Formatter, error) {
	f, ok := r.formatters[Format(strings.ToLower(string(format)))]
	if !ok {
		return nil, fmt.Errorf("unknown output format %q (available: %s)", format, strings.Join(r.Formats(), ", "))
	}
	return f, nil
}

// Formats lists registered format names
func (r *Registry) Formats() []string {
	names := make([]string, 0, len(r.formatters))
	for f := range r.formatters {
		names = append(names, string(f))
	}
	sort.Strings(names)
	return names
}

// JSONFormatter renders the result as JSON
type JSONFormatter struct {
	Indent bool
}

// Format implements Formatter
func (JSONFormatter) Format() Format { return FormatJSON }

// Render implements Formatter
func (f JSONFormatter) Render(w io.Writer, result *types.PricingResult) error {
	enc := json.NewEncoder(w)
	if f.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(result)
}

// CLIFormatter renders a boxed summary
type CLIFormatter struct {
	// ShowDetails adds delivery legs and the calculation trace
	ShowDetails bool
}

// Format implements Formatter
func (CLIFormatter) Format() Format { return FormatCLI }

const cliRule = "─────────────────────────────────────────────────────────────────────────"

// Render implements Formatter
func (f CLIFormatter) Render(w io.Writer, r *types.PricingResult) error {
	row := func(label, value string) {
		fmt.Fprintf(w, "│ %-50s %20s │\n", truncate(label, 50), value)
	}

	fmt.Fprintln(w, "┌"+cliRule+"┐")
	fmt.Fprintf(w, "│ %-71s │\n", truncate(r.ProductName, 71))
	fmt.Fprintln(w, "├"+cliRule+"┤")
	row("Original price ("+r.Currency.String()+")", r.OriginalPrice.StringFixed(2))
	row("Exchange rate", r.ExchangeRate.String())
	row("Converted price (KZT)", r.ConvertedPrice.StringFixed(2))
	row("Volume (m³)", r.Volume.StringFixed(4))
	row("Billable weight (kg)", r.BillableWeight.StringFixed(2))
	row("Delivery band", r.Band.String())
	row("Delivery cost", r.DeliveryCost.StringFixed(2))

	if f.ShowDetails && r.Band != types.BandA {
		row("  └─ linehaul", fmt.Sprintf("%.2f", r.Legs.Linehaul))
		row("  └─ pickup", fmt.Sprintf("%.2f", r.Legs.Pickup))
		row("  └─ city delivery", fmt.Sprintf("%.2f", r.Legs.CityDelivery))
	}

	row("Price with delivery", r.PriceWithDelivery.StringFixed(2))
	fmt.Fprintln(w, "├"+cliRule+"┤")
	row("FINAL PRICE (KZT)", r.FinalPrice.StringFixed(2))
	fmt.Fprintln(w, "└"+cliRule+"┘")

	if f.ShowDetails {
		fmt.Fprintln(w)
		fmt.Fprintln(w, r.Steps.Step1)
		fmt.Fprintln(w, r.Steps.Step2)
		fmt.Fprintln(w, r.Steps.Step3)
	}
	return nil
}

// MarkdownFormatter renders a markdown table, e.g. for pasting into a quote
type MarkdownFormatter struct{}

// Format implements Formatter
func (MarkdownFormatter) Format() Format { return FormatMarkdown }

// Render implements Formatter
func (MarkdownFormatter) Render(w io.Writer, r *types.PricingResult) error {
	fmt.Fprintf(w, "### %s\n\n", r.ProductName)
	fmt.Fprintln(w, "| Item | Value |")
	fmt.Fprintln(w, "|---|---:|")
	fmt.Fprintf(w, "| Original price | %s %s |\n", r.OriginalPrice.StringFixed(2), r.Currency)
	fmt.Fprintf(w, "| Exchange rate | %s |\n", r.ExchangeRate.String())
	fmt.Fprintf(w, "| Converted price | %s |\n", r.ConvertedPrice.StringFixed(2))
	fmt.Fprintf(w, "| Billable weight | %s kg (band %s) |\n", r.BillableWeight.StringFixed(2), r.Band)
	fmt.Fprintf(w, "| Delivery | %s |\n", r.DeliveryCost.StringFixed(2))
	fmt.Fprintf(w, "| **Final price** | **%s** |\n\n", r.FinalPrice.StringFixed(2))
	fmt.Fprintf(w, "1. %s\n2. %s\n3. %s\n", r.Steps.Step1, r.Steps.Step2, r.Steps.Step3)
	return nil
}

func truncate(s string, maxLen int) string {
	if len([]rune(s)) <= maxLen {
		return s
	}
	return string([]rune(s)[:maxLen-3]) + "..."
}
