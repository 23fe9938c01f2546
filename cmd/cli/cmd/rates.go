// Package cmd - rates command
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"landed-cost/adapters/rates"
	"landed-cost/internal/config"
)

var ratesJSON bool

// ratesCmd fetches current exchange rates
var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Fetch current exchange rates from the configured sources",
	RunE:  runRates,
}

func init() {
	ratesCmd.Flags().BoolVar(&ratesJSON, "json", false, "print rates as JSON")
}

func runRates(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	source, closeFn, err := rates.Build(ctx, config.Get().Rates)
	if err != nil {
		return err
	}
	defer closeFn()

	result, err := source.Refresh(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if ratesJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Fprintf(out, "Source: %s (fetched %s)\n\n", result.Source, result.FetchedAt.Format(time.RFC3339))
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, code := range result.Currencies() {
		fmt.Fprintf(tw, "%s\t%.2f KZT\n", code, result.Rates[code])
	}
	return tw.Flush()
}
