// Package cmd - quote command
package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"landed-cost/adapters/paramfile"
	"landed-cost/adapters/rates"
	"landed-cost/core/engine"
	"landed-cost/core/output"
	"landed-cost/core/types"
	"landed-cost/internal/config"
	"landed-cost/internal/logging"
)

var (
	quoteName       string
	quotePrice      float64
	quoteCurrency   string
	quoteWeight     float64
	quoteLength     float64
	quoteWidth      float64
	quoteHeight     float64
	quoteRate       float64
	quoteParamsFile string
	quoteSet        []string
	quoteFormat     string
	quoteDetails    bool
)

// quoteCmd represents the quote command
var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Compute the landed price of one item",
	Long: `Compute the landed price of one item.

Formula parameters come from the configuration, then the --params file,
then --set flags, later sources winning. Without --rate the exchange rate is
fetched from the configured rate sources.

Examples:
  landed-cost quote --name Pump --price 1000 --currency KZT --weight 10 \
      --length 400 --width 300 --height 200
  landed-cost quote ... --currency USD --rate 521.6
  landed-cost quote ... --set rate300=170 --set nds=1.12`,
	RunE: runQuote,
}

func init() {
	quoteCmd.Flags().StringVarP(&quoteName, "name", "n", "", "product name [REQUIRED]")
	quoteCmd.Flags().Float64VarP(&quotePrice, "price", "p", 0, "original price [REQUIRED]")
	quoteCmd.Flags().StringVarP(&quoteCurrency, "currency", "c", "KZT", "price currency (KZT, USD, EUR, RUB)")
	quoteCmd.Flags().Float64VarP(&quoteWeight, "weight", "w", 0, "gross weight in kg [REQUIRED]")
	quoteCmd.Flags().Float64Var(&quoteLength, "length", 0, "length in mm [REQUIRED]")
	quoteCmd.Flags().Float64Var(&quoteWidth, "width", 0, "width in mm [REQUIRED]")
	quoteCmd.Flags().Float64Var(&quoteHeight, "height", 0, "height in mm [REQUIRED]")
	quoteCmd.Flags().Float64Var(&quoteRate, "rate", 0, "exchange rate in KZT per unit, skips rate sources")
	quoteCmd.Flags().StringVar(&quoteParamsFile, "params", "", "formula parameter overrides (.json, .yaml or .hcl)")
	quoteCmd.Flags().StringArrayVar(&quoteSet, "set", nil, "override one parameter, name=value (repeatable)")
	quoteCmd.Flags().StringVarP(&quoteFormat, "format", "f", "cli", "output format (cli, json, markdown)")
	quoteCmd.Flags().BoolVarP(&quoteDetails, "details", "d", true, "show delivery legs and calculation steps")

	for _, name := range []string{"name", "price", "weight", "length", "width", "height"} {
		quoteCmd.MarkFlagRequired(name)
	}
}

func runQuote(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := config.Get()

	formatter, err := output.NewRegistry().Get(output.Format(quoteFormat))
	if err != nil {
		return err
	}
	if cli, ok := formatter.(output.CLIFormatter); ok {
		cli.ShowDetails = quoteDetails
		formatter = cli
	}

	overrides, err := collectOverrides(quoteParamsFile, quoteSet)
	if err != nil {
		return err
	}

	item := types.Item{
		Name:          quoteName,
		OriginalPrice: quotePrice,
		Currency:      types.Currency(quoteCurrency).Normalize(),
		WeightKg:      quoteWeight,
		Dimensions:    types.Dimensions{Length: quoteLength, Width: quoteWidth, Height: quoteHeight},
	}

	eng, err := engine.New(cfg.Formula)
	if err != nil {
		return err
	}

	req := engine.QuoteRequest{Item: item, Overrides: overrides}
	if err := eng.Validate(req); err != nil {
		return err
	}

	req.ExchangeRate, err = resolveRate(ctx, cfg, item.Currency, quoteRate)
	if err != nil {
		return err
	}

	result, err := eng.Quote(req)
	if err != nil {
		return err
	}

	logging.Debug("quote computed", logging.ResultFields(result)...)
	return formatter.Render(cmd.OutOrStdout(), result)
}

// collectOverrides merges a parameter file with name=value pairs
func collectOverrides(path string, pairs []string) (types.ParameterOverrides, error) {
	overrides := types.ParameterOverrides{}
	if path != "" {
		fromFile, err := paramfile.LoadFile(path)
		if err != nil {
			return nil, err
		}
		for k, v := range fromFile {
			overrides[k] = v
		}
	}

	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --set %q, expected name=value", pair)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --set %q: %w", pair, err)
		}
		overrides[strings.TrimSpace(name)] = v
	}
	return overrides, nil
}

// resolveRate returns the explicit rate, 1 for KZT, or a fetched rate
func resolveRate(ctx context.Context, cfg *config.Config, currency types.Currency, explicit float64) (float64, error) {
	if currency.IsLocal() {
		return 1, nil
	}
	if explicit > 0 {
		return explicit, nil
	}

	source, closeFn, err := rates.Build(ctx, cfg.Rates)
	if err != nil {
		return 0, err
	}
	defer closeFn()

	start := time.Now()
	result, err := source.Fetch(ctx)
	if err != nil {
		return 0, err
	}
	logging.Debug("exchange rates fetched",
		zap.String("source", result.Source), zap.Duration("took", time.Since(start)))

	return result.Lookup(currency)
}
