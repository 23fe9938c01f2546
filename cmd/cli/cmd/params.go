// Package cmd - params command
package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"landed-cost/core/engine"
	"landed-cost/core/types"
	"landed-cost/internal/config"
)

var (
	paramsFile   string
	paramsSet    []string
	paramsFormat string
)

// paramsCmd prints the formula parameters a quote would use
var paramsCmd = &cobra.Command{
	Use:   "params",
	Short: "Show resolved formula parameters",
	Long: `Show the formula parameters a quote would use: configured defaults
with any --params file and --set overrides applied.`,
	RunE: runParams,
}

func init() {
	paramsCmd.Flags().StringVar(&paramsFile, "params", "", "formula parameter overrides (.json, .yaml or .hcl)")
	paramsCmd.Flags().StringArrayVar(&paramsSet, "set", nil, "override one parameter, name=value (repeatable)")
	paramsCmd.Flags().StringVarP(&paramsFormat, "format", "f", "cli", "output format (cli, json, yaml)")
}

func runParams(cmd *cobra.Command, args []string) error {
	overrides, err := collectOverrides(paramsFile, paramsSet)
	if err != nil {
		return err
	}

	eng, err := engine.New(config.Get().Formula)
	if err != nil {
		return err
	}
	params, err := eng.ResolveParameters(overrides)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch paramsFormat {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(params)
	case "yaml":
		return yaml.NewEncoder(out).Encode(params)
	case "cli":
		values := params.AsMap()
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		for _, name := range types.ParameterNames() {
			marker := ""
			if _, ok := overrides[name]; ok {
				marker = "*"
			}
			fmt.Fprintf(tw, "%s\t%v\t%s\n", name, values[name], marker)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown output format %q", paramsFormat)
	}
}
