package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ridopark/stoxcore/internal/models"
	"github.com/ridopark/stoxcore/internal/registry"
)

var (
	indicatorsCmd = &cobra.Command{
		Use:   "indicators",
		Short: "List and compute technical indicators",
	}

	indicatorsListCmd = &cobra.Command{
		Use:   "list",
		Short: "List every registered indicator and its parameter schema",
		RunE:  runIndicatorsList,
	}

	indicatorsComputeCmd = &cobra.Command{
		Use:   "compute [name]",
		Short: "Compute one indicator against a candle file",
		Long:  `Compute a named indicator (e.g. "RSI(14)", "MACD(12,26,9)") against a JSON array of candles read from --candles.`,
		Args:  cobra.ExactArgs(1),
		RunE:  runIndicatorsCompute,
	}

	candlesFile string
)

func init() {
	indicatorsComputeCmd.Flags().StringVar(&candlesFile, "candles", "", "path to a JSON file containing an array of candles (required)")
	indicatorsComputeCmd.MarkFlagRequired("candles")

	indicatorsCmd.AddCommand(indicatorsListCmd)
	indicatorsCmd.AddCommand(indicatorsComputeCmd)
}

func runIndicatorsList(cmd *cobra.Command, args []string) error {
	entries := registry.Schema()

	if format == "json" {
		return json.NewEncoder(os.Stdout).Encode(entries)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()
	fmt.Fprintln(w, "KIND\tPARAMS")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\n", e.Kind, formatParams(e.Params))
	}
	return nil
}

func formatParams(params []registry.ParamDef) string {
	if len(params) == 0 {
		return "(none)"
	}
	s := ""
	for i, p := range params {
		if i > 0 {
			s += ", "
		}
		s += p.Name
	}
	return s
}

func runIndicatorsCompute(cmd *cobra.Command, args []string) error {
	name := args[0]

	raw, err := os.ReadFile(candlesFile)
	if err != nil {
		return fmt.Errorf("failed to read candles file '%s': %w", candlesFile, err)
	}
	var candles []models.Candle
	if err := json.Unmarshal(raw, &candles); err != nil {
		return fmt.Errorf("failed to parse candles file '%s': %w", candlesFile, err)
	}

	series := models.CandleSeries{Candles: candles}
	if err := series.Validate(); err != nil {
		return fmt.Errorf("invalid candle series: %w", err)
	}

	spec, err := registry.Parse(name)
	if err != nil {
		return fmt.Errorf("invalid indicator name '%s': %w", name, err)
	}

	out, err := registry.Compute(candles, spec)
	if err != nil {
		return fmt.Errorf("failed to compute %s: %w", spec.CanonicalName(), err)
	}

	if format == "json" {
		return json.NewEncoder(os.Stdout).Encode(out)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()
	if out.IsSingle() {
		fmt.Fprintln(w, "INDEX\tVALUE")
		printSeries(w, out.Single)
		return nil
	}
	for _, sub := range out.Names {
		fmt.Fprintf(w, "%s.%s\n", spec.CanonicalName(), sub)
		fmt.Fprintln(w, "INDEX\tVALUE")
		printSeries(w, out.Named[sub])
		fmt.Fprintln(w)
	}
	return nil
}

func printSeries(w *tabwriter.Writer, s models.Series) {
	for i, v := range s {
		if f, ok := v.Get(); ok {
			fmt.Fprintf(w, "%d\t%v\n", i, f)
		} else {
			fmt.Fprintf(w, "%d\t-\n", i)
		}
	}
}
