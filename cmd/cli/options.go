package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ridopark/stoxcore/internal/options"
)

var (
	optionsCmd = &cobra.Command{
		Use:   "options",
		Short: "Price options and run portfolio P&L analysis",
	}

	optionsPriceCmd = &cobra.Command{
		Use:   "price",
		Short: "Run a single-position payoff, P&L, and Greeks analysis",
		Long:  `Computes a position's P&L curve across an underlying-price grid plus its Black-Scholes Greeks at a given spot.`,
		RunE:  runOptionsPrice,
	}

	optType      string
	strike       float64
	quantity     int
	entryPrice   float64
	daysToExpiry int
	pricesFlag   string
	volatility   float64
	riskFreeRate float64
	spot         float64
)

func init() {
	optionsPriceCmd.Flags().StringVar(&optType, "type", "call", "option type (call, put)")
	optionsPriceCmd.Flags().Float64Var(&strike, "strike", 0, "strike price (required)")
	optionsPriceCmd.Flags().IntVar(&quantity, "quantity", 1, "signed contract quantity, negative is short")
	optionsPriceCmd.Flags().Float64Var(&entryPrice, "entry", 0, "entry price paid per contract")
	optionsPriceCmd.Flags().IntVar(&daysToExpiry, "dte", 0, "days to expiry")
	optionsPriceCmd.Flags().StringVar(&pricesFlag, "prices", "", "comma-separated underlying-price grid, strictly increasing (required)")
	optionsPriceCmd.Flags().Float64Var(&volatility, "sigma", 0.2, "implied volatility")
	optionsPriceCmd.Flags().Float64Var(&riskFreeRate, "rate", 0.05, "annualized risk-free rate")
	optionsPriceCmd.Flags().Float64Var(&spot, "spot", 0, "current underlying price for Greeks (required)")
	optionsPriceCmd.MarkFlagRequired("strike")
	optionsPriceCmd.MarkFlagRequired("prices")
	optionsPriceCmd.MarkFlagRequired("spot")

	optionsCmd.AddCommand(optionsPriceCmd)
}

func runOptionsPrice(cmd *cobra.Command, args []string) error {
	ot, err := parseOptionType(optType)
	if err != nil {
		return err
	}
	prices, err := parsePriceGrid(pricesFlag)
	if err != nil {
		return err
	}

	position := options.Position{
		Type:         ot,
		Strike:       strike,
		Quantity:     quantity,
		EntryPrice:   entryPrice,
		DaysToExpiry: daysToExpiry,
	}

	results, portfolio, err := options.Analyze([]options.Position{position}, prices, volatility, riskFreeRate, spot)
	if err != nil {
		return fmt.Errorf("options analysis failed: %w", err)
	}
	result := results[0]

	if format == "json" {
		return json.NewEncoder(os.Stdout).Encode(struct {
			Result    options.PositionResult `json:"result"`
			Portfolio options.Portfolio      `json:"portfolio"`
		}{result, portfolio})
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()
	fmt.Fprintln(w, "UNDERLYING\tPNL")
	for i, price := range result.Curve.UnderlyingPrices {
		fmt.Fprintf(w, "%v\t%v\n", price, result.Curve.PnL[i])
	}
	fmt.Fprintln(w)
	if mp, ok := portfolio.MaxProfit.Get(); ok {
		fmt.Fprintf(w, "max_profit\t%v\n", mp)
	} else {
		fmt.Fprintln(w, "max_profit\tunbounded")
	}
	if ml, ok := portfolio.MaxLoss.Get(); ok {
		fmt.Fprintf(w, "max_loss\t%v\n", ml)
	} else {
		fmt.Fprintln(w, "max_loss\tunbounded")
	}
	fmt.Fprintf(w, "break_even\t%v\n", portfolio.BreakEvenPoints)
	g := result.GreeksAtSpot
	fmt.Fprintf(w, "delta\t%v\n", g.Delta)
	fmt.Fprintf(w, "gamma\t%v\n", g.Gamma)
	fmt.Fprintf(w, "theta\t%v\n", g.Theta)
	fmt.Fprintf(w, "vega\t%v\n", g.Vega)
	fmt.Fprintf(w, "rho\t%v\n", g.Rho)
	return nil
}

func parseOptionType(s string) (options.OptionType, error) {
	switch strings.ToLower(s) {
	case "call":
		return options.Call, nil
	case "put":
		return options.Put, nil
	default:
		return 0, fmt.Errorf("invalid option type '%s': must be 'call' or 'put'", s)
	}
}

func parsePriceGrid(s string) ([]float64, error) {
	fields := strings.Split(s, ",")
	prices := make([]float64, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid price '%s' in grid: %w", f, err)
		}
		prices = append(prices, v)
	}
	if len(prices) == 0 {
		return nil, fmt.Errorf("price grid must not be empty")
	}
	return prices, nil
}
