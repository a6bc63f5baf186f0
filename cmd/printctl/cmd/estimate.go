package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"printit-bot/internal/pricing"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type estimateFlags struct {
	preset    string
	overrides []string
	table     string
	strict    bool
	asJSON    bool
}

// optionFlags maps each option flag to its canonical option key.
var optionFlags = []struct {
	name, key, usage string
}{
	{"file", "file", "file name"},
	{"pages", "pages", "page count"},
	{"copies", "copies", "number of copies"},
	{"color", "color", "bw or color"},
	{"sides", "sides", "one or two"},
	{"quality", "quality", "draft, standard or high"},
	{"paper", "paper", "standard, premium or glossy"},
	{"size", "size", "paper size"},
	{"orientation", "orientation", "portrait or landscape"},
	{"binding", "binding", "none, staple, spiral or comb"},
	{"finishing", "finishing", "none, laminate or hole_punch"},
	{"delivery", "delivery", "pickup or delivery"},
}

func newEstimateCmd() *cobra.Command {
	var f estimateFlags
	values := make(map[string]*string, len(optionFlags))

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Price a print job",
		Long: `Price a print job and print the cost breakdown and reward points.

Options not given on the command line keep the order form defaults, or
the preset's values when --preset is set.

Examples:
  printctl estimate --pages 24 --preset report
  printctl estimate --pages 10 --copies 2 --color bw --sides one
  printctl estimate --pages 5 --override deliveryDelivery=60 --delivery delivery`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			given := make(map[string]string)
			for _, of := range optionFlags {
				if cmd.Flags().Changed(of.name) {
					given[of.key] = *values[of.name]
				}
			}
			return runEstimate(cmd.OutOrStdout(), f, given)
		},
	}

	for _, of := range optionFlags {
		values[of.name] = cmd.Flags().String(of.name, "", of.usage)
	}
	cmd.Flags().StringVar(&f.preset, "preset", "", "preset: "+strings.Join(pricing.PresetNames(), ", "))
	cmd.Flags().StringArrayVar(&f.overrides, "override", nil, "price override key=value (repeatable)")
	cmd.Flags().StringVar(&f.table, "table", "", "YAML price table")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "reject unknown option values")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "print the breakdown as JSON")
	return cmd
}

func runEstimate(w io.Writer, f estimateFlags, given map[string]string) error {
	mode := pricing.Lenient
	if f.strict {
		mode = pricing.Strict
	}

	base := pricing.DefaultOptions()
	if f.preset != "" {
		var ok bool
		if base, ok = pricing.ApplyPreset(base, f.preset); !ok {
			return fmt.Errorf("unknown preset %q", f.preset)
		}
	}
	raw := base.Values()
	for k, v := range given {
		raw[k] = v
	}

	opts, err := pricing.ParseOptions(raw, mode)
	if err != nil {
		return err
	}

	table, err := pricing.LoadTable(f.table)
	if err != nil {
		return err
	}

	overrides := pricing.Overrides{}
	for _, kv := range f.overrides {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("override %q is not key=value", kv)
		}
		if err := overrides.Set(k, v); err != nil {
			return err
		}
	}

	q := pricing.Breakdown(opts, table.Apply(overrides))

	if f.asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(q)
	}
	printQuote(w, opts, q)
	return nil
}

func printQuote(w io.Writer, opts pricing.Options, q pricing.Quote) {
	fmt.Fprintf(w, "Job:        %s, %d pages x %d copies\n", opts.FileName, q.Pages, q.Copies)
	fmt.Fprintf(w, "Options:    %s, %s-sided, %s quality, %s paper, binding %s, finishing %s, %s\n",
		opts.ColorMode, opts.Sidedness, opts.PrintQuality, opts.PaperType,
		opts.Binding, opts.Finishing, opts.Delivery)
	fmt.Fprintf(w, "Per page:   %s x %s x %s x %s = %s\n",
		q.PerPageRate, q.SidedFactor, q.QualityFactor, q.PaperFactor, money(q.PageCost))
	fmt.Fprintf(w, "Printing:   %s\n", money(q.CopiesCost))
	fmt.Fprintf(w, "Binding:    %s\n", money(q.BindingCost))
	fmt.Fprintf(w, "Finishing:  %s\n", money(q.FinishingCost))
	fmt.Fprintf(w, "Delivery:   %s\n", money(q.DeliveryCost))
	fmt.Fprintf(w, "Total:      %s\n", money(q.Total))
	fmt.Fprintf(w, "Points:     %v\n", q.Points)
}

func money(d decimal.Decimal) string {
	return "₹" + d.StringFixed(2)
}
