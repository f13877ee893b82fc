package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"finitefield.org/hanko-blocks/internal/quote"
)

type summaryFlags struct {
	file     string
	taxRate  string
	shipping string
	discount string
	asJSON   bool
}

func (a *app) summaryCmd() *cobra.Command {
	var f summaryFlags

	cmd := &cobra.Command{
		Use:   "summary -f items.yaml",
		Short: "Compute an order summary from a YAML or JSON line-item file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := readRequest(cmd.InOrStdin(), f.file)
			if err != nil {
				return err
			}
			if err := f.apply(&req); err != nil {
				return err
			}
			if a.currency != "" {
				req.Currency = a.currency
			}
			if a.lang != "" {
				req.Lang = a.lang
			}

			l, err := a.locale()
			if err != nil {
				return err
			}
			calc, err := quote.NewCalculator(quote.Defaults{Currency: l.Currency, Lang: l.Lang})
			if err != nil {
				return err
			}
			q, err := calc.Compute(cmd.Context(), req)
			if err != nil {
				if code, field, index, ok := quote.ErrorCode(err); ok {
					if index >= 0 {
						return fmt.Errorf("%s: items[%d].%s: %w", code, index, field, err)
					}
					return fmt.Errorf("%s: %s: %w", code, field, err)
				}
				return err
			}

			if f.asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(q)
			}
			return writeQuote(cmd.OutOrStdout(), q)
		},
	}
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "line-item file, or - for stdin")
	cmd.Flags().StringVar(&f.taxRate, "tax-rate", "", "tax rate in percent, e.g. 8.25")
	cmd.Flags().StringVar(&f.shipping, "shipping", "", "flat shipping amount in major units")
	cmd.Flags().StringVar(&f.discount, "discount", "", "discount percentage")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "print the summary as JSON")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// apply overrides file options with any flags that were set.
func (f summaryFlags) apply(req *quote.Request) error {
	set := func(flag, value string, dst *decimal.Decimal) error {
		if value == "" {
			return nil
		}
		d, err := decimal.NewFromString(value)
		if err != nil {
			return fmt.Errorf("--%s: %q is not a number", flag, value)
		}
		*dst = d
		return nil
	}
	if err := set("tax-rate", f.taxRate, &req.Options.TaxRate); err != nil {
		return err
	}
	if err := set("shipping", f.shipping, &req.Options.Shipping); err != nil {
		return err
	}
	return set("discount", f.discount, &req.Options.DiscountPercentage)
}

// readRequest decodes a YAML document, which also accepts JSON input.
func readRequest(stdin io.Reader, path string) (quote.Request, error) {
	var r io.Reader = stdin
	if path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return quote.Request{}, err
		}
		defer file.Close()
		r = file
	}

	var req quote.Request
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return req, nil
		}
		return quote.Request{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return req, nil
}

func writeQuote(w io.Writer, q quote.Quote) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "#\tITEM\tQTY\tUNIT\tTOTAL\t")
	for _, line := range q.Lines {
		name := line.Description
		if name == "" {
			name = line.ID
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\t\n", line.Index+1, name, line.Quantity, line.UnitPrice.Formatted, line.LineTotal.Formatted)
	}
	fmt.Fprintln(tw, "\t\t\t\t\t")
	rows := []struct {
		label  string
		amount quote.Amount
		always bool
	}{
		{"Subtotal", q.Subtotal, true},
		{"Discount", q.Discount, false},
		{"Shipping", q.Shipping, false},
		{"Tax", q.Tax, false},
		{"Total", q.Total, true},
	}
	for _, row := range rows {
		if !row.always && row.amount.Minor == 0 {
			continue
		}
		value := row.amount.Formatted
		if row.label == "Discount" {
			value = "-" + value
		}
		fmt.Fprintf(tw, "\t%s\t\t\t%s\t\n", row.label, value)
	}
	fmt.Fprintf(tw, "\tItems\t%d\t\t\t\n", q.ItemCount)
	return tw.Flush()
}
