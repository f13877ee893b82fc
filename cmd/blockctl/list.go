package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"finitefield.org/hanko-blocks/internal/blocks"
	"finitefield.org/hanko-blocks/internal/catalog"
)

func (a *app) listCmd() *cobra.Command {
	var filter catalog.Filter
	var kind string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, _, err := a.catalog()
			if err != nil {
				return err
			}
			filter.Kind = blocks.Kind(kind)
			entries, err := svc.List(cmd.Context(), filter)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tKIND\tCATEGORY\tTITLE")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.ID, e.Kind, e.Category, e.Title)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&filter.Category, "category", "", "only list entries in this category")
	cmd.Flags().StringVar(&kind, "kind", "", "only list entries of this block kind")
	cmd.Flags().StringVarP(&filter.Query, "query", "q", "", "substring match on id, title and description")
	return cmd
}
