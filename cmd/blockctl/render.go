package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	g "maragu.dev/gomponents"

	"finitefield.org/hanko-blocks/internal/ui"
)

func (a *app) renderCmd() *cobra.Command {
	var output string
	var fragment bool

	cmd := &cobra.Command{
		Use:   "render <id>",
		Short: "Write the standalone HTML of one block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, l, err := a.catalog()
			if err != nil {
				return err
			}
			entry, err := svc.Get(ctx, args[0])
			if err != nil {
				return err
			}
			component, err := svc.Render(ctx, entry.ID)
			if err != nil {
				return err
			}

			node := ui.Embed(ctx, component)
			if !fragment {
				node = ui.Page(ui.PageProps{
					Title: entry.Title,
					Lang:  l.Lang,
					Body:  []g.Node{node},
				})
			}
			var buf bytes.Buffer
			if err := node.Render(&buf); err != nil {
				return fmt.Errorf("render %s: %w", entry.ID, err)
			}

			if output == "" || output == "-" {
				_, err = buf.WriteTo(cmd.OutOrStdout())
				return err
			}
			if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%d bytes)\n", output, buf.Len())
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().BoolVar(&fragment, "fragment", false, "omit the surrounding HTML document")
	return cmd
}
