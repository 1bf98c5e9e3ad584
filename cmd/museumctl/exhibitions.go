package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/museum-search/internal/tui"
)

type exhibitionRow struct {
	Exhibition string `json:"exhibition"`
	Collection string `json:"collection"`
	Count      int    `json:"count"`
	Display    string `json:"display"`
}

func newExhibitionsCmd(c *cli) *cobra.Command {
	var (
		topK   int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "exhibitions",
		Short: "List the exhibitions with the most catalog records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, cleanup, err := c.load(cmd.Context())
			defer cleanup()
			if err != nil {
				return err
			}

			groups, err := a.TopExhibitions(cmd.Context(), topK)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !asJSON {
				fmt.Fprint(out, tui.RenderExhibitions(groups, a.Display))
				return nil
			}
			rows := make([]exhibitionRow, len(groups))
			for i, g := range groups {
				rows[i] = exhibitionRow{
					Exhibition: g.Exhibition(), Collection: g.Collection(),
					Count: g.Count(), Display: a.Display(g),
				}
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(rows)
		},
	}

	cmd.Flags().IntVarP(&topK, "top-k", "k", 0, "number of exhibitions (default: search.default_top_k)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}
