package cli

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

func newSlabsCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "slabs",
		Short: "Show the active slab table and regime constants",
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg := a.engine.Regime()
			if asJSON {
				b, err := json.MarshalIndent(reg, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			}
			renderSlabs(cmd.OutOrStdout(), reg)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the regime as JSON")
	return cmd
}
