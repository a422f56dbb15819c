package cli

import (
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"tax-engine/internal/deadlines"
)

func newDeadlinesCmd(a *app) *cobra.Command {
	var (
		audience string
		on       string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "deadlines",
		Short: "List upcoming filing deadlines, soonest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			aud, err := deadlines.ParseAudience(audience)
			if err != nil {
				return err
			}

			now := time.Now()
			if on != "" {
				now, err = time.ParseInLocation("2006-01-02", on, a.tracker.Location())
				if err != nil {
					return fmt.Errorf("--on must be YYYY-MM-DD: %w", err)
				}
			}

			reminders := a.tracker.Upcoming(now, aud)
			if asJSON {
				b, err := json.MarshalIndent(reminders, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			}
			renderReminders(cmd.OutOrStdout(), reminders)
			return nil
		},
	}

	cmd.Flags().StringVar(&audience, "audience", string(deadlines.Salaried), "salaried or freelancer")
	cmd.Flags().StringVar(&on, "on", "", "evaluate as of this date (YYYY-MM-DD) instead of today")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print reminders as JSON")
	return cmd
}
