package commands

import (
	"fmt"

	"chargewatch-backend/services/chargers"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(overrideCmd)
}

var overrideCmd = &cobra.Command{
	Use:   "override <charger id> <status>",
	Short: "Manually override a charger's status (available/charging/maintenance/error/unknown).",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		var body struct {
			Success bool                   `json:"success"`
			Record  chargers.ChargerRecord `json:"record"`
		}
		res, err := client().R().
			SetContext(cmd.Context()).
			SetBody(map[string]string{
				"chargerId": args[0],
				"status":    args[1],
			}).
			SetResult(&body).
			Post("/api/v1/charger-status")
		if err != nil {
			fail(err)
		}
		if res.IsError() {
			failRes(res)
		}

		fmt.Printf(
			"%s is now %q (set by %s at %s)\n",
			body.Record.ChargerID,
			body.Record.StatusText,
			body.Record.UpdatedBy,
			body.Record.LastUpdated.Format("15:04:05"),
		)
	},
}
