package commands

import (
	"strconv"

	"chargewatch-backend/services/chargers"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	statusCmd.Flags().Bool("bypass-cache", false, "Force a fresh scrape instead of serving cached records.")
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status [charger id...]",
	Short: "Show the current status of chargers (all of them when no id is given).",
	Run: func(cmd *cobra.Command, args []string) {
		bypass, _ := cmd.Flags().GetBool("bypass-cache")

		var records []chargers.ChargerRecord
		if len(args) == 0 {
			var body struct {
				Records []chargers.ChargerRecord `json:"records"`
			}
			res, err := client().R().
				SetContext(cmd.Context()).
				SetQueryParam("bypassCache", strconv.FormatBool(bypass)).
				SetResult(&body).
				Get("/api/v1/charger-status/all")
			if err != nil {
				fail(err)
			}
			if res.IsError() {
				failRes(res)
			}
			records = body.Records
		} else {
			for _, id := range args {
				var record chargers.ChargerRecord
				res, err := client().R().
					SetContext(cmd.Context()).
					SetQueryParam("chargerId", id).
					SetQueryParam("bypassCache", strconv.FormatBool(bypass)).
					SetResult(&record).
					Get("/api/v1/charger-status")
				if err != nil {
					fail(err)
				}
				if res.IsError() {
					failRes(res)
				}
				records = append(records, record)
			}
		}

		t := newTable()
		t.AppendHeader(table.Row{
			"charger", "status", "location", "power", "price", "updated", "by", "live",
		})
		for _, r := range records {
			t.AppendRow(table.Row{
				r.ChargerID,
				r.StatusText,
				r.Location,
				r.Power,
				r.Price,
				r.LastUpdated.Format("15:04:05"),
				r.UpdatedBy,
				r.IsRealTime,
			})
		}
		t.Render()
	},
}
