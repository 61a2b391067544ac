package commands

import (
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history <charger id>",
	Short: "Show today's status history for a charger.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var body struct {
			ChargerID string `json:"chargerId"`
			Snapshots []struct {
				Time       time.Time `json:"time"`
				Status     string    `json:"status"`
				IsRealTime bool      `json:"isRealTime"`
			} `json:"snapshots"`
		}
		res, err := client().R().
			SetContext(cmd.Context()).
			SetQueryParam("chargerId", args[0]).
			SetResult(&body).
			Get("/api/v1/charger-status/history")
		if err != nil {
			fail(err)
		}
		if res.IsError() {
			failRes(res)
		}

		t := newTable()
		t.AppendHeader(table.Row{"time", "status", "live"})
		for _, snap := range body.Snapshots {
			t.AppendRow(table.Row{
				snap.Time.Format("15:04:05"),
				snap.Status,
				snap.IsRealTime,
			})
		}
		t.Render()
	},
}
