package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(chargersCmd)
}

var chargersCmd = &cobra.Command{
	Use:   "chargers <query>",
	Short: "Fuzzy-search the charger registry by location or address.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var body struct {
			Results []struct {
				ChargerID string  `json:"chargerId"`
				Location  string  `json:"location"`
				Address   string  `json:"address"`
				PlugType  string  `json:"plugType"`
				Power     string  `json:"power"`
				Score     float64 `json:"score"`
			} `json:"results"`
		}
		res, err := client().R().
			SetContext(cmd.Context()).
			SetQueryParam("q", args[0]).
			SetResult(&body).
			Get("/api/v1/chargers")
		if err != nil {
			fail(err)
		}
		if res.IsError() {
			failRes(res)
		}

		t := newTable()
		t.AppendHeader(table.Row{"charger", "location", "address", "plug", "power", "match"})
		for _, r := range body.Results {
			t.AppendRow(table.Row{
				r.ChargerID,
				r.Location,
				r.Address,
				r.PlugType,
				r.Power,
				fmt.Sprintf("%.0f%%", r.Score*100),
			})
		}
		t.Render()
	},
}
