package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/go-resty/resty/v2"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var serverUrl string

var rootCmd = &cobra.Command{
	Use:   "chargewatch-cli",
	Short: "chargewatch-cli inspects and overrides charger statuses over the chargewatch API.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&serverUrl,
		"server",
		"http://localhost:8000",
		"Base url of the chargewatch server.",
	)
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func client() *resty.Client {
	return resty.New().SetBaseURL(serverUrl)
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err.Error())
	os.Exit(1)
}

func failRes(res *resty.Response) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", res.Status(), res.String())
	os.Exit(1)
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}
