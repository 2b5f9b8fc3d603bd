package cmd

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	syncCmd.AddCommand(syncDolargCmd)
	syncCmd.AddCommand(syncRentaFijaCmd)
	syncCmd.AddCommand(syncAllCmd)
	rootCmd.AddCommand(syncCmd)
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Triggers a sync attempt on a data source.",
}

func trigger(path string) (string, error) {
	res, err := client.R().Post(path)
	if err != nil {
		return "", err
	}
	if res.IsError() {
		return "", fmt.Errorf("%d: %s", res.StatusCode(), res.String())
	}
	return res.String(), nil
}

var syncDolargCmd = &cobra.Command{
	Use:   "dolarg",
	Short: "Triggers the currency quote sync.",
	Run: func(cmd *cobra.Command, args []string) {
		out, err := trigger("/api/dolarg")
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		fmt.Println(out)
	},
}

var syncRentaFijaCmd = &cobra.Command{
	Use:   "renta-fija",
	Short: "Triggers the fixed income listing sync.",
	Run: func(cmd *cobra.Command, args []string) {
		out, err := trigger("/api/renta-fija-argentina")
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		fmt.Println(out)
	},
}

var syncAllCmd = &cobra.Command{
	Use:   "all",
	Short: "Triggers every data source and prints a summary.",
	Run: func(cmd *cobra.Command, args []string) {
		sources := []struct {
			name string
			path string
		}{
			{name: "dolarg", path: "/api/dolarg"},
			{name: "renta-fija-argentina", path: "/api/renta-fija-argentina"},
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Source", "Status", "Detail"})

		failed := false
		for _, source := range sources {
			out, err := trigger(source.path)
			if err != nil {
				failed = true
				t.AppendRow(table.Row{source.name, "error", err.Error()})
				continue
			}
			t.AppendRow(table.Row{source.name, "ok", out})
		}

		t.SetStyle(table.StyleRounded)
		t.Render()

		if failed {
			os.Exit(1)
		}
	},
}
