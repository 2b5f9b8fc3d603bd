package cmd

import (
	"fmt"
	"os"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"
)

var BaseUrl string
var ApiKey string

var client *resty.Client

var rootCmd = &cobra.Command{
	Use:   "commander-cli",
	Short: "commander-cli triggers the Api Commander sync endpoints.",
}

func Execute() {
	client = resty.New().
		SetBaseURL(BaseUrl).
		SetHeader("X-API-Key", ApiKey)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
