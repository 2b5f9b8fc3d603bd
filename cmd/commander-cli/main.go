package main

import (
	"fmt"
	"os"

	"commander-backend/cmd/commander-cli/cmd"
)

func main() {
	baseUrl, ok := os.LookupEnv("COMMANDER_BASE_URL")
	if !ok {
		fmt.Println("You should specify the base url of the commander api in the environment variable COMMANDER_BASE_URL.")
		os.Exit(1)
	}
	cmd.BaseUrl = baseUrl
	cmd.ApiKey = os.Getenv("COMMANDER_API_KEY")

	cmd.Execute()
}
