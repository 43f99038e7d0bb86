package main

import (
	"os"

	"feedbackManagement/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdout))
}
