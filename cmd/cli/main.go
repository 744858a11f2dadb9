package main

import (
	"os"

	"github.com/devhive-app/devhive/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
