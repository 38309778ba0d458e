package main

import (
	"os"

	"github.com/meddesk-dev/meddesk/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
