package main

import (
	"os"

	"github.com/samuelfneumann/mmlearn/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
