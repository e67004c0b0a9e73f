package main

import (
	"os"

	"github.com/bjornf-dev/stockscout/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
