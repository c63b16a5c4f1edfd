package main

import (
	"os"

	"github.com/robinmackenzie/uk-election-map/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
