package main

import (
	"os"

	"github.com/kehrlein/deskcalc/cmd/deskcalc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
