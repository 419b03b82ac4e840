package main

import (
	"os"

	"github.com/dmboucher/go-gantt-chart/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
