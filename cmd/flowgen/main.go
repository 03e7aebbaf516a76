package main

import (
	"os"

	"github.com/frherrer/GoE2E-FlowGen/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
