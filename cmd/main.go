package main

import (
	"os"

	"go.simplelang.dev/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
